package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const network = `input_shape: 2 2
div_size: 1 1
wdup: 1
layers:
L1 1 1 0 0 1 1
`

func writeNetwork(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "network.conf")
	require.NoError(t, os.WriteFile(path, []byte(network), 0644))
	return path
}

func TestRunSchedule_Text(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "schedule.txt")

	assert.Equal(t, 0, runSchedule([]string{writeNetwork(t, dir), out}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Total cycles: 4\n")
	assert.Contains(t, string(data), "( L1: (1, 1) ): 4\n")
}

func TestRunSchedule_SnapshotFeedsGantt(t *testing.T) {
	dir := t.TempDir()
	pb := filepath.Join(dir, "schedule.pb")
	dot := filepath.Join(dir, "timeline.dot")

	require.Equal(t, 0, runSchedule([]string{"-format", "pb", writeNetwork(t, dir), pb}))
	assert.Equal(t, 0, runGantt([]string{pb, dot}))

	data, err := os.ReadFile(dot)
	require.NoError(t, err)
	assert.Contains(t, string(data), "digraph Timeline {")
}

func TestRunSchedule_BadArguments(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, 1, runSchedule([]string{"only-one-arg"}))
	assert.Equal(t, 1, runSchedule([]string{"-format", "xml", writeNetwork(t, dir), filepath.Join(dir, "out")}))
	assert.Equal(t, 1, runSchedule([]string{filepath.Join(dir, "missing.conf"), filepath.Join(dir, "out")}))
}

func TestRunVisualize(t *testing.T) {
	dir := t.TempDir()
	dot := filepath.Join(dir, "graph.dot")

	assert.Equal(t, 0, runVisualize([]string{writeNetwork(t, dir), dot}))

	data, err := os.ReadFile(dot)
	require.NoError(t, err)
	assert.Contains(t, string(data), "digraph Tiles {")
}
