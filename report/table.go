// Package report renders a leveled schedule for people and tools: the
// schedule table text format, JSON, a binary protobuf snapshot and
// Graphviz DOT views of the tile graph and of the execution timeline.
package report

import (
	"github.com/pkg/errors"

	"github.com/thisismqj/CLSAReimplementation/schedule"
)

var ErrMalformedReport = errors.New("malformed schedule report")

// Row is one work tile of a schedule table.
type Row struct {
	Layer string
	X     int
	Y     int
	Level int
}

// Table is the format-independent content of a report. Input pseudo-layer
// tiles are never part of it.
type Table struct {
	CyclesPerTile int
	TotalCycles   int
	MaxLevel      int
	Rows          []Row
}

// TableOf flattens a schedule result into table rows.
func TableOf(res *schedule.Result) Table {
	entries := res.Entries()
	t := Table{
		CyclesPerTile: res.CyclesPerTile,
		TotalCycles:   res.TotalCycles,
		MaxLevel:      res.MaxLevel,
		Rows:          make([]Row, len(entries)),
	}
	for i, e := range entries {
		t.Rows[i] = Row{Layer: e.Tile.Layer, X: e.Tile.X, Y: e.Tile.Y, Level: e.Level}
	}
	return t
}

// Layers returns the layer names in order of first appearance.
func (t Table) Layers() []string {
	var names []string
	seen := make(map[string]bool)
	for _, r := range t.Rows {
		if !seen[r.Layer] {
			seen[r.Layer] = true
			names = append(names, r.Layer)
		}
	}
	return names
}
