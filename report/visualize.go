package report

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/thisismqj/CLSAReimplementation/dag"
	"github.com/thisismqj/CLSAReimplementation/schedule"
)

// checkGraphviz verifies that the 'dot' command is available
func checkGraphviz() error {
	if _, err := exec.LookPath("dot"); err != nil {
		return errors.New("graphviz 'dot' command not found, install graphviz to render PNG files")
	}
	return nil
}

// RenderPNG converts a .dot file to .png using Graphviz.
func RenderPNG(dotFile, pngFile string) error {
	if err := checkGraphviz(); err != nil {
		return err
	}

	cmd := exec.Command("dot", "-Tpng", dotFile, "-o", pngFile)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "graphviz error\nOutput: %s", string(output))
	}

	// Verify the PNG was created
	if _, err := os.Stat(pngFile); os.IsNotExist(err) {
		return errors.Errorf("PNG file was not created: %s", pngFile)
	}

	return nil
}

func dotID(t schedule.TileID) string {
	return fmt.Sprintf("%q", fmt.Sprintf("%s_%d_%d", t.Layer, t.X, t.Y))
}

// WriteDOT draws the tile dependency graph with one cluster per layer, in
// layerOrder. Input pseudo-layer tiles are drawn green; every tile is
// labelled with its schedule level.
func WriteDOT(w io.Writer, g *dag.Graph[schedule.TileID], levels map[schedule.TileID]int, layerOrder []string) error {
	byLayer := make(map[string][]schedule.TileID)
	for _, n := range g.Nodes() {
		byLayer[n.Layer] = append(byLayer[n.Layer], n)
	}

	var sb strings.Builder
	sb.WriteString("digraph Tiles {\n")
	sb.WriteString("  rankdir=TB;\n")
	sb.WriteString("  node [shape=box, style=rounded, fontname=\"Arial\"];\n")
	sb.WriteString("  edge [fontname=\"Arial\", fontsize=10];\n\n")

	for idx, layer := range layerOrder {
		tiles := byLayer[layer]
		if len(tiles) == 0 {
			continue
		}
		sortTiles(tiles)

		color := "lightyellow"
		if layer == schedule.InputLayerName {
			color = "lightgreen"
		}

		sb.WriteString(fmt.Sprintf("  subgraph cluster_%d {\n", idx))
		sb.WriteString(fmt.Sprintf("    label=\"%s\";\n", layer))
		sb.WriteString("    style=filled;\n")
		sb.WriteString("    color=lightgrey;\n")
		sb.WriteString(fmt.Sprintf("    node [style=\"rounded,filled\", fillcolor=\"%s\"];\n\n", color))
		for _, t := range tiles {
			sb.WriteString(fmt.Sprintf("    %s [label=\"(%d,%d)\\nlevel=%d\"];\n", dotID(t), t.X, t.Y, levels[t]))
		}
		sb.WriteString("  }\n\n")
	}

	edges := g.Edges()
	sort.Slice(edges, func(i, j int) bool {
		a, b := dotID(edges[i].From)+dotID(edges[i].To), dotID(edges[j].From)+dotID(edges[j].To)
		return a < b
	})
	for _, e := range edges {
		sb.WriteString(fmt.Sprintf("  %s -> %s;\n", dotID(e.From), dotID(e.To)))
	}

	sb.WriteString("}\n")

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return errors.Wrap(err, "writing DOT graph")
	}
	return nil
}

// WriteGantt draws the schedule as a timeline: one row per layer, one box
// per tile spanning [level*cycles, (level+1)*cycles).
func WriteGantt(w io.Writer, t Table) error {
	var sb strings.Builder
	sb.WriteString("digraph Timeline {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box, fontname=\"Arial\"];\n\n")

	byLayer := make(map[string][]Row)
	for _, r := range t.Rows {
		byLayer[r.Layer] = append(byLayer[r.Layer], r)
	}

	for idx, layer := range t.Layers() {
		rows := byLayer[layer]
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Level < rows[j].Level })

		sb.WriteString(fmt.Sprintf("  subgraph cluster_%d {\n", idx))
		sb.WriteString(fmt.Sprintf("    label=\"%s\";\n", layer))
		sb.WriteString("    color=lightgrey;\n")
		for i, r := range rows {
			start := r.Level * t.CyclesPerTile
			end := start + t.CyclesPerTile
			sb.WriteString(fmt.Sprintf("    L%d_%d [label=\"(%d,%d)\\n%d - %d\", fillcolor=\"lightblue\", style=\"filled\"];\n",
				idx, i, r.X, r.Y, start, end))
			if i > 0 {
				sb.WriteString(fmt.Sprintf("    L%d_%d -> L%d_%d;\n", idx, i-1, idx, i))
			}
		}
		sb.WriteString("  }\n\n")
	}

	sb.WriteString(fmt.Sprintf("  Total [label=\"Total cycles:\\n%d\", shape=ellipse, fillcolor=\"lightgreen\", style=\"filled\"];\n",
		t.TotalCycles))
	sb.WriteString("}\n")

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return errors.Wrap(err, "writing DOT timeline")
	}
	return nil
}

func sortTiles(tiles []schedule.TileID) {
	sort.Slice(tiles, func(i, j int) bool {
		if tiles[i].Y != tiles[j].Y {
			return tiles[i].Y < tiles[j].Y
		}
		return tiles[i].X < tiles[j].X
	})
}
