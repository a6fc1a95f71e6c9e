package schedule

import (
	"github.com/thisismqj/CLSAReimplementation/geometry"
)

// Policy holds the two scheduling flags that shape the graph.
type Policy struct {
	// FineGrained adds per-tile receptive-field edges between layers.
	FineGrained bool
	// Coarse keeps every row-wrap edge regardless of lane duplication.
	Coarse bool
}

// TileRange is an inclusive range of tile indices on both axes.
type TileRange struct {
	X0, X1 int
	Y0, Y1 int
}

// Empty reports whether the range selects no tile.
func (r TileRange) Empty() bool {
	return r.X0 > r.X1 || r.Y0 > r.Y1
}

// OutputTiles returns the number of tile columns and rows covering shape.
func OutputTiles(shape, tile geometry.Rect) (cols, rows int) {
	return geometry.CeilDiv(shape.W, tile.W), geometry.CeilDiv(shape.H, tile.H)
}

// TileBound returns the largest valid tile index on each axis of shape.
func TileBound(shape, tile geometry.Rect) (x, y int) {
	return (shape.W - 1) / tile.W, (shape.H - 1) / tile.H
}

// LastColumn is the index of the rightmost tile of a row.
func LastColumn(shape, tile geometry.Rect) int {
	return (shape.W - 1) / tile.W
}

// RowBlock is the number of output tile-rows covered by one block of
// duplicated lanes.
func RowBlock(out, tile geometry.Rect, dup int) int {
	return (out.H/tile.H + 1 + dup - 1) / dup
}

// NeedsRowWrapEdge reports whether tile (j, i) waits for the last tile of
// row i-1. With fine-grained tracking on and coarse mode off, the edge is
// left out on every rowBlock-th row: the cross-layer edges order those rows.
func NeedsRowWrapEdge(i, j, rowBlock int, p Policy) bool {
	if i == 0 || j != 0 {
		return false
	}
	return !p.FineGrained || p.Coarse || i%rowBlock != 0
}

// InputTileOverlap returns the tiles of the input feature map read by the
// output tile out, clipped to [0, bound].
func InputTileOverlap(out geometry.Pos, conv geometry.Conv2d, tile geometry.Rect, boundX, boundY int) TileRange {
	in := geometry.OutputTileToInputRect(out, conv)
	return TileRange{
		X0: max(0, in.X/tile.W),
		X1: min(boundX, (in.X+in.W-1)/tile.W),
		Y0: max(0, in.Y/tile.H),
		Y1: min(boundY, (in.Y+in.H-1)/tile.H),
	}
}
