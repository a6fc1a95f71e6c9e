package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thisismqj/CLSAReimplementation/geometry"
)

func TestRowBlock(t *testing.T) {
	assert.Equal(t, 3, RowBlock(square(2), square(1), 1))
	assert.Equal(t, 2, RowBlock(square(2), square(2), 1))
	assert.Equal(t, 3, RowBlock(square(4), square(1), 2))
	// 56/8 = 7 tile rows, +1, split over 4 lanes.
	assert.Equal(t, 2, RowBlock(square(56), square(8), 4))
}

func TestNeedsRowWrapEdge(t *testing.T) {
	fine := Policy{FineGrained: true}
	coarseTracking := Policy{FineGrained: false}
	coarseMode := Policy{FineGrained: true, Coarse: true}

	tests := []struct {
		name     string
		i, j     int
		rowBlock int
		policy   Policy
		want     bool
	}{
		{"first row never wraps", 0, 0, 3, coarseTracking, false},
		{"inner column never wraps", 1, 2, 3, coarseTracking, false},
		{"fine inside block", 1, 0, 3, fine, true},
		{"fine on block boundary", 3, 0, 3, fine, false},
		{"fine past block boundary", 4, 0, 3, fine, true},
		{"fine on second boundary", 6, 0, 3, fine, false},
		{"coarse tracking on boundary", 3, 0, 3, coarseTracking, true},
		{"coarse mode on boundary", 3, 0, 3, coarseMode, true},
		{"rowBlock 1 elides every wrap", 5, 0, 1, fine, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NeedsRowWrapEdge(tt.i, tt.j, tt.rowBlock, tt.policy))
		})
	}
}

func TestTileGridHelpers(t *testing.T) {
	cols, rows := OutputTiles(geometry.Rect{W: 5, H: 4}, square(2))
	assert.Equal(t, 3, cols)
	assert.Equal(t, 2, rows)

	bx, by := TileBound(geometry.Rect{W: 5, H: 4}, square(2))
	assert.Equal(t, 2, bx)
	assert.Equal(t, 1, by)

	assert.Equal(t, 2, LastColumn(geometry.Rect{W: 5, H: 4}, square(2)))
	assert.Equal(t, 1, LastColumn(geometry.Rect{W: 4, H: 4}, square(2)))
}

func TestInputTileOverlap(t *testing.T) {
	tile := square(2)

	t.Run("pointwise maps tile to itself", func(t *testing.T) {
		r := InputTileOverlap(geometry.Pos{X: 2, Y: 0, W: 2, H: 2}, pointwise, tile, 1, 1)
		assert.Equal(t, TileRange{X0: 1, X1: 1, Y0: 0, Y1: 0}, r)
		assert.False(t, r.Empty())
	})

	t.Run("3x3 clipped at origin", func(t *testing.T) {
		r := InputTileOverlap(geometry.Pos{X: 0, Y: 0, W: 2, H: 2}, same3x3, tile, 3, 3)
		assert.Equal(t, TileRange{X0: 0, X1: 1, Y0: 0, Y1: 1}, r)
	})

	t.Run("3x3 clipped at far border", func(t *testing.T) {
		r := InputTileOverlap(geometry.Pos{X: 6, Y: 6, W: 2, H: 2}, same3x3, tile, 3, 3)
		assert.Equal(t, TileRange{X0: 2, X1: 3, Y0: 2, Y1: 3}, r)
	})

	t.Run("stride 2 reads a wider window", func(t *testing.T) {
		conv := geometry.Conv2d{Stride: square(2), Pad: square(1), Kernel: square(3)}
		r := InputTileOverlap(geometry.Pos{X: 2, Y: 2, W: 2, H: 2}, conv, tile, 7, 7)
		// input x in [3, 3+5-1] = [3, 7]
		assert.Equal(t, TileRange{X0: 1, X1: 3, Y0: 1, Y1: 3}, r)
	})
}
