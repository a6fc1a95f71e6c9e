package schedule

import (
	"fmt"

	"github.com/thisismqj/CLSAReimplementation/geometry"
)

// InputLayerName is the reserved name of the pseudo-layer standing for the
// network's external input. Its tiles are scheduling artifacts, not work.
const InputLayerName = "input"

// Layer is one convolution of the network. Layers are identified by name.
type Layer struct {
	Name string
	Conv geometry.Conv2d
}

// TileID identifies one tile of one layer under a given tiling. It is the
// node type of the dependency graph.
type TileID struct {
	Layer string
	Grid  geometry.Rect
	X     int
	Y     int
}

// IsInput reports whether the tile belongs to the input pseudo-layer.
func (t TileID) IsInput() bool {
	return t.Layer == InputLayerName
}

func (t TileID) String() string {
	return fmt.Sprintf("( %s: (%d, %d) )", t.Layer, t.X, t.Y)
}
