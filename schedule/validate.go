package schedule

import (
	"github.com/pkg/errors"

	"github.com/thisismqj/CLSAReimplementation/geometry"
)

var (
	ErrInvalidGeometry = errors.New("invalid layer geometry")
	ErrNoLayers        = errors.New("network has no layers")
)

// Network is everything the calculator needs to know about the model and
// the hardware tiling.
type Network struct {
	Layers      []Layer
	InputSize   geometry.Rect
	TileSize    geometry.Rect
	Duplication int // lanes per tile; 0 means 1

	// CoarseTracking drops per-tile receptive-field edges between layers
	// and puts a whole-layer barrier in their place. The zero value keeps
	// fine-grained tracking on.
	CoarseTracking bool
	Coarse         bool
}

// Validate checks the network before any graph is built. Every problem is
// reported as ErrInvalidGeometry except an empty layer list (ErrNoLayers).
func (n Network) Validate() error {
	if len(n.Layers) == 0 {
		return ErrNoLayers
	}
	if !n.InputSize.Positive() {
		return errors.Wrapf(ErrInvalidGeometry, "input size %s must be positive", n.InputSize)
	}
	if !n.TileSize.Positive() {
		return errors.Wrapf(ErrInvalidGeometry, "tile size %s must be positive", n.TileSize)
	}
	if n.Duplication < 0 {
		return errors.Wrapf(ErrInvalidGeometry, "duplication factor %d must be positive", n.Duplication)
	}

	seen := make(map[string]bool, len(n.Layers))
	shape := n.InputSize
	for idx, l := range n.Layers {
		switch {
		case l.Name == "":
			return errors.Wrapf(ErrInvalidGeometry, "layer %d has no name", idx)
		case l.Name == InputLayerName:
			return errors.Wrapf(ErrInvalidGeometry, "layer %d uses the reserved name %q", idx, InputLayerName)
		case seen[l.Name]:
			return errors.Wrapf(ErrInvalidGeometry, "layer name %q is not unique", l.Name)
		}
		seen[l.Name] = true

		if err := l.Conv.Validate(shape); err != nil {
			return errors.Wrapf(ErrInvalidGeometry, "layer %q on %s input: %v", l.Name, shape, err)
		}
		shape = l.Conv.OutputShape(shape)
	}
	return nil
}

func (n Network) dup() int {
	if n.Duplication == 0 {
		return 1
	}
	return n.Duplication
}
