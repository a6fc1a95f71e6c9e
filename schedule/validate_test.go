package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thisismqj/CLSAReimplementation/geometry"
)

func TestNew_RejectsInvalidGeometry(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Network)
	}{
		{"zero tile width", func(n *Network) { n.TileSize = geometry.Rect{W: 0, H: 2} }},
		{"negative tile height", func(n *Network) { n.TileSize = geometry.Rect{W: 2, H: -1} }},
		{"empty input", func(n *Network) { n.InputSize = geometry.Rect{} }},
		{"negative duplication", func(n *Network) { n.Duplication = -2 }},
		{"reserved layer name", func(n *Network) { n.Layers[0].Name = InputLayerName }},
		{"unnamed layer", func(n *Network) { n.Layers[0].Name = "" }},
		{"duplicate layer name", func(n *Network) { n.Layers = append(n.Layers, n.Layers[0]) }},
		{"zero stride", func(n *Network) { n.Layers[0].Conv.Stride = geometry.Rect{W: 1, H: 0} }},
		{"kernel larger than map", func(n *Network) { n.Layers[0].Conv.Kernel = square(5) }},
		{"second layer collapses", func(n *Network) {
			n.Layers = append(n.Layers, Layer{Name: "L2", Conv: geometry.Conv2d{
				Stride: square(1), Kernel: square(4),
			}}, Layer{Name: "L3", Conv: geometry.Conv2d{Stride: square(1), Kernel: square(2)}})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net := singleLayer(4, 2)
			tt.mutate(&net)
			calc, err := New(net)
			assert.ErrorIs(t, err, ErrInvalidGeometry)
			assert.Nil(t, calc)
		})
	}
}

func TestNew_RejectsEmptyNetwork(t *testing.T) {
	_, err := New(Network{InputSize: square(4), TileSize: square(2)})
	assert.ErrorIs(t, err, ErrNoLayers)
}

func TestNew_ZeroDuplicationDefaultsToOne(t *testing.T) {
	net := singleLayer(4, 2)
	net.Duplication = 0
	calc, err := New(net)
	assert.NoError(t, err)
	assert.Equal(t, 1, calc.Network().Duplication)
	assert.Equal(t, 4, calc.CyclesPerTile())
}

func TestValidate_ErrorNamesLayer(t *testing.T) {
	net := singleLayer(4, 2)
	net.Layers[0].Conv.Kernel = square(7)
	err := net.Validate()
	assert.ErrorIs(t, err, ErrInvalidGeometry)
	assert.Contains(t, err.Error(), `layer "L1"`)
}
