package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputShape(t *testing.T) {
	tests := []struct {
		name string
		in   Rect
		conv Conv2d
		want Rect
	}{
		{"identity 1x1", Rect{2, 2}, Conv2d{Rect{1, 1}, Rect{0, 0}, Rect{1, 1}}, Rect{2, 2}},
		{"kernel equals input", Rect{5, 7}, Conv2d{Rect{1, 1}, Rect{0, 0}, Rect{5, 7}}, Rect{1, 1}},
		{"same padding 3x3", Rect{32, 32}, Conv2d{Rect{1, 1}, Rect{1, 1}, Rect{3, 3}}, Rect{32, 32}},
		{"stride 2 valid", Rect{224, 224}, Conv2d{Rect{2, 2}, Rect{3, 3}, Rect{7, 7}}, Rect{112, 112}},
		{"stride 2 floor", Rect{9, 8}, Conv2d{Rect{2, 2}, Rect{0, 0}, Rect{2, 2}}, Rect{4, 4}},
		{"asymmetric", Rect{10, 6}, Conv2d{Rect{3, 1}, Rect{0, 2}, Rect{1, 5}}, Rect{4, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.conv.OutputShape(tt.in))
			assert.NoError(t, tt.conv.Validate(tt.in))
		})
	}
}

func TestValidate_RejectsDegenerateConv(t *testing.T) {
	in := Rect{4, 4}
	assert.Error(t, Conv2d{Rect{0, 1}, Rect{0, 0}, Rect{1, 1}}.Validate(in))
	assert.Error(t, Conv2d{Rect{1, 1}, Rect{0, 0}, Rect{1, 0}}.Validate(in))
	assert.Error(t, Conv2d{Rect{1, 1}, Rect{-1, 0}, Rect{1, 1}}.Validate(in))
	// 1 + (4-7)/2 = 0
	assert.Error(t, Conv2d{Rect{2, 2}, Rect{0, 0}, Rect{7, 7}}.Validate(in))
	assert.Error(t, Conv2d{Rect{1, 1}, Rect{0, 0}, Rect{5, 5}}.Validate(in))
}

func TestValidate_OversizedKernelWithSingleOutput(t *testing.T) {
	in := Rect{4, 4}
	c := Conv2d{Stride: Rect{2, 2}, Kernel: Rect{5, 5}}
	assert.NoError(t, c.Validate(in))
	assert.Equal(t, Rect{1, 1}, c.OutputShape(in))
}

func TestOutputTileToInputRect(t *testing.T) {
	tests := []struct {
		name string
		out  Pos
		conv Conv2d
		want Pos
	}{
		{"1x1 kernel", Pos{0, 0, 2, 2}, Conv2d{Rect{1, 1}, Rect{0, 0}, Rect{1, 1}}, Pos{0, 0, 2, 2}},
		{"3x3 centred", Pos{4, 4, 4, 4}, Conv2d{Rect{1, 1}, Rect{1, 1}, Rect{3, 3}}, Pos{3, 3, 6, 6}},
		{"3x3 at origin", Pos{0, 0, 4, 4}, Conv2d{Rect{1, 1}, Rect{1, 1}, Rect{3, 3}}, Pos{-1, -1, 6, 6}},
		{"stride 2", Pos{2, 0, 2, 2}, Conv2d{Rect{2, 2}, Rect{0, 0}, Rect{3, 3}}, Pos{3, -1, 5, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputTileToInputRect(tt.out, tt.conv))
		})
	}
}

// Even kernels shift by (k-1)/2 with truncation, so the window is not
// symmetric around the output pixel. Pinned, not a general contract.
func TestOutputTileToInputRect_EvenKernelTruncation(t *testing.T) {
	k2 := Conv2d{Rect{1, 1}, Rect{0, 0}, Rect{2, 2}}
	assert.Equal(t, Pos{1, 1, 3, 3}, OutputTileToInputRect(Pos{1, 1, 2, 2}, k2))

	k4 := Conv2d{Rect{2, 1}, Rect{0, 0}, Rect{4, 4}}
	assert.Equal(t, Pos{-1, -1, 4, 4}, OutputTileToInputRect(Pos{0, 0, 1, 1}, k4))
	assert.Equal(t, Pos{1, 0, 6, 5}, OutputTileToInputRect(Pos{1, 1, 2, 2}, k4))
}

func TestCeilDiv(t *testing.T) {
	assert.Equal(t, 2, CeilDiv(4, 3))
	assert.Equal(t, 16, CeilDiv(16, 1))
	assert.Equal(t, 1, CeilDiv(1, 5))
}
