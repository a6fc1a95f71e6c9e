// Package config loads a network description for the schedule calculator.
//
// Two formats are understood. The text format is line based:
//
//	# comment
//	input_shape: 224 224
//	div_size: 8 8
//	wdup: 2
//	sdk: 0
//	clsa: 1
//	layers:
//	conv1 2 2 3 3 7 7
//
// where each layer line is "name strideW strideH padW padH kernelW kernelH".
// sdk turns on coarse scheduling mode and clsa fine-grained cross-layer
// tracking. The JSON format carries the same fields, see NetworkJSON.
package config

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/thisismqj/CLSAReimplementation/geometry"
	"github.com/thisismqj/CLSAReimplementation/schedule"
)

var ErrInvalidConfig = errors.New("invalid network configuration")

// Load reads path as JSON when it ends in .json and as the text format
// otherwise.
func Load(path string) (schedule.Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return schedule.Network{}, errors.Wrapf(ErrInvalidConfig, "opening %s: %v", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return LoadJSON(f)
	}
	return LoadText(f)
}

// LoadText parses the line-based format.
func LoadText(r io.Reader) (schedule.Network, error) {
	net := schedule.Network{Duplication: 1}
	var haveInput, haveTile, inLayers bool

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "layers:" {
			inLayers = true
			continue
		}

		key, value, isKey := strings.Cut(line, ":")
		if isKey && !inLayers {
			var err error
			switch strings.TrimSpace(key) {
			case "input_shape":
				net.InputSize, err = parseRect(value)
				haveInput = true
			case "div_size":
				net.TileSize, err = parseRect(value)
				haveTile = true
			case "wdup":
				net.Duplication, err = parseInt(value)
			case "sdk":
				net.Coarse, err = parseFlag(value)
			case "clsa":
				var fine bool
				fine, err = parseFlag(value)
				net.CoarseTracking = !fine
			default:
				err = errors.Errorf("unknown key %q", key)
			}
			if err != nil {
				return schedule.Network{}, errors.Wrapf(ErrInvalidConfig, "line %d: %v", lineNo, err)
			}
			continue
		}
		if !inLayers {
			return schedule.Network{}, errors.Wrapf(ErrInvalidConfig, "line %d: unexpected %q before layers:", lineNo, line)
		}

		layer, err := parseLayer(line)
		if err != nil {
			return schedule.Network{}, errors.Wrapf(ErrInvalidConfig, "line %d: %v", lineNo, err)
		}
		net.Layers = append(net.Layers, layer)
	}
	if err := sc.Err(); err != nil {
		return schedule.Network{}, errors.Wrapf(ErrInvalidConfig, "reading config: %v", err)
	}

	if !haveInput {
		return schedule.Network{}, errors.Wrap(ErrInvalidConfig, "missing input_shape")
	}
	if !haveTile {
		return schedule.Network{}, errors.Wrap(ErrInvalidConfig, "missing div_size")
	}
	if len(net.Layers) == 0 {
		return schedule.Network{}, errors.Wrap(ErrInvalidConfig, "no layers loaded")
	}
	return net, nil
}

func parseLayer(line string) (schedule.Layer, error) {
	fields := strings.Fields(line)
	if len(fields) != 7 {
		return schedule.Layer{}, errors.Errorf("layer record %q needs 7 fields, got %d", line, len(fields))
	}
	var v [6]int
	for i, f := range fields[1:] {
		n, err := strconv.Atoi(f)
		if err != nil {
			return schedule.Layer{}, errors.Errorf("layer %s: bad number %q", fields[0], f)
		}
		v[i] = n
	}
	return schedule.Layer{
		Name: fields[0],
		Conv: geometry.Conv2d{
			Stride: geometry.Rect{W: v[0], H: v[1]},
			Pad:    geometry.Rect{W: v[2], H: v[3]},
			Kernel: geometry.Rect{W: v[4], H: v[5]},
		},
	}, nil
}

func parseRect(s string) (geometry.Rect, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return geometry.Rect{}, errors.Errorf("expected width and height, got %q", strings.TrimSpace(s))
	}
	w, err := strconv.Atoi(fields[0])
	if err != nil {
		return geometry.Rect{}, errors.Errorf("bad width %q", fields[0])
	}
	h, err := strconv.Atoi(fields[1])
	if err != nil {
		return geometry.Rect{}, errors.Errorf("bad height %q", fields[1])
	}
	return geometry.Rect{W: w, H: h}, nil
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.Errorf("bad integer %q", strings.TrimSpace(s))
	}
	return n, nil
}

func parseFlag(s string) (bool, error) {
	n, err := parseInt(s)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

// Raw JSON structures matching the file format

type NetworkJSON struct {
	InputShape [2]int      `json:"input_shape"`
	DivSize    [2]int      `json:"div_size"`
	WDup       *int        `json:"wdup,omitempty"`
	SDK        *bool       `json:"sdk,omitempty"`
	CLSA       *bool       `json:"clsa,omitempty"`
	Layers     []LayerJSON `json:"layers"`
}

type LayerJSON struct {
	Name   string `json:"name"`
	Stride [2]int `json:"stride"`
	Pad    [2]int `json:"pad"`
	Kernel [2]int `json:"kernel"`
}

// LoadJSON decodes a NetworkJSON document. Unknown fields are rejected.
func LoadJSON(r io.Reader) (schedule.Network, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var nj NetworkJSON
	if err := dec.Decode(&nj); err != nil {
		return schedule.Network{}, errors.Wrapf(ErrInvalidConfig, "parsing network JSON: %v", err)
	}
	if len(nj.Layers) == 0 {
		return schedule.Network{}, errors.Wrap(ErrInvalidConfig, "no layers loaded")
	}

	net := schedule.Network{
		InputSize:   geometry.Rect{W: nj.InputShape[0], H: nj.InputShape[1]},
		TileSize:    geometry.Rect{W: nj.DivSize[0], H: nj.DivSize[1]},
		Duplication: 1,
	}
	if nj.WDup != nil {
		net.Duplication = *nj.WDup
	}
	if nj.SDK != nil {
		net.Coarse = *nj.SDK
	}
	if nj.CLSA != nil {
		net.CoarseTracking = !*nj.CLSA
	}

	net.Layers = make([]schedule.Layer, len(nj.Layers))
	for i, l := range nj.Layers {
		net.Layers[i] = schedule.Layer{
			Name: l.Name,
			Conv: geometry.Conv2d{
				Stride: geometry.Rect{W: l.Stride[0], H: l.Stride[1]},
				Pad:    geometry.Rect{W: l.Pad[0], H: l.Pad[1]},
				Kernel: geometry.Rect{W: l.Kernel[0], H: l.Kernel[1]},
			},
		}
	}
	return net, nil
}
