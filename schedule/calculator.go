package schedule

import (
	"github.com/pkg/errors"

	"github.com/thisismqj/CLSAReimplementation/dag"
	"github.com/thisismqj/CLSAReimplementation/geometry"
)

// Calculator builds the tile dependency graph of one network and derives
// its schedule. The graph is built at most once; a Calculator must not be
// used from several goroutines while building.
type Calculator struct {
	net    Network
	logger Logger

	builder *dag.Builder[TileID]
	graph   *dag.Graph[TileID]
}

// New validates net and returns a Calculator for it. Options override the
// network's policy flags and duplication factor.
func New(net Network, opts ...Option) (*Calculator, error) {
	options := Options{Logger: nopLogger{}}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Logger == nil {
		options.Logger = nopLogger{}
	}

	net.Layers = append([]Layer(nil), net.Layers...)
	options.apply(&net)
	if err := net.Validate(); err != nil {
		return nil, err
	}
	net.Duplication = net.dup()

	return &Calculator{
		net:     net,
		logger:  options.Logger,
		builder: dag.NewBuilder[TileID](),
	}, nil
}

// Network returns the validated network the calculator works on.
func (c *Calculator) Network() Network {
	return c.net
}

// Build constructs the dependency graph. Calling it again is a no-op.
func (c *Calculator) Build() error {
	if c.graph != nil {
		return nil
	}

	tile := c.net.TileSize
	dup := c.net.Duplication
	policy := Policy{FineGrained: !c.net.CoarseTracking, Coarse: c.net.Coarse}
	c.logger.Info("building tile graph",
		Field{"wdup", dup}, Field{"tile", tile}, Field{"fine_grained", policy.FineGrained}, Field{"coarse", policy.Coarse})

	cur := c.net.InputSize
	for idx, l := range c.net.Layers {
		prev := InputLayerName
		if idx > 0 {
			prev = c.net.Layers[idx-1].Name
		}
		if err := c.addLayer(l, prev, cur, policy); err != nil {
			return errors.WithMessagef(err, "layer %q", l.Name)
		}
		cur = l.Conv.OutputShape(cur)
	}

	c.graph = c.builder.Freeze()
	c.logger.Info("tile graph built", Field{"nodes", c.graph.Len()})
	return nil
}

// addLayer registers every edge ending in a tile of layer l, whose input
// feature map has shape in and belongs to layer prev.
func (c *Calculator) addLayer(l Layer, prev string, in geometry.Rect, policy Policy) error {
	tile := c.net.TileSize
	out := l.Conv.OutputShape(in)
	boundX, boundY := TileBound(in, tile)
	rowBlock := RowBlock(out, tile, c.net.Duplication)
	lastCol := LastColumn(out, tile)
	c.logger.Info("layer", Field{"name", l.Name}, Field{"in", in}, Field{"out", out}, Field{"row_block", rowBlock})

	node := func(layer string, x, y int) TileID {
		return TileID{Layer: layer, Grid: tile, X: x, Y: y}
	}

	for i := 0; i*tile.H < out.H; i++ {
		for j := 0; j*tile.W < out.W; j++ {
			cur := node(l.Name, j, i)

			if NeedsRowWrapEdge(i, j, rowBlock, policy) {
				if err := c.builder.AddEdge(node(l.Name, lastCol, i-1), cur); err != nil {
					return err
				}
			}
			if j > 0 {
				if err := c.builder.AddEdge(node(l.Name, j-1, i), cur); err != nil {
					return err
				}
			}
			if !policy.FineGrained {
				continue
			}

			rect := geometry.Pos{X: j * tile.W, Y: i * tile.H, W: tile.W, H: tile.H}
			r := InputTileOverlap(rect, l.Conv, tile, boundX, boundY)
			for x := r.X0; x <= r.X1; x++ {
				for y := r.Y0; y <= r.Y1; y++ {
					if err := c.builder.AddEdge(node(prev, x, y), cur); err != nil {
						return err
					}
				}
			}
		}
	}

	if !policy.FineGrained {
		// Whole-layer barrier: the first tile waits for the last input tile.
		return c.builder.AddEdge(node(prev, boundX, boundY), node(l.Name, 0, 0))
	}
	return nil
}

// Graph builds the dependency graph if needed and returns it.
func (c *Calculator) Graph() (*dag.Graph[TileID], error) {
	if err := c.Build(); err != nil {
		return nil, err
	}
	return c.graph, nil
}

// ScheduleLevels returns the schedule level of every tile, input
// pseudo-layer tiles included. The map is computed afresh on every call.
func (c *Calculator) ScheduleLevels() (map[TileID]int, error) {
	g, err := c.Graph()
	if err != nil {
		return nil, err
	}
	levels, err := g.LevelOrder()
	if err != nil {
		c.logger.Error("leveling failed", err, Field{"nodes", g.Len()})
		return nil, err
	}
	return levels, nil
}

// CyclesPerTile is the number of cycles one tile takes when its pixels are
// shared between the duplicated lanes.
func (c *Calculator) CyclesPerTile() int {
	return geometry.CeilDiv(c.net.TileSize.W*c.net.TileSize.H, c.net.Duplication)
}

// MaxLevel returns the makespan of the schedule in tile levels.
func (c *Calculator) MaxLevel() (int, error) {
	levels, err := c.ScheduleLevels()
	if err != nil {
		return 0, err
	}
	return MaxLevel(levels), nil
}

// TotalCycles estimates the cycles needed for the whole network.
func (c *Calculator) TotalCycles() (int, error) {
	m, err := c.MaxLevel()
	if err != nil {
		return 0, err
	}
	return m * c.CyclesPerTile(), nil
}

// Result levels the graph once and bundles everything a report needs.
func (c *Calculator) Result() (*Result, error) {
	levels, err := c.ScheduleLevels()
	if err != nil {
		return nil, err
	}

	order := make([]string, 0, len(c.net.Layers)+1)
	order = append(order, InputLayerName)
	for _, l := range c.net.Layers {
		order = append(order, l.Name)
	}

	maxLevel := MaxLevel(levels)
	cpt := c.CyclesPerTile()
	c.logger.Info("schedule ready", Field{"max_level", maxLevel}, Field{"cycles_per_tile", cpt})
	return &Result{
		LayerOrder:    order,
		Levels:        levels,
		CyclesPerTile: cpt,
		MaxLevel:      maxLevel,
		TotalCycles:   maxLevel * cpt,
	}, nil
}

// MaxLevel returns the largest level in levels, or 0 if it is empty.
func MaxLevel(levels map[TileID]int) int {
	m := 0
	for _, l := range levels {
		m = max(m, l)
	}
	return m
}
