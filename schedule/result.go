package schedule

import "sort"

// Entry is one row of a schedule table.
type Entry struct {
	Tile  TileID
	Level int
}

// Result is a leveled schedule. It is a snapshot and safe to share.
type Result struct {
	LayerOrder    []string // input pseudo-layer first, then network order
	Levels        map[TileID]int
	CyclesPerTile int
	MaxLevel      int
	TotalCycles   int
}

// Entries returns the work tiles, without the input pseudo-layer, sorted by
// level, then layer order, then row, then column.
func (r *Result) Entries() []Entry {
	rank := make(map[string]int, len(r.LayerOrder))
	for i, name := range r.LayerOrder {
		rank[name] = i
	}

	entries := make([]Entry, 0, len(r.Levels))
	for t, l := range r.Levels {
		if t.IsInput() {
			continue
		}
		entries = append(entries, Entry{Tile: t, Level: l})
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Level != b.Level {
			return a.Level < b.Level
		}
		if rank[a.Tile.Layer] != rank[b.Tile.Layer] {
			return rank[a.Tile.Layer] < rank[b.Tile.Layer]
		}
		if a.Tile.Y != b.Tile.Y {
			return a.Tile.Y < b.Tile.Y
		}
		return a.Tile.X < b.Tile.X
	})
	return entries
}
