package report

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// Raw JSON structures matching the file format

type ScheduleJSON struct {
	CyclesPerTile int         `json:"cycles_per_tile"`
	TotalCycles   int         `json:"total_cycles"`
	MaxLevel      int         `json:"max_level"`
	Entries       []EntryJSON `json:"entries"`
}

type EntryJSON struct {
	Layer string `json:"layer"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Level int    `json:"level"`
}

// WriteJSON writes the table as indented JSON.
func WriteJSON(w io.Writer, t Table) error {
	sj := ScheduleJSON{
		CyclesPerTile: t.CyclesPerTile,
		TotalCycles:   t.TotalCycles,
		MaxLevel:      t.MaxLevel,
		// Ensure we write an empty array, not null
		Entries: make([]EntryJSON, len(t.Rows)),
	}
	for i, r := range t.Rows {
		sj.Entries[i] = EntryJSON(r)
	}

	data, err := json.MarshalIndent(sj, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling schedule")
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "writing schedule JSON")
	}
	return nil
}
