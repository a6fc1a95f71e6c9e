package report

import (
	"io"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const snapshotFormat = "clsa-schedule/v1"

// WriteSnapshot serialises the table as a binary protobuf Struct so other
// tools can load it without parsing the text table.
func WriteSnapshot(w io.Writer, t Table) error {
	entries := make([]any, len(t.Rows))
	for i, r := range t.Rows {
		entries[i] = map[string]any{
			"layer": r.Layer,
			"x":     r.X,
			"y":     r.Y,
			"level": r.Level,
		}
	}

	st, err := structpb.NewStruct(map[string]any{
		"format":          snapshotFormat,
		"cycles_per_tile": t.CyclesPerTile,
		"total_cycles":    t.TotalCycles,
		"max_level":       t.MaxLevel,
		"entries":         entries,
	})
	if err != nil {
		return errors.Wrap(err, "building schedule snapshot")
	}

	data, err := proto.Marshal(st)
	if err != nil {
		return errors.Wrap(err, "marshaling schedule snapshot")
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "writing schedule snapshot")
	}
	return nil
}

// ReadSnapshot decodes a snapshot written by WriteSnapshot.
func ReadSnapshot(r io.Reader) (Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Table{}, errors.Wrap(err, "reading schedule snapshot")
	}

	var st structpb.Struct
	if err := proto.Unmarshal(data, &st); err != nil {
		return Table{}, errors.Wrapf(ErrMalformedReport, "decoding snapshot: %v", err)
	}
	fields := st.GetFields()
	if fields["format"].GetStringValue() != snapshotFormat {
		return Table{}, errors.Wrapf(ErrMalformedReport, "unknown snapshot format %q", fields["format"].GetStringValue())
	}

	t := Table{
		CyclesPerTile: int(fields["cycles_per_tile"].GetNumberValue()),
		TotalCycles:   int(fields["total_cycles"].GetNumberValue()),
		MaxLevel:      int(fields["max_level"].GetNumberValue()),
	}
	for i, v := range fields["entries"].GetListValue().GetValues() {
		e := v.GetStructValue()
		if e == nil {
			return Table{}, errors.Wrapf(ErrMalformedReport, "entry %d is not a record", i)
		}
		f := e.GetFields()
		t.Rows = append(t.Rows, Row{
			Layer: f["layer"].GetStringValue(),
			X:     int(f["x"].GetNumberValue()),
			Y:     int(f["y"].GetNumberValue()),
			Level: int(f["level"].GetNumberValue()),
		})
	}
	return t, nil
}
