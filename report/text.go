package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	cyclesPerTileHeader = "Cycle per div:"
	totalCyclesHeader   = "Total cycles:"
	tableHeader         = "Schedule Table (Node, Ord): "
)

// WriteText writes the schedule table:
//
//	Cycle per div: 4
//	Total cycles: 4
//	Schedule Table (Node, Ord):
//	( L1: (0, 0) ): 1
func WriteText(w io.Writer, t Table) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s %d\n", cyclesPerTileHeader, t.CyclesPerTile)
	fmt.Fprintf(bw, "%s %d\n", totalCyclesHeader, t.TotalCycles)
	fmt.Fprintln(bw, tableHeader)
	for _, r := range t.Rows {
		fmt.Fprintf(bw, "( %s: (%d, %d) ): %d\n", r.Layer, r.X, r.Y, r.Level)
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "writing schedule table")
	}
	return nil
}

// ParseText reads a table written by WriteText. MaxLevel is recovered from
// the rows.
func ParseText(r io.Reader) (Table, error) {
	var t Table
	haveCycles := false

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.HasPrefix(line, cyclesPerTileHeader):
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, cyclesPerTileHeader)))
			if err != nil {
				return Table{}, errors.Wrapf(ErrMalformedReport, "line %d: bad cycle count", lineNo)
			}
			t.CyclesPerTile = n
			haveCycles = true
		case strings.HasPrefix(line, totalCyclesHeader):
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, totalCyclesHeader)))
			if err != nil {
				return Table{}, errors.Wrapf(ErrMalformedReport, "line %d: bad total cycles", lineNo)
			}
			t.TotalCycles = n
		case strings.HasPrefix(line, "(") && strings.Contains(line, "):"):
			row, err := parseRow(line)
			if err != nil {
				return Table{}, errors.Wrapf(ErrMalformedReport, "line %d: %v", lineNo, err)
			}
			t.Rows = append(t.Rows, row)
			if row.Level > t.MaxLevel {
				t.MaxLevel = row.Level
			}
		}
	}
	if err := sc.Err(); err != nil {
		return Table{}, errors.Wrap(err, "reading schedule table")
	}

	if !haveCycles {
		return Table{}, errors.Wrapf(ErrMalformedReport, "missing %q", cyclesPerTileHeader)
	}
	if len(t.Rows) == 0 {
		return Table{}, errors.Wrap(ErrMalformedReport, "no schedule rows")
	}
	return t, nil
}

// parseRow parses "( name: (x, y) ): level".
func parseRow(line string) (Row, error) {
	cut := strings.LastIndex(line, "):")
	node, level := line[:cut], strings.TrimSpace(line[cut+2:])

	var r Row
	var err error
	if r.Level, err = strconv.Atoi(level); err != nil {
		return Row{}, errors.Errorf("bad level %q", level)
	}

	node = strings.TrimSpace(strings.TrimPrefix(node, "("))
	sep := strings.LastIndex(node, ": (")
	if sep < 0 {
		return Row{}, errors.Errorf("bad node %q", node)
	}
	r.Layer = node[:sep]
	if _, err := fmt.Sscanf(node[sep+2:], "(%d, %d)", &r.X, &r.Y); err != nil {
		return Row{}, errors.Errorf("bad coordinates in %q", node)
	}
	return r, nil
}
