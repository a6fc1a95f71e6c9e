package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/thisismqj/CLSAReimplementation/config"
	"github.com/thisismqj/CLSAReimplementation/report"
	"github.com/thisismqj/CLSAReimplementation/schedule"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage:\n")
	fmt.Fprintf(os.Stderr, "  Schedule:   %s [-format text|json|pb] <network.conf> <output>\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  Visualize:  %s visualize <network.conf> <graph.dot>\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  Gantt:      %s gantt <schedule.txt|schedule.pb> <timeline.dot>\n", os.Args[0])
}

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "visualize":
			os.Exit(runVisualize(os.Args[2:]))
		case "gantt":
			os.Exit(runGantt(os.Args[2:]))
		}
	}
	os.Exit(runSchedule(os.Args[1:]))
}

func runSchedule(args []string) int {
	fs := flag.NewFlagSet("clsa", flag.ContinueOnError)
	fs.Usage = usage
	format := fs.String("format", "text", "output format: text, json or pb")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 2 {
		usage()
		return 1
	}
	configFile, outputFile := fs.Arg(0), fs.Arg(1)

	var write func(io.Writer, report.Table) error
	switch *format {
	case "text":
		write = report.WriteText
	case "json":
		write = report.WriteJSON
	case "pb":
		write = report.WriteSnapshot
	default:
		fmt.Fprintf(os.Stderr, "Unknown format %q\n", *format)
		return 1
	}

	calc, err := newCalculator(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	res, err := calc.Result()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing schedule: %v\n", err)
		return 1
	}
	table := report.TableOf(res)

	if err := writeFile(outputFile, table, write); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing schedule: %v\n", err)
		return 1
	}

	fmt.Printf("Schedule: %d tiles, max level %d, %d cycles per tile, %d total cycles\n",
		len(table.Rows), table.MaxLevel, table.CyclesPerTile, table.TotalCycles)
	fmt.Printf("Schedule written to %s\n", outputFile)
	return 0
}

func runVisualize(args []string) int {
	if len(args) != 2 {
		usage()
		return 1
	}
	configFile, dotFile := args[0], args[1]

	calc, err := newCalculator(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	g, err := calc.Graph()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building graph: %v\n", err)
		return 1
	}
	res, err := calc.Result()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing schedule: %v\n", err)
		return 1
	}

	f, err := os.Create(dotFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", dotFile, err)
		return 1
	}
	err = report.WriteDOT(f, g, res.Levels, res.LayerOrder)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing DOT file: %v\n", err)
		return 1
	}
	fmt.Printf("   ✓ Created DOT file: %s\n", dotFile)

	renderPNG(dotFile)
	return 0
}

func runGantt(args []string) int {
	if len(args) != 2 {
		usage()
		return 1
	}
	scheduleFile, dotFile := args[0], args[1]

	in, err := os.Open(scheduleFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", scheduleFile, err)
		return 1
	}
	var table report.Table
	if strings.EqualFold(filepath.Ext(scheduleFile), ".pb") {
		table, err = report.ReadSnapshot(in)
	} else {
		table, err = report.ParseText(in)
	}
	in.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading schedule: %v\n", err)
		return 1
	}

	fmt.Printf("Parsed %d schedule nodes, %d layers\n", len(table.Rows), len(table.Layers()))
	fmt.Printf("Cycle per div: %d\n", table.CyclesPerTile)
	fmt.Printf("Total cycles: %d\n", table.TotalCycles)

	if err := writeFile(dotFile, table, report.WriteGantt); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing DOT file: %v\n", err)
		return 1
	}
	fmt.Printf("   ✓ Created DOT file: %s\n", dotFile)

	renderPNG(dotFile)
	return 0
}

func newCalculator(configFile string) (*schedule.Calculator, error) {
	net, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	return schedule.New(net, schedule.WithLogger(schedule.NewDefaultLogger()))
}

func writeFile(path string, table report.Table, write func(io.Writer, report.Table) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, table); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// renderPNG is best effort: the DOT file is the real output.
func renderPNG(dotFile string) {
	pngFile := strings.TrimSuffix(dotFile, filepath.Ext(dotFile)) + ".png"
	if err := report.RenderPNG(dotFile, pngFile); err != nil {
		fmt.Printf("   ⚠ Could not render PNG: %v\n", err)
		fmt.Printf("   → Or manually convert: dot -Tpng %s -o %s\n", dotFile, pngFile)
		return
	}
	fmt.Printf("   ✓ Saved: %s\n", pngFile)
}
