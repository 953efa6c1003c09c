package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/gitrdm/gocsp/internal/dimacs"
	"github.com/gitrdm/gocsp/pkg/csp"
)

// benchRow is one configuration's result line in the report table.
type benchRow struct {
	problem  string
	varH     string
	valH     string
	look     string
	feasible bool
	timedOut bool
	nodes    int64
	elapsed  time.Duration
}

func newBenchCmd() *cobra.Command {
	var (
		queensN   int
		colors    int
		timeLimit time.Duration
	)

	cmd := &cobra.Command{
		Use:   "bench [dimacs-dir]",
		Short: "Compare look-ahead modes on N-Queens, or on every .col file in a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var rows []benchRow
			var err error
			if len(args) == 1 {
				rows, err = benchColoringDir(args[0], colors, timeLimit)
			} else {
				rows, err = benchQueens(queensN, timeLimit)
			}
			if err != nil {
				return err
			}
			printBenchReport(os.Stdout, rows)
			return nil
		},
	}

	cmd.Flags().IntVarP(&queensN, "size", "n", 8, "board size (N in N-queens) when no directory is given")
	cmd.Flags().IntVarP(&colors, "colors", "k", 3, "number of available colors for .col instances")
	cmd.Flags().DurationVar(&timeLimit, "time-limit", 0, "per-configuration wall-clock budget (0 = unlimited)")
	return cmd
}

var benchLookAheads = []string{"bt", "fc", "mac3", "mac4"}

func benchQueens(n int, timeLimit time.Duration) ([]benchRow, error) {
	var rows []benchRow
	for _, look := range benchLookAheads {
		solver, _, err := buildQueensCSP(n)
		if err != nil {
			return nil, err
		}
		row, err := runBench(solver, fmt.Sprintf("%d-queens", n), "arbitrary", "most_supported", look, timeLimit)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// benchColoringDir runs every .col file in dir through every look-ahead
// mode with the given color count.
func benchColoringDir(dir string, colors int, timeLimit time.Duration) ([]benchRow, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.col"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("bench: no .col files found in %s", dir)
	}
	sort.Strings(files)

	var rows []benchRow
	for _, file := range files {
		g, err := readGraphFile(file)
		if err != nil {
			return nil, err
		}
		for _, look := range benchLookAheads {
			solver, _, err := buildColoringCSP(g, colors)
			if err != nil {
				return nil, err
			}
			name := fmt.Sprintf("%s/k=%d", filepath.Base(file), colors)
			row, err := runBench(solver, name, "smallest_domain", "ascending", look, timeLimit)
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func readGraphFile(path string) (*dimacs.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return dimacs.ReadGraph(f)
}

func runBench(solver *csp.CSP, problem, varH, valH, look string, timeLimit time.Duration) (benchRow, error) {
	if timeLimit > 0 {
		solver.SetTimeLimit(timeLimit)
	}
	if err := configureSolver(solver, varH, valH, look); err != nil {
		return benchRow{}, err
	}
	feasible := solver.Solve()
	return benchRow{
		problem:  problem,
		varH:     varH,
		valH:     valH,
		look:     look,
		feasible: feasible,
		timedOut: solver.TimedOut(),
		nodes:    solver.ExploredNodes(),
		elapsed:  solver.ElapsedTime(),
	}, nil
}

func printBenchReport(out io.Writer, rows []benchRow) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PROBLEM\tVAR\tVAL\tLOOK-AHEAD\tFEASIBLE\tTIMEOUT\tNODES\tELAPSED")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%v\t%v\t%d\t%s\n", r.problem, r.varH, r.valH, r.look, r.feasible, r.timedOut, r.nodes, r.elapsed)
	}
	w.Flush()
}
