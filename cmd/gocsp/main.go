// Command gocsp drives the csp solver against graph-coloring and
// n-queens instances, and reports solve statistics, via a small cobra
// CLI. The CLI itself is an external collaborator: it
// only calls the core through AddVariable, the Add*Constraint builders,
// the Set* configuration methods, Solve and the read-only accessors,
// never reaching into the solver's internals.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "gocsp",
		Short: "Finite-domain constraint satisfaction problem solver",
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentPreRun = func(*cobra.Command, []string) {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		zerolog.SetGlobalLevel(level)
	}

	cmd.AddCommand(newColorCmd())
	cmd.AddCommand(newQueensCmd())
	cmd.AddCommand(newBenchCmd())
	return cmd
}

func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).With().Timestamp().Logger()
}
