// Package cmd wires the pvtstat command-line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for pvtstat
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pvtstat",
		Short: "Descriptive statistics for PVT-B reaction-time trial data",
		Long: `pvtstat reads directories of whitespace-delimited PVT-B trial data files,
reclassifies each reaction time (valid, commission, lapse) from the RT
column alone, and reports per-file, pooled and per-condition descriptive
statistics.

Reaction times inside [100, 500] ms are valid; faster responses are
commissions, slower ones lapses. Mean and sample standard deviation cover
valid RTs only.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "path to config file (default .pvtstat/config.yaml)")
	cmd.PersistentFlags().String("log-level", "", "log verbosity: trace, debug, info, warn, error")

	// Add subcommands
	cmd.AddCommand(NewAnalyzeCommand())
	cmd.AddCommand(NewConditionsCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
