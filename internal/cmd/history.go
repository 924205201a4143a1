package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aljabl/pvtstat/internal/history"
)

// NewHistoryCommand creates the 'pvtstat history' command group
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded analysis runs",
		Long: `List or clear the run history. Every analyze and conditions run is
recorded in a local SQLite database unless history is disabled.`,
	}

	cmd.AddCommand(newHistoryListCommand())
	cmd.AddCommand(newHistoryClearCommand())

	return cmd
}

func newHistoryListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(cmd, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs to show (0 = all)")

	return cmd
}

func newHistoryClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryClear,
	}
}

// runHistoryList executes 'pvtstat history list'
func runHistoryList(cmd *cobra.Command, limit int) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if _, err := os.Stat(cfg.History.DBPath); os.IsNotExist(err) {
		fmt.Fprintln(out, "No runs recorded yet")
		return nil
	}

	store, err := history.NewStore(cfg.History.DBPath)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	runs, err := store.ListRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet")
		return nil
	}

	fmt.Fprintf(out, "%-8s  %-19s  %-10s  %5s  %5s  %8s  %s\n",
		"RUN", "RECORDED", "MODE", "FILES", "VALID", "MEAN RT", "ROOT")
	for _, run := range runs {
		fmt.Fprintf(out, "%-8s  %-19s  %-10s  %5d  %5d  %8s  %s\n",
			shortID(run.ID),
			run.RecordedAt.Local().Format("2006-01-02 15:04:05"),
			run.Mode,
			run.FileCount,
			run.ValidCount,
			run.MeanRT,
			run.RootDir)
	}

	return nil
}

// runHistoryClear executes 'pvtstat history clear'
func runHistoryClear(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if _, err := os.Stat(cfg.History.DBPath); os.IsNotExist(err) {
		fmt.Fprintln(out, "No runs recorded yet")
		return nil
	}

	store, err := history.NewStore(cfg.History.DBPath)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	removed, err := store.Clear(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Removed %d recorded runs\n", removed)
	return nil
}

// shortID truncates a run UUID for tabular display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
