package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/aljabl/pvtstat/internal/config"
	"github.com/aljabl/pvtstat/internal/history"
	"github.com/aljabl/pvtstat/internal/logger"
	"github.com/aljabl/pvtstat/internal/trial"
)

// loadConfig resolves the effective configuration for a command: the
// --config file when given, otherwise .pvtstat/config.yaml in the working
// directory, with the --log-level flag merged on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err = config.LoadConfig(path)
	} else {
		cfg, err = config.LoadConfigFromDir(".")
	}
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("log-level") {
		level, _ := cmd.Flags().GetString("log-level")
		cfg.LogLevel = level
	}

	return cfg, nil
}

// newLogger builds the run logger writing to the command's error stream.
func newLogger(cmd *cobra.Command, cfg *config.Config) *logger.ConsoleLogger {
	return logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)
}

// newAnalyzer builds the trial analyzer from validated configuration.
func newAnalyzer(cfg *config.Config, skipBadFiles bool, log trial.Logger) (*trial.Analyzer, error) {
	policy, err := trial.ParsePolicy(cfg.Policy)
	if err != nil {
		return nil, err
	}
	return trial.NewAnalyzer(trial.AnalyzerOptions{
		DataExt:        cfg.DataExt,
		Policy:         policy,
		SkipBadFiles:   skipBadFiles,
		ConditionOrder: cfg.ConditionOrder,
		Logger:         log,
	}), nil
}

// colorEnabled reports whether w is a terminal that should receive colors.
func colorEnabled(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd())
	}
	return false
}

// printLines writes rendered lines to the command output.
func printLines(w io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}

// recordRun stores a run record in the history database. History failures
// are reported as warnings; they never fail an otherwise successful run.
func recordRun(cfg *config.Config, log *logger.ConsoleLogger, mode, root string, agg trial.AggregateSummary) {
	if !cfg.History.Enabled {
		return
	}

	store, err := history.NewStore(cfg.History.DBPath)
	if err != nil {
		log.LogWarn(fmt.Sprintf("history disabled for this run: %v", err))
		return
	}
	defer store.Close()

	absRoot, err := filepath.Abs(root)
	if err != nil {
		absRoot = root
	}

	run := &history.RunRecord{
		RootDir:         absRoot,
		Mode:            mode,
		FileCount:       agg.FileCount,
		RowCount:        agg.RowCount,
		ValidCount:      agg.ValidCount,
		CommissionCount: agg.CommissionCount,
		LapseCount:      agg.LapseCount,
		MeanRT:          agg.MeanRT,
		StdDevRT:        agg.StdDevRT,
	}
	if err := store.RecordRun(context.Background(), run); err != nil {
		log.LogWarn(fmt.Sprintf("failed to record run history: %v", err))
		return
	}
	log.LogDebug(fmt.Sprintf("recorded run %s", run.ID))
}
