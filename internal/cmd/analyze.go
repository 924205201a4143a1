package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aljabl/pvtstat/internal/display"
	"github.com/aljabl/pvtstat/internal/exporter"
)

// NewAnalyzeCommand creates the 'pvtstat analyze' command
func NewAnalyzeCommand() *cobra.Command {
	var (
		lenient      bool
		skipBadFiles bool
		format       string
		outputPath   string
		noHistory    bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <directory>",
		Short: "Analyze a directory of trial data files",
		Long: `Analyze every data file in a directory, reclassify reaction times and
report per-file and pooled descriptive statistics.

Each file is parsed as whitespace-delimited rows with the fixed column
order Trial, Error, RT, Average RT, Commissions, Lapses. An optional
header line is detected and skipped. A malformed row aborts the file
unless --lenient is given; --skip-bad-files continues past files that
fail to parse.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args[0], lenient, skipBadFiles, format, outputPath, noHistory)
		},
	}

	cmd.Flags().BoolVar(&lenient, "lenient", false, "skip malformed rows with a warning instead of aborting the file")
	cmd.Flags().BoolVar(&skipBadFiles, "skip-bad-files", false, "continue past files that fail to parse")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: table, json, csv, markdown, html")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record this run in the history database")

	return cmd
}

// runAnalyze executes the analyze command
func runAnalyze(cmd *cobra.Command, dir string, lenient, skipBadFiles bool, format, outputPath string, noHistory bool) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if lenient {
		cfg.Policy = "lenient"
	}
	if format != "" {
		cfg.Format = strings.ToLower(format)
	}
	if noHistory {
		cfg.History.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := newLogger(cmd, cfg)
	analyzer, err := newAnalyzer(cfg, skipBadFiles, log)
	if err != nil {
		return err
	}

	report, err := analyzer.AnalyzeDirectory(dir)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", dir, err)
	}
	log.LogInfo(fmt.Sprintf("analyzed %d files in %s", len(report.Files), dir))

	out := cmd.OutOrStdout()

	if cfg.Format == "table" {
		colorOutput := outputPath == "" && colorEnabled(out)
		lines := display.FormatFileTable(report.Files, colorOutput)
		lines = append(lines, "")
		lines = append(lines, display.FormatAggregate(report.Aggregate, colorOutput)...)

		if outputPath != "" {
			if err := exporter.WriteFile(outputPath, strings.Join(lines, "\n")+"\n"); err != nil {
				return err
			}
		} else {
			printLines(out, lines)
		}
	} else {
		content, err := exporter.ExportReportToString(report, cfg.Format)
		if err != nil {
			return err
		}
		if outputPath != "" {
			if err := exporter.WriteFile(outputPath, content); err != nil {
				return err
			}
		} else {
			fmt.Fprint(out, content)
		}
	}

	recordRun(cfg, log, "analyze", dir, report.Aggregate)
	return nil
}
