package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aljabl/pvtstat/internal/display"
	"github.com/aljabl/pvtstat/internal/exporter"
)

// NewConditionsCommand creates the 'pvtstat conditions' command
func NewConditionsCommand() *cobra.Command {
	var (
		lenient      bool
		skipBadFiles bool
		format       string
		outputPath   string
		noHistory    bool
		charts       bool
	)

	cmd := &cobra.Command{
		Use:   "conditions <root>",
		Short: "Analyze a study root with one subdirectory per condition",
		Long: `Analyze a study root whose immediate subdirectories each hold the data
files of one experimental condition (a1, b1, a2, b2 by default).

Per condition this reports the mean of per-file mean RTs and the totals
and means of the commission and lapse columns, followed by bar charts of
mean RT, commissions and lapses per condition.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConditions(cmd, args[0], lenient, skipBadFiles, format, outputPath, noHistory, charts)
		},
	}

	cmd.Flags().BoolVar(&lenient, "lenient", false, "skip malformed rows with a warning instead of aborting the file")
	cmd.Flags().BoolVar(&skipBadFiles, "skip-bad-files", false, "continue past files that fail to parse")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: table, json, csv, markdown, html")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record this run in the history database")
	cmd.Flags().BoolVar(&charts, "charts", true, "render per-condition bar charts with table output")

	return cmd
}

// runConditions executes the conditions command
func runConditions(cmd *cobra.Command, root string, lenient, skipBadFiles bool, format, outputPath string, noHistory, charts bool) error {
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

	report, err := analyzer.AnalyzeConditions(root)
	if err != nil {
		return fmt.Errorf("analyze conditions in %s: %w", root, err)
	}
	log.LogInfo(fmt.Sprintf("analyzed %d conditions in %s", len(report.Conditions), root))

	out := cmd.OutOrStdout()

	if cfg.Format == "table" {
		colorOutput := outputPath == "" && colorEnabled(out)
		lines := display.FormatConditionTable(report.Conditions, colorOutput)
		if charts && len(report.Conditions) > 0 {
			lines = append(lines, "")
			lines = append(lines, display.ConditionCharts(report.Conditions, colorOutput)...)
		}

		if outputPath != "" {
			if err := exporter.WriteFile(outputPath, strings.Join(lines, "\n")+"\n"); err != nil {
				return err
			}
		} else {
			printLines(out, lines)
		}
	} else {
		content, err := exporter.ExportConditionsToString(report, cfg.Format)
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

	recordRun(cfg, log, "conditions", root, report.Aggregate)
	return nil
}
