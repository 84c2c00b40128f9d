package cmd

import (
	"fmt"
	"strings"

	"sheetgen/feature/export"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	convertExport    string
	convertFormat    string
	convertCompact   bool
	convertScope     string
	convertSourceDir string
	convertOutputDir string
	convertReport    string
	convertDryRun    bool
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert configured exports into output files",
	Long: `Convert reads the configured workbooks, merges and converts their rows,
runs the configured validators and writes one output file per export.

Examples:
  # Convert every configured export
  sheetgen convert

  # Convert one export as compact JSON for the client
  sheetgen convert --export items --format json_map --compact --scope c

  # Check data without writing anything
  sheetgen convert --dry-run --validation-report report.txt`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&convertExport, "export", "", "convert only the named export")
	convertCmd.Flags().StringVar(&convertFormat, "format", "", "output format (lua, json_map, json_array, json_packed)")
	convertCmd.Flags().BoolVar(&convertCompact, "compact", false, "emit compact output without indentation")
	convertCmd.Flags().StringVar(&convertScope, "scope", "", "override the export scope (s, c or sc)")
	convertCmd.Flags().StringVar(&convertSourceDir, "source-dir", "", "override the workbook directory")
	convertCmd.Flags().StringVar(&convertOutputDir, "output-dir", "", "override the output directory")
	convertCmd.Flags().StringVar(&convertReport, "validation-report", "", "write validation problems to this file")
	convertCmd.Flags().BoolVar(&convertDryRun, "dry-run", false, "convert and validate without writing output")

	RootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, l, err := bootstrap()
	if err != nil {
		return err
	}

	if problems := cfg.Validate(); len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  %s", strings.Join(problems, "\n  "))
	}

	svc, err := newService(cfg, l)
	if err != nil {
		return err
	}

	opts := export.Options{
		Format:           convertFormat,
		Compact:          convertCompact,
		Scope:            convertScope,
		SourceDir:        convertSourceDir,
		OutputDir:        convertOutputDir,
		ValidationReport: convertReport,
		DryRun:           convertDryRun,
	}

	var results []*export.Result
	if convertExport != "" {
		result, err := svc.Run(convertExport, opts)
		if err != nil {
			return err
		}
		results = append(results, result)
	} else {
		results, err = svc.RunAll(opts)
		if err != nil {
			return err
		}
	}

	records := 0
	for _, r := range results {
		records += r.Records
	}
	l.Info("conversion complete",
		zap.Int("exports", len(results)),
		zap.Int("records", records),
		zap.Bool("dry_run", convertDryRun))
	return nil
}
