package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"sheetgen/core/excel"
	"sheetgen/core/schema"
	"sheetgen/core/types"

	"github.com/spf13/cobra"
)

var validateSheets bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration without converting anything",
	Long: `Validate checks the config file for structural problems: export
declarations, object schemas and every field type descriptor. With
--check-sheets the source workbooks' header rows are checked too; use
convert --dry-run for full data checks.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateSheets, "check-sheets", false, "also check workbook header rows")

	RootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, _, err := bootstrap()
	if err != nil {
		return err
	}

	problems := cfg.Validate()

	registry, schemaProblems := schema.NewRegistry(cfg.ObjectSchemas)
	problems = append(problems, schemaProblems...)

	for _, name := range cfg.ExportNames() {
		exp := cfg.Exports[name]

		// Declared type overrides must parse and resolve against the schemas.
		for _, field := range exp.Fields {
			if field.Type == "" {
				continue
			}
			for _, p := range types.Check(field.Type, registry) {
				problems = append(problems, fmt.Sprintf("export %q: field %q: %s", name, field.Name, p))
			}
		}

		for _, src := range exp.Sources {
			path := filepath.Join(cfg.Input.SourceDir, src.File)
			if _, err := os.Stat(path); err != nil {
				problems = append(problems, fmt.Sprintf("export %q: source %s not found", name, path))
				continue
			}
			if validateSheets {
				sheetProblems, err := excel.NewReader().ValidateFormat(path, src.Sheet)
				if err != nil {
					return err
				}
				for _, p := range sheetProblems {
					problems = append(problems, fmt.Sprintf("export %q: %s: %s", name, src.File, p))
				}
			}
		}
	}

	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Println("  -", p)
		}
		return fmt.Errorf("configuration has %d problems", len(problems))
	}

	fmt.Printf("configuration ok: %d exports, %d object schemas\n", len(cfg.Exports), len(cfg.ObjectSchemas))
	return nil
}
