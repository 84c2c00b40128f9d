package cmd

import (
	"encoding/json"
	"fmt"

	"sheetgen/feature/export"

	"github.com/spf13/cobra"
)

var (
	previewRows  int
	previewScope string
)

var previewCmd = &cobra.Command{
	Use:   "preview <export>",
	Short: "Convert an export and print its first records",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func init() {
	previewCmd.Flags().IntVar(&previewRows, "rows", 10, "number of records to show")
	previewCmd.Flags().StringVar(&previewScope, "scope", "", "override the export scope (s, c or sc)")

	RootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, l, err := bootstrap()
	if err != nil {
		return err
	}

	svc, err := newService(cfg, l)
	if err != nil {
		return err
	}

	ds, err := svc.Build(args[0], export.Options{Scope: previewScope})
	if err != nil {
		return err
	}

	shown := 0
	for _, rec := range ds.Records() {
		if shown >= previewRows {
			break
		}
		encoded, err := json.MarshalIndent(rec.Fields, "", "  ")
		if err != nil {
			return err
		}
		fmt.Printf("[%s] %s\n", rec.Key, encoded)
		shown++
	}
	fmt.Printf("%d of %d records\n", shown, ds.Len())
	return nil
}
