package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var exportsCmd = &cobra.Command{
	Use:   "exports",
	Short: "List the configured exports",
	RunE:  runExports,
}

func init() {
	RootCmd.AddCommand(exportsCmd)
}

func runExports(cmd *cobra.Command, args []string) error {
	cfg, _, err := bootstrap()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSCOPE\tPRIMARY KEY\tFIELDS\tSOURCES")
	for _, name := range cfg.ExportNames() {
		exp := cfg.Exports[name]
		scope := exp.Scope
		if scope == "" {
			scope = "sc"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t", name, scope, exp.PrimaryKey, len(exp.Fields))
		for i, src := range exp.Sources {
			if i > 0 {
				fmt.Fprint(w, ", ")
			}
			fmt.Fprintf(w, "%s/%s", src.File, src.Sheet)
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
