package cmd

import (
	"context"

	"sheetgen/core/storage"
	"sheetgen/feature/publish"

	"github.com/spf13/cobra"
)

var (
	publishDir    string
	publishPrefix string
	publishPrune  bool
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Upload converted output files to object storage",
	Long: `Publish uploads the output directory to the configured S3-compatible
bucket so servers and build pipelines can fetch the converted data.`,
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().StringVar(&publishDir, "dir", "", "directory to upload (defaults to the output directory)")
	publishCmd.Flags().StringVar(&publishPrefix, "prefix", "", "object key prefix, e.g. a release tag")
	publishCmd.Flags().BoolVar(&publishPrune, "prune", false, "remove bucket objects with no local counterpart")

	RootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	cfg, l, err := bootstrap()
	if err != nil {
		return err
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return err
	}

	dir := publishDir
	if dir == "" {
		dir = cfg.Input.OutputDir
	}

	ctx := context.Background()
	svc := publish.NewService(client, cfg.Storage.Bucket, l)
	if _, err := svc.Publish(ctx, dir, publishPrefix); err != nil {
		return err
	}
	if publishPrune {
		if _, err := svc.Prune(ctx, dir, publishPrefix); err != nil {
			return err
		}
	}
	return nil
}
