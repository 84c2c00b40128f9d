package cmd

import (
	"context"
	"fmt"

	"sheetgen/core/database"
	"sheetgen/feature/dbsink"
	"sheetgen/feature/export"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var dbSyncExport string

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the database export sink",
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the export sink table",
	RunE:  runDBMigrate,
}

var dbSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Convert exports and upsert their records into the database",
	RunE:  runDBSync,
}

func init() {
	dbSyncCmd.Flags().StringVar(&dbSyncExport, "export", "", "sync only the named export")

	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbSyncCmd)
	RootCmd.AddCommand(dbCmd)
}

func runDBMigrate(cmd *cobra.Command, args []string) error {
	cfg, l, err := bootstrap()
	if err != nil {
		return err
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}

	if err := dbsink.NewService(db, l).Migrate(); err != nil {
		return err
	}
	l.Info("sink table migrated", zap.String("database", cfg.Database.Name))
	return nil
}

func runDBSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, l, err := bootstrap()
	if err != nil {
		return err
	}

	svc, err := newService(cfg, l)
	if err != nil {
		return err
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	sink := dbsink.NewService(db, l)

	names := cfg.ExportNames()
	if dbSyncExport != "" {
		if _, ok := cfg.Exports[dbSyncExport]; !ok {
			return fmt.Errorf("unknown export %q", dbSyncExport)
		}
		names = []string{dbSyncExport}
	}

	total := 0
	for _, name := range names {
		ds, err := svc.Build(name, export.Options{})
		if err != nil {
			return err
		}
		n, err := sink.Sync(ctx, name, ds)
		if err != nil {
			return err
		}
		total += n
	}

	l.Info("database sync complete",
		zap.Int("exports", len(names)),
		zap.Int("records", total))
	return nil
}
