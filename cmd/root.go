package cmd

import (
	"fmt"
	"os"

	"sheetgen/core/config"
	"sheetgen/core/excel"
	"sheetgen/core/logger"
	"sheetgen/feature/export"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cfgFile string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "sheetgen",
	Short: "Spreadsheet to game data converter",
	Long: `Sheetgen converts Excel workbooks maintained by game designers into
structured data files (Lua and JSON) consumed by game clients and servers.
Exports, type schemas and validation rules are declared in a TOML config file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting
		// We default to console format to match user expectations (CLI tool)
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.toml", "path to the TOML config file")
}

// bootstrap loads the configuration and builds the run logger.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logger.WithRunID(l), nil
}

// newService wires the conversion pipeline with the workbook reader.
func newService(cfg *config.Config, l *zap.Logger) (*export.Service, error) {
	return export.NewService(cfg, l, excel.NewReader())
}
