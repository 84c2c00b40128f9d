package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"sheetgen/feature/serve"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local preview server",
	Long: `Serve starts a local HTTP server that converts exports on demand, so
sheet authors can inspect their data in a browser while editing.`,
	RunE: runServe,
}

func init() {
	RootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, l, err := bootstrap()
	if err != nil {
		return err
	}

	svc, err := newService(cfg, l)
	if err != nil {
		return err
	}

	server := serve.New(cfg, l, svc)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Listen()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		l.Info("shutting down", zap.String("signal", sig.String()))
		return server.Shutdown()
	}
}
