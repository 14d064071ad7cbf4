package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"healthsync/internal/app/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Запустить HTTP сервер",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := server.New(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize server", "error", err)
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Error("failed to close resources", "error", err)
		}
	}()

	if err := app.Run(ctx); err != nil {
		log.Error("server stopped with error", "error", err)
		return err
	}

	log.Info("server stopped")
	return nil
}
