package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"healthsync/internal/app/server/config"
	"healthsync/internal/utils/logger"
)

var (
	cfg *config.Config
	log *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "healthsync-server",
	Short: "HealthSync - сервер запросов данных о здоровье",
	Long: `HealthSync регистрирует устройства, отправляет им push-запросы на сбор
данных о здоровье, принимает загрузки и строит по ним аналитику.

Без подкоманды запускается HTTP сервер (serve).`,
	PersistentPreRunE: setup,
	RunE:              runServe,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setup(_ *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}
	log = logger.New(cfg.Env)
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
}
