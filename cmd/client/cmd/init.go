// cmd/client/cmd/init.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"healthsync/cmd/client/cmd/analytics"
	"healthsync/cmd/client/cmd/common"
	"healthsync/cmd/client/cmd/device"
	"healthsync/cmd/client/cmd/request"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Проверить соединение с сервером",
	RunE: func(cmd *cobra.Command, _ []string) error {
		api, err := common.ClientFrom(cmd.Context())
		if err != nil {
			return err
		}

		if err := api.HealthCheck(cmd.Context()); err != nil {
			return fmt.Errorf("не удалось подключиться к серверу: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "✓ Соединение с сервером установлено:", common.Status("healthy"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)

	rootCmd.AddCommand(device.DeviceCmd)
	device.DeviceCmd.AddCommand(device.RegisterCmd)
	device.DeviceCmd.AddCommand(device.GetCmd)

	rootCmd.AddCommand(request.RequestCmd)
	request.RequestCmd.AddCommand(request.CreateCmd)
	request.RequestCmd.AddCommand(request.StatusCmd)
	request.RequestCmd.AddCommand(request.ResponseCmd)

	rootCmd.AddCommand(analytics.AnalyticsCmd)
	analytics.AnalyticsCmd.AddCommand(analytics.ShowCmd)
}
