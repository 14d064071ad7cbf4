package device

import (
	"fmt"

	"github.com/spf13/cobra"

	"healthsync/cmd/client/cmd/common"
	"healthsync/internal/app/client"
)

var (
	token   string
	ownerID string
)

// DeviceCmd - родительская команда для операций с устройствами
var DeviceCmd = &cobra.Command{
	Use:   "device",
	Short: "Управление устройствами",
	Long:  `Регистрация push-токена устройства и просмотр регистрации.`,
}

var RegisterCmd = &cobra.Command{
	Use:   "register [device_id]",
	Short: "Зарегистрировать устройство",
	Long: `Сохраняет push-токен устройства на сервере. Повторная регистрация
заменяет токен.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := common.ClientFrom(cmd.Context())
		if err != nil {
			return err
		}

		resp, err := api.RegisterDevice(cmd.Context(), client.RegisterDeviceParams{
			DeviceID: args[0],
			Token:    token,
			OwnerID:  ownerID,
		})
		if err != nil {
			return fmt.Errorf("ошибка регистрации устройства: %w", err)
		}

		if common.JSONOutput {
			return common.PrintJSON(cmd.OutOrStdout(), resp)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", common.Status(resp.Status), resp.Message)
		return nil
	},
}

var GetCmd = &cobra.Command{
	Use:   "get [device_id]",
	Short: "Показать регистрацию устройства",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := common.ClientFrom(cmd.Context())
		if err != nil {
			return err
		}

		d, err := api.GetDevice(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("ошибка получения устройства: %w", err)
		}

		if common.JSONOutput {
			return common.PrintJSON(cmd.OutOrStdout(), d)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Устройство:   %s\n", d.DeviceID)
		if d.OwnerID != "" {
			fmt.Fprintf(out, "Владелец:     %s\n", d.OwnerID)
		}
		fmt.Fprintf(out, "Токен:        %s\n", d.TokenFingerprint)
		fmt.Fprintf(out, "Создано:      %s\n", d.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Обновлено:    %s\n", d.UpdatedAt.Format("2006-01-02 15:04:05"))
		return nil
	},
}

func init() {
	RegisterCmd.Flags().StringVar(&token, "token", "", "push-токен устройства")
	RegisterCmd.Flags().StringVar(&ownerID, "owner", "", "ID владельца")
	_ = RegisterCmd.MarkFlagRequired("token")
}
