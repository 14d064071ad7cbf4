package analytics

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"healthsync/cmd/client/cmd/common"
	"healthsync/internal/app/client"
	"healthsync/internal/infrastructure/export"
)

var (
	deviceID string
	date     string
	xlsxPath string
)

// AnalyticsCmd - родительская команда для аналитики
var AnalyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Аналитика данных о здоровье",
}

var ShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Показать анализ последней загрузки",
	Long: `Выводит текстовую сводку по последним загруженным данным за дату.
С флагом --xlsx дополнительно сохраняет сводки, аномалии и тренды в Excel.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		api, err := common.ClientFrom(cmd.Context())
		if err != nil {
			return err
		}

		report, err := api.Analytics(cmd.Context(), deviceID, date)
		if err != nil {
			return fmt.Errorf("ошибка получения аналитики: %w", err)
		}

		if xlsxPath != "" {
			if err := writeXLSX(xlsxPath, report); err != nil {
				return err
			}
		}

		if common.JSONOutput {
			return common.PrintJSON(cmd.OutOrStdout(), report)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Дата: %s  Устройство: %s  Запрос: %s\n\n", report.Date, report.DeviceID, report.RequestID)
		fmt.Fprintln(out, report.Digest)
		if xlsxPath != "" {
			fmt.Fprintf(out, "\nОтчет сохранен в %s\n", xlsxPath)
		}
		return nil
	},
}

func writeXLSX(path string, report *client.AnalyticsReport) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ошибка создания файла: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := export.WriteXLSX(f, report.Date, report.Analysis); err != nil {
		return fmt.Errorf("ошибка выгрузки в xlsx: %w", err)
	}
	return nil
}

func init() {
	ShowCmd.Flags().StringVar(&deviceID, "device", "", "ID устройства (по умолчанию любое)")
	ShowCmd.Flags().StringVar(&date, "date", "", "дата анализа (YYYY-MM-DD)")
	ShowCmd.Flags().StringVar(&xlsxPath, "xlsx", "", "сохранить отчет в xlsx файл")
}
