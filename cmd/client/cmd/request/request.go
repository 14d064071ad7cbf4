package request

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"healthsync/cmd/client/cmd/common"
	"healthsync/internal/app/client"
	"healthsync/internal/domain/healthdata"
)

const defaultPeriod = 7 * 24 * time.Hour

var (
	dataTypes []string
	startDate string
	endDate   string
)

// RequestCmd - родительская команда для запросов данных
var RequestCmd = &cobra.Command{
	Use:   "request",
	Short: "Запросы данных у устройств",
	Long:  `Создание запроса данных, проверка его статуса и просмотр загруженных данных.`,
}

var CreateCmd = &cobra.Command{
	Use:   "create [device_id]",
	Short: "Запросить данные у устройства",
	Long: `Создает запрос и отправляет устройству push-уведомление.
По умолчанию запрашиваются шаги, пульс и сон за последние 7 дней.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := common.ClientFrom(cmd.Context())
		if err != nil {
			return err
		}

		from, to := period(time.Now().UTC())
		resp, err := api.CreateRequest(cmd.Context(), client.CreateRequestParams{
			DeviceID:  args[0],
			Metrics:   dataTypes,
			StartDate: from,
			EndDate:   to,
		})
		if err != nil {
			return fmt.Errorf("ошибка создания запроса: %w", err)
		}

		if common.JSONOutput {
			return common.PrintJSON(cmd.OutOrStdout(), resp)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Запрос:  %s\n", resp.RequestID)
		fmt.Fprintf(out, "Статус:  %s\n", common.Status(resp.Status))
		fmt.Fprintf(out, "%s\n", resp.Message)
		return nil
	},
}

var StatusCmd = &cobra.Command{
	Use:   "status [request_id]",
	Short: "Статус запроса",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := common.ClientFrom(cmd.Context())
		if err != nil {
			return err
		}

		r, err := api.RequestStatus(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("ошибка получения статуса: %w", err)
		}

		if common.JSONOutput {
			return common.PrintJSON(cmd.OutOrStdout(), r)
		}

		metrics := make([]string, len(r.Metrics))
		for i, m := range r.Metrics {
			metrics[i] = m.String()
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Запрос:\t%s\n", r.ID)
		fmt.Fprintf(w, "Устройство:\t%s\n", r.DeviceID)
		fmt.Fprintf(w, "Статус:\t%s\n", common.Status(r.Status.String()))
		fmt.Fprintf(w, "Метрики:\t%s\n", strings.Join(metrics, ", "))
		fmt.Fprintf(w, "Период:\t%s .. %s\n", r.StartDate, r.EndDate)
		fmt.Fprintf(w, "Создан:\t%s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
		if r.CompletedAt != nil {
			fmt.Fprintf(w, "Завершен:\t%s\n", r.CompletedAt.Format("2006-01-02 15:04:05"))
		}
		if r.ErrorMessage != "" {
			fmt.Fprintf(w, "Ошибка:\t%s\n", r.ErrorMessage)
		}
		return w.Flush()
	},
}

var ResponseCmd = &cobra.Command{
	Use:   "response [request_id]",
	Short: "Данные, загруженные по запросу",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := common.ClientFrom(cmd.Context())
		if err != nil {
			return err
		}

		resp, err := api.Response(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("ошибка получения данных: %w", err)
		}

		if common.JSONOutput {
			return common.PrintJSON(cmd.OutOrStdout(), resp)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Запрос:\t%s\n", resp.RequestID)
		fmt.Fprintf(w, "Устройство:\t%s\n", resp.DeviceID)
		fmt.Fprintf(w, "Получено:\t%s\n", resp.ReceivedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintln(w, "Метрика\tТочек")
		for _, name := range []string{"steps", "heart_rate", "sleep", "weight", "calories", "distance"} {
			if n, ok := resp.Payload.Counts()[name]; ok {
				fmt.Fprintf(w, "%s\t%d\n", name, n)
			}
		}
		return w.Flush()
	},
}

// period возвращает границы из флагов, по умолчанию последние 7 дней до now.
func period(now time.Time) (string, string) {
	from, to := startDate, endDate
	if to == "" {
		to = now.Format(healthdata.DateLayout)
	}
	if from == "" {
		end, err := time.Parse(healthdata.DateLayout, to)
		if err != nil {
			end = now
		}
		from = end.Add(-defaultPeriod).Format(healthdata.DateLayout)
	}
	return from, to
}

func init() {
	CreateCmd.Flags().StringSliceVar(&dataTypes, "types", []string{"steps", "heart_rate", "sleep"},
		"метрики: steps, heart_rate, sleep, calories, weight, distance")
	CreateCmd.Flags().StringVar(&startDate, "from", "", "начало периода (YYYY-MM-DD)")
	CreateCmd.Flags().StringVar(&endDate, "to", "", "конец периода (YYYY-MM-DD)")
}
