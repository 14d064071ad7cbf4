// Package export выгружает результаты анализа в xlsx.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"healthsync/internal/domain/analytics"
)

const (
	SheetSummary   = "Summary"
	SheetAnomalies = "Anomalies"
	SheetTrends    = "Trends"
)

type sheet struct {
	name    string
	headers []string
	widths  []float64
	rows    [][]any
}

// WriteXLSX writes a workbook with Summary, Anomalies and Trends sheets.
// Metrics without data are listed in Summary with "no data".
func WriteXLSX(w io.Writer, date string, a analytics.Analysis) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	sheets := []sheet{
		{name: SheetSummary, headers: []string{"Date", "Metric", "Field", "Value"}, widths: []float64{12, 12, 22, 14}, rows: summaryRows(date, a)},
		{name: SheetAnomalies, headers: []string{"Date", "Type", "Severity", "Description"}, widths: []float64{12, 20, 10, 40}, rows: anomalyRows(a.Anomalies)},
		{name: SheetTrends, headers: []string{"Metric", "Direction", "Change %", "Period"}, widths: []float64{12, 12, 10, 24}, rows: trendRows(a.Trends)},
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("create sheet %s: %w", s.name, err)
		}
		if err := writeSheet(f, s, headerStyle); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, s sheet, headerStyle int) error {
	for col, header := range s.headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(s.name, cell, header); err != nil {
			return fmt.Errorf("set header %s!%s: %w", s.name, cell, err)
		}
		if err := f.SetCellStyle(s.name, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("set header style: %w", err)
		}

		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(s.name, name, name, s.widths[col]); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	for i, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", s.name, i+2, err)
		}
	}
	return nil
}

func summaryRows(date string, a analytics.Analysis) [][]any {
	var rows [][]any
	add := func(metric, field string, value any) {
		rows = append(rows, []any{date, metric, field, value})
	}

	if s := a.Steps; s != nil {
		add("steps", "total", s.Total)
		add("steps", "average", s.Average)
		add("steps", "days_with_data", s.DaysWithData)
		add("steps", "trend", string(s.Trend))
		add("steps", "goal_achievement", s.GoalAchievement)
	} else {
		add("steps", "status", "no data")
	}

	if hr := a.HeartRate; hr != nil {
		add("heart_rate", "average", hr.Average)
		add("heart_rate", "max", hr.Max)
		add("heart_rate", "min", hr.Min)
		add("heart_rate", "resting_avg", hr.RestingAvg)
		add("heart_rate", "active_avg", hr.ActiveAvg)
		add("heart_rate", "variability", string(hr.Variability))
	} else {
		add("heart_rate", "status", "no data")
	}

	if sl := a.Sleep; sl != nil {
		add("sleep", "average_hours", sl.AverageHours)
		add("sleep", "total_nights", sl.TotalNights)
		add("sleep", "consistency", sl.Consistency)
		add("sleep", "insufficient_nights", sl.InsufficientNights)
	} else {
		add("sleep", "status", "no data")
	}

	return rows
}

func anomalyRows(anomalies []analytics.Anomaly) [][]any {
	rows := make([][]any, 0, len(anomalies))
	for _, an := range anomalies {
		rows = append(rows, []any{an.Date, an.Type, string(an.Severity), an.Description})
	}
	return rows
}

func trendRows(trends []analytics.Trend) [][]any {
	rows := make([][]any, 0, len(trends))
	for _, t := range trends {
		rows = append(rows, []any{t.Metric, string(t.Direction), t.ChangePercent, t.Period})
	}
	return rows
}
