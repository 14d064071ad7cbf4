package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"healthsync/internal/domain/analytics"
)

func TestWriteXLSX(t *testing.T) {
	a := analytics.Analysis{
		Steps: &analytics.StepsSummary{
			Total:           8500,
			Average:         8500,
			DaysWithData:    1,
			Trend:           analytics.DirectionStable,
			GoalAchievement: 0.85,
		},
		Anomalies: []analytics.Anomaly{{
			Type:        analytics.AnomalyInsufficientSleep,
			Date:        "2025-12-10",
			Severity:    analytics.SeverityMedium,
			Description: "Only 5.5 hours of sleep",
		}},
		Trends: []analytics.Trend{{
			Metric:        "steps",
			Direction:     analytics.DirectionDecreasing,
			ChangePercent: 29.2,
			Period:        "day",
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, "2025-12-10", a))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetAnomalies, SheetTrends}, f.GetSheetList())

	summary, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Metric", "Field", "Value"}, summary[0])
	assert.Equal(t, []string{"2025-12-10", "steps", "total", "8500"}, summary[1])
	assert.Contains(t, summary, []string{"2025-12-10", "heart_rate", "status", "no data"})
	assert.Contains(t, summary, []string{"2025-12-10", "sleep", "status", "no data"})

	anomalies, err := f.GetRows(SheetAnomalies)
	require.NoError(t, err)
	require.Len(t, anomalies, 2)
	assert.Equal(t, []string{"2025-12-10", "insufficient_sleep", "medium", "Only 5.5 hours of sleep"}, anomalies[1])

	trends, err := f.GetRows(SheetTrends)
	require.NoError(t, err)
	require.Len(t, trends, 2)
	assert.Equal(t, "decreasing", trends[1][1])
	assert.Equal(t, "29.2", trends[1][2])
}

func TestWriteXLSX_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, "2025-12-10", analytics.Analysis{}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	anomalies, err := f.GetRows(SheetAnomalies)
	require.NoError(t, err)
	assert.Len(t, anomalies, 1)

	summary, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	assert.Len(t, summary, 4)
}
