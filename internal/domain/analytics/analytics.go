package analytics

import (
	"fmt"
	"math"

	"healthsync/internal/domain/healthdata"
)

const trendPeriod = "day"

// FilterByDate keeps only the points of the target date.
func FilterByDate(s healthdata.Snapshot, date string) healthdata.Snapshot {
	return healthdata.FilterByDate(s, date)
}

// DetectAnomalies flags low-step days, a peak heart rate above 180 bpm and
// short nights. Heart-rate and sleep anomalies carry date, the analysed day,
// not the time of the offending measurement.
func DetectAnomalies(s healthdata.Snapshot, date string) []Anomaly {
	anomalies := make([]Anomaly, 0)

	if steps := SummarizeSteps(s.Steps); steps != nil {
		for _, day := range steps.AnomalyDays {
			count, ok := stepsOn(s.Steps, day)
			if !ok {
				continue
			}
			deviation := 0.0
			if steps.Average > 0 {
				deviation = (float64(count) - steps.Average) / steps.Average * 100
			}
			severity := SeverityMedium
			if math.Abs(deviation) > 50 {
				severity = SeverityHigh
			}
			relation := "above"
			if deviation < 0 {
				relation = "below"
			}
			anomalies = append(anomalies, Anomaly{
				Type:        AnomalyLowSteps,
				Date:        day,
				Severity:    severity,
				Description: fmt.Sprintf("Step count %.1f%% %s average", math.Abs(deviation), relation),
			})
		}
	}

	if hr := SummarizeHeartRate(s.HeartRate); hr != nil && hr.Max > 180 {
		anomalies = append(anomalies, Anomaly{
			Type:        AnomalyHighHeartRate,
			Date:        date,
			Severity:    SeverityHigh,
			Description: fmt.Sprintf("Peak heart rate of %d bpm is very high", hr.Max),
		})
	}

	if sleep := SummarizeSleep(s.Sleep); sleep != nil && sleep.InsufficientNights > 0 {
		anomalies = append(anomalies, Anomaly{
			Type:        AnomalyInsufficientSleep,
			Date:        date,
			Severity:    SeverityMedium,
			Description: fmt.Sprintf("Insufficient sleep (average %.1f hours)", sleep.AverageHours),
		})
	}

	return anomalies
}

func stepsOn(points []healthdata.DailySteps, date string) (int, bool) {
	for _, p := range points {
		if p.Date == date {
			return p.Count, true
		}
	}
	return 0, false
}

// AnalyzeTrends compares the first and last step counts. No trend is emitted
// when they are equal or there are fewer than two points.
func AnalyzeTrends(s healthdata.Snapshot) []Trend {
	trends := make([]Trend, 0)

	if len(s.Steps) < 2 {
		return trends
	}

	first := s.Steps[0].Count
	last := s.Steps[len(s.Steps)-1].Count
	if first == last {
		return trends
	}

	direction := DirectionIncreasing
	if last < first {
		direction = DirectionDecreasing
	}

	change := 0.0
	if first != 0 {
		change = math.Abs(float64(last-first)) / float64(first) * 100
	}

	return append(trends, Trend{
		Metric:        "steps",
		Direction:     direction,
		ChangePercent: round(change, 1),
		Period:        trendPeriod,
	})
}

// Analyze filters s down to date and derives every summary from the result.
func Analyze(s healthdata.Snapshot, date string) Analysis {
	filtered := FilterByDate(s, date)
	return Analysis{
		Steps:     SummarizeSteps(filtered.Steps),
		HeartRate: SummarizeHeartRate(filtered.HeartRate),
		Sleep:     SummarizeSleep(filtered.Sleep),
		Anomalies: DetectAnomalies(filtered, date),
		Trends:    AnalyzeTrends(filtered),
	}
}
