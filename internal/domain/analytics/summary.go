package analytics

import (
	"math"

	"healthsync/internal/domain/healthdata"
)

const (
	restingThreshold     = 100
	insufficientSleepHrs = 7.0
	highVariabilityStd   = 30
	lowVariabilityStd    = 10
)

// SummarizeSteps returns nil for an empty series.
func SummarizeSteps(points []healthdata.DailySteps) *StepsSummary {
	if len(points) == 0 {
		return nil
	}

	counts := make([]float64, len(points))
	total := 0
	for i, p := range points {
		counts[i] = float64(p.Count)
		total += p.Count
	}
	average := float64(total) / float64(len(points))

	trend := DirectionStable
	if len(counts) >= 2 {
		first, last := counts[0], counts[len(counts)-1]
		switch {
		case last == first:
		case last >= first*1.1:
			trend = DirectionIncreasing
		case last <= first*0.9:
			trend = DirectionDecreasing
		}
	}

	anomalyDays := make([]string, 0)
	if len(counts) > 1 {
		threshold := average - 2*populationStd(counts, average)
		for i, c := range counts {
			if c < threshold {
				anomalyDays = append(anomalyDays, points[i].Date)
			}
		}
	}

	return &StepsSummary{
		Total:           total,
		Average:         round(average, 1),
		DaysWithData:    len(points),
		Trend:           trend,
		GoalAchievement: round(average/StepGoal, 2),
		AnomalyDays:     anomalyDays,
	}
}

// SummarizeHeartRate returns nil for an empty series.
func SummarizeHeartRate(points []healthdata.HeartRatePoint) *HeartRateSummary {
	if len(points) == 0 {
		return nil
	}

	bpms := make([]float64, len(points))
	maxBPM, minBPM := points[0].BPM, points[0].BPM
	var sum, restingSum, activeSum float64
	var restingN, activeN int
	for i, p := range points {
		v := float64(p.BPM)
		bpms[i] = v
		sum += v
		if p.BPM > maxBPM {
			maxBPM = p.BPM
		}
		if p.BPM < minBPM {
			minBPM = p.BPM
		}
		if p.BPM < restingThreshold {
			restingSum += v
			restingN++
		} else {
			activeSum += v
			activeN++
		}
	}
	average := sum / float64(len(points))

	restingAvg, activeAvg := average, average
	if restingN > 0 {
		restingAvg = restingSum / float64(restingN)
	}
	if activeN > 0 {
		activeAvg = activeSum / float64(activeN)
	}

	variability := VariabilityNormal
	if len(bpms) > 1 {
		std := populationStd(bpms, average)
		switch {
		case std > highVariabilityStd:
			variability = VariabilityHigh
		case std < lowVariabilityStd:
			variability = VariabilityLow
		}
	}

	return &HeartRateSummary{
		Average:     round(average, 1),
		Max:         maxBPM,
		Min:         minBPM,
		RestingAvg:  round(restingAvg, 1),
		ActiveAvg:   round(activeAvg, 1),
		Variability: variability,
	}
}

// SummarizeSleep returns nil for an empty series. Consistency is
// 1 - variance/mean², clamped at 0, and 0 when the mean is 0.
func SummarizeSleep(points []healthdata.SleepPoint) *SleepSummary {
	if len(points) == 0 {
		return nil
	}

	hours := make([]float64, len(points))
	var sum float64
	insufficient := 0
	for i, p := range points {
		hours[i] = p.Hours
		sum += p.Hours
		if p.Hours < insufficientSleepHrs {
			insufficient++
		}
	}
	average := sum / float64(len(points))

	var consistency float64
	switch {
	case average == 0:
		consistency = 0
	case len(hours) == 1:
		consistency = 1
	default:
		variance := populationVariance(hours, average)
		consistency = math.Max(0, 1-variance/(average*average))
	}

	return &SleepSummary{
		AverageHours:       round(average, 1),
		TotalNights:        len(points),
		Consistency:        round(consistency, 2),
		InsufficientNights: insufficient,
	}
}

func populationVariance(xs []float64, mean float64) float64 {
	var acc float64
	for _, x := range xs {
		d := x - mean
		acc += d * d
	}
	return acc / float64(len(xs))
}

func populationStd(xs []float64, mean float64) float64 {
	return math.Sqrt(populationVariance(xs, mean))
}

func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
