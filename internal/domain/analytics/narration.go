package analytics

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const noAnalysis = "No health analysis available."

// RenderForNarration formats a into the line-oriented digest read by the
// reporting layer. Block and field order are fixed.
func RenderForNarration(a *Analysis) string {
	if a == nil {
		return noAnalysis
	}

	p := message.NewPrinter(language.English)
	var lines []string

	if s := a.Steps; s != nil {
		lines = append(lines,
			"Steps:",
			p.Sprintf("- Total: %d steps", s.Total),
			fmt.Sprintf("- Average: %.1f steps", s.Average),
			fmt.Sprintf("- Trend: %s", s.Trend),
			fmt.Sprintf("- Goal achievement: %.0f%%", s.GoalAchievement*100),
			"",
		)
	}

	if hr := a.HeartRate; hr != nil {
		lines = append(lines,
			"Heart rate:",
			fmt.Sprintf("- Average: %.1f bpm", hr.Average),
			fmt.Sprintf("- Max: %d bpm", hr.Max),
			fmt.Sprintf("- Min: %d bpm", hr.Min),
			fmt.Sprintf("- Resting: %.1f bpm", hr.RestingAvg),
			fmt.Sprintf("- Active: %.1f bpm", hr.ActiveAvg),
			fmt.Sprintf("- Variability: %s", hr.Variability),
			"",
		)
	}

	if sl := a.Sleep; sl != nil {
		lines = append(lines,
			"Sleep:",
			fmt.Sprintf("- Average duration: %.1f hours", sl.AverageHours),
			fmt.Sprintf("- Consistency: %.0f%%", sl.Consistency*100),
			fmt.Sprintf("- Insufficient nights: %d", sl.InsufficientNights),
			"",
		)
	}

	if len(a.Anomalies) > 0 {
		lines = append(lines, "Anomalies:")
		for _, an := range a.Anomalies {
			lines = append(lines, fmt.Sprintf("- %s: %s (%s severity)", an.Date, an.Description, an.Severity))
		}
		lines = append(lines, "")
	}

	if len(a.Trends) > 0 {
		lines = append(lines, "Trends:")
		for _, t := range a.Trends {
			lines = append(lines, fmt.Sprintf("- %s: %s (%.1f%% change)", t.Metric, t.Direction, t.ChangePercent))
		}
	}

	return strings.Join(lines, "\n")
}
