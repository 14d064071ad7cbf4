package analytics

// StepGoal дневная цель по шагам
const StepGoal = 10000

type Direction string

const (
	DirectionIncreasing Direction = "increasing"
	DirectionDecreasing Direction = "decreasing"
	DirectionStable     Direction = "stable"
)

type Variability string

const (
	VariabilityHigh   Variability = "high"
	VariabilityNormal Variability = "normal"
	VariabilityLow    Variability = "low"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

const (
	AnomalyLowSteps          = "low_steps"
	AnomalyHighHeartRate     = "high_heart_rate"
	AnomalyInsufficientSleep = "insufficient_sleep"
)

// StepsSummary сводка по шагам
type StepsSummary struct {
	Total           int       `json:"total"`
	Average         float64   `json:"average"`
	DaysWithData    int       `json:"days_with_data"`
	Trend           Direction `json:"trend"`
	GoalAchievement float64   `json:"goal_achievement"`
	AnomalyDays     []string  `json:"anomaly_days"`
}

// HeartRateSummary сводка по пульсу
type HeartRateSummary struct {
	Average     float64     `json:"average"`
	Max         int         `json:"max"`
	Min         int         `json:"min"`
	RestingAvg  float64     `json:"resting_avg"`
	ActiveAvg   float64     `json:"active_avg"`
	Variability Variability `json:"variability"`
}

// SleepSummary сводка по сну
type SleepSummary struct {
	AverageHours       float64 `json:"average_hours"`
	TotalNights        int     `json:"total_nights"`
	Consistency        float64 `json:"consistency"`
	InsufficientNights int     `json:"insufficient_nights"`
}

type Anomaly struct {
	Type        string   `json:"type"`
	Date        string   `json:"date"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

type Trend struct {
	Metric        string    `json:"metric"`
	Direction     Direction `json:"direction"`
	ChangePercent float64   `json:"change_percent"`
	Period        string    `json:"period"`
}

// Analysis is the structured result handed to the reporting layer.
// A nil summary means there was no data for that metric.
type Analysis struct {
	Steps     *StepsSummary     `json:"steps_summary"`
	HeartRate *HeartRateSummary `json:"heart_rate_summary"`
	Sleep     *SleepSummary     `json:"sleep_summary"`
	Anomalies []Anomaly         `json:"anomalies"`
	Trends    []Trend           `json:"trends"`
}
