package healthdata

import (
	"encoding/json"
	"strings"
)

// DateLayout формат дат в запросах и точках данных (YYYY-MM-DD)
const DateLayout = "2006-01-02"

// DailySteps суточное количество шагов
type DailySteps struct {
	Date   string `json:"date" example:"2025-12-10" doc:"Дата (YYYY-MM-DD)"`
	Count  int    `json:"count" example:"8500" doc:"Количество шагов"`
	Source string `json:"source,omitempty" doc:"Источник данных"`
}

// HeartRatePoint одно измерение пульса
type HeartRatePoint struct {
	Timestamp string `json:"timestamp" example:"2025-12-10T08:30:00Z" doc:"Время измерения (ISO 8601)"`
	BPM       int    `json:"bpm" example:"72" doc:"Пульс (уд/мин)"`
}

// SleepPoint одна ночь сна
type SleepPoint struct {
	Date      string  `json:"date" example:"2025-12-10" doc:"Дата (YYYY-MM-DD)"`
	StartTime string  `json:"start_time" doc:"Начало сна (ISO 8601)"`
	EndTime   string  `json:"end_time" doc:"Конец сна (ISO 8601)"`
	Hours     float64 `json:"hours" example:"7.5" doc:"Длительность сна в часах"`
}

// WeightPoint одно взвешивание
type WeightPoint struct {
	Date string  `json:"date" example:"2025-12-10" doc:"Дата (YYYY-MM-DD)"`
	KG   float64 `json:"kg" example:"71.3" doc:"Вес (кг)"`
}

// Snapshot is the bundle of per-metric series uploaded by a device.
// A nil series means the metric was not sent at all; an empty one means it was
// sent with no points. Both summarize to "no data".
type Snapshot struct {
	Steps     []DailySteps      `json:"steps" required:"false" nullable:"true" doc:"Шаги по дням"`
	HeartRate []HeartRatePoint  `json:"heart_rate" required:"false" nullable:"true" doc:"Измерения пульса"`
	Sleep     []SleepPoint      `json:"sleep" required:"false" nullable:"true" doc:"Данные сна"`
	Weight    []WeightPoint     `json:"weight" required:"false" nullable:"true" doc:"Данные веса"`
	Calories  []json.RawMessage `json:"calories" required:"false" nullable:"true" doc:"Данные калорий (свободный формат)"`
	Distance  []json.RawMessage `json:"distance" required:"false" nullable:"true" doc:"Данные дистанции (свободный формат)"`
}

// Counts returns the number of points per metric that was present in the upload.
func (s Snapshot) Counts() map[string]int {
	counts := make(map[string]int)
	if s.Steps != nil {
		counts["steps"] = len(s.Steps)
	}
	if s.HeartRate != nil {
		counts["heart_rate"] = len(s.HeartRate)
	}
	if s.Sleep != nil {
		counts["sleep"] = len(s.Sleep)
	}
	if s.Weight != nil {
		counts["weight"] = len(s.Weight)
	}
	if s.Calories != nil {
		counts["calories"] = len(s.Calories)
	}
	if s.Distance != nil {
		counts["distance"] = len(s.Distance)
	}
	return counts
}

// FilterByDate keeps only the points that belong to date. Daily series match on
// their date field, intraday heart-rate points on the date prefix of the timestamp.
// Calories and distance carry no typed date and are dropped.
func FilterByDate(s Snapshot, date string) Snapshot {
	var out Snapshot

	if s.Steps != nil {
		out.Steps = make([]DailySteps, 0, len(s.Steps))
		for _, p := range s.Steps {
			if p.Date == date {
				out.Steps = append(out.Steps, p)
			}
		}
	}

	if s.HeartRate != nil {
		out.HeartRate = make([]HeartRatePoint, 0, len(s.HeartRate))
		for _, p := range s.HeartRate {
			if strings.HasPrefix(p.Timestamp, date) {
				out.HeartRate = append(out.HeartRate, p)
			}
		}
	}

	if s.Sleep != nil {
		out.Sleep = make([]SleepPoint, 0, len(s.Sleep))
		for _, p := range s.Sleep {
			if p.Date == date {
				out.Sleep = append(out.Sleep, p)
			}
		}
	}

	if s.Weight != nil {
		out.Weight = make([]WeightPoint, 0, len(s.Weight))
		for _, p := range s.Weight {
			if p.Date == date {
				out.Weight = append(out.Weight, p)
			}
		}
	}

	return out
}
