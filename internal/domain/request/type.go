package request

import (
	"fmt"

	"github.com/danielgtaylor/huma/v2"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusSent      Status = "sent"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

func (Status) Schema(_ huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type: "string",
		Enum: []any{
			string(StatusPending),
			string(StatusSent),
			string(StatusCompleted),
			string(StatusFailed),
		},
		Description: "Статус запроса данных",
		Examples:    []any{StatusSent},
	}
}

// Validate отклоняет статусы вне замкнутого набора.
func (s Status) Validate() error {
	switch s {
	case StatusPending, StatusSent, StatusCompleted, StatusFailed:
		return nil
	}
	return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, s)
}

// Terminal reports whether no further lifecycle step follows s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

func (s Status) String() string {
	return string(s)
}

// CanTransition is the single source of truth for the request lifecycle.
// completed->completed covers a device re-uploading the same request and
// failed->failed a repeated failure annotation.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusSent || to == StatusCompleted || to == StatusFailed
	case StatusSent:
		return to == StatusCompleted || to == StatusFailed
	case StatusCompleted:
		return to == StatusCompleted
	case StatusFailed:
		return to == StatusFailed
	}
	return false
}

// MetricKind тип запрашиваемых данных
type MetricKind string

const (
	MetricSteps     MetricKind = "steps"
	MetricHeartRate MetricKind = "heart_rate"
	MetricSleep     MetricKind = "sleep"
	MetricCalories  MetricKind = "calories"
	MetricWeight    MetricKind = "weight"
	MetricDistance  MetricKind = "distance"
)

var allMetrics = []MetricKind{
	MetricSteps,
	MetricHeartRate,
	MetricSleep,
	MetricCalories,
	MetricWeight,
	MetricDistance,
}

func (MetricKind) Schema(_ huma.Registry) *huma.Schema {
	enum := make([]any, len(allMetrics))
	for i, m := range allMetrics {
		enum[i] = string(m)
	}
	return &huma.Schema{
		Type:        "string",
		Enum:        enum,
		Description: "Тип метрики здоровья",
		Examples:    []any{MetricSteps},
	}
}

func (m MetricKind) Validate() error {
	for _, known := range allMetrics {
		if m == known {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown metric %q", ErrInvalidInput, m)
}

func (m MetricKind) String() string {
	return string(m)
}

// ParseMetrics validates names and drops duplicates, keeping first-seen order.
func ParseMetrics(names []string) ([]MetricKind, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: at least one metric is required", ErrInvalidInput)
	}

	seen := make(map[MetricKind]struct{}, len(names))
	out := make([]MetricKind, 0, len(names))
	for _, n := range names {
		m := MetricKind(n)
		if err := m.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out, nil
}
