// Package metrics normalizes wearable metric batches and applies the
// point-award rules.
package metrics

import (
	"sort"
	"time"

	"github.com/99airplane/lifelOOp/pkg/types"
)

// Known metric type names.
const (
	TypeSteps          = "steps"
	TypeHeartRate      = "heart_rate"
	TypeSleepHours     = "sleep_hours"
	TypeCaloriesBurned = "calories_burned"
	TypeActiveMinutes  = "active_minutes"
	TypeHydration      = "hydration"
)

// UnitFallback is used for metric names not in the unit table.
const UnitFallback = "units"

var unitByType = map[string]string{
	TypeSteps:          "steps",
	TypeHeartRate:      "bpm",
	TypeSleepHours:     "hours",
	TypeCaloriesBurned: "calories",
	TypeActiveMinutes:  "minutes",
}

// UnitFor returns the unit for a metric type, falling back to UnitFallback
// for unrecognized names.
func UnitFor(metricType string) string {
	if u, ok := unitByType[metricType]; ok {
		return u
	}
	return UnitFallback
}

// BuildBatch turns a name->value mapping into HealthMetric rows. Nil
// entries are skipped. Rows come back in metric-name order so a batch is
// deterministic regardless of map iteration.
func BuildBatch(userID string, data map[string]*float64, source string, recordedAt time.Time) []*types.HealthMetric {
	names := make([]string, 0, len(data))
	for name, value := range data {
		if value == nil {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	batch := make([]*types.HealthMetric, 0, len(names))
	for _, name := range names {
		batch = append(batch, &types.HealthMetric{
			UserID:     userID,
			MetricType: name,
			Value:      *data[name],
			Unit:       UnitFor(name),
			Source:     source,
			RecordedAt: recordedAt,
		})
	}
	return batch
}

// Points sums the point awards for a metric batch:
//
//	steps          >= 10000          50
//	steps          >= 5000, < 10000  25
//	sleep_hours    in [7, 9]         30
//	active_minutes >= 30             40
//	anything else                    10
func Points(batch []*types.HealthMetric) int64 {
	var points int64
	for _, m := range batch {
		switch m.MetricType {
		case TypeSteps:
			if m.Value >= 10000 {
				points += 50
			} else if m.Value >= 5000 {
				points += 25
			}
		case TypeSleepHours:
			if m.Value >= 7 && m.Value <= 9 {
				points += 30
			}
		case TypeActiveMinutes:
			if m.Value >= 30 {
				points += 40
			}
		default:
			points += 10 // Base points for any metric
		}
	}
	return points
}
