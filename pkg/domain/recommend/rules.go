// Package recommend evaluates the fixed recommendation rule set. Rules
// run in declaration order and each contributes at most one literal
// recommendation; the result is truncated to the first MaxPerRun that
// fired, regardless of priority_score.
package recommend

import (
	"sort"
	"time"

	"github.com/99airplane/lifelOOp/pkg/domain/metrics"
	"github.com/99airplane/lifelOOp/pkg/types"
)

// MaxPerRun caps how many recommendations one generation run emits.
const MaxPerRun = 4

// Input is the pre-fetched data a generation run evaluates. Now supplies
// the clock for the time-of-day rule so tests can pin it.
type Input struct {
	Metrics []*types.HealthMetric
	Actions []*types.EnvironmentalAction
	Goals   []*types.Goal
	Now     time.Time
}

type rule struct {
	name    string
	applies func(Input) bool
	build   func() *types.Recommendation
}

var rules = []rule{
	{
		name: "daily-steps",
		applies: func(in Input) bool {
			steps := latestMetric(in.Metrics, metrics.TypeSteps)
			return steps == nil || steps.Value < 8000
		},
		build: func() *types.Recommendation {
			return &types.Recommendation{
				Category:      "health",
				Title:         "Boost Your Daily Steps",
				Description:   "Take a 15-minute walk to reach your daily step goal and improve cardiovascular health.",
				ImpactLevel:   types.ImpactMedium,
				Difficulty:    types.DifficultyEasy,
				PriorityScore: 80,
			}
		},
	},
	{
		name: "sleep",
		applies: func(in Input) bool {
			sleep := latestMetric(in.Metrics, metrics.TypeSleepHours)
			return sleep == nil || sleep.Value < 7
		},
		build: func() *types.Recommendation {
			return &types.Recommendation{
				Category:      "wellness",
				Title:         "Optimize Your Sleep",
				Description:   "Start your bedtime routine 30 minutes earlier to improve sleep quality and recovery.",
				ImpactLevel:   types.ImpactHigh,
				Difficulty:    types.DifficultyMedium,
				PriorityScore: 90,
			}
		},
	},
	{
		name: "green-commute",
		applies: func(in Input) bool {
			transport := 0
			for _, a := range in.Actions {
				if a.ActionType == "transport" {
					transport++
				}
			}
			return transport < 3
		},
		build: func() *types.Recommendation {
			return &types.Recommendation{
				Category:      "environment",
				Title:         "Green Commute Challenge",
				Description:   "Try biking or public transport today to reduce your carbon footprint by 2-4kg CO₂.",
				ImpactLevel:   types.ImpactHigh,
				Difficulty:    types.DifficultyMedium,
				PriorityScore: 75,
			}
		},
	},
	{
		name: "fitness-goals",
		applies: func(in Input) bool {
			for _, g := range in.Goals {
				if g.Category != "fitness" {
					continue
				}
				if g.TargetValue > 0 && g.CurrentValue/g.TargetValue < 0.7 {
					return true
				}
			}
			return false
		},
		build: func() *types.Recommendation {
			return &types.Recommendation{
				Category:      "fitness",
				Title:         "Catch Up on Fitness Goals",
				Description:   "You're behind on some fitness goals. A quick 20-minute workout can get you back on track.",
				ImpactLevel:   types.ImpactMedium,
				Difficulty:    types.DifficultyMedium,
				PriorityScore: 70,
			}
		},
	},
	{
		name: "morning-sunlight",
		applies: func(in Input) bool {
			hour := in.Now.Hour()
			return hour >= 6 && hour <= 10
		},
		build: func() *types.Recommendation {
			return &types.Recommendation{
				Category:      "energy",
				Title:         "Morning Sunlight Boost",
				Description:   "Get 10-15 minutes of natural sunlight to boost energy and regulate your circadian rhythm.",
				ImpactLevel:   types.ImpactHigh,
				Difficulty:    types.DifficultyEasy,
				PriorityScore: 85,
			}
		},
	},
}

// Generate runs the rule set over the input and returns up to MaxPerRun
// recommendations in rule order.
func Generate(in Input) []*types.Recommendation {
	in.Metrics = newestFirst(in.Metrics)

	var out []*types.Recommendation
	for _, r := range rules {
		if !r.applies(in) {
			continue
		}
		out = append(out, r.build())
		if len(out) == MaxPerRun {
			break
		}
	}
	return out
}

// latestMetric returns the most recent row of the given type, or nil.
// Callers get Metrics already sorted newest-first by Generate.
func latestMetric(rows []*types.HealthMetric, metricType string) *types.HealthMetric {
	for _, m := range rows {
		if m.MetricType == metricType {
			return m
		}
	}
	return nil
}

func newestFirst(rows []*types.HealthMetric) []*types.HealthMetric {
	sorted := make([]*types.HealthMetric, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RecordedAt.After(sorted[j].RecordedAt)
	})
	return sorted
}
