// Package lifescore reduces a user's recent activity to four 0-100
// sub-scores and a weighted composite.
package lifescore

import (
	"math"
	"sort"

	"github.com/99airplane/lifelOOp/pkg/domain/metrics"
	"github.com/99airplane/lifelOOp/pkg/types"
)

// DefaultScore is the neutral sub-score used when a category has no
// qualifying data in the lookback window. It keeps partial-data users
// from collapsing to zero.
const DefaultScore = 50

// Composite weights, in percent.
const (
	WeightHealth      = 35
	WeightEnvironment = 25
	WeightGoals       = 25
	WeightCommunity   = 15
)

// Components holds the four pre-rounded sub-scores.
type Components struct {
	Health      int `json:"health"`
	Environment int `json:"environment"`
	Goals       int `json:"goals"`
	Community   int `json:"community"`
}

// Composite combines the sub-scores with the fixed weights.
func Composite(c Components) int {
	return int(math.Round(
		float64(c.Health)*0.35 +
			float64(c.Environment)*0.25 +
			float64(c.Goals)*0.25 +
			float64(c.Community)*0.15))
}

// HealthScore scores recent health metrics. Per metric type the most
// recent observation wins regardless of input order. Types without a
// scoring rule contribute nothing; if no recognized type is present the
// default stands.
func HealthScore(rows []*types.HealthMetric) int {
	if len(rows) == 0 {
		return DefaultScore
	}

	sub := map[string]float64{}
	for _, m := range newestFirst(rows) {
		var key string
		var score float64
		switch m.MetricType {
		case metrics.TypeSteps:
			key = "steps"
			score = math.Min(100, m.Value/10000*100)
		case metrics.TypeSleepHours:
			key = "sleep"
			if m.Value >= 7 && m.Value <= 9 {
				score = 100
			} else {
				score = math.Max(0, 100-math.Abs(8-m.Value)*20)
			}
		case metrics.TypeHeartRate:
			// Resting heart rate scoring (60-80 bpm is ideal)
			key = "heart_rate"
			if m.Value >= 60 && m.Value <= 80 {
				score = 100
			} else {
				score = math.Max(0, 100-math.Abs(70-m.Value)*2)
			}
		case metrics.TypeHydration:
			key = "hydration"
			score = math.Min(100, m.Value/8*100)
		default:
			continue
		}
		if _, seen := sub[key]; !seen {
			sub[key] = score
		}
	}

	score := float64(DefaultScore)
	if len(sub) > 0 {
		var sum float64
		for _, s := range sub {
			sum += s
		}
		score = sum / float64(len(sub))
	}

	return round(score)
}

func newestFirst(rows []*types.HealthMetric) []*types.HealthMetric {
	sorted := make([]*types.HealthMetric, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RecordedAt.After(sorted[j].RecordedAt)
	})
	return sorted
}

// EnvironmentScore averages a carbon-saved score against an action
// frequency score. 10kg CO2 saved = 100 points; 20 sustainable actions =
// 100 points. Negative-impact actions drag the carbon total down.
func EnvironmentScore(actions []*types.EnvironmentalAction) int {
	if len(actions) == 0 {
		return DefaultScore
	}

	var totalCarbonSaved float64
	sustainable := 0
	for _, a := range actions {
		totalCarbonSaved += a.CarbonImpact
		if a.CarbonImpact > 0 {
			sustainable++
		}
	}

	carbonScore := math.Min(100, totalCarbonSaved/10*100)
	frequencyScore := math.Min(100, float64(sustainable)/20*100)

	return round((carbonScore + frequencyScore) / 2)
}

// GoalsScore is the mean progress across active goals, each goal capped
// at 100. A goal with no positive target counts as met only if progress
// exists.
func GoalsScore(goals []*types.Goal) int {
	if len(goals) == 0 {
		return DefaultScore
	}

	var sum float64
	for _, g := range goals {
		sum += goalProgress(g)
	}
	return round(sum / float64(len(goals)))
}

func goalProgress(g *types.Goal) float64 {
	if g.TargetValue <= 0 {
		if g.CurrentValue > 0 {
			return 100
		}
		return 0
	}
	return math.Min(100, g.CurrentValue/g.TargetValue*100)
}

var difficultyBonus = map[string]int{
	types.DifficultyEasy:   5,
	types.DifficultyMedium: 10,
	types.DifficultyHard:   20,
}

// CommunityScore scores completed challenges: 20 points each, capped at
// 100, plus a per-challenge difficulty bonus. A participation with no
// difficulty recorded counts as medium; an unrecognized difficulty adds
// nothing.
func CommunityScore(challenges []*types.ChallengeParticipation) int {
	if len(challenges) == 0 {
		return DefaultScore
	}

	baseScore := math.Min(100, float64(len(challenges))*20)

	bonus := 0
	for _, ch := range challenges {
		difficulty := ch.Difficulty
		if difficulty == "" {
			difficulty = types.DifficultyMedium
		}
		bonus += difficultyBonus[difficulty]
	}

	return round(math.Min(100, baseScore+float64(bonus)))
}

// round clamps to [0, 100] and rounds to the nearest integer.
func round(score float64) int {
	return int(math.Round(math.Max(0, math.Min(100, score))))
}
