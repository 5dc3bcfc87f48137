package recommend

import (
	"testing"
	"time"

	"github.com/99airplane/lifelOOp/pkg/types"
)

var morning = time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
var afternoon = time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

func titles(recs []*types.Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Title
	}
	return out
}

func TestGenerate_NoDataCapsAtFour(t *testing.T) {
	// With no data during morning hours all five rules apply; only the
	// first four survive.
	recs := Generate(Input{Now: morning})
	if len(recs) != MaxPerRun {
		t.Fatalf("Expected %d recommendations, got %d", MaxPerRun, len(recs))
	}
	want := []string{
		"Boost Your Daily Steps",
		"Optimize Your Sleep",
		"Green Commute Challenge",
		"Catch Up on Fitness Goals",
	}
	got := titles(recs)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Position %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestGenerate_OnTrackGoalsFreeSlotForSunlight(t *testing.T) {
	in := Input{Now: morning}
	in.Goals = []*types.Goal{{Category: "fitness", CurrentValue: 90, TargetValue: 100}}
	recs := Generate(in)
	for _, title := range titles(recs) {
		if title == "Catch Up on Fitness Goals" {
			t.Errorf("Fitness rule should not fire at 90%% progress")
		}
	}
	// The freed slot goes to the morning sunlight rule.
	if len(recs) != 4 || recs[3].Title != "Morning Sunlight Boost" {
		t.Errorf("Expected Morning Sunlight Boost in final slot, got %v", titles(recs))
	}
}

func TestGenerate_HealthyUserGetsNothing(t *testing.T) {
	in := Input{
		Metrics: []*types.HealthMetric{
			{MetricType: "steps", Value: 10000, RecordedAt: afternoon},
			{MetricType: "sleep_hours", Value: 8, RecordedAt: afternoon},
		},
		Actions: []*types.EnvironmentalAction{
			{ActionType: "transport"},
			{ActionType: "transport"},
			{ActionType: "transport"},
		},
		Goals: []*types.Goal{{Category: "fitness", CurrentValue: 80, TargetValue: 100}},
		Now:   afternoon,
	}
	if recs := Generate(in); len(recs) != 0 {
		t.Errorf("Expected no recommendations, got %v", titles(recs))
	}
}

func TestGenerate_LatestMetricWins(t *testing.T) {
	dayAgo := afternoon.Add(-24 * time.Hour)
	in := Input{
		// Unsorted on purpose: the newer reading must decide the rule.
		Metrics: []*types.HealthMetric{
			{MetricType: "steps", Value: 2000, RecordedAt: dayAgo},
			{MetricType: "steps", Value: 9000, RecordedAt: afternoon},
		},
		Now: afternoon,
	}
	for _, title := range titles(Generate(in)) {
		if title == "Boost Your Daily Steps" {
			t.Errorf("Steps rule should use the 9000-step reading, not the stale one")
		}
	}
}

func TestGenerate_StepsBoundary(t *testing.T) {
	in := Input{
		Metrics: []*types.HealthMetric{{MetricType: "steps", Value: 8000, RecordedAt: afternoon}},
		Now:     afternoon,
	}
	for _, title := range titles(Generate(in)) {
		if title == "Boost Your Daily Steps" {
			t.Errorf("Steps rule should not fire at exactly 8000")
		}
	}
}

func TestGenerate_MorningSunlightHours(t *testing.T) {
	cases := []struct {
		hour int
		want bool
	}{
		{5, false},
		{6, true},
		{10, true},
		{11, false},
	}
	for _, tc := range cases {
		in := Input{
			Metrics: []*types.HealthMetric{
				{MetricType: "steps", Value: 10000},
				{MetricType: "sleep_hours", Value: 8},
			},
			Actions: []*types.EnvironmentalAction{
				{ActionType: "transport"}, {ActionType: "transport"}, {ActionType: "transport"},
			},
			Now: time.Date(2026, 3, 14, tc.hour, 30, 0, 0, time.UTC),
		}
		recs := Generate(in)
		fired := false
		for _, title := range titles(recs) {
			if title == "Morning Sunlight Boost" {
				fired = true
			}
		}
		if fired != tc.want {
			t.Errorf("Hour %d: sunlight rule fired=%v, expected %v", tc.hour, fired, tc.want)
		}
	}
}

func TestGenerate_FitnessGoalThreshold(t *testing.T) {
	behind := Input{
		Metrics: []*types.HealthMetric{
			{MetricType: "steps", Value: 10000},
			{MetricType: "sleep_hours", Value: 8},
		},
		Actions: []*types.EnvironmentalAction{
			{ActionType: "transport"}, {ActionType: "transport"}, {ActionType: "transport"},
		},
		Goals: []*types.Goal{{Category: "fitness", CurrentValue: 60, TargetValue: 100}},
		Now:   afternoon,
	}
	recs := Generate(behind)
	if len(recs) != 1 || recs[0].Title != "Catch Up on Fitness Goals" {
		t.Errorf("Expected only the fitness rule to fire, got %v", titles(recs))
	}

	// Non-fitness goals and zero-target goals never trigger it.
	behind.Goals = []*types.Goal{
		{Category: "environment", CurrentValue: 0, TargetValue: 100},
		{Category: "fitness", CurrentValue: 0, TargetValue: 0},
	}
	if recs := Generate(behind); len(recs) != 0 {
		t.Errorf("Expected no recommendations, got %v", titles(recs))
	}
}

func TestGenerate_PopulatesLiteralFields(t *testing.T) {
	recs := Generate(Input{Now: afternoon})
	if len(recs) == 0 {
		t.Fatal("Expected at least one recommendation")
	}
	first := recs[0]
	if first.Category != "health" || first.ImpactLevel != types.ImpactMedium ||
		first.Difficulty != types.DifficultyEasy || first.PriorityScore != 80 {
		t.Errorf("Unexpected steps recommendation fields: %+v", first)
	}
	if first.Description == "" {
		t.Error("Expected a description")
	}
}
