// Package types holds the domain records shared across functions.
// All rows are stored in Firestore; see pkg/storage/firestore for the
// collection layout and converters.
package types

import "time"

// Goal lifecycle states. Transitions are owned by the goal-update API;
// this pipeline only ever filters on them.
const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusPaused    = "paused"
	GoalStatusCancelled = "cancelled"
)

// Challenge and recommendation difficulty levels.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Recommendation impact levels.
const (
	ImpactLow    = "low"
	ImpactMedium = "medium"
	ImpactHigh   = "high"
)

// HealthMetric is a single observation from a wearable or manual log.
// Immutable once written; one row per observation.
type HealthMetric struct {
	ID         string    `json:"id,omitempty"`
	UserID     string    `json:"user_id"`
	MetricType string    `json:"metric_type"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit"`
	Source     string    `json:"source"`
	RecordedAt time.Time `json:"recorded_at"`
}

// EnvironmentalAction is a logged sustainability action. CarbonImpact is
// signed kg CO2: positive means saved, negative means emitted.
type EnvironmentalAction struct {
	ID           string    `json:"id,omitempty"`
	UserID       string    `json:"user_id"`
	ActionType   string    `json:"action_type"`
	Description  string    `json:"description,omitempty"`
	CarbonImpact float64   `json:"carbon_impact"`
	PointsEarned int64     `json:"points_earned"`
	RecordedAt   time.Time `json:"recorded_at"`
}

type Goal struct {
	ID           string     `json:"id,omitempty"`
	UserID       string     `json:"user_id"`
	Title        string     `json:"title"`
	Category     string     `json:"category"`
	TargetValue  float64    `json:"target_value"`
	CurrentValue float64    `json:"current_value"`
	Unit         string     `json:"unit,omitempty"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	Status       string     `json:"status"`
}

// ChallengeParticipation joins a user to a challenge. Difficulty is
// denormalized from the challenge catalog when rows are read, so score
// computations never need a second lookup.
type ChallengeParticipation struct {
	ID          string    `json:"id,omitempty"`
	UserID      string    `json:"user_id"`
	ChallengeID string    `json:"challenge_id"`
	Completed   bool      `json:"completed"`
	JoinedAt    time.Time `json:"joined_at"`
	Difficulty  string    `json:"difficulty,omitempty"`
}

type Challenge struct {
	ID         string `json:"id,omitempty"`
	Title      string `json:"title"`
	Difficulty string `json:"difficulty"`
}

type Recommendation struct {
	ID            string    `json:"id,omitempty"`
	UserID        string    `json:"user_id"`
	Category      string    `json:"category"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ImpactLevel   string    `json:"impact_level"`
	Difficulty    string    `json:"difficulty"`
	PriorityScore int       `json:"priority_score"`
	ExpiresAt     time.Time `json:"expires_at"`
	Completed     bool      `json:"completed"`
	CreatedAt     time.Time `json:"created_at"`
}

// Achievement is an entry in the static catalog. The criterion behind a
// title lives in pkg/domain/achievements.
type Achievement struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// UserAchievement records an unlock. At most one row exists per
// (user, achievement) pair.
type UserAchievement struct {
	UserID        string    `json:"user_id"`
	AchievementID string    `json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

// Profile carries the derived fields this pipeline writes. LifeScore is
// overwritten whole on each aggregation run; TotalPoints is incremented
// atomically by the store.
type Profile struct {
	ID          string    `json:"id"`
	LifeScore   int       `json:"life_score"`
	TotalPoints int64     `json:"total_points"`
	FCMTokens   []string  `json:"fcm_tokens,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}
