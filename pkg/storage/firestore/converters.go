package firestore

import (
	"time"

	"github.com/99airplane/lifelOOp/pkg/types"
)

// Helper to safely get string from map
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Helper to safely get a number from map. Firestore hands back int64 for
// integer writes and float64 otherwise.
func getFloat(m map[string]interface{}, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	}
	return 0
}

func getInt64(m map[string]interface{}, key string) int64 {
	switch v := m[key].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	}
	return 0
}

// Helper to safely get bool from map
func getBool(m map[string]interface{}, key string) bool {
	if v, ok := m[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// Helper to safely get time from map (Firestore returns time.Time)
func getTime(m map[string]interface{}, key string) time.Time {
	if v, ok := m[key]; ok {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	return time.Time{}
}

func getStringSlice(m map[string]interface{}, key string) []string {
	v, ok := m[key].([]interface{})
	if !ok {
		return nil
	}
	var out []string
	for _, e := range v {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// --- Profile Converters ---

func ProfileToFirestore(p *types.Profile) map[string]interface{} {
	return map[string]interface{}{
		"life_score":   p.LifeScore,
		"total_points": p.TotalPoints,
		"fcm_tokens":   p.FCMTokens,
		"updated_at":   p.UpdatedAt,
	}
}

func FirestoreToProfile(id string, m map[string]interface{}) *types.Profile {
	return &types.Profile{
		ID:          id,
		LifeScore:   int(getInt64(m, "life_score")),
		TotalPoints: getInt64(m, "total_points"),
		FCMTokens:   getStringSlice(m, "fcm_tokens"),
		UpdatedAt:   getTime(m, "updated_at"),
	}
}

// --- HealthMetric Converters ---

func HealthMetricToFirestore(hm *types.HealthMetric) map[string]interface{} {
	return map[string]interface{}{
		"user_id":     hm.UserID,
		"metric_type": hm.MetricType,
		"value":       hm.Value,
		"unit":        hm.Unit,
		"source":      hm.Source,
		"recorded_at": hm.RecordedAt,
	}
}

func FirestoreToHealthMetric(id string, m map[string]interface{}) *types.HealthMetric {
	return &types.HealthMetric{
		ID:         id,
		UserID:     getString(m, "user_id"),
		MetricType: getString(m, "metric_type"),
		Value:      getFloat(m, "value"),
		Unit:       getString(m, "unit"),
		Source:     getString(m, "source"),
		RecordedAt: getTime(m, "recorded_at"),
	}
}

// --- EnvironmentalAction Converters ---

func EnvironmentalActionToFirestore(a *types.EnvironmentalAction) map[string]interface{} {
	return map[string]interface{}{
		"user_id":       a.UserID,
		"action_type":   a.ActionType,
		"description":   a.Description,
		"carbon_impact": a.CarbonImpact,
		"points_earned": a.PointsEarned,
		"recorded_at":   a.RecordedAt,
	}
}

func FirestoreToEnvironmentalAction(id string, m map[string]interface{}) *types.EnvironmentalAction {
	return &types.EnvironmentalAction{
		ID:           id,
		UserID:       getString(m, "user_id"),
		ActionType:   getString(m, "action_type"),
		Description:  getString(m, "description"),
		CarbonImpact: getFloat(m, "carbon_impact"),
		PointsEarned: getInt64(m, "points_earned"),
		RecordedAt:   getTime(m, "recorded_at"),
	}
}

// --- Goal Converters ---

func GoalToFirestore(g *types.Goal) map[string]interface{} {
	m := map[string]interface{}{
		"user_id":       g.UserID,
		"title":         g.Title,
		"category":      g.Category,
		"target_value":  g.TargetValue,
		"current_value": g.CurrentValue,
		"unit":          g.Unit,
		"status":        g.Status,
	}
	if g.Deadline != nil {
		m["deadline"] = *g.Deadline
	}
	return m
}

func FirestoreToGoal(id string, m map[string]interface{}) *types.Goal {
	g := &types.Goal{
		ID:           id,
		UserID:       getString(m, "user_id"),
		Title:        getString(m, "title"),
		Category:     getString(m, "category"),
		TargetValue:  getFloat(m, "target_value"),
		CurrentValue: getFloat(m, "current_value"),
		Unit:         getString(m, "unit"),
		Status:       getString(m, "status"),
	}
	if t := getTime(m, "deadline"); !t.IsZero() {
		g.Deadline = &t
	}
	return g
}

// --- Challenge Converters ---

func ChallengeToFirestore(c *types.Challenge) map[string]interface{} {
	return map[string]interface{}{
		"title":      c.Title,
		"difficulty": c.Difficulty,
	}
}

func FirestoreToChallenge(id string, m map[string]interface{}) *types.Challenge {
	return &types.Challenge{
		ID:         id,
		Title:      getString(m, "title"),
		Difficulty: getString(m, "difficulty"),
	}
}

// --- ChallengeParticipation Converters ---

func ChallengeParticipationToFirestore(p *types.ChallengeParticipation) map[string]interface{} {
	// Difficulty is a read-side join field, never persisted here
	return map[string]interface{}{
		"user_id":      p.UserID,
		"challenge_id": p.ChallengeID,
		"completed":    p.Completed,
		"joined_at":    p.JoinedAt,
	}
}

func FirestoreToChallengeParticipation(id string, m map[string]interface{}) *types.ChallengeParticipation {
	return &types.ChallengeParticipation{
		ID:          id,
		UserID:      getString(m, "user_id"),
		ChallengeID: getString(m, "challenge_id"),
		Completed:   getBool(m, "completed"),
		JoinedAt:    getTime(m, "joined_at"),
	}
}

// --- Recommendation Converters ---

func RecommendationToFirestore(r *types.Recommendation) map[string]interface{} {
	return map[string]interface{}{
		"user_id":        r.UserID,
		"category":       r.Category,
		"title":          r.Title,
		"description":    r.Description,
		"impact_level":   r.ImpactLevel,
		"difficulty":     r.Difficulty,
		"priority_score": r.PriorityScore,
		"expires_at":     r.ExpiresAt,
		"completed":      r.Completed,
		"created_at":     r.CreatedAt,
	}
}

func FirestoreToRecommendation(id string, m map[string]interface{}) *types.Recommendation {
	return &types.Recommendation{
		ID:            id,
		UserID:        getString(m, "user_id"),
		Category:      getString(m, "category"),
		Title:         getString(m, "title"),
		Description:   getString(m, "description"),
		ImpactLevel:   getString(m, "impact_level"),
		Difficulty:    getString(m, "difficulty"),
		PriorityScore: int(getInt64(m, "priority_score")),
		ExpiresAt:     getTime(m, "expires_at"),
		Completed:     getBool(m, "completed"),
		CreatedAt:     getTime(m, "created_at"),
	}
}

// --- Achievement Converters ---

func AchievementToFirestore(a *types.Achievement) map[string]interface{} {
	return map[string]interface{}{
		"title":       a.Title,
		"description": a.Description,
	}
}

func FirestoreToAchievement(id string, m map[string]interface{}) *types.Achievement {
	return &types.Achievement{
		ID:          id,
		Title:       getString(m, "title"),
		Description: getString(m, "description"),
	}
}

// --- UserAchievement Converters ---

func UserAchievementToFirestore(ua *types.UserAchievement) map[string]interface{} {
	return map[string]interface{}{
		"user_id":        ua.UserID,
		"achievement_id": ua.AchievementID,
		"unlocked_at":    ua.UnlockedAt,
	}
}

func FirestoreToUserAchievement(id string, m map[string]interface{}) *types.UserAchievement {
	return &types.UserAchievement{
		UserID:        getString(m, "user_id"),
		AchievementID: getString(m, "achievement_id"),
		UnlockedAt:    getTime(m, "unlocked_at"),
	}
}
