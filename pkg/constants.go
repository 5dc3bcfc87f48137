package shared

const (
	ProjectID = "lifeloop-project" // Can be overridden by env var in main if needed

	TopicLifeScoreRecalc = "topic-life-score-recalc"

	CollectionProfiles              = "profiles"
	CollectionHealthMetrics         = "health_metrics"
	CollectionEnvironmentalActions  = "environmental_actions"
	CollectionGoals                 = "goals"
	CollectionChallenges            = "challenges"
	CollectionChallengeParticipants = "challenge_participants"
	CollectionRecommendations       = "recommendations"
	CollectionAchievements          = "achievements"
)
