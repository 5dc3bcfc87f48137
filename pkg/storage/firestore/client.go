package firestore

import (
	"cloud.google.com/go/firestore"

	shared "github.com/99airplane/lifelOOp/pkg"
	"github.com/99airplane/lifelOOp/pkg/types"
)

type Client struct {
	fs *firestore.Client
}

func NewClient(client *firestore.Client) *Client {
	return &Client{fs: client}
}

func (c *Client) Close() error {
	return c.fs.Close()
}

func (c *Client) Profiles() *Collection[types.Profile] {
	return &Collection[types.Profile]{
		Ref:           c.fs.Collection(shared.CollectionProfiles),
		ToFirestore:   ProfileToFirestore,
		FromFirestore: FirestoreToProfile,
	}
}

// HealthMetrics are sub-collections of Profiles: profiles/{uid}/health_metrics/{id}
func (c *Client) HealthMetrics(userId string) *Collection[types.HealthMetric] {
	return &Collection[types.HealthMetric]{
		Ref:           c.fs.Collection(shared.CollectionProfiles).Doc(userId).Collection(shared.CollectionHealthMetrics),
		ToFirestore:   HealthMetricToFirestore,
		FromFirestore: FirestoreToHealthMetric,
	}
}

// EnvironmentalActions are sub-collections of Profiles: profiles/{uid}/environmental_actions/{id}
func (c *Client) EnvironmentalActions(userId string) *Collection[types.EnvironmentalAction] {
	return &Collection[types.EnvironmentalAction]{
		Ref:           c.fs.Collection(shared.CollectionProfiles).Doc(userId).Collection(shared.CollectionEnvironmentalActions),
		ToFirestore:   EnvironmentalActionToFirestore,
		FromFirestore: FirestoreToEnvironmentalAction,
	}
}

// Goals are sub-collections of Profiles: profiles/{uid}/goals/{id}
func (c *Client) Goals(userId string) *Collection[types.Goal] {
	return &Collection[types.Goal]{
		Ref:           c.fs.Collection(shared.CollectionProfiles).Doc(userId).Collection(shared.CollectionGoals),
		ToFirestore:   GoalToFirestore,
		FromFirestore: FirestoreToGoal,
	}
}

// Challenges is the top-level catalog: challenges/{id}
func (c *Client) Challenges() *Collection[types.Challenge] {
	return &Collection[types.Challenge]{
		Ref:           c.fs.Collection(shared.CollectionChallenges),
		ToFirestore:   ChallengeToFirestore,
		FromFirestore: FirestoreToChallenge,
	}
}

// ChallengeParticipants are sub-collections of Profiles: profiles/{uid}/challenge_participants/{id}
func (c *Client) ChallengeParticipants(userId string) *Collection[types.ChallengeParticipation] {
	return &Collection[types.ChallengeParticipation]{
		Ref:           c.fs.Collection(shared.CollectionProfiles).Doc(userId).Collection(shared.CollectionChallengeParticipants),
		ToFirestore:   ChallengeParticipationToFirestore,
		FromFirestore: FirestoreToChallengeParticipation,
	}
}

// Recommendations are sub-collections of Profiles: profiles/{uid}/recommendations/{id}
func (c *Client) Recommendations(userId string) *Collection[types.Recommendation] {
	return &Collection[types.Recommendation]{
		Ref:           c.fs.Collection(shared.CollectionProfiles).Doc(userId).Collection(shared.CollectionRecommendations),
		ToFirestore:   RecommendationToFirestore,
		FromFirestore: FirestoreToRecommendation,
	}
}

// Achievements is the top-level static catalog: achievements/{id}
func (c *Client) Achievements() *Collection[types.Achievement] {
	return &Collection[types.Achievement]{
		Ref:           c.fs.Collection(shared.CollectionAchievements),
		ToFirestore:   AchievementToFirestore,
		FromFirestore: FirestoreToAchievement,
	}
}

// UserAchievements are sub-collections of Profiles keyed by achievement id:
// profiles/{uid}/achievements/{achievement_id}. Keying by achievement id is
// what makes unlocking idempotent at the store level.
func (c *Client) UserAchievements(userId string) *Collection[types.UserAchievement] {
	return &Collection[types.UserAchievement]{
		Ref:           c.fs.Collection(shared.CollectionProfiles).Doc(userId).Collection(shared.CollectionAchievements),
		ToFirestore:   UserAchievementToFirestore,
		FromFirestore: FirestoreToUserAchievement,
	}
}
