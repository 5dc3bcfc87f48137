package shared

import (
	"context"
	"time"

	"github.com/cloudevents/sdk-go/v2/event"

	"github.com/99airplane/lifelOOp/pkg/types"
)

// --- Persistence Interfaces ---

type Database interface {
	// Profiles
	GetProfile(ctx context.Context, userID string) (*types.Profile, error)
	UpdateProfile(ctx context.Context, userID string, data map[string]interface{}) error
	IncrementUserPoints(ctx context.Context, userID string, points int64) error

	// Health metrics (append-only)
	InsertHealthMetrics(ctx context.Context, userID string, metrics []*types.HealthMetric) error
	ListHealthMetricsSince(ctx context.Context, userID string, since time.Time) ([]*types.HealthMetric, error)
	HasHealthMetrics(ctx context.Context, userID string) (bool, error)

	// Environmental actions (append-only)
	ListEnvironmentalActionsSince(ctx context.Context, userID string, since time.Time) ([]*types.EnvironmentalAction, error)
	ListAllEnvironmentalActions(ctx context.Context, userID string) ([]*types.EnvironmentalAction, error)

	// Goals (read-only consumer)
	ListActiveGoals(ctx context.Context, userID string) ([]*types.Goal, error)

	// Challenges
	ListCompletedChallengesSince(ctx context.Context, userID string, since time.Time) ([]*types.ChallengeParticipation, error)

	// Achievements
	ListAchievements(ctx context.Context) ([]*types.Achievement, error)
	ListUserAchievements(ctx context.Context, userID string) ([]*types.UserAchievement, error)
	CreateUserAchievement(ctx context.Context, ua *types.UserAchievement) error

	// Recommendations
	DeleteExpiredRecommendations(ctx context.Context, userID string, before time.Time) error
	InsertRecommendations(ctx context.Context, userID string, recs []*types.Recommendation) error
}

// --- Messaging Interfaces ---

type Publisher interface {
	PublishCloudEvent(ctx context.Context, topic string, e event.Event) (string, error)
}

// --- Storage Interfaces ---

type BlobStore interface {
	Write(ctx context.Context, bucket, object string, data []byte) error
	Read(ctx context.Context, bucket, object string) ([]byte, error)
}

// --- Notification Interfaces ---

type NotificationService interface {
	SendPushNotification(ctx context.Context, userID string, title, body string, data map[string]string) error
}
