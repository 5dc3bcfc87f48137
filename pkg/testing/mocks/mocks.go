package mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudevents/sdk-go/v2/event"

	"github.com/99airplane/lifelOOp/pkg/types"
)

// --- Mock Database ---
type MockDatabase struct {
	GetProfileFunc            func(ctx context.Context, userID string) (*types.Profile, error)
	UpdateProfileFunc         func(ctx context.Context, userID string, data map[string]interface{}) error
	IncrementUserPointsFunc   func(ctx context.Context, userID string, points int64) error
	InsertHealthMetricsFunc   func(ctx context.Context, userID string, metrics []*types.HealthMetric) error
	ListHealthMetricsFunc     func(ctx context.Context, userID string, since time.Time) ([]*types.HealthMetric, error)
	HasHealthMetricsFunc      func(ctx context.Context, userID string) (bool, error)
	ListEnvActionsSinceFunc   func(ctx context.Context, userID string, since time.Time) ([]*types.EnvironmentalAction, error)
	ListAllEnvActionsFunc     func(ctx context.Context, userID string) ([]*types.EnvironmentalAction, error)
	ListActiveGoalsFunc       func(ctx context.Context, userID string) ([]*types.Goal, error)
	ListCompletedChallsFunc   func(ctx context.Context, userID string, since time.Time) ([]*types.ChallengeParticipation, error)
	ListAchievementsFunc      func(ctx context.Context) ([]*types.Achievement, error)
	ListUserAchievementsFunc  func(ctx context.Context, userID string) ([]*types.UserAchievement, error)
	CreateUserAchievementFunc func(ctx context.Context, ua *types.UserAchievement) error
	DeleteExpiredRecsFunc     func(ctx context.Context, userID string, before time.Time) error
	InsertRecommendationsFunc func(ctx context.Context, userID string, recs []*types.Recommendation) error
}

func (m *MockDatabase) GetProfile(ctx context.Context, userID string) (*types.Profile, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	return nil, fmt.Errorf("profile not found")
}

func (m *MockDatabase) UpdateProfile(ctx context.Context, userID string, data map[string]interface{}) error {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, userID, data)
	}
	return nil
}

func (m *MockDatabase) IncrementUserPoints(ctx context.Context, userID string, points int64) error {
	if m.IncrementUserPointsFunc != nil {
		return m.IncrementUserPointsFunc(ctx, userID, points)
	}
	return nil
}

func (m *MockDatabase) InsertHealthMetrics(ctx context.Context, userID string, metrics []*types.HealthMetric) error {
	if m.InsertHealthMetricsFunc != nil {
		return m.InsertHealthMetricsFunc(ctx, userID, metrics)
	}
	return nil
}

func (m *MockDatabase) ListHealthMetricsSince(ctx context.Context, userID string, since time.Time) ([]*types.HealthMetric, error) {
	if m.ListHealthMetricsFunc != nil {
		return m.ListHealthMetricsFunc(ctx, userID, since)
	}
	return nil, nil
}

func (m *MockDatabase) HasHealthMetrics(ctx context.Context, userID string) (bool, error) {
	if m.HasHealthMetricsFunc != nil {
		return m.HasHealthMetricsFunc(ctx, userID)
	}
	return false, nil
}

func (m *MockDatabase) ListEnvironmentalActionsSince(ctx context.Context, userID string, since time.Time) ([]*types.EnvironmentalAction, error) {
	if m.ListEnvActionsSinceFunc != nil {
		return m.ListEnvActionsSinceFunc(ctx, userID, since)
	}
	return nil, nil
}

func (m *MockDatabase) ListAllEnvironmentalActions(ctx context.Context, userID string) ([]*types.EnvironmentalAction, error) {
	if m.ListAllEnvActionsFunc != nil {
		return m.ListAllEnvActionsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockDatabase) ListActiveGoals(ctx context.Context, userID string) ([]*types.Goal, error) {
	if m.ListActiveGoalsFunc != nil {
		return m.ListActiveGoalsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockDatabase) ListCompletedChallengesSince(ctx context.Context, userID string, since time.Time) ([]*types.ChallengeParticipation, error) {
	if m.ListCompletedChallsFunc != nil {
		return m.ListCompletedChallsFunc(ctx, userID, since)
	}
	return nil, nil
}

func (m *MockDatabase) ListAchievements(ctx context.Context) ([]*types.Achievement, error) {
	if m.ListAchievementsFunc != nil {
		return m.ListAchievementsFunc(ctx)
	}
	return nil, nil
}

func (m *MockDatabase) ListUserAchievements(ctx context.Context, userID string) ([]*types.UserAchievement, error) {
	if m.ListUserAchievementsFunc != nil {
		return m.ListUserAchievementsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockDatabase) CreateUserAchievement(ctx context.Context, ua *types.UserAchievement) error {
	if m.CreateUserAchievementFunc != nil {
		return m.CreateUserAchievementFunc(ctx, ua)
	}
	return nil
}

func (m *MockDatabase) DeleteExpiredRecommendations(ctx context.Context, userID string, before time.Time) error {
	if m.DeleteExpiredRecsFunc != nil {
		return m.DeleteExpiredRecsFunc(ctx, userID, before)
	}
	return nil
}

func (m *MockDatabase) InsertRecommendations(ctx context.Context, userID string, recs []*types.Recommendation) error {
	if m.InsertRecommendationsFunc != nil {
		return m.InsertRecommendationsFunc(ctx, userID, recs)
	}
	return nil
}

// --- Mock Publisher ---
type MockPublisher struct {
	PublishCloudEventFunc func(ctx context.Context, topic string, e event.Event) (string, error)
}

func (m *MockPublisher) PublishCloudEvent(ctx context.Context, topic string, e event.Event) (string, error) {
	if m.PublishCloudEventFunc != nil {
		return m.PublishCloudEventFunc(ctx, topic, e)
	}
	return "msg-id", nil
}

// --- Mock Storage ---
type MockBlobStore struct {
	WriteFunc func(ctx context.Context, bucket, object string, data []byte) error
	ReadFunc  func(ctx context.Context, bucket, object string) ([]byte, error)
}

func (m *MockBlobStore) Write(ctx context.Context, bucket, object string, data []byte) error {
	if m.WriteFunc != nil {
		return m.WriteFunc(ctx, bucket, object, data)
	}
	return nil
}

func (m *MockBlobStore) Read(ctx context.Context, bucket, object string) ([]byte, error) {
	if m.ReadFunc != nil {
		return m.ReadFunc(ctx, bucket, object)
	}
	return []byte("mock-data"), nil
}

// --- Mock Notifier ---
type MockNotifier struct {
	SendPushNotificationFunc func(ctx context.Context, userID string, title, body string, data map[string]string) error
}

func (m *MockNotifier) SendPushNotification(ctx context.Context, userID string, title, body string, data map[string]string) error {
	if m.SendPushNotificationFunc != nil {
		return m.SendPushNotificationFunc(ctx, userID, title, body, data)
	}
	return nil
}
