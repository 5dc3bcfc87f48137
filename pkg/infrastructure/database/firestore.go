package database

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	storage "github.com/99airplane/lifelOOp/pkg/storage/firestore"
	"github.com/99airplane/lifelOOp/pkg/types"
)

// FirestoreAdapter provides database operations using Firestore.
// It wraps our typed storage client.
type FirestoreAdapter struct {
	Client  *firestore.Client
	storage *storage.Client // internal typed wrapper
}

func NewFirestoreAdapter(client *firestore.Client) *FirestoreAdapter {
	return &FirestoreAdapter{
		Client:  client,
		storage: storage.NewClient(client),
	}
}

func (a *FirestoreAdapter) GetProfile(ctx context.Context, userID string) (*types.Profile, error) {
	return a.storage.Profiles().Doc(userID).Get(ctx)
}

func (a *FirestoreAdapter) UpdateProfile(ctx context.Context, userID string, data map[string]interface{}) error {
	return a.storage.Profiles().Doc(userID).Update(ctx, data)
}

// IncrementUserPoints adds points to the profile total atomically. Racing
// syncs both land; duplicates are not deduplicated.
func (a *FirestoreAdapter) IncrementUserPoints(ctx context.Context, userID string, points int64) error {
	return a.storage.Profiles().Doc(userID).Update(ctx, map[string]interface{}{
		"total_points": firestore.Increment(points),
	})
}

func (a *FirestoreAdapter) InsertHealthMetrics(ctx context.Context, userID string, metrics []*types.HealthMetric) error {
	col := a.storage.HealthMetrics(userID)
	for _, m := range metrics {
		doc := col.NewDoc()
		if err := doc.Set(ctx, m); err != nil {
			return err
		}
		m.ID = doc.ID()
	}
	return nil
}

func (a *FirestoreAdapter) ListHealthMetricsSince(ctx context.Context, userID string, since time.Time) ([]*types.HealthMetric, error) {
	return a.storage.HealthMetrics(userID).
		Where("recorded_at", ">=", since).
		OrderBy("recorded_at", firestore.Desc).
		GetAll(ctx)
}

func (a *FirestoreAdapter) HasHealthMetrics(ctx context.Context, userID string) (bool, error) {
	rows, err := a.storage.HealthMetrics(userID).
		Where("user_id", "==", userID).
		Limit(1).
		GetAll(ctx)
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

func (a *FirestoreAdapter) ListEnvironmentalActionsSince(ctx context.Context, userID string, since time.Time) ([]*types.EnvironmentalAction, error) {
	return a.storage.EnvironmentalActions(userID).
		Where("recorded_at", ">=", since).
		OrderBy("recorded_at", firestore.Desc).
		GetAll(ctx)
}

func (a *FirestoreAdapter) ListAllEnvironmentalActions(ctx context.Context, userID string) ([]*types.EnvironmentalAction, error) {
	return a.storage.EnvironmentalActions(userID).All(ctx)
}

func (a *FirestoreAdapter) ListActiveGoals(ctx context.Context, userID string) ([]*types.Goal, error) {
	return a.storage.Goals(userID).
		Where("status", "==", types.GoalStatusActive).
		GetAll(ctx)
}

// ListCompletedChallengesSince returns completed participations joined
// within the window, with the challenge difficulty denormalized from the
// catalog. A missing catalog entry leaves Difficulty empty; the scorer
// treats that as medium.
func (a *FirestoreAdapter) ListCompletedChallengesSince(ctx context.Context, userID string, since time.Time) ([]*types.ChallengeParticipation, error) {
	parts, err := a.storage.ChallengeParticipants(userID).
		Where("completed", "==", true).
		Where("joined_at", ">=", since).
		GetAll(ctx)
	if err != nil {
		return nil, err
	}

	difficulties := map[string]string{}
	for _, p := range parts {
		if p.ChallengeID == "" {
			continue
		}
		if d, ok := difficulties[p.ChallengeID]; ok {
			p.Difficulty = d
			continue
		}
		ch, err := a.storage.Challenges().Doc(p.ChallengeID).Get(ctx)
		if err != nil {
			difficulties[p.ChallengeID] = ""
			continue
		}
		difficulties[p.ChallengeID] = ch.Difficulty
		p.Difficulty = ch.Difficulty
	}
	return parts, nil
}

func (a *FirestoreAdapter) ListAchievements(ctx context.Context) ([]*types.Achievement, error) {
	return a.storage.Achievements().All(ctx)
}

func (a *FirestoreAdapter) ListUserAchievements(ctx context.Context, userID string) ([]*types.UserAchievement, error) {
	return a.storage.UserAchievements(userID).All(ctx)
}

// CreateUserAchievement inserts the join row keyed by achievement id.
// Create fails if the row already exists, so a racing evaluator cannot
// double-unlock.
func (a *FirestoreAdapter) CreateUserAchievement(ctx context.Context, ua *types.UserAchievement) error {
	return a.storage.UserAchievements(ua.UserID).Doc(ua.AchievementID).Create(ctx, ua)
}

func (a *FirestoreAdapter) DeleteExpiredRecommendations(ctx context.Context, userID string, before time.Time) error {
	_, err := a.storage.Recommendations(userID).
		Where("expires_at", "<", before).
		DeleteAll(ctx)
	return err
}

func (a *FirestoreAdapter) InsertRecommendations(ctx context.Context, userID string, recs []*types.Recommendation) error {
	col := a.storage.Recommendations(userID)
	for _, r := range recs {
		doc := col.Doc(r.ID)
		if r.ID == "" {
			doc = col.NewDoc()
		}
		if err := doc.Set(ctx, r); err != nil {
			return err
		}
		r.ID = doc.ID()
	}
	return nil
}
