// Package achievements evaluates the static achievement catalog against
// a user's accumulated data and unlocks newly satisfied achievements
// exactly once.
package achievements

import (
	"context"
	"log/slog"
	"time"

	shared "github.com/99airplane/lifelOOp/pkg"
	"github.com/99airplane/lifelOOp/pkg/types"
)

// Store is the slice of the database this evaluator needs.
type Store interface {
	ListAchievements(ctx context.Context) ([]*types.Achievement, error)
	ListUserAchievements(ctx context.Context, userID string) ([]*types.UserAchievement, error)
	CreateUserAchievement(ctx context.Context, ua *types.UserAchievement) error
	HasHealthMetrics(ctx context.Context, userID string) (bool, error)
	ListAllEnvironmentalActions(ctx context.Context, userID string) ([]*types.EnvironmentalAction, error)
}

type criterionFunc func(ctx context.Context, store Store, userID string) (bool, error)

// criteria maps achievement titles to their checks. Titles without an
// entry never unlock.
var criteria = map[string]criterionFunc{
	"First Steps": func(ctx context.Context, store Store, userID string) (bool, error) {
		return store.HasHealthMetrics(ctx, userID)
	},
	"Eco Warrior": func(ctx context.Context, store Store, userID string) (bool, error) {
		// Lifetime total, not the 30-day score window
		actions, err := store.ListAllEnvironmentalActions(ctx, userID)
		if err != nil {
			return false, err
		}
		var saved float64
		for _, a := range actions {
			if a.CarbonImpact > 0 {
				saved += a.CarbonImpact
			}
		}
		return saved >= 10, nil
	},
}

// Evaluate checks every catalog achievement the user has not unlocked and
// unlocks the satisfied ones. A failing criterion is logged and skipped;
// it never aborts the remaining achievements. Returns the titles unlocked
// in this run.
func Evaluate(ctx context.Context, store Store, notify shared.NotificationService, logger *slog.Logger, userID string) ([]string, error) {
	unlocked, err := store.ListUserAchievements(ctx, userID)
	if err != nil {
		return nil, err
	}
	unlockedIDs := make(map[string]bool, len(unlocked))
	for _, ua := range unlocked {
		unlockedIDs[ua.AchievementID] = true
	}

	catalog, err := store.ListAchievements(ctx)
	if err != nil {
		return nil, err
	}

	var newlyUnlocked []string
	for _, a := range catalog {
		if unlockedIDs[a.ID] {
			continue
		}

		check, ok := criteria[a.Title]
		if !ok {
			// Unknown criteria never unlock
			continue
		}

		satisfied, err := check(ctx, store, userID)
		if err != nil {
			logger.Warn("Achievement criterion check failed", "achievement", a.Title, "error", err)
			continue
		}
		if !satisfied {
			continue
		}

		ua := &types.UserAchievement{
			UserID:        userID,
			AchievementID: a.ID,
			UnlockedAt:    time.Now().UTC(),
		}
		if err := store.CreateUserAchievement(ctx, ua); err != nil {
			logger.Warn("Achievement unlock write failed", "achievement", a.Title, "error", err)
			continue
		}

		logger.Info("Achievement unlocked", "achievement", a.Title)
		newlyUnlocked = append(newlyUnlocked, a.Title)

		if notify != nil {
			if err := notify.SendPushNotification(ctx, userID,
				"Achievement unlocked!", a.Title,
				map[string]string{"achievement_id": a.ID},
			); err != nil {
				logger.Warn("Achievement push failed", "achievement", a.Title, "error", err)
			}
		}
	}

	return newlyUnlocked, nil
}
