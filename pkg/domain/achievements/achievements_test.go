package achievements

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/99airplane/lifelOOp/pkg/testing/mocks"
	"github.com/99airplane/lifelOOp/pkg/types"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func catalog() []*types.Achievement {
	return []*types.Achievement{
		{ID: "ach-first-steps", Title: "First Steps"},
		{ID: "ach-eco-warrior", Title: "Eco Warrior"},
	}
}

func TestEvaluate_UnlocksFirstSteps(t *testing.T) {
	var created []*types.UserAchievement
	db := &mocks.MockDatabase{
		ListAchievementsFunc: func(ctx context.Context) ([]*types.Achievement, error) {
			return catalog(), nil
		},
		HasHealthMetricsFunc: func(ctx context.Context, userID string) (bool, error) {
			return true, nil
		},
		CreateUserAchievementFunc: func(ctx context.Context, ua *types.UserAchievement) error {
			created = append(created, ua)
			return nil
		},
	}

	unlocked, err := Evaluate(context.Background(), db, nil, testLogger, "user-1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(unlocked) != 1 || unlocked[0] != "First Steps" {
		t.Errorf("Expected [First Steps], got %v", unlocked)
	}
	if len(created) != 1 || created[0].AchievementID != "ach-first-steps" {
		t.Fatalf("Expected one join row for ach-first-steps, got %+v", created)
	}
	if created[0].UserID != "user-1" {
		t.Errorf("Expected join row for user-1, got %q", created[0].UserID)
	}
	if created[0].UnlockedAt.IsZero() {
		t.Error("Expected unlocked_at to be set")
	}
}

func TestEvaluate_EcoWarriorCountsOnlyPositiveImpact(t *testing.T) {
	db := &mocks.MockDatabase{
		ListAchievementsFunc: func(ctx context.Context) ([]*types.Achievement, error) {
			return catalog(), nil
		},
		ListAllEnvActionsFunc: func(ctx context.Context, userID string) ([]*types.EnvironmentalAction, error) {
			// Positive impacts sum to 10; the negative one must not cancel it.
			return []*types.EnvironmentalAction{
				{CarbonImpact: 6},
				{CarbonImpact: -9},
				{CarbonImpact: 4},
			}, nil
		},
	}

	unlocked, err := Evaluate(context.Background(), db, nil, testLogger, "user-1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(unlocked) != 1 || unlocked[0] != "Eco Warrior" {
		t.Errorf("Expected [Eco Warrior], got %v", unlocked)
	}
}

func TestEvaluate_AlreadyUnlockedSkipped(t *testing.T) {
	createCalls := 0
	db := &mocks.MockDatabase{
		ListAchievementsFunc: func(ctx context.Context) ([]*types.Achievement, error) {
			return catalog(), nil
		},
		ListUserAchievementsFunc: func(ctx context.Context, userID string) ([]*types.UserAchievement, error) {
			return []*types.UserAchievement{
				{AchievementID: "ach-first-steps"},
				{AchievementID: "ach-eco-warrior"},
			}, nil
		},
		HasHealthMetricsFunc: func(ctx context.Context, userID string) (bool, error) {
			return true, nil
		},
		CreateUserAchievementFunc: func(ctx context.Context, ua *types.UserAchievement) error {
			createCalls++
			return nil
		},
	}

	unlocked, err := Evaluate(context.Background(), db, nil, testLogger, "user-1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(unlocked) != 0 {
		t.Errorf("Expected nothing new, got %v", unlocked)
	}
	if createCalls != 0 {
		t.Errorf("Expected no writes, got %d", createCalls)
	}
}

func TestEvaluate_UnknownTitleNeverUnlocks(t *testing.T) {
	db := &mocks.MockDatabase{
		ListAchievementsFunc: func(ctx context.Context) ([]*types.Achievement, error) {
			return []*types.Achievement{{ID: "ach-marathon", Title: "Marathon Master"}}, nil
		},
	}

	unlocked, err := Evaluate(context.Background(), db, nil, testLogger, "user-1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(unlocked) != 0 {
		t.Errorf("Expected no unlocks for uncatalogued criteria, got %v", unlocked)
	}
}

func TestEvaluate_CriterionFailureIsolated(t *testing.T) {
	db := &mocks.MockDatabase{
		ListAchievementsFunc: func(ctx context.Context) ([]*types.Achievement, error) {
			return catalog(), nil
		},
		HasHealthMetricsFunc: func(ctx context.Context, userID string) (bool, error) {
			return false, errors.New("firestore unavailable")
		},
		ListAllEnvActionsFunc: func(ctx context.Context, userID string) ([]*types.EnvironmentalAction, error) {
			return []*types.EnvironmentalAction{{CarbonImpact: 12}}, nil
		},
	}

	unlocked, err := Evaluate(context.Background(), db, nil, testLogger, "user-1")
	if err != nil {
		t.Fatalf("Expected criterion failure to be swallowed, got %v", err)
	}
	if len(unlocked) != 1 || unlocked[0] != "Eco Warrior" {
		t.Errorf("Expected Eco Warrior despite First Steps failure, got %v", unlocked)
	}
}

func TestEvaluate_SendsPushOnUnlock(t *testing.T) {
	var pushed []string
	notify := &mocks.MockNotifier{
		SendPushNotificationFunc: func(ctx context.Context, userID, title, body string, data map[string]string) error {
			pushed = append(pushed, body)
			return nil
		},
	}
	db := &mocks.MockDatabase{
		ListAchievementsFunc: func(ctx context.Context) ([]*types.Achievement, error) {
			return catalog(), nil
		},
		HasHealthMetricsFunc: func(ctx context.Context, userID string) (bool, error) {
			return true, nil
		},
	}

	unlocked, err := Evaluate(context.Background(), db, notify, testLogger, "user-1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(pushed) != 1 || pushed[0] != "First Steps" {
		t.Errorf("Expected one push for First Steps, got %v", pushed)
	}
	if len(unlocked) != 1 {
		t.Errorf("Expected one unlock, got %v", unlocked)
	}
}

func TestEvaluate_PushFailureDoesNotAbort(t *testing.T) {
	notify := &mocks.MockNotifier{
		SendPushNotificationFunc: func(ctx context.Context, userID, title, body string, data map[string]string) error {
			return errors.New("fcm down")
		},
	}
	db := &mocks.MockDatabase{
		ListAchievementsFunc: func(ctx context.Context) ([]*types.Achievement, error) {
			return catalog(), nil
		},
		HasHealthMetricsFunc: func(ctx context.Context, userID string) (bool, error) {
			return true, nil
		},
	}

	unlocked, err := Evaluate(context.Background(), db, notify, testLogger, "user-1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(unlocked) != 1 {
		t.Errorf("Expected unlock to survive a push failure, got %v", unlocked)
	}
}
