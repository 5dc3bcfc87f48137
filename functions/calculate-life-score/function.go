package calculatelifescore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	cloudevents "github.com/cloudevents/sdk-go/v2"

	"github.com/99airplane/lifelOOp/pkg/apperrors"
	"github.com/99airplane/lifelOOp/pkg/bootstrap"
	"github.com/99airplane/lifelOOp/pkg/domain/lifescore"
	"github.com/99airplane/lifelOOp/pkg/framework"
	"github.com/99airplane/lifelOOp/pkg/types"
)

const (
	serviceName    = "calculate-life-score"
	failureMessage = "Failed to calculate life score"

	healthWindow    = 7 * 24 * time.Hour
	envWindow       = 30 * 24 * time.Hour
	challengeWindow = 30 * 24 * time.Hour
)

var (
	svc     *bootstrap.Service
	svcOnce sync.Once
	svcErr  error
)

func init() {
	functions.HTTP("CalculateLifeScore", CalculateLifeScore)
	functions.CloudEvent("RecalculateLifeScore", RecalculateLifeScore)
}

func initService(ctx context.Context) (*bootstrap.Service, error) {
	if svc != nil {
		return svc, nil
	}
	svcOnce.Do(func() {
		svc, svcErr = bootstrap.NewService(ctx)
	})
	return svc, svcErr
}

// Request is the expected request body
type Request struct {
	UserID string `json:"user_id"`
}

// Breakdown echoes the fixed weight table back to the client.
type Breakdown struct {
	HealthWeight      int `json:"health_weight"`
	EnvironmentWeight int `json:"environment_weight"`
	GoalsWeight       int `json:"goals_weight"`
	CommunityWeight   int `json:"community_weight"`
}

// Response is the response body
type Response struct {
	LifeScore  int                  `json:"life_score"`
	Components lifescore.Components `json:"components"`
	Breakdown  Breakdown            `json:"breakdown"`
}

// CalculateLifeScore is the HTTP entry point
func CalculateLifeScore(w http.ResponseWriter, r *http.Request) {
	svc, err := initService(r.Context())
	if err != nil {
		slog.Error("Service init failed", "error", err)
		http.Error(w, `{"error":"Internal server error"}`, http.StatusInternalServerError)
		return
	}
	framework.WrapHTTP(serviceName, svc, failureMessage, handler)(w, r)
}

// RecalculateLifeScore consumes the recalculation topic. Delivery is
// at-most-effort: failures are logged, never returned, so the platform
// does not retry.
func RecalculateLifeScore(ctx context.Context, e cloudevents.Event) error {
	svc, err := initService(ctx)
	if err != nil {
		slog.Error("Service init failed", "error", err)
		return nil
	}

	logger := bootstrap.NewLogger(serviceName)

	var payload types.RecalcPayload
	var msg types.PubSubMessage
	if err := e.DataAs(&msg); err == nil && len(msg.Message.Data) > 0 {
		err = json.Unmarshal(msg.Message.Data, &payload)
		if err != nil {
			logger.Warn("Unparseable recalc payload", "error", err)
			return nil
		}
	} else if err := json.Unmarshal(e.Data(), &payload); err != nil {
		logger.Warn("Unparseable recalc event", "error", err)
		return nil
	}

	if payload.UserID == "" {
		logger.Warn("Recalc event missing user_id")
		return nil
	}

	if _, err := calculate(ctx, svc, logger, payload.UserID); err != nil {
		logger.Error("Recalculation failed", "user_id", payload.UserID, "error", err)
	}
	return nil
}

func handler(ctx context.Context, r *http.Request, fwCtx *framework.FrameworkContext) (interface{}, error) {
	var req Request
	if err := framework.DecodeJSON(r, &req); err != nil {
		return nil, err
	}
	if req.UserID == "" {
		return nil, apperrors.Validationf("User ID is required")
	}
	return calculate(ctx, fwCtx.Service, fwCtx.Logger.With("user_id", req.UserID), req.UserID)
}

// calculate fetches the four activity categories, scores them, and
// overwrites the profile's life score. A failed category fetch degrades
// to the empty set (and so to the category default) instead of aborting
// the run.
func calculate(ctx context.Context, svc *bootstrap.Service, logger *slog.Logger, userID string) (*Response, error) {
	now := time.Now()

	healthRows, err := svc.DB.ListHealthMetricsSince(ctx, userID, now.Add(-healthWindow))
	if err != nil {
		logger.Warn("Health metrics fetch failed, scoring with defaults", "error", err)
		healthRows = nil
	}

	envRows, err := svc.DB.ListEnvironmentalActionsSince(ctx, userID, now.Add(-envWindow))
	if err != nil {
		logger.Warn("Environmental actions fetch failed, scoring with defaults", "error", err)
		envRows = nil
	}

	goals, err := svc.DB.ListActiveGoals(ctx, userID)
	if err != nil {
		logger.Warn("Active goals fetch failed, scoring with defaults", "error", err)
		goals = nil
	}

	challenges, err := svc.DB.ListCompletedChallengesSince(ctx, userID, now.Add(-challengeWindow))
	if err != nil {
		logger.Warn("Completed challenges fetch failed, scoring with defaults", "error", err)
		challenges = nil
	}

	components := lifescore.Components{
		Health:      lifescore.HealthScore(healthRows),
		Environment: lifescore.EnvironmentScore(envRows),
		Goals:       lifescore.GoalsScore(goals),
		Community:   lifescore.CommunityScore(challenges),
	}
	score := lifescore.Composite(components)

	if err := svc.DB.UpdateProfile(ctx, userID, map[string]interface{}{
		"life_score": score,
		"updated_at": time.Now().UTC(),
	}); err != nil {
		return nil, apperrors.Persistence(fmt.Sprintf("update life score for %s", userID), err)
	}

	logger.Info("Life score updated",
		"life_score", score,
		"health", components.Health,
		"environment", components.Environment,
		"goals", components.Goals,
		"community", components.Community,
	)

	return &Response{
		LifeScore:  score,
		Components: components,
		Breakdown: Breakdown{
			HealthWeight:      lifescore.WeightHealth,
			EnvironmentWeight: lifescore.WeightEnvironment,
			GoalsWeight:       lifescore.WeightGoals,
			CommunityWeight:   lifescore.WeightCommunity,
		},
	}, nil
}
