package generaterecommendations

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/google/uuid"

	"github.com/99airplane/lifelOOp/pkg/apperrors"
	"github.com/99airplane/lifelOOp/pkg/bootstrap"
	"github.com/99airplane/lifelOOp/pkg/domain/recommend"
	"github.com/99airplane/lifelOOp/pkg/framework"
	"github.com/99airplane/lifelOOp/pkg/types"
)

const (
	serviceName    = "generate-recommendations"
	failureMessage = "Failed to generate recommendations"

	fetchWindow = 7 * 24 * time.Hour

	// Schema-default lifetime for a generated recommendation
	recommendationTTL = 7 * 24 * time.Hour
)

var (
	svc     *bootstrap.Service
	svcOnce sync.Once
	svcErr  error
)

func init() {
	functions.HTTP("GenerateRecommendations", GenerateRecommendations)
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

// Request is the expected request body. The data fields are optional
// pre-fetched rows; absent fields are fetched internally.
type Request struct {
	UserID            string                       `json:"user_id"`
	HealthData        []*types.HealthMetric        `json:"health_data,omitempty"`
	EnvironmentalData []*types.EnvironmentalAction `json:"environmental_data,omitempty"`
	Goals             []*types.Goal                `json:"goals,omitempty"`
}

// Response is the response body
type Response struct {
	Recommendations []*types.Recommendation `json:"recommendations"`
	Count           int                     `json:"count"`
}

// GenerateRecommendations is the HTTP entry point
func GenerateRecommendations(w http.ResponseWriter, r *http.Request) {
	svc, err := initService(r.Context())
	if err != nil {
		slog.Error("Service init failed", "error", err)
		http.Error(w, `{"error":"Internal server error"}`, http.StatusInternalServerError)
		return
	}
	framework.WrapHTTP(serviceName, svc, failureMessage, handler)(w, r)
}

func handler(ctx context.Context, r *http.Request, fwCtx *framework.FrameworkContext) (interface{}, error) {
	var req Request
	if err := framework.DecodeJSON(r, &req); err != nil {
		return nil, err
	}
	if req.UserID == "" {
		return nil, apperrors.Validationf("User ID is required")
	}

	logger := fwCtx.Logger.With("user_id", req.UserID)
	now := time.Now()

	in := recommend.Input{
		Metrics: req.HealthData,
		Actions: req.EnvironmentalData,
		Goals:   req.Goals,
		Now:     now,
	}

	// A nil field means the caller did not pre-fetch; an empty slice is
	// an explicit "no rows". Fetch failures degrade to empty.
	if in.Metrics == nil {
		rows, err := fwCtx.Service.DB.ListHealthMetricsSince(ctx, req.UserID, now.Add(-fetchWindow))
		if err != nil {
			logger.Warn("Health metrics fetch failed, generating without them", "error", err)
		}
		in.Metrics = rows
	}
	if in.Actions == nil {
		rows, err := fwCtx.Service.DB.ListEnvironmentalActionsSince(ctx, req.UserID, now.Add(-fetchWindow))
		if err != nil {
			logger.Warn("Environmental actions fetch failed, generating without them", "error", err)
		}
		in.Actions = rows
	}
	if in.Goals == nil {
		rows, err := fwCtx.Service.DB.ListActiveGoals(ctx, req.UserID)
		if err != nil {
			logger.Warn("Active goals fetch failed, generating without them", "error", err)
		}
		in.Goals = rows
	}

	recs := recommend.Generate(in)
	for _, rec := range recs {
		rec.ID = uuid.NewString()
		rec.UserID = req.UserID
		rec.CreatedAt = now.UTC()
		rec.ExpiresAt = now.Add(recommendationTTL).UTC()
	}

	// Expired rows go first, then the new batch. If the insert fails
	// after the delete commits the user is left without recommendations
	// until the next successful run; accepted.
	if err := fwCtx.Service.DB.DeleteExpiredRecommendations(ctx, req.UserID, now); err != nil {
		return nil, apperrors.Persistence("delete expired recommendations", err)
	}
	if err := fwCtx.Service.DB.InsertRecommendations(ctx, req.UserID, recs); err != nil {
		return nil, apperrors.Upstream("insert recommendations", err)
	}

	logger.Info("Recommendations generated", "count", len(recs))

	if recs == nil {
		recs = []*types.Recommendation{}
	}
	return &Response{
		Recommendations: recs,
		Count:           len(recs),
	}, nil
}
