package syncwearabledata

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/google/uuid"

	shared "github.com/99airplane/lifelOOp/pkg"
	"github.com/99airplane/lifelOOp/pkg/apperrors"
	"github.com/99airplane/lifelOOp/pkg/bootstrap"
	"github.com/99airplane/lifelOOp/pkg/domain/achievements"
	"github.com/99airplane/lifelOOp/pkg/domain/metrics"
	"github.com/99airplane/lifelOOp/pkg/framework"
	infrapubsub "github.com/99airplane/lifelOOp/pkg/infrastructure/pubsub"
	infrastorage "github.com/99airplane/lifelOOp/pkg/infrastructure/storage"
	"github.com/99airplane/lifelOOp/pkg/types"
)

const (
	serviceName    = "sync-wearable-data"
	failureMessage = "Failed to sync wearable data"
)

var (
	svc     *bootstrap.Service
	svcOnce sync.Once
	svcErr  error
)

func init() {
	functions.HTTP("SyncWearableData", SyncWearableData)
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

// Request is the expected request body. Data keys are metric names;
// null values are skipped.
type Request struct {
	UserID     string              `json:"user_id"`
	Data       map[string]*float64 `json:"data"`
	Source     string              `json:"source"`
	RecordedAt string              `json:"recorded_at,omitempty"`
}

// Response is the response body
type Response struct {
	Success              bool     `json:"success"`
	MetricsInserted      int      `json:"metrics_inserted"`
	PointsEarned         int64    `json:"points_earned"`
	AchievementsUnlocked []string `json:"achievements_unlocked,omitempty"`
}

// SyncWearableData is the HTTP entry point
func SyncWearableData(w http.ResponseWriter, r *http.Request) {
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
	if req.UserID == "" || req.Data == nil || req.Source == "" {
		return nil, apperrors.Validationf("User ID, data, and source are required")
	}

	recordedAt := time.Now().UTC()
	if req.RecordedAt != "" {
		t, err := time.Parse(time.RFC3339, req.RecordedAt)
		if err != nil {
			return nil, apperrors.Validationf("recorded_at must be an RFC 3339 timestamp")
		}
		recordedAt = t.UTC()
	}

	logger := fwCtx.Logger.With("user_id", req.UserID)

	batch := metrics.BuildBatch(req.UserID, req.Data, req.Source, recordedAt)
	if len(batch) == 0 {
		return nil, apperrors.Validationf("No valid metrics provided")
	}

	if err := fwCtx.Service.DB.InsertHealthMetrics(ctx, req.UserID, batch); err != nil {
		return nil, apperrors.Persistence("insert health metrics", err)
	}

	points := metrics.Points(batch)
	if points > 0 {
		// Racing syncs can double-count; accepted, the total is advisory
		if err := fwCtx.Service.DB.IncrementUserPoints(ctx, req.UserID, points); err != nil {
			logger.Warn("Point increment failed", "points", points, "error", err)
		}
	}

	unlocked, err := achievements.Evaluate(ctx, fwCtx.Service.DB, fwCtx.Service.Notify, logger, req.UserID)
	if err != nil {
		logger.Warn("Achievement evaluation failed", "error", err)
	}

	archivePayload(ctx, fwCtx.Service, logger, &req)
	publishRecalc(ctx, fwCtx.Service, logger, req.UserID)

	logger.Info("Wearable data synced", "metrics_inserted", len(batch), "points_earned", points)

	return &Response{
		Success:              true,
		MetricsInserted:      len(batch),
		PointsEarned:         points,
		AchievementsUnlocked: unlocked,
	}, nil
}

// archivePayload writes the raw sync body to the archive bucket when one
// is configured. Best-effort: a failed archive never fails the sync.
func archivePayload(ctx context.Context, svc *bootstrap.Service, logger *slog.Logger, req *Request) {
	bucket := svc.Config.GCSArchiveBucket
	if bucket == "" {
		return
	}
	raw, err := json.Marshal(req)
	if err != nil {
		logger.Warn("Failed to marshal sync payload for archive", "error", err)
		return
	}
	object := infrastorage.SyncArchiveObject(req.UserID, uuid.NewString())
	if err := svc.Store.Write(ctx, bucket, object, raw); err != nil {
		logger.Warn("Failed to archive sync payload", "object", object, "error", err)
		return
	}
	logger.Debug("Archived sync payload", "object", object)
}

// publishRecalc triggers the life-score recalculation. Fire-and-forget:
// no retry, and failure is invisible to the sync caller.
func publishRecalc(ctx context.Context, svc *bootstrap.Service, logger *slog.Logger, userID string) {
	e, err := infrapubsub.NewCloudEvent(
		infrapubsub.SourceSyncWearableData,
		infrapubsub.EventTypeLifeScoreRecalc,
		types.RecalcPayload{UserID: userID},
	)
	if err != nil {
		logger.Warn("Failed to build recalc event", "error", err)
		return
	}
	msgID, err := svc.Pub.PublishCloudEvent(ctx, shared.TopicLifeScoreRecalc, e)
	if err != nil {
		logger.Warn("Failed to publish recalc event", "error", apperrors.Upstream("publish recalc", err))
		return
	}
	logger.Debug("Recalc event published", "message_id", msgID)
}
