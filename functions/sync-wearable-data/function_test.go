package syncwearabledata

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cloudevents/sdk-go/v2/event"

	shared "github.com/99airplane/lifelOOp/pkg"
	"github.com/99airplane/lifelOOp/pkg/bootstrap"
	"github.com/99airplane/lifelOOp/pkg/testing/mocks"
	"github.com/99airplane/lifelOOp/pkg/types"
)

func useService(t *testing.T, db *mocks.MockDatabase, cfg *bootstrap.Config) (*mocks.MockPublisher, *mocks.MockBlobStore) {
	t.Helper()
	if cfg == nil {
		cfg = &bootstrap.Config{}
	}
	pub := &mocks.MockPublisher{}
	store := &mocks.MockBlobStore{}
	svc = &bootstrap.Service{
		DB:     db,
		Store:  store,
		Pub:    pub,
		Notify: &mocks.MockNotifier{},
		Config: cfg,
	}
	t.Cleanup(func() { svc = nil })
	return pub, store
}

func post(body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	SyncWearableData(rec, req)
	return rec
}

func TestSyncWearableData_Success(t *testing.T) {
	var inserted []*types.HealthMetric
	var pointsGiven int64
	db := &mocks.MockDatabase{
		InsertHealthMetricsFunc: func(ctx context.Context, userID string, rows []*types.HealthMetric) error {
			inserted = rows
			return nil
		},
		IncrementUserPointsFunc: func(ctx context.Context, userID string, points int64) error {
			pointsGiven = points
			return nil
		},
	}
	useService(t, db, nil)

	rec := post(`{"user_id":"user-1","source":"fitbit","data":{"steps":12000,"sleep_hours":8,"heart_rate":null}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid response body: %v", err)
	}
	if !resp.Success {
		t.Error("Expected success true")
	}
	// heart_rate is null and must be skipped
	if resp.MetricsInserted != 2 || len(inserted) != 2 {
		t.Errorf("Expected 2 metrics inserted, got %d (response) / %d (store)", resp.MetricsInserted, len(inserted))
	}
	// 50 for 12000 steps + 30 for 8h sleep
	if resp.PointsEarned != 80 || pointsGiven != 80 {
		t.Errorf("Expected 80 points, got %d (response) / %d (store)", resp.PointsEarned, pointsGiven)
	}
	for _, m := range inserted {
		if m.UserID != "user-1" || m.Source != "fitbit" {
			t.Errorf("Unexpected row attribution: %+v", m)
		}
		if m.Unit == "" {
			t.Errorf("Expected a unit on %q", m.MetricType)
		}
	}
}

func TestSyncWearableData_MissingFields(t *testing.T) {
	inserts := 0
	db := &mocks.MockDatabase{
		InsertHealthMetricsFunc: func(ctx context.Context, userID string, rows []*types.HealthMetric) error {
			inserts++
			return nil
		},
	}
	useService(t, db, nil)

	bodies := []string{
		`{"source":"fitbit","data":{"steps":100}}`,
		`{"user_id":"user-1","data":{"steps":100}}`,
		`{"user_id":"user-1","source":"fitbit"}`,
	}
	for _, body := range bodies {
		rec := post(body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Body %s: expected 400, got %d", body, rec.Code)
		}
	}
	if inserts != 0 {
		t.Errorf("Expected no inserts on rejected requests, got %d", inserts)
	}
}

func TestSyncWearableData_AllNullMetricsRejected(t *testing.T) {
	inserts := 0
	db := &mocks.MockDatabase{
		InsertHealthMetricsFunc: func(ctx context.Context, userID string, rows []*types.HealthMetric) error {
			inserts++
			return nil
		},
	}
	useService(t, db, nil)

	rec := post(`{"user_id":"user-1","source":"fitbit","data":{"steps":null,"heart_rate":null}}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No valid metrics provided") {
		t.Errorf("Unexpected body: %s", rec.Body.String())
	}
	if inserts != 0 {
		t.Errorf("Expected no inserts, got %d", inserts)
	}
}

func TestSyncWearableData_InvalidRecordedAt(t *testing.T) {
	useService(t, &mocks.MockDatabase{}, nil)
	rec := post(`{"user_id":"user-1","source":"fitbit","recorded_at":"yesterday","data":{"steps":100}}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for a bad timestamp, got %d", rec.Code)
	}
}

func TestSyncWearableData_RecordedAtHonored(t *testing.T) {
	var inserted []*types.HealthMetric
	db := &mocks.MockDatabase{
		InsertHealthMetricsFunc: func(ctx context.Context, userID string, rows []*types.HealthMetric) error {
			inserted = rows
			return nil
		},
	}
	useService(t, db, nil)

	rec := post(`{"user_id":"user-1","source":"manual","recorded_at":"2026-03-14T09:00:00Z","data":{"steps":100}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	want := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	if len(inserted) != 1 || !inserted[0].RecordedAt.Equal(want) {
		t.Errorf("Expected recorded_at %v, got %+v", want, inserted)
	}
}

func TestSyncWearableData_InsertFailure(t *testing.T) {
	db := &mocks.MockDatabase{
		InsertHealthMetricsFunc: func(ctx context.Context, userID string, rows []*types.HealthMetric) error {
			return errors.New("rpc error")
		},
	}
	useService(t, db, nil)

	rec := post(`{"user_id":"user-1","source":"fitbit","data":{"steps":100}}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Failed to sync wearable data") {
		t.Errorf("Expected static failure body, got %s", rec.Body.String())
	}
}

func TestSyncWearableData_PublishFailureStillSucceeds(t *testing.T) {
	pub, _ := useService(t, &mocks.MockDatabase{}, nil)
	pub.PublishCloudEventFunc = func(ctx context.Context, topic string, e event.Event) (string, error) {
		return "", errors.New("topic missing")
	}

	rec := post(`{"user_id":"user-1","source":"fitbit","data":{"steps":100}}`)
	if rec.Code != http.StatusOK {
		t.Errorf("Expected sync to survive a publish failure, got %d", rec.Code)
	}
}

func TestSyncWearableData_PublishesRecalcEvent(t *testing.T) {
	pub, _ := useService(t, &mocks.MockDatabase{}, nil)
	var gotTopic string
	var gotEvent event.Event
	pub.PublishCloudEventFunc = func(ctx context.Context, topic string, e event.Event) (string, error) {
		gotTopic = topic
		gotEvent = e
		return "msg-1", nil
	}

	rec := post(`{"user_id":"user-1","source":"fitbit","data":{"steps":100}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if gotTopic != shared.TopicLifeScoreRecalc {
		t.Errorf("Expected topic %q, got %q", shared.TopicLifeScoreRecalc, gotTopic)
	}
	var payload types.RecalcPayload
	if err := json.Unmarshal(gotEvent.Data(), &payload); err != nil {
		t.Fatalf("Invalid event payload: %v", err)
	}
	if payload.UserID != "user-1" {
		t.Errorf("Expected event for user-1, got %q", payload.UserID)
	}
}

func TestSyncWearableData_PointIncrementFailureStillSucceeds(t *testing.T) {
	db := &mocks.MockDatabase{
		IncrementUserPointsFunc: func(ctx context.Context, userID string, points int64) error {
			return errors.New("contention")
		},
	}
	useService(t, db, nil)

	rec := post(`{"user_id":"user-1","source":"fitbit","data":{"steps":12000}}`)
	if rec.Code != http.StatusOK {
		t.Errorf("Expected sync to survive a point increment failure, got %d", rec.Code)
	}
}

func TestSyncWearableData_ReportsUnlockedAchievements(t *testing.T) {
	db := &mocks.MockDatabase{
		ListAchievementsFunc: func(ctx context.Context) ([]*types.Achievement, error) {
			return []*types.Achievement{{ID: "ach-first-steps", Title: "First Steps"}}, nil
		},
		HasHealthMetricsFunc: func(ctx context.Context, userID string) (bool, error) {
			return true, nil
		},
	}
	useService(t, db, nil)

	rec := post(`{"user_id":"user-1","source":"fitbit","data":{"steps":100}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid response body: %v", err)
	}
	if len(resp.AchievementsUnlocked) != 1 || resp.AchievementsUnlocked[0] != "First Steps" {
		t.Errorf("Expected [First Steps], got %v", resp.AchievementsUnlocked)
	}
}

func TestSyncWearableData_ArchivesPayloadWhenBucketConfigured(t *testing.T) {
	_, store := useService(t, &mocks.MockDatabase{}, &bootstrap.Config{GCSArchiveBucket: "sync-archive"})
	var gotBucket, gotObject string
	var gotData []byte
	store.WriteFunc = func(ctx context.Context, bucket, object string, data []byte) error {
		gotBucket = bucket
		gotObject = object
		gotData = data
		return nil
	}

	rec := post(`{"user_id":"user-1","source":"fitbit","data":{"steps":100}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if gotBucket != "sync-archive" {
		t.Errorf("Expected archive bucket, got %q", gotBucket)
	}
	if !strings.HasPrefix(gotObject, "wearable_syncs/user-1/") || !strings.HasSuffix(gotObject, ".json") {
		t.Errorf("Unexpected object path: %q", gotObject)
	}
	var archived Request
	if err := json.Unmarshal(gotData, &archived); err != nil {
		t.Fatalf("Archived payload is not JSON: %v", err)
	}
	if archived.UserID != "user-1" {
		t.Errorf("Expected archived payload for user-1, got %q", archived.UserID)
	}
}
