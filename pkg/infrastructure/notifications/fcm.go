package notifications

import (
	"context"
	"fmt"
	"log/slog"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"

	shared "github.com/99airplane/lifelOOp/pkg"
)

// FCMAdapter sends push notifications via Firebase Cloud Messaging.
// Device tokens live on the user's profile doc.
type FCMAdapter struct {
	client *messaging.Client
	db     shared.Database
}

func NewFCMAdapter(ctx context.Context, app *firebase.App, db shared.Database) (*FCMAdapter, error) {
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}
	return &FCMAdapter{client: client, db: db}, nil
}

func (a *FCMAdapter) SendPushNotification(ctx context.Context, userID string, title, body string, data map[string]string) error {
	profile, err := a.db.GetProfile(ctx, userID)
	if err != nil {
		return fmt.Errorf("load profile for tokens: %w", err)
	}
	tokens := profile.FCMTokens
	if len(tokens) == 0 {
		slog.Debug("No tokens for user, skipping notification", "user_id", userID)
		return nil
	}

	slog.Info("Sending push notification", "user_id", userID, "token_count", len(tokens), "title", title)

	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	response, err := a.client.SendEachForMulticast(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send multicast message: %w", err)
	}

	if response.FailureCount > 0 {
		slog.Warn("Some push notifications failed to send",
			"user_id", userID,
			"failure_count", response.FailureCount,
			"success_count", response.SuccessCount,
		)
	}

	return nil
}

// LogNotifier is a mock notifier for local development and disabled-push
// deployments.
type LogNotifier struct{}

func (n *LogNotifier) SendPushNotification(ctx context.Context, userID string, title, body string, data map[string]string) error {
	slog.Info("[LogNotifier] MOCK PUSH", "user_id", userID, "title", title, "body", body)
	return nil
}
