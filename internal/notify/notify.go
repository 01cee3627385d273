// Package notify delivers the end-of-run summary to an administrator.
package notify

import (
	"context"
	"fmt"

	"invite-bot/internal/config"
	"invite-bot/internal/models"
)

// Notifier sends one summary of the batch's invited responses. It is
// never called for an empty batch; send failures are the caller's to
// log, not to retry.
type Notifier interface {
	Name() string
	NotifyInvited(ctx context.Context, invited []models.Response) error
}

// Messenger is the platform's user-messaging surface.
type Messenger interface {
	OwnProfile(ctx context.Context) (string, error)
	SendUserMessage(ctx context.Context, accountID, subject, body string) error
}

func NewNotifier(cfg config.Config, messenger Messenger) (Notifier, error) {
	switch cfg.Notifier {
	case "platform":
		return NewPlatform(messenger, cfg.AdminAccountID), nil
	case "telegram":
		return NewTelegram(cfg.TelegramToken, cfg.AdminChatID)
	default:
		return nil, fmt.Errorf("unknown notifier: %s", cfg.Notifier)
	}
}
