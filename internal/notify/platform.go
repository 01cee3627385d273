package notify

import (
	"context"
	"fmt"

	"invite-bot/internal/models"
)

// Platform sends the summary as a user message on the platform itself.
// When no admin account is configured, the message goes to the
// authenticated account running the batch.
type Platform struct {
	messenger Messenger
	adminID   string
}

func NewPlatform(messenger Messenger, adminID string) *Platform {
	return &Platform{messenger: messenger, adminID: adminID}
}

func (p *Platform) Name() string { return "platform" }

func (p *Platform) NotifyInvited(ctx context.Context, invited []models.Response) error {
	if len(invited) == 0 {
		return nil
	}
	adminID := p.adminID
	if adminID == "" {
		id, err := p.messenger.OwnProfile(ctx)
		if err != nil {
			return fmt.Errorf("resolve admin account: %w", err)
		}
		adminID = id
	}
	return p.messenger.SendUserMessage(ctx, adminID, SummarySubject, ComposeHTML(invited))
}
