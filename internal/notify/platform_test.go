package notify

import (
	"context"
	"testing"

	"invite-bot/internal/models"
)

type fakeMessenger struct {
	ownID string

	sentTo      string
	sentSubject string
	sentBody    string
	sends       int
}

func (f *fakeMessenger) OwnProfile(ctx context.Context) (string, error) {
	return f.ownID, nil
}

func (f *fakeMessenger) SendUserMessage(ctx context.Context, accountID, subject, body string) error {
	f.sends++
	f.sentTo = accountID
	f.sentSubject = subject
	f.sentBody = body
	return nil
}

func TestPlatformNotifyInvited(t *testing.T) {
	m := &fakeMessenger{}
	p := NewPlatform(m, "admin-1")

	err := p.NotifyInvited(context.Background(), []models.Response{{IdentityClaim: "bob", AccountID: "bob-id"}})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if m.sentTo != "admin-1" {
		t.Fatalf("expected message to admin-1, got %q", m.sentTo)
	}
	if m.sentSubject != SummarySubject {
		t.Fatalf("unexpected subject %q", m.sentSubject)
	}
}

func TestPlatformDefaultsToOwnProfile(t *testing.T) {
	m := &fakeMessenger{ownID: "self-9"}
	p := NewPlatform(m, "")

	if err := p.NotifyInvited(context.Background(), []models.Response{{AccountID: "1"}}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if m.sentTo != "self-9" {
		t.Fatalf("expected fallback to own profile, got %q", m.sentTo)
	}
}

func TestPlatformSkipsEmptyBatch(t *testing.T) {
	m := &fakeMessenger{}
	p := NewPlatform(m, "admin-1")

	if err := p.NotifyInvited(context.Background(), nil); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if m.sends != 0 {
		t.Fatalf("expected no message for empty batch, got %d", m.sends)
	}
}
