package invite

import (
	"context"
	"errors"
	"testing"

	"invite-bot/internal/models"
)

type fakeSender struct {
	calls []string
	fail  map[string]bool
}

func (f *fakeSender) InviteToTeam(ctx context.Context, teamID, accountID, message string) error {
	f.calls = append(f.calls, accountID)
	if f.fail[accountID] {
		return errors.New("invite failed")
	}
	return nil
}

func TestDispatchAtMostOncePerAccount(t *testing.T) {
	sender := &fakeSender{}
	d := NewDispatcher(sender, "team", "hello")

	first := d.Dispatch(context.Background(), models.Response{AccountID: "1"})
	second := d.Dispatch(context.Background(), models.Response{AccountID: "1"})

	if len(sender.calls) != 1 {
		t.Fatalf("expected one invitation, got %d", len(sender.calls))
	}
	if !first.Sent {
		t.Fatal("expected first dispatch to send")
	}
	if second.Sent {
		t.Fatal("expected duplicate dispatch to be skipped")
	}
}

func TestDispatchFailureDoesNotStopBatch(t *testing.T) {
	sender := &fakeSender{fail: map[string]bool{"1": true}}
	d := NewDispatcher(sender, "team", "hello")

	bad := d.Dispatch(context.Background(), models.Response{AccountID: "1"})
	good := d.Dispatch(context.Background(), models.Response{AccountID: "2"})

	if bad.Sent || bad.Err == nil {
		t.Fatalf("expected failed outcome, got %+v", bad)
	}
	if !good.Sent {
		t.Fatal("expected later dispatch to proceed")
	}
	if len(sender.calls) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(sender.calls))
	}
}
