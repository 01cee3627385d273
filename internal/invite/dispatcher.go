// Package invite dispatches team-join invitations for accepted
// responses. Best effort: a failed invitation is logged and reported,
// never retried, and never stops the batch.
package invite

import (
	"context"
	"log"

	"invite-bot/internal/models"
)

type Sender interface {
	InviteToTeam(ctx context.Context, teamID, accountID, message string) error
}

type Dispatcher struct {
	sender  Sender
	teamID  string
	message string

	invited map[string]bool
}

func NewDispatcher(sender Sender, teamID, message string) *Dispatcher {
	return &Dispatcher{
		sender:  sender,
		teamID:  teamID,
		message: message,
		invited: map[string]bool{},
	}
}

// Dispatch sends one invitation for the response's resolved account.
// At most one invitation is issued per account id per batch, even if
// duplicate accounts slip past deduplication.
func (d *Dispatcher) Dispatch(ctx context.Context, resp models.Response) models.InviteOutcome {
	out := models.InviteOutcome{Response: resp}
	if d.invited[resp.AccountID] {
		log.Printf("invite: %s already invited in this run, skipping", resp.AccountID)
		return out
	}
	d.invited[resp.AccountID] = true

	if err := d.sender.InviteToTeam(ctx, d.teamID, resp.AccountID, d.message); err != nil {
		log.Printf("invite: user %s to team %s: %v", resp.AccountID, d.teamID, err)
		out.Err = err
		return out
	}
	log.Printf("invite: sent to user %s for team %s", resp.AccountID, d.teamID)
	out.Sent = true
	return out
}
