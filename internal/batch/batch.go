// Package batch runs one pass of the invitation pipeline: fetch,
// dedupe, snapshot registered membership, evaluate, dispatch, notify.
package batch

import (
	"context"
	"fmt"
	"log"

	"invite-bot/internal/config"
	"invite-bot/internal/dedupe"
	"invite-bot/internal/eligibility"
	"invite-bot/internal/invite"
	"invite-bot/internal/models"
	"invite-bot/internal/notify"
	"invite-bot/internal/source"
)

// ChallengeResolver discovers the challenge id behind the configured
// project entity.
type ChallengeResolver interface {
	ChallengeForEntity(ctx context.Context, entityID string) (string, error)
}

// Deps are the collaborators a run needs. The synapse client satisfies
// everything but Source and Notifier.
type Deps struct {
	Source     source.ResponseSource
	Directory  eligibility.Directory
	Teams      eligibility.TeamMembership
	Lister     eligibility.TeamLister
	Challenges ChallengeResolver
	Inviter    invite.Sender
	Notifier   notify.Notifier
}

// Summary is what one run did, for logging and the serve-mode response.
type Summary struct {
	Fetched  int                         `json:"fetched"`
	Unique   int                         `json:"unique"`
	Accepted int                         `json:"accepted"`
	Invited  int                         `json:"invited"`
	Rejected map[models.RejectReason]int `json:"rejected"`
}

type Runner struct {
	cfg  config.Config
	deps Deps
}

func NewRunner(cfg config.Config, deps Deps) *Runner {
	return &Runner{cfg: cfg, deps: deps}
}

// Run executes one batch synchronously, response by response in source
// order. Per-response rejections and per-invitation failures never
// abort the run; only fetch and snapshot construction are fatal.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	sum := Summary{Rejected: map[models.RejectReason]int{}}

	rows, err := r.deps.Source.Fetch(ctx)
	if err != nil {
		return sum, fmt.Errorf("fetch responses: %w", err)
	}
	sum.Fetched = len(rows)
	log.Printf("batch: fetched %d rows from %s source", len(rows), r.deps.Source.Name())

	unique := dedupe.ByIdentityClaim(rows)
	sum.Unique = len(unique)

	challengeID, err := r.deps.Challenges.ChallengeForEntity(ctx, r.cfg.ChallengeEntityID)
	if err != nil {
		return sum, fmt.Errorf("resolve challenge: %w", err)
	}

	registered, err := eligibility.BuildRegisteredSet(ctx, r.deps.Lister, r.cfg.RegistrationTeamID, challengeID)
	if err != nil {
		return sum, fmt.Errorf("build registered set: %w", err)
	}

	eval := eligibility.NewEvaluator(r.deps.Directory, r.deps.Teams,
		r.cfg.RegistrationTeamID, r.cfg.DataAccessTeamID, registered)

	accepted := []models.Response{}
	for _, resp := range unique {
		decision := eval.Evaluate(ctx, resp)
		if !decision.Accepted {
			sum.Rejected[decision.Reason]++
			continue
		}
		resp.AccountID = decision.AccountID
		accepted = append(accepted, resp)
	}
	sum.Accepted = len(accepted)
	log.Printf("batch: %d valid responses out of %d unique", len(accepted), len(unique))

	if len(accepted) == 0 {
		log.Printf("batch: no valid responses, skipping invitations and notification")
		return sum, nil
	}

	dispatcher := invite.NewDispatcher(r.deps.Inviter, r.cfg.DataAccessTeamID, r.cfg.InviteMessage)
	invited := []models.Response{}
	for _, resp := range accepted {
		outcome := dispatcher.Dispatch(ctx, resp)
		if outcome.Sent {
			invited = append(invited, resp)
		}
	}
	sum.Invited = len(invited)

	// summary covers every accepted response, including ones whose
	// invitation failed, so the admin sees the whole decision set
	if err := r.deps.Notifier.NotifyInvited(ctx, accepted); err != nil {
		log.Printf("batch: notify admin: %v", err)
	}
	return sum, nil
}
