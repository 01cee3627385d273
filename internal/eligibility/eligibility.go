// Package eligibility decides, per survey response, whether the
// respondent qualifies for a team-join invitation.
package eligibility

import (
	"context"
	"errors"
	"log"

	"invite-bot/internal/models"
	"invite-bot/internal/synapse"
)

// Directory resolves identity claims to canonical account ids.
// synapse.ErrNotFound signals an unknown identity; any other error is
// treated as transient.
type Directory interface {
	ResolveIdentity(ctx context.Context, claim string) (string, error)
}

// TeamMembership answers current per-account membership and invitation
// state. Queried fresh per response, no caching, so decisions always
// reflect platform state at evaluation time.
type TeamMembership interface {
	IsMember(ctx context.Context, teamID, accountID string) (bool, error)
	HasOpenInvitation(ctx context.Context, teamID, accountID string) (bool, error)
}

type Evaluator struct {
	dir   Directory
	teams TeamMembership

	registrationTeamID string
	targetTeamID       string
	registered         RegisteredSet
}

func NewEvaluator(dir Directory, teams TeamMembership, registrationTeamID, targetTeamID string, registered RegisteredSet) *Evaluator {
	return &Evaluator{
		dir:                dir,
		teams:              teams,
		registrationTeamID: registrationTeamID,
		targetTeamID:       targetTeamID,
		registered:         registered,
	}
}

// Evaluate applies the eligibility checks in fixed precedence; the
// first failing check decides the rejection reason. The order matters:
// it picks the most specific diagnostic and gates the membership
// queries behind identity resolution.
func (e *Evaluator) Evaluate(ctx context.Context, resp models.Response) models.Decision {
	if resp.IdentityClaim == "" {
		return models.Reject(models.ReasonUnknownIdentity)
	}

	accountID, err := e.dir.ResolveIdentity(ctx, resp.IdentityClaim)
	if errors.Is(err, synapse.ErrNotFound) {
		log.Printf("eligibility: unknown identity %q", resp.IdentityClaim)
		return models.Reject(models.ReasonUnknownIdentity)
	}
	if err != nil {
		log.Printf("eligibility: resolve %q: %v", resp.IdentityClaim, err)
		return models.Reject(models.ReasonQueryFailed)
	}

	registered := e.registered.Contains(accountID)
	if !registered {
		ok, err := e.teams.IsMember(ctx, e.registrationTeamID, accountID)
		if err != nil {
			log.Printf("eligibility: registration check for %s: %v", accountID, err)
			return models.Reject(models.ReasonQueryFailed)
		}
		registered = ok
	}
	if !registered {
		log.Printf("eligibility: %s (%q) not registered", accountID, resp.IdentityClaim)
		return models.Reject(models.ReasonNotRegistered)
	}

	member, err := e.teams.IsMember(ctx, e.targetTeamID, accountID)
	if err != nil {
		log.Printf("eligibility: membership check for %s: %v", accountID, err)
		return models.Reject(models.ReasonQueryFailed)
	}
	if member {
		log.Printf("eligibility: %s is already in the target team", accountID)
		return models.Reject(models.ReasonAlreadyMember)
	}

	pending, err := e.teams.HasOpenInvitation(ctx, e.targetTeamID, accountID)
	if err != nil {
		log.Printf("eligibility: invitation check for %s: %v", accountID, err)
		return models.Reject(models.ReasonQueryFailed)
	}
	if pending {
		log.Printf("eligibility: %s has a pending invitation", accountID)
		return models.Reject(models.ReasonPendingInvitation)
	}

	return models.Accept(accountID)
}
