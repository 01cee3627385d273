package eligibility

import (
	"context"
	"log"
)

// RegisteredSet is the snapshot of account ids confirmed to be part of
// the challenge's eligible population. Built once per run; every
// response in a batch is evaluated against the same snapshot even if
// platform state changes mid-run.
type RegisteredSet map[string]struct{}

func (s RegisteredSet) Contains(accountID string) bool {
	_, ok := s[accountID]
	return ok
}

// TeamLister is the read side needed to build the snapshot.
type TeamLister interface {
	ListChallengeTeams(ctx context.Context, challengeID string) ([]string, error)
	ListTeamMembers(ctx context.Context, teamID string) ([]string, error)
}

// BuildRegisteredSet computes the union of the registration team's
// direct members and the members of every team registered for the
// challenge.
func BuildRegisteredSet(ctx context.Context, lister TeamLister, registrationTeamID, challengeID string) (RegisteredSet, error) {
	set := RegisteredSet{}

	members, err := lister.ListTeamMembers(ctx, registrationTeamID)
	if err != nil {
		return nil, err
	}
	for _, id := range members {
		set[id] = struct{}{}
	}

	teamIDs, err := lister.ListChallengeTeams(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	log.Printf("eligibility: %d registered teams", len(teamIDs))
	for _, teamID := range teamIDs {
		members, err := lister.ListTeamMembers(ctx, teamID)
		if err != nil {
			// a single unreadable team should not sink the run
			log.Printf("eligibility: list members of team %s: %v", teamID, err)
			continue
		}
		for _, id := range members {
			set[id] = struct{}{}
		}
	}
	log.Printf("eligibility: %d registered members total", len(set))
	return set, nil
}
