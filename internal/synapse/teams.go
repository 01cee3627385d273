package synapse

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// challengeTeamPageLimit caps the registered-team listing at one page.
// Mirrors the platform's maximum page size.
const challengeTeamPageLimit = 1000

const memberPageSize = 50

type challengeTeam struct {
	TeamID string `json:"teamId"`
}

type challengeTeamPage struct {
	Results []challengeTeam `json:"results"`
}

// ListChallengeTeams returns the ids of every team registered for the
// challenge. The caller must not assume results beyond the page cap.
func (c *Client) ListChallengeTeams(ctx context.Context, challengeID string) ([]string, error) {
	var page challengeTeamPage
	path := fmt.Sprintf("/challenge/%s/challengeTeam?limit=%d", challengeID, challengeTeamPageLimit)
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(page.Results))
	for _, t := range page.Results {
		ids = append(ids, t.TeamID)
	}
	return ids, nil
}

type teamMember struct {
	Member struct {
		OwnerID string `json:"ownerId"`
	} `json:"member"`
}

type teamMemberPage struct {
	TotalNumberOfResults int          `json:"totalNumberOfResults"`
	Results              []teamMember `json:"results"`
}

// ListTeamMembers returns the account ids of all members of a team,
// walking the paginated listing.
func (c *Client) ListTeamMembers(ctx context.Context, teamID string) ([]string, error) {
	ids := []string{}
	for offset := 0; ; offset += memberPageSize {
		var page teamMemberPage
		path := fmt.Sprintf("/teamMembers/%s?limit=%d&offset=%d", teamID, memberPageSize, offset)
		if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
			return nil, err
		}
		for _, m := range page.Results {
			ids = append(ids, m.Member.OwnerID)
		}
		if offset+memberPageSize >= page.TotalNumberOfResults || len(page.Results) == 0 {
			break
		}
	}
	return ids, nil
}

// IsMember reports whether the account is currently a member of the team.
func (c *Client) IsMember(ctx context.Context, teamID, accountID string) (bool, error) {
	err := c.do(ctx, http.MethodGet, "/team/"+teamID+"/member/"+accountID, nil, nil)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

type openInvitation struct {
	InviteeID string `json:"inviteeId"`
}

type openInvitationPage struct {
	TotalNumberOfResults int              `json:"totalNumberOfResults"`
	Results              []openInvitation `json:"results"`
}

// HasOpenInvitation reports whether the account already has an
// outstanding, unaccepted invitation to the team.
func (c *Client) HasOpenInvitation(ctx context.Context, teamID, accountID string) (bool, error) {
	for offset := 0; ; offset += memberPageSize {
		var page openInvitationPage
		path := fmt.Sprintf("/team/%s/openInvitation?limit=%d&offset=%d", teamID, memberPageSize, offset)
		if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
			return false, err
		}
		for _, inv := range page.Results {
			if inv.InviteeID == accountID {
				return true, nil
			}
		}
		if offset+memberPageSize >= page.TotalNumberOfResults || len(page.Results) == 0 {
			return false, nil
		}
	}
}

type membershipInvitation struct {
	TeamID    string `json:"teamId"`
	InviteeID string `json:"inviteeId"`
	Message   string `json:"message"`
}

// InviteToTeam issues a join invitation carrying the given message.
func (c *Client) InviteToTeam(ctx context.Context, teamID, accountID, message string) error {
	return c.do(ctx, http.MethodPost, "/membershipInvitation", membershipInvitation{
		TeamID:    teamID,
		InviteeID: accountID,
		Message:   message,
	}, nil)
}
