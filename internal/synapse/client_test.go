package synapse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, "test-token")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestResolveIdentity(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/principal/alias" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Fatalf("unexpected auth header %q", got)
		}
		var req principalAliasRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if req.Alias != "bob" || req.Type != "USER_NAME" {
			t.Fatalf("unexpected request body %+v", req)
		}
		fmt.Fprint(w, `{"principalId": 12345}`)
	})

	id, err := c.ResolveIdentity(context.Background(), "bob")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if id != "12345" {
		t.Fatalf("expected 12345, got %q", id)
	}
}

func TestResolveIdentityNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	if _, err := c.ResolveIdentity(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveIdentityEmptyClaim(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for empty claim")
	})

	if _, err := c.ResolveIdentity(context.Background(), ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestIsMember(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/team/t1/member/7" {
			fmt.Fprint(w, `{"teamId":"t1","memberId":"7"}`)
			return
		}
		http.NotFound(w, r)
	})

	ok, err := c.IsMember(context.Background(), "t1", "7")
	if err != nil || !ok {
		t.Fatalf("expected member, got %v %v", ok, err)
	}

	ok, err = c.IsMember(context.Background(), "t1", "8")
	if err != nil || ok {
		t.Fatalf("expected non-member, got %v %v", ok, err)
	}
}

func TestListTeamMembersPaginates(t *testing.T) {
	const total = 60
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		page := teamMemberPage{TotalNumberOfResults: total}
		for i := offset; i < total && i < offset+limit; i++ {
			var m teamMember
			m.Member.OwnerID = strconv.Itoa(i)
			page.Results = append(page.Results, m)
		}
		_ = json.NewEncoder(w).Encode(page)
	})

	ids, err := c.ListTeamMembers(context.Background(), "t1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != total {
		t.Fatalf("expected %d members, got %d", total, len(ids))
	}
	if ids[0] != "0" || ids[total-1] != "59" {
		t.Fatalf("unexpected ids at bounds: %s %s", ids[0], ids[total-1])
	}
}

func TestListChallengeTeams(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/challenge/ch1/challengeTeam") {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "1000" {
			t.Fatalf("expected page cap 1000, got %q", got)
		}
		fmt.Fprint(w, `{"results":[{"teamId":"t1"},{"teamId":"t2"}]}`)
	})

	ids, err := c.ListChallengeTeams(context.Background(), "ch1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != 2 || ids[0] != "t1" || ids[1] != "t2" {
		t.Fatalf("unexpected teams %v", ids)
	}
}

func TestHasOpenInvitation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"totalNumberOfResults":2,"results":[{"inviteeId":"5"},{"inviteeId":"7"}]}`)
	})

	ok, err := c.HasOpenInvitation(context.Background(), "t1", "7")
	if err != nil || !ok {
		t.Fatalf("expected pending invitation, got %v %v", ok, err)
	}
	ok, err = c.HasOpenInvitation(context.Background(), "t1", "9")
	if err != nil || ok {
		t.Fatalf("expected no invitation, got %v %v", ok, err)
	}
}

func TestInviteToTeam(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/membershipInvitation" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var inv membershipInvitation
		if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if inv.TeamID != "t1" || inv.InviteeID != "7" || inv.Message != "hi" {
			t.Fatalf("unexpected invitation %+v", inv)
		}
		w.WriteHeader(http.StatusCreated)
	})

	if err := c.InviteToTeam(context.Background(), "t1", "7", "hi"); err != nil {
		t.Fatalf("invite: %v", err)
	}
}

func TestDoReportsServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	})

	_, err := c.ListTeamMembers(context.Background(), "t1")
	if err == nil || !strings.Contains(err.Error(), "503") {
		t.Fatalf("expected 503 error, got %v", err)
	}
}
