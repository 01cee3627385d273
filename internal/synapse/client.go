package synapse

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrNotFound is returned when the platform reports no such principal,
// entity, or membership.
var ErrNotFound = errors.New("synapse: not found")

type Client struct {
	httpClient *http.Client
	baseURL    string
	authToken  string
}

func New(baseURL, authToken string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("synapse base URL empty")
	}
	if authToken == "" {
		return nil, fmt.Errorf("synapse auth token empty")
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		authToken:  authToken,
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.authToken)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("synapse: %s %s: status %d: %s", method, path, resp.StatusCode, snippet)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("synapse: decode %s: %w", path, err)
		}
	}
	return nil
}

type principalAliasRequest struct {
	Alias string `json:"alias"`
	Type  string `json:"type"`
}

type principalAliasResponse struct {
	PrincipalID json.Number `json:"principalId"`
}

// ResolveIdentity maps a claimed username to its canonical principal id.
// Returns ErrNotFound when no such user exists.
func (c *Client) ResolveIdentity(ctx context.Context, claim string) (string, error) {
	if claim == "" {
		return "", ErrNotFound
	}
	var out principalAliasResponse
	err := c.do(ctx, http.MethodPost, "/principal/alias",
		principalAliasRequest{Alias: claim, Type: "USER_NAME"}, &out)
	if err != nil {
		return "", err
	}
	if out.PrincipalID.String() == "" {
		return "", ErrNotFound
	}
	return out.PrincipalID.String(), nil
}

type challengeResponse struct {
	ID string `json:"id"`
}

// ChallengeForEntity resolves the challenge id attached to a project entity.
func (c *Client) ChallengeForEntity(ctx context.Context, entityID string) (string, error) {
	var out challengeResponse
	if err := c.do(ctx, http.MethodGet, "/entity/"+entityID+"/challenge", nil, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", fmt.Errorf("synapse: entity %s has no challenge", entityID)
	}
	return out.ID, nil
}

type userProfile struct {
	OwnerID string `json:"ownerId"`
}

// OwnProfile returns the account id of the authenticated user.
func (c *Client) OwnProfile(ctx context.Context) (string, error) {
	var out userProfile
	if err := c.do(ctx, http.MethodGet, "/userProfile", nil, &out); err != nil {
		return "", err
	}
	return out.OwnerID, nil
}

type userMessage struct {
	Recipients  []string `json:"recipients"`
	Subject     string   `json:"subject"`
	Body        string   `json:"body"`
	ContentType string   `json:"contentType"`
}

// SendUserMessage delivers an HTML message to a single account.
func (c *Client) SendUserMessage(ctx context.Context, accountID, subject, body string) error {
	return c.do(ctx, http.MethodPost, "/message/user", userMessage{
		Recipients:  []string{accountID},
		Subject:     subject,
		Body:        body,
		ContentType: "text/html",
	}, nil)
}
