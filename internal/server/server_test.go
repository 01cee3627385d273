package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"invite-bot/internal/config"
	"invite-bot/internal/util"
)

func testServer() *http.Server {
	cfg := config.Config{HTTPAddr: ":0", RunWebhookSecret: "s3cret"}
	// runner is only reached behind a valid signature
	return New(cfg, nil)
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	testServer().Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRunRejectsBadSignature(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/run", strings.NewReader("{}"))
	req.Header.Set("X-Signature", "wrong")

	rec := httptest.NewRecorder()
	testServer().Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRunRejectsMissingSignature(t *testing.T) {
	rec := httptest.NewRecorder()
	testServer().Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/run", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRunRejectsGet(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/run", nil)
	req.Header.Set("X-Signature", util.HMACSHA256Hex("s3cret", ""))

	rec := httptest.NewRecorder()
	testServer().Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
