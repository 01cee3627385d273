package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"invite-bot/internal/batch"
	"invite-bot/internal/config"
	"invite-bot/internal/util"
)

// New builds the serve-mode HTTP server: a health probe plus an
// HMAC-authenticated trigger that runs one batch on demand.
func New(cfg config.Config, runner *batch.Runner) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Trigger a run. Body is signed with X-Signature (HMAC SHA-256)
	// so only the scheduler can kick it off.
	mux.HandleFunc("/run", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		body, _ := io.ReadAll(r.Body)
		sig := r.Header.Get("X-Signature")
		expected := util.HMACSHA256Hex(cfg.RunWebhookSecret, string(body))
		if sig == "" || sig != expected {
			http.Error(w, "invalid signature", http.StatusUnauthorized)
			return
		}

		sum, err := runner.Run(r.Context())
		if err != nil {
			log.Printf("server: run: %v", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(sum)
	})

	return &http.Server{Addr: cfg.HTTPAddr, Handler: mux}
}
