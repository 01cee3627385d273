package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"invite-bot/internal/batch"
	"invite-bot/internal/config"
	"invite-bot/internal/notify"
	"invite-bot/internal/server"
	"invite-bot/internal/source"
	"invite-bot/internal/synapse"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	client, err := synapse.New(cfg.SynapseBaseURL, cfg.SynapseAuthToken)
	if err != nil {
		log.Fatalf("synapse: %v", err)
	}

	src, err := source.New(cfg)
	if err != nil {
		log.Fatalf("source: %v", err)
	}

	notifier, err := notify.NewNotifier(cfg, client)
	if err != nil {
		log.Fatalf("notify: %v", err)
	}

	runner := batch.NewRunner(cfg, batch.Deps{
		Source:     src,
		Directory:  client,
		Teams:      client,
		Lister:     client,
		Challenges: client,
		Inviter:    client,
		Notifier:   notifier,
	})

	if cfg.RunMode == "once" {
		sum, err := runner.Run(context.Background())
		if err != nil {
			log.Fatalf("run: %v", err)
		}
		log.Printf("done: fetched=%d unique=%d accepted=%d invited=%d rejected=%v",
			sum.Fetched, sum.Unique, sum.Accepted, sum.Invited, sum.Rejected)
		return
	}

	httpSrv := server.New(cfg, runner)

	go func() {
		log.Printf("HTTP listening on %s", cfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server: %v", err)
		}
	}()

	// Graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctxTimeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(ctxTimeout)

	log.Println("bye")
}
