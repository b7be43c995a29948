package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amoralabs/amora-chat/internal/api"
	"github.com/amoralabs/amora-chat/internal/assist"
	"github.com/amoralabs/amora-chat/internal/auth"
	"github.com/amoralabs/amora-chat/internal/config"
	"github.com/amoralabs/amora-chat/internal/entitlement"
	"github.com/amoralabs/amora-chat/internal/push"
	"github.com/amoralabs/amora-chat/internal/session"
	"github.com/amoralabs/amora-chat/internal/tui"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s <match-id>\n\nOpens the chat for one match. Configuration via env/.env (AMORA_API_URL, AMORA_TOKEN, ...).\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	matchID := flag.Arg(0)
	if matchID == "" {
		flag.Usage()
		os.Exit(2)
	}

	// Load configuration from environment
	cfg := config.Load()
	if cfg.AuthToken == "" {
		log.Fatal("AMORA_TOKEN is required")
	}

	// The client's own identity comes from the token; opaque demo tokens
	// double as the user id against the mock server
	identity, err := auth.FromToken(cfg.AuthToken)
	if err != nil {
		identity = auth.Identity{UserID: cfg.AuthToken}
	}
	if identity.Expired(time.Now()) {
		log.Printf("WARNING: auth token expired at %v; calls will likely fail with 401", identity.ExpiresAt)
	}

	client := api.NewClient(cfg.APIBaseURL, cfg.AuthToken)

	// The assistant is only reachable when entitlement already allows it
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	decision, _, err := entitlement.CheckAssistant(ctx, client)
	cancel()
	if err != nil {
		log.Printf("Assistant status check failed: %v", err)
		decision = entitlement.Decision{Reason: "assistant status unknown"}
	}

	// Controllers notify the program of out-of-band updates; p is set
	// before the controllers start
	var p *tea.Program
	notify := func() {
		if p != nil {
			p.Send(tui.RefreshMsg{})
		}
	}

	var assistCtl *assist.Controller
	if decision.Allowed {
		assistCtl = assist.New(client, matchID, assist.Options{
			RefreshDelay: cfg.AssistRefreshDelay,
			OnUpdate:     notify,
		})
		defer assistCtl.Close()
	}

	sessionCtl := session.New(client, matchID, session.Options{
		PollInterval: cfg.PollInterval,
		OnUpdate:     notify,
		OnSent: func() {
			if assistCtl != nil {
				assistCtl.NotifySent()
			}
		},
	})
	defer sessionCtl.Close()

	model := tui.NewModel(sessionCtl, assistCtl, identity.UserID, decision.Reason)
	p = tea.NewProgram(model, tea.WithAltScreen())

	sessionCtl.Start()

	if cfg.PushStream {
		watcher, err := push.NewWatcher(cfg.APIBaseURL, cfg.AuthToken, matchID, sessionCtl.Refresh)
		if err != nil {
			log.Printf("Push stream disabled: %v", err)
		} else {
			watcher.Start()
			defer watcher.Stop()
		}
	}

	if _, err := p.Run(); err != nil {
		log.Fatalf("chat UI failed: %v", err)
	}
}
