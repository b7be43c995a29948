package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/amoralabs/amora-chat/internal/config"
	"github.com/amoralabs/amora-chat/internal/mockapi"
)

func main() {
	// Load configuration from environment
	cfg := config.Load()

	// AMORA_MOCK_ENTITLED limits which demo users may use the assistant.
	// Format: comma-separated user ids; empty entitles everyone.
	var entitled []string
	if v := os.Getenv("AMORA_MOCK_ENTITLED"); v != "" {
		for _, u := range strings.Split(v, ",") {
			entitled = append(entitled, strings.TrimSpace(u))
		}
	}

	server := mockapi.NewServer(mockapi.Options{EntitledUsers: entitled})

	// Set up router with middleware
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Mount("/", server.Handler())

	log.Printf("Amora mock API listening on %s", cfg.MockListenAddr)
	log.Fatal(http.ListenAndServe(cfg.MockListenAddr, r))
}
