// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/pollbot/cliparse"
	"github.com/danielhkuo/pollbot/handlers"
	"github.com/danielhkuo/pollbot/middleware"
	"github.com/danielhkuo/pollbot/notify"
	"github.com/danielhkuo/pollbot/polls"
)

// maxSlackBody bounds slash command and interaction payloads
const maxSlackBody = 64 << 10

func NewRouter(ctrl *polls.Controller, tasks *notify.Dispatcher, cfg cliparse.Config) *chi.Mux {
	r := chi.NewRouter()

	// Metrics middleware (first to capture all requests)
	r.Use(middleware.Metrics)

	// Standard middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.WithLogging)
	r.Use(chimw.Recoverer)

	// Initialize handlers
	slackHandler := handlers.NewSlackHandler(ctrl, tasks)

	// Health check and scraping
	r.Get("/health", handlers.Health)
	r.Handle("/metrics", promhttp.Handler())

	// Slack callbacks (signed)
	r.Group(func(r chi.Router) {
		r.Use(middleware.MaxBodySize(maxSlackBody))
		r.Use(middleware.VerifySlack(cfg.SigningSecret))

		r.Post("/slack/commands", slackHandler.Command)
		r.Post("/slack/interactions", slackHandler.Interactions)
	})

	// Root endpoint
	r.Get("/", handlers.Root)

	return r
}
