// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// content server. It organizes routes into the backend contract (/api) and
// the content gateway (/v1).
package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sitecontent/internal/contract"
	"sitecontent/internal/handlers"
	"sitecontent/internal/i18n"
	"sitecontent/internal/middleware"
	"sitecontent/internal/tenant"
)

// Options carries the handler groups and per-request policies.
type Options struct {
	// Content serves /v1. Required.
	Content *handlers.Content

	// API serves the backend contract under /api. Nil when content lives
	// in a remote backend.
	API contract.Source

	Tenants     *tenant.Resolver
	RateLimiter *middleware.RateLimiter // nil disables rate limiting
	Logger      *slog.Logger
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger(opts.Logger))
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler)

	// Backend contract, read by the REST backend of other deployments.
	if opts.API != nil {
		r.Route("/api", func(r chi.Router) {
			contract.Register(r, opts.API, opts.Logger)
		})
	}

	// Content gateway: tenant and language are resolved per request.
	r.Route("/v1", func(r chi.Router) {
		r.Use(opts.Tenants.Middleware)
		r.Use(i18n.Middleware)
		if opts.RateLimiter != nil {
			r.Use(opts.RateLimiter.Middleware)
		}
		opts.Content.Routes(r)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
