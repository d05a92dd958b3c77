// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"sitecontent/internal/backend"
	"sitecontent/internal/cache"
	"sitecontent/internal/config"
	"sitecontent/internal/content"
	"sitecontent/internal/contract"
	"sitecontent/internal/database"
	"sitecontent/internal/docstore"
	"sitecontent/internal/fetcher"
	"sitecontent/internal/mock"
	"sitecontent/internal/tenant"
)

// mockBaseURL addresses the in-process contract in mock mode. Requests
// never leave the process.
const mockBaseURL = "http://mock.internal/api"

// app holds the wired dependencies shared by the subcommands.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	db      *sql.DB
	valkey  *redis.Client
	cache   *cache.ContentCache
	dataset *mock.Dataset

	api      contract.Source // served under /api; nil for the rest backend
	backend  backend.Backend
	tenants  *tenant.Resolver
	registry *content.Registry
	fetcher  *fetcher.Fetcher
}

// newApp connects to the services the configured backend needs and wires
// the content layer on top.
func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	a := &app{
		cfg:     cfg,
		logger:  logger,
		dataset: mock.NewDataset(),
		tenants: tenant.NewResolver(cfg.MultiTenant, cfg.IsDev(), cfg.TenantDevDefault),
	}

	var err error
	switch cfg.ContentBackend {
	case config.BackendMock:
		a.api = a.dataset
		a.backend, err = backend.NewREST(mockBaseURL,
			backend.WithHTTPClient(contract.NewClient(apiHandler(a.dataset, logger), cfg.HTTPTimeout)),
			backend.WithLogger(logger),
		)
	case config.BackendREST:
		a.backend, err = backend.NewREST(cfg.ContentAPIURL,
			backend.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
			backend.WithLogger(logger),
		)
	case config.BackendDocument:
		if a.db, err = a.openDB(ctx); err == nil {
			store := docstore.New(a.db)
			a.api = store
			a.backend = store.Backend()
		}
	default:
		err = fmt.Errorf("unknown content backend %q", cfg.ContentBackend)
	}
	if err != nil {
		a.close()
		return nil, err
	}

	// The cache is optional; the server works without Valkey.
	if cfg.CacheEnabled() {
		client, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			logger.Warn("valkey unavailable, content cache disabled", "error", err)
		} else {
			a.valkey = client
			a.cache = cache.NewContentCache(client, cfg.CacheTTL)
		}
	}

	rc := content.RegistryConfig{Backend: a.backend, Tenants: a.tenants, Logger: logger}
	if cfg.MockFallback {
		rc.Mocks = content.MockSets(a.dataset.Set)
	}
	a.registry = content.NewRegistry(rc)
	a.fetcher = fetcher.New(a.backend, a.tenants, logger)

	logger.Info("content layer ready",
		"backend", cfg.ContentBackend,
		"mock_fallback", cfg.MockFallback,
		"multi_tenant", cfg.MultiTenant,
		"cache", a.cache != nil,
	)
	return a, nil
}

// openDB connects to Postgres and applies pending migrations.
func (a *app) openDB(ctx context.Context) (*sql.DB, error) {
	db, err := database.Connect(ctx, a.cfg.DSN())
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (a *app) close() {
	if a.valkey != nil {
		a.valkey.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}

// apiHandler mounts the contract under /api, matching mockBaseURL.
func apiHandler(src contract.Source, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		contract.Register(r, src, logger)
	})
	return r
}
