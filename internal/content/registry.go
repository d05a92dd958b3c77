// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"sitecontent/internal/backend"
	"sitecontent/internal/i18n"
	"sitecontent/internal/models"
	"sitecontent/internal/schema"
	"sitecontent/internal/tenant"
)

// prefetchTimeout bounds a background prefetch.
const prefetchTimeout = 10 * time.Second

// Binding is the static configuration of one resource.
type Binding struct {
	Route      string
	Collection string
	Mocks      MockSet
}

// MockSource provides the mock set of a resource.
type MockSource interface {
	MockSet(resource models.Resource) (MockSet, bool)
}

type mockLookup func(models.Resource) (MockSet, bool)

func (f mockLookup) MockSet(resource models.Resource) (MockSet, bool) {
	return f(resource)
}

// MockSets adapts a typed lookup, such as (*mock.Dataset).Set, to a
// MockSource.
func MockSets[S MockSet](lookup func(models.Resource) (S, bool)) MockSource {
	return mockLookup(func(resource models.Resource) (MockSet, bool) {
		set, ok := lookup(resource)
		if !ok {
			return nil, false
		}
		return set, true
	})
}

// RegistryConfig holds what every service of a registry shares.
type RegistryConfig struct {
	Backend backend.Backend
	Mocks   MockSource // nil disables the fallback path for every resource
	Tenants *tenant.Resolver
	Logger  *slog.Logger
}

// Registry creates services on demand, at most one per resource for its
// lifetime. It is owned by the application root; tests create their own.
type Registry struct {
	cfg    RegistryConfig
	logger *slog.Logger
	group  singleflight.Group

	mu       sync.RWMutex
	services map[models.Resource]*Service
	builds   int

	seenMu sync.Mutex
	seen   map[string]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry(cfg RegistryConfig) *Registry {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		cfg:      cfg,
		logger:   logger,
		services: make(map[models.Resource]*Service),
		seen:     make(map[string]struct{}),
	}
}

// Binding returns the static binding of resource.
func (r *Registry) Binding(resource models.Resource) (Binding, error) {
	switch resource {
	case models.ResourceBlog, models.ResourceProjects:
	default:
		return Binding{}, fmt.Errorf("%w: %q", ErrUnknownResource, resource)
	}
	b := Binding{
		Route:      "/" + resource.Endpoint(),
		Collection: resource.Collection(),
	}
	if r.cfg.Mocks != nil {
		if set, ok := r.cfg.Mocks.MockSet(resource); ok {
			b.Mocks = set
		}
	}
	return b, nil
}

// GetOrCreate returns the service for resource, constructing it on first
// use. Concurrent first callers share one construction.
func (r *Registry) GetOrCreate(ctx context.Context, resource models.Resource) (*Service, error) {
	if svc, ok := r.lookup(resource); ok {
		return svc, nil
	}

	ch := r.group.DoChan(string(resource), func() (interface{}, error) {
		if svc, ok := r.lookup(resource); ok {
			return svc, nil
		}
		svc, err := r.build(resource)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.services[resource] = svc
		r.builds++
		r.mu.Unlock()
		return svc, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Service), nil
	}
}

// Builds reports how many services were constructed.
func (r *Registry) Builds() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.builds
}

func (r *Registry) lookup(resource models.Resource) (*Service, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	svc, ok := r.services[resource]
	return svc, ok
}

func (r *Registry) build(resource models.Resource) (*Service, error) {
	b, err := r.Binding(resource)
	if err != nil {
		return nil, err
	}
	v, err := schema.For(resource)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("content: creating service", "resource", resource.String(), "route", b.Route)
	return NewService(Config{
		Resource:   resource,
		Route:      b.Route,
		Collection: b.Collection,
		Backend:    r.cfg.Backend,
		Mocks:      b.Mocks,
		Validator:  v,
		Tenants:    r.cfg.Tenants,
		Logger:     r.logger,
	})
}

// List resolves a page of resource.
func (r *Registry) List(ctx context.Context, resource models.Resource, p ListParams) (*models.Page, error) {
	svc, err := r.GetOrCreate(ctx, resource)
	if err != nil {
		return nil, err
	}
	return svc.List(ctx, p)
}

// ByID resolves a single item of resource.
func (r *Registry) ByID(ctx context.Context, resource models.Resource, p ByIDParams) (*models.Result, error) {
	svc, err := r.GetOrCreate(ctx, resource)
	if err != nil {
		return nil, err
	}
	return svc.ByID(ctx, p)
}

// Prefetch resolves a page in the background and hands it to store. Each
// (resource, tenant, language, page, limit) key is prefetched at most once
// per registry. It reports whether a prefetch was started.
func (r *Registry) Prefetch(ctx context.Context, resource models.Resource, p ListParams, store func(*models.Page)) bool {
	key := prefetchKey(resource, p)
	r.seenMu.Lock()
	if _, ok := r.seen[key]; ok {
		r.seenMu.Unlock()
		return false
	}
	r.seen[key] = struct{}{}
	r.seenMu.Unlock()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), prefetchTimeout)
	go func() {
		defer cancel()
		page, err := r.List(ctx, resource, p)
		if err != nil {
			r.logger.Debug("content: prefetch failed", "key", key, "error", err)
			return
		}
		if store != nil {
			store(page)
		}
	}()
	return true
}

func prefetchKey(resource models.Resource, p ListParams) string {
	lang := i18n.Pick(p.Language.String())
	return fmt.Sprintf("%s|%s|%s|%d|%d", resource, p.Tenant, lang, p.Page, p.Limit)
}
