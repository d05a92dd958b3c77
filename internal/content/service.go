// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package content resolves paginated, localized content for a tenant. Each
// call tries the backend first; when the backend fails and a mock set is
// configured, the answer comes from the mock set with language fallback.
// Every item is schema-checked, but a failed check never drops an item.
package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"sitecontent/internal/backend"
	"sitecontent/internal/i18n"
	"sitecontent/internal/models"
	"sitecontent/internal/schema"
	"sitecontent/internal/tenant"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

var (
	// ErrIDRequired is returned by ByID when no id is given. It never
	// triggers the fallback path.
	ErrIDRequired = errors.New("ID is required")
	// ErrUnknownResource is returned for resources with no binding.
	ErrUnknownResource = errors.New("unknown resource")
)

// MockSet is the fallback data of one resource. ForLanguage returns the
// items tagged lang, plus untagged items when lang is the default.
type MockSet interface {
	All() []models.Item
	ForLanguage(lang i18n.Language) []models.Item
}

// Config binds a Service to its resource.
type Config struct {
	Resource   models.Resource
	Route      string // backend path, such as "/posts"
	Collection string // envelope key of list responses
	Backend    backend.Backend
	Mocks      MockSet // nil disables the fallback path
	Validator  *schema.Validator
	Tenants    *tenant.Resolver
	Logger     *slog.Logger
}

// Service resolves one resource.
type Service struct {
	resource   models.Resource
	route      string
	collection string
	backend    backend.Backend
	mocks      MockSet
	validator  *schema.Validator
	tenants    *tenant.Resolver
	logger     *slog.Logger
}

// NewService returns a service for cfg. A missing validator is looked up
// from the resource.
func NewService(cfg Config) (*Service, error) {
	if cfg.Backend == nil {
		return nil, fmt.Errorf("content service %s: backend is required", cfg.Resource)
	}
	v := cfg.Validator
	if v == nil {
		var err error
		if v, err = schema.For(cfg.Resource); err != nil {
			return nil, fmt.Errorf("content service %s: %w", cfg.Resource, err)
		}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		resource:   cfg.Resource,
		route:      strings.Trim(cfg.Route, "/"),
		collection: cfg.Collection,
		backend:    cfg.Backend,
		mocks:      cfg.Mocks,
		validator:  v,
		tenants:    cfg.Tenants,
		logger:     logger.With("resource", cfg.Resource.String()),
	}, nil
}

// Resource returns the resource this service resolves.
func (s *Service) Resource() models.Resource {
	return s.resource
}

// ListParams selects one page. Zero values take the defaults: page 1,
// limit 10, the resolved tenant, and the default language.
type ListParams struct {
	Tenant   string
	Page     int
	Limit    int
	Language i18n.Language
}

// ByIDParams selects one item. An empty Language matches any variant.
type ByIDParams struct {
	Tenant   string
	ID       string
	Language i18n.Language
}

// List returns one page of the resource.
func (s *Service) List(ctx context.Context, p ListParams) (*models.Page, error) {
	page, limit := p.Page, p.Limit
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	lang := i18n.Pick(p.Language.String())
	tenantID := s.tenant(ctx, p.Tenant)
	log := s.logger.With("tenant", tenantID, "lang", lang.String(), "page", page, "limit", limit)

	log.Debug("content list: fetching from backend")
	env, err := s.backend.List(ctx, backend.ListQuery{
		Route:      s.route,
		Collection: s.collection,
		Tenant:     tenantID,
		Page:       page,
		Limit:      limit,
		Language:   lang,
	})
	if err == nil {
		return s.backendPage(log, env, limit), nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if s.mocks == nil {
		log.Warn("content list: backend failed, no mock data", "error", err)
		return nil, err
	}

	log.Warn("content list: backend failed, using mock data", "error", err)
	return s.mockPage(log, lang, page, limit), nil
}

func (s *Service) backendPage(log *slog.Logger, env *backend.Envelope, limit int) *models.Page {
	raw := env.Items
	if len(raw) > limit {
		raw = raw[:limit]
	}
	docs := make([]models.Document, 0, len(raw))
	for _, item := range raw {
		docs = append(docs, s.checkRaw(log, item))
	}
	return &models.Page{
		Items:       docs,
		TotalPages:  env.TotalPages,
		CurrentPage: models.ClampPage(env.CurrentPage, env.TotalPages),
		TotalItems:  env.TotalItems,
		Source:      models.SourceBackend,
	}
}

func (s *Service) mockPage(log *slog.Logger, lang i18n.Language, page, limit int) *models.Page {
	items := s.mocks.ForLanguage(lang)
	total := len(items)
	start, end := models.Window(total, page, limit)

	docs := make([]models.Document, 0, end-start)
	for _, it := range items[start:end] {
		docs = append(docs, s.checkItem(log, it))
	}
	totalPages := models.TotalPages(total, limit)
	return &models.Page{
		Items:       docs,
		TotalPages:  totalPages,
		CurrentPage: models.ClampPage(page, totalPages),
		TotalItems:  total,
		Source:      models.SourceMock,
	}
}

// ByID returns one item. When the backend fails, the mock set is searched
// in the requested language and then in the default language; a default
// language answer reports it in LangUsed.
func (s *Service) ByID(ctx context.Context, p ByIDParams) (*models.Result, error) {
	id := strings.TrimSpace(p.ID)
	if id == "" {
		return nil, ErrIDRequired
	}
	var lang i18n.Language
	if p.Language != "" {
		lang = i18n.Pick(p.Language.String())
	}
	tenantID := s.tenant(ctx, p.Tenant)
	log := s.logger.With("tenant", tenantID, "id", id, "lang", lang.String())

	log.Debug("content get: fetching from backend")
	d, err := s.backend.Get(ctx, backend.GetQuery{
		Route:      s.route,
		Collection: s.collection,
		Tenant:     tenantID,
		ID:         id,
		Language:   lang,
	})
	if err == nil {
		doc := s.checkRaw(log, d.Item)
		used := d.LangUsed
		if used == "" {
			used = languageOf(doc.Item, lang)
		}
		return &models.Result{Document: doc, LangUsed: used, Source: models.SourceBackend}, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if s.mocks == nil {
		log.Warn("content get: backend failed, no mock data", "error", err)
		return nil, err
	}

	log.Warn("content get: backend failed, using mock data", "error", err)
	all := s.mocks.All()
	if it, ok := find(all, id, func(it models.Item) bool {
		return lang == "" || it.MatchesLanguage(lang)
	}); ok {
		return &models.Result{Document: s.checkItem(log, it), LangUsed: it.EffectiveLanguage(), Source: models.SourceMock}, nil
	}
	if lang != "" && lang != i18n.Default {
		if it, ok := find(all, id, func(it models.Item) bool {
			return it.MatchesLanguage(i18n.Default)
		}); ok {
			log.Info("content get: serving default language variant", "lang_used", i18n.Default.String())
			return &models.Result{Document: s.checkItem(log, it), LangUsed: i18n.Default, Source: models.SourceMock}, nil
		}
	}
	return nil, err
}

func find(items []models.Item, id string, match func(models.Item) bool) (models.Item, bool) {
	for _, it := range items {
		if it.ID == id && match(it) {
			return it, true
		}
	}
	return models.Item{}, false
}

// languageOf guesses the served language when the backend did not say.
func languageOf(it models.Item, requested i18n.Language) i18n.Language {
	if it.Language.IsSupported() {
		return it.Language
	}
	return requested.OrDefault()
}

// tenant applies the precedence explicit > request context > resolver.
func (s *Service) tenant(ctx context.Context, explicit string) string {
	if t := strings.TrimSpace(explicit); t != "" {
		return t
	}
	if t, ok := tenant.FromContext(ctx); ok {
		return t
	}
	return s.tenants.Resolve(nil)
}

func (s *Service) checkRaw(log *slog.Logger, raw []byte) models.Document {
	doc := s.validator.Check(raw)
	if !doc.Trusted {
		log.Warn("content: item failed validation, serving it unvalidated", "item_id", doc.Item.ID, "issues", doc.Issues)
	}
	return doc
}

func (s *Service) checkItem(log *slog.Logger, it models.Item) models.Document {
	doc := s.validator.CheckItem(it)
	if !doc.Trusted {
		log.Warn("content: mock item failed validation, serving it unvalidated", "item_id", it.ID, "issues", doc.Issues)
	}
	return doc
}
