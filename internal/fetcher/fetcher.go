// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package fetcher loads single documents for detail pages. Unlike the
// content service it has no mock fallback: the backend performs language
// fallback itself and reports the language it served.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"sitecontent/internal/backend"
	"sitecontent/internal/contract"
	"sitecontent/internal/i18n"
	"sitecontent/internal/models"
	"sitecontent/internal/schema"
	"sitecontent/internal/tenant"
)

// ErrSlugRequired is returned when a request names no document.
var ErrSlugRequired = errors.New("slug is required")

// Request names one document. Language overrides every other language
// source; PageURL is the page being rendered, if any.
type Request struct {
	Resource models.Resource
	Slug     string
	Language i18n.Language
	PageURL  *url.URL
	Tenant   string
}

// Result is a fetched document. Document is nil when the backend has no
// variant of it. Aborted is set when the caller cancelled the fetch.
type Result struct {
	Document        *models.Document `json:"data"`
	LangUsed        i18n.Language    `json:"langUsed"`
	IsUsingFallback bool             `json:"isUsingFallback"`
	Aborted         bool             `json:"-"`
}

// Fetcher resolves documents against a backend.
type Fetcher struct {
	backend backend.Backend
	tenants *tenant.Resolver
	logger  *slog.Logger
}

// New returns a fetcher. tenants and logger may be nil.
func New(be backend.Backend, tenants *tenant.Resolver, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{backend: be, tenants: tenants, logger: logger}
}

// Language applies the precedence explicit override > lang query
// parameter of the page URL > ambient language in ctx > default.
func Language(ctx context.Context, override i18n.Language, pageURL *url.URL) i18n.Language {
	candidates := []string{override.String()}
	if pageURL != nil {
		candidates = append(candidates, pageURL.Query().Get(contract.LangParam))
	}
	if ambient, ok := i18n.FromContext(ctx); ok {
		candidates = append(candidates, ambient.String())
	}
	return i18n.Pick(candidates...)
}

// Fetch loads one document. A missing document is not an error; any other
// backend failure is. A cancelled fetch returns an aborted result and no
// error.
func (f *Fetcher) Fetch(ctx context.Context, req Request) (*Result, error) {
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		return nil, ErrSlugRequired
	}
	v, err := schema.For(req.Resource)
	if err != nil {
		return nil, err
	}

	lang := Language(ctx, req.Language, req.PageURL)
	tenantID := f.tenant(ctx, req)
	log := f.logger.With("resource", req.Resource.String(), "slug", slug, "lang", lang.String(), "tenant", tenantID)

	detail, err := f.backend.Get(ctx, backend.GetQuery{
		Route:      req.Resource.Endpoint(),
		Collection: req.Resource.Collection(),
		Tenant:     tenantID,
		ID:         slug,
		Language:   lang,
	})
	switch {
	case ctx.Err() != nil:
		log.Info("document fetch aborted", "error", ctx.Err())
		return &Result{LangUsed: lang, Aborted: true}, nil
	case errors.Is(err, backend.ErrNotFound):
		log.Debug("document not found")
		return &Result{LangUsed: lang}, nil
	case err != nil:
		return nil, fmt.Errorf("fetch %s %q: %w", req.Resource, slug, err)
	}

	doc := v.Check(detail.Item)
	if !doc.Trusted {
		log.Warn("document failed validation, serving it unvalidated", "issues", doc.Issues)
	}
	used := detail.LangUsed
	if used == "" {
		used = lang
		if doc.Item.Language.IsSupported() {
			used = doc.Item.Language
		}
	}
	return &Result{
		Document:        &doc,
		LangUsed:        used,
		IsUsingFallback: used != lang,
	}, nil
}

func (f *Fetcher) tenant(ctx context.Context, req Request) string {
	if t := strings.TrimSpace(req.Tenant); t != "" {
		return t
	}
	if t, ok := tenant.FromContext(ctx); ok {
		return t
	}
	return f.tenants.Resolve(req.PageURL)
}
