// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers serves resolved content to the client application. It
// checks the Valkey content cache before resolving through the content
// registry, and caches what the live backend returned.
package handlers

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/blake2b"

	"sitecontent/internal/backend"
	"sitecontent/internal/cache"
	"sitecontent/internal/content"
	"sitecontent/internal/contract"
	"sitecontent/internal/fetcher"
	"sitecontent/internal/i18n"
	"sitecontent/internal/markdown"
	"sitecontent/internal/models"
	"sitecontent/internal/tenant"
)

// AnyLanguage as the lang parameter of an item lookup matches any variant.
const AnyLanguage = "any"

// PageURLParam names the page being rendered on document requests. Its
// host and lang parameter feed tenant and language resolution.
const PageURLParam = "url"

// Content groups the content gateway handlers.
type Content struct {
	registry *content.Registry
	fetcher  *fetcher.Fetcher
	cache    *cache.ContentCache
	logger   *slog.Logger
}

// NewContent creates the content gateway. contentCache may be nil.
func NewContent(registry *content.Registry, f *fetcher.Fetcher, contentCache *cache.ContentCache, logger *slog.Logger) *Content {
	if logger == nil {
		logger = slog.Default()
	}
	return &Content{registry: registry, fetcher: f, cache: contentCache, logger: logger}
}

// Routes mounts the gateway on r.
func (h *Content) Routes(r chi.Router) {
	r.Get("/documents/{resource}/{slug}", h.Document)
	r.Get("/{resource}", h.List)
	r.Get("/{resource}/{id}", h.Item)
}

// documentResponse is a fetched document with its body rendered to HTML.
type documentResponse struct {
	*fetcher.Result
	BodyHTML string `json:"bodyHtml,omitempty"`
}

// List serves one page of a resource.
func (h *Content) List(w http.ResponseWriter, r *http.Request) {
	res, ok := h.resource(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	page, limit := contract.ParsePaging(r.URL.Query())
	lang := requestLanguage(r)
	tenantID := requestTenant(r)
	key := cache.ListKey(tenantID, res, lang, page, limit)

	if cached, ok := h.cache.Get(ctx, key); ok {
		h.writeCached(w, r, cached)
		return
	}

	params := content.ListParams{Tenant: tenantID, Page: page, Limit: limit, Language: lang}
	result, err := h.registry.List(ctx, res, params)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	body, err := json.Marshal(result)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if result.Source == models.SourceBackend {
		h.cache.Set(ctx, key, body)
		h.prefetchNext(ctx, res, params, result)
	}
	h.writeCached(w, r, body)
}

// prefetchNext warms the cache with the page after current.
func (h *Content) prefetchNext(ctx context.Context, res models.Resource, params content.ListParams, current *models.Page) {
	if h.cache == nil || current.CurrentPage >= current.TotalPages {
		return
	}
	next := params
	next.Page = current.CurrentPage + 1
	h.registry.Prefetch(ctx, res, next, func(p *models.Page) {
		if p.Source != models.SourceBackend {
			return
		}
		body, err := json.Marshal(p)
		if err != nil {
			return
		}
		h.cache.Set(context.Background(), cache.ListKey(next.Tenant, res, next.Language, next.Page, next.Limit), body)
	})
}

// Item serves one item by id or slug. The lang parameter selects the
// variant; lang=any matches whichever exists.
func (h *Content) Item(w http.ResponseWriter, r *http.Request) {
	res, ok := h.resource(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	var lang i18n.Language
	if r.URL.Query().Get(contract.LangParam) != AnyLanguage {
		lang = requestLanguage(r)
	}
	tenantID := requestTenant(r)
	key := cache.ItemKey(tenantID, res, lang, id)

	if cached, ok := h.cache.Get(ctx, key); ok {
		h.writeCached(w, r, cached)
		return
	}

	result, err := h.registry.ByID(ctx, res, content.ByIDParams{Tenant: tenantID, ID: id, Language: lang})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	body, err := json.Marshal(result)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if result.Source == models.SourceBackend {
		h.cache.Set(ctx, key, body)
	}
	h.writeCached(w, r, body)
}

// Document serves a document by slug through the fetcher. A missing
// document answers 404 with a null data field rather than an error.
func (h *Content) Document(w http.ResponseWriter, r *http.Request) {
	res, ok := h.resource(w, r)
	if !ok {
		return
	}

	req := fetcher.Request{
		Resource: res,
		Slug:     chi.URLParam(r, "slug"),
		Tenant:   requestTenant(r),
	}
	if l, ok := i18n.Parse(r.URL.Query().Get(contract.LangParam)); ok {
		req.Language = l
	}
	if raw := r.URL.Query().Get(PageURLParam); raw != "" {
		u, err := url.Parse(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid page url"})
			return
		}
		req.PageURL = u
	}

	result, err := h.fetcher.Fetch(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if result.Aborted {
		h.logger.Debug("document request aborted by client", "resource", res, "slug", req.Slug)
		return
	}
	if result.Document == nil {
		writeJSON(w, http.StatusNotFound, documentResponse{Result: result})
		return
	}

	resp := documentResponse{Result: result}
	rendered, err := markdown.ToHTML(result.Document.Item.Body)
	if err != nil {
		h.logger.Warn("render document body failed", "resource", res, "slug", req.Slug, "error", err)
	} else {
		resp.BodyHTML = rendered
	}

	body, err := json.Marshal(resp)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeCached(w, r, body)
}

// resource parses the {resource} URL parameter, answering 404 for unknown
// names.
func (h *Content) resource(w http.ResponseWriter, r *http.Request) (models.Resource, bool) {
	res, ok := models.ParseResource(chi.URLParam(r, "resource"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown resource"})
		return "", false
	}
	return res, true
}

// fail maps a resolution error to a status code. Internal details are
// logged, never returned.
func (h *Content) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, content.ErrIDRequired), errors.Is(err, fetcher.ErrSlugRequired):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, content.ErrUnknownResource):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown resource"})
	case errors.Is(err, backend.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, context.Canceled):
		h.logger.Debug("request cancelled", "path", r.URL.Path)
	default:
		h.logger.Error("resolve content failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "content unavailable"})
	}
}

// writeCached writes a JSON body with a strong ETag, answering 304 when the
// client already holds it.
func (h *Content) writeCached(w http.ResponseWriter, r *http.Request, body []byte) {
	tag := etag(body)
	w.Header().Set("ETag", tag)
	w.Header().Set("Cache-Control", "no-cache")
	if matchesETag(r.Header.Get("If-None-Match"), tag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func etag(body []byte) string {
	sum := blake2b.Sum256(body)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

func matchesETag(header, tag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == tag {
			return true
		}
	}
	return false
}

// requestLanguage applies lang query parameter > ambient language > default.
func requestLanguage(r *http.Request) i18n.Language {
	candidates := []string{r.URL.Query().Get(contract.LangParam)}
	if ambient, ok := i18n.FromContext(r.Context()); ok {
		candidates = append(candidates, ambient.String())
	}
	return i18n.Pick(candidates...)
}

func requestTenant(r *http.Request) string {
	if t, ok := tenant.FromContext(r.Context()); ok {
		return t
	}
	return tenant.Default
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
