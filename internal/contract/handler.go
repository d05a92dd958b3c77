// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package contract

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sitecontent/internal/i18n"
	"sitecontent/internal/models"
	"sitecontent/internal/tenant"
)

// DetailResponse is the body of a detail lookup.
type DetailResponse struct {
	Data     *models.Item  `json:"data"`
	LangUsed i18n.Language `json:"langUsed"`
}

type handler struct {
	src    Source
	logger *slog.Logger
}

// Register mounts the list and detail routes of every resource on r.
func Register(r chi.Router, src Source, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	h := &handler{src: src, logger: logger}
	for _, res := range models.Resources() {
		r.Get("/"+res.Endpoint(), h.list(res))
		r.Get("/"+res.Endpoint()+"/{id}", h.detail(res))
	}
}

// NewHandler returns a router serving the contract at its root.
func NewHandler(src Source, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	Register(r, src, logger)
	return r
}

func (h *handler) list(res models.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, limit := ParsePaging(r.URL.Query())
		lang := i18n.Pick(r.URL.Query().Get(LangParam))
		q := Query{
			Resource: res,
			Tenant:   queryTenant(r),
			Language: lang,
			Page:     page,
			Limit:    limit,
		}

		items, total, err := h.src.List(r.Context(), q)
		if err != nil {
			h.logger.Error("contract list", "resource", res, "tenant", q.Tenant, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return
		}
		if items == nil {
			items = []models.Item{}
		}

		totalPages := models.TotalPages(total, limit)
		writeJSON(w, http.StatusOK, map[string]any{
			res.Endpoint(): items,
			"totalPages":   totalPages,
			"currentPage":  models.ClampPage(page, totalPages),
			"totalItems":   total,
		})
	}
}

func (h *handler) detail(res models.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var lang i18n.Language
		if raw := r.URL.Query().Get(LangParam); raw != "" {
			lang = i18n.Pick(raw)
		}
		q := Query{Resource: res, Tenant: queryTenant(r), Language: lang}

		item, used, err := h.src.Find(r.Context(), q, id)
		if errors.Is(err, ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]any{"error": "not found", "langUsed": lang.OrDefault()})
			return
		}
		if err != nil {
			h.logger.Error("contract detail", "resource", res, "id", id, "tenant", q.Tenant, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return
		}
		writeJSON(w, http.StatusOK, DetailResponse{Data: item, LangUsed: used})
	}
}

func queryTenant(r *http.Request) string {
	if t := r.URL.Query().Get(tenant.QueryParam); t != "" {
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
