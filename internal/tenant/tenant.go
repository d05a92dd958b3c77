// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package tenant resolves the active tenant for a request. A tenant is an
// opaque string selecting the content namespace; it is never stored here,
// only derived from configuration, the URL, or the host name.
package tenant

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"strings"
)

const (
	// Default is the single tenant used when multi-tenancy is disabled.
	Default = "default"

	// DefaultDevTenant is used in development when no tenant query
	// parameter is given.
	DefaultDevTenant = "demo"

	// QueryParam is the URL query parameter read in development.
	QueryParam = "tenant"
)

// Resolver derives tenant identifiers. The zero value resolves every
// request to Default.
type Resolver struct {
	enabled   bool
	dev       bool
	devTenant string
}

// NewResolver creates a resolver. When enabled is false every call returns
// Default. In dev mode the tenant comes from the query string; otherwise it
// is the leading label of the host name.
func NewResolver(enabled, dev bool, devTenant string) *Resolver {
	devTenant = strings.TrimSpace(devTenant)
	if devTenant == "" {
		devTenant = DefaultDevTenant
	}
	return &Resolver{enabled: enabled, dev: dev, devTenant: devTenant}
}

// Enabled reports whether multi-tenancy is on.
func (r *Resolver) Enabled() bool {
	return r != nil && r.enabled
}

// Resolve returns the tenant for the given URL. u may be nil, in which case
// the resolver's fallback tenant is returned. It never fails.
func (r *Resolver) Resolve(u *url.URL) string {
	if !r.Enabled() {
		return Default
	}
	if u == nil {
		return r.devTenant
	}
	if r.dev {
		if t := strings.TrimSpace(u.Query().Get(QueryParam)); t != "" {
			return t
		}
		return r.devTenant
	}
	if t := leadingLabel(u.Hostname()); t != "" {
		return t
	}
	return r.devTenant
}

// FromRequest resolves the tenant for an inbound HTTP request, taking the
// host from the Host header when the request URL has none.
func (r *Resolver) FromRequest(req *http.Request) string {
	u := *req.URL
	if u.Host == "" {
		u.Host = req.Host
	}
	return r.Resolve(&u)
}

// Middleware stores the resolved tenant in the request context.
func (r *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := WithTenant(req.Context(), r.FromRequest(req))
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

// leadingLabel returns the subdomain label of host, or "" for hosts that
// carry no tenant (single-label names, apex domains and IP addresses).
func leadingLabel(host string) string {
	host = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(host), "."))
	if host == "" || net.ParseIP(host) != nil {
		return ""
	}
	labels := strings.Split(host, ".")
	if len(labels) < 3 || labels[0] == "" {
		return ""
	}
	return labels[0]
}

type ctxKey struct{}

// WithTenant stores a tenant id in ctx.
func WithTenant(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the tenant stored in ctx, if any.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
