// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package contract serves the content backend's HTTP contract: a paginated
// list per resource and a localized detail lookup. The mock dataset and the
// document store both sit behind it, so clients cannot tell them apart.
package contract

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"sitecontent/internal/i18n"
	"sitecontent/internal/models"
	"sitecontent/internal/tenant"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100

	// LangParam carries the requested language on both routes.
	LangParam = "lang"
)

// ErrNotFound is returned by a Source when no variant of an item exists.
var ErrNotFound = errors.New("item not found")

// Query scopes a Source call.
type Query struct {
	Resource models.Resource
	Tenant   string
	Language i18n.Language // empty on Find means any language
	Page     int
	Limit    int
}

// Source is the data behind the contract.
type Source interface {
	// List returns one page of items in q.Language and the total count of
	// that language partition.
	List(ctx context.Context, q Query) ([]models.Item, int, error)
	// Find returns the variant of id in q.Language, falling back to the
	// default language. The returned language is the one actually served.
	Find(ctx context.Context, q Query, id string) (*models.Item, i18n.Language, error)
}

// ParsePaging reads page and limit from query values, applying defaults for
// missing or invalid values and capping limit at MaxLimit.
func ParsePaging(v url.Values) (page, limit int) {
	page, limit = 1, DefaultLimit
	if n, err := strconv.Atoi(v.Get("page")); err == nil && n > 0 {
		page = n
	}
	if n, err := strconv.Atoi(v.Get("limit")); err == nil && n > 0 {
		limit = min(n, MaxLimit)
	}
	return page, limit
}

// ListValues encodes a list query the way the handler reads it.
func ListValues(q Query) url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))
	if q.Language != "" {
		v.Set(LangParam, q.Language.String())
	}
	if q.Tenant != "" {
		v.Set(tenant.QueryParam, q.Tenant)
	}
	return v
}
