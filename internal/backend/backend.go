// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package backend talks to the remote content API. Responses are returned
// as raw JSON items; validating them is the caller's job.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"sitecontent/internal/i18n"
)

var (
	// ErrNotFound means the backend has no variant of the requested item.
	ErrNotFound = errors.New("not found")
	// ErrInvalidResponse means the backend answered with an unreadable body.
	ErrInvalidResponse = errors.New("invalid response format")
)

// APIError is a non-success HTTP status from the backend.
type APIError struct {
	Status int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: %d", e.Status)
}

// ListQuery asks for one page of a collection.
type ListQuery struct {
	Route      string // path segment, such as "posts"
	Collection string // envelope key holding the items
	Tenant     string
	Page       int
	Limit      int
	Language   i18n.Language
}

// GetQuery asks for one item. An empty Language lets the backend pick.
type GetQuery struct {
	Route      string
	Collection string
	Tenant     string
	ID         string
	Language   i18n.Language
}

// Envelope is a decoded list response.
type Envelope struct {
	Items       []json.RawMessage
	TotalPages  int
	CurrentPage int
	TotalItems  int
}

// Detail is a decoded detail response. LangUsed is empty when the backend
// did not say which variant it served.
type Detail struct {
	Item     json.RawMessage
	LangUsed i18n.Language
}

// Backend is a remote content source.
type Backend interface {
	List(ctx context.Context, q ListQuery) (*Envelope, error)
	Get(ctx context.Context, q GetQuery) (*Detail, error)
}
