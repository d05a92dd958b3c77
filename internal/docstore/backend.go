// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"sitecontent/internal/backend"
	"sitecontent/internal/contract"
	"sitecontent/internal/models"
)

// documentBackend exposes the store as a content backend, handing stored
// bodies to the caller without decoding them.
type documentBackend struct {
	store *Store
}

// Backend returns the store as a backend.Backend.
func (s *Store) Backend() backend.Backend {
	return documentBackend{store: s}
}

func collectionOf(route, collection string) (string, error) {
	for _, name := range []string{collection, route} {
		if r, ok := models.ParseResource(name); ok {
			return r.Collection(), nil
		}
	}
	return "", fmt.Errorf("document store: unknown collection %q", collection)
}

func (b documentBackend) List(ctx context.Context, q backend.ListQuery) (*backend.Envelope, error) {
	collection, err := collectionOf(q.Route, q.Collection)
	if err != nil {
		return nil, err
	}
	lang := q.Language.OrDefault()
	bodies, total, err := b.store.page(ctx, q.Tenant, collection, lang, q.Page, q.Limit)
	if err != nil {
		return nil, err
	}

	items := make([]json.RawMessage, len(bodies))
	for i, body := range bodies {
		items[i] = body
	}
	totalPages := models.TotalPages(total, q.Limit)
	return &backend.Envelope{
		Items:       items,
		TotalPages:  totalPages,
		CurrentPage: models.ClampPage(q.Page, totalPages),
		TotalItems:  total,
	}, nil
}

func (b documentBackend) Get(ctx context.Context, q backend.GetQuery) (*backend.Detail, error) {
	collection, err := collectionOf(q.Route, q.Collection)
	if err != nil {
		return nil, err
	}
	r, err := b.store.find(ctx, q.Tenant, collection, q.ID, q.Language)
	if errors.Is(err, contract.ErrNotFound) {
		return nil, backend.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &backend.Detail{Item: r.body, LangUsed: r.language}, nil
}
