// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package docstore serves content documents from PostgreSQL. Each document
// is one localized item stored as JSONB and namespaced by tenant and
// collection.
package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"sitecontent/internal/contract"
	"sitecontent/internal/i18n"
	"sitecontent/internal/models"
)

// Store reads documents from the documents table.
type Store struct {
	db *sql.DB
}

var _ contract.Source = (*Store)(nil)

// New returns a Store over db.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// row is one stored document before decoding.
type row struct {
	body     []byte
	language i18n.Language
}

// page returns the raw bodies of one page and the size of the partition.
func (s *Store) page(ctx context.Context, tenant, collection string, lang i18n.Language, page, limit int) ([][]byte, int, error) {
	var total int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM documents
		WHERE tenant = $1 AND collection = $2 AND language = $3
	`, tenant, collection, lang.String()).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count documents: %w", err)
	}

	start, end := models.Window(total, page, limit)
	if start == end {
		return nil, total, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT body FROM documents
		WHERE tenant = $1 AND collection = $2 AND language = $3
		ORDER BY position, item_id
		LIMIT $4 OFFSET $5
	`, tenant, collection, lang.String(), end-start, start)
	if err != nil {
		return nil, 0, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var bodies [][]byte
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, 0, fmt.Errorf("scan document: %w", err)
		}
		bodies = append(bodies, body)
	}
	return bodies, total, rows.Err()
}

// find looks id up by item id or slug. An empty language matches any
// variant, default language first. Otherwise the default language variant
// is tried when the requested one is missing.
func (s *Store) find(ctx context.Context, tenant, collection, id string, lang i18n.Language) (*row, error) {
	candidates := []i18n.Language{lang}
	if lang != "" && lang != i18n.Default {
		candidates = append(candidates, i18n.Default)
	}

	for _, candidate := range candidates {
		var r row
		var language string
		err := s.db.QueryRowContext(ctx, `
			SELECT body, language FROM documents
			WHERE tenant = $1 AND collection = $2
			  AND (item_id = $3 OR slug = $3)
			  AND ($4 = '' OR language = $4)
			ORDER BY (item_id = $3) DESC, (language = $5) DESC, language
			LIMIT 1
		`, tenant, collection, id, candidate.String(), i18n.Default.String()).Scan(&r.body, &language)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("find document %s/%s: %w", collection, id, err)
		}
		r.language = i18n.Language(language)
		return &r, nil
	}
	return nil, contract.ErrNotFound
}

// List implements contract.Source.
func (s *Store) List(ctx context.Context, q contract.Query) ([]models.Item, int, error) {
	bodies, total, err := s.page(ctx, q.Tenant, q.Resource.Collection(), q.Language.OrDefault(), q.Page, q.Limit)
	if err != nil {
		return nil, 0, err
	}
	items := make([]models.Item, 0, len(bodies))
	for _, body := range bodies {
		var it models.Item
		if err := json.Unmarshal(body, &it); err != nil {
			return nil, 0, fmt.Errorf("decode document: %w", err)
		}
		items = append(items, it)
	}
	return items, total, nil
}

// Find implements contract.Source.
func (s *Store) Find(ctx context.Context, q contract.Query, id string) (*models.Item, i18n.Language, error) {
	r, err := s.find(ctx, q.Tenant, q.Resource.Collection(), id, q.Language)
	if err != nil {
		return nil, q.Language.OrDefault(), err
	}
	var it models.Item
	if err := json.Unmarshal(r.body, &it); err != nil {
		return nil, "", fmt.Errorf("decode document: %w", err)
	}
	return &it, r.language, nil
}

// Count returns how many documents tenant has in collection.
func (s *Store) Count(ctx context.Context, tenant, collection string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM documents WHERE tenant = $1 AND collection = $2",
		tenant, collection,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}
