// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"sitecontent/internal/i18n"
	"sitecontent/internal/mock"
	"sitecontent/internal/models"
)

// Seed loads the built-in dataset into the document store under tenant.
// Documents that already exist are left untouched, so seeding twice is
// safe. It returns the number of documents inserted.
func Seed(ctx context.Context, db *sql.DB, ds *mock.Dataset, tenant string) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO documents (id, tenant, collection, item_id, slug, language, body, featured, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (tenant, collection, item_id, language) DO NOTHING
	`)
	if err != nil {
		return 0, fmt.Errorf("seed prepare: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, resource := range models.Resources() {
		set, ok := ds.Set(resource)
		if !ok {
			continue
		}
		for _, lang := range i18n.Supported() {
			for pos, item := range set.ForLanguage(lang) {
				body, err := json.Marshal(item)
				if err != nil {
					return 0, fmt.Errorf("seed encode %s/%s: %w", resource, item.ID, err)
				}
				res, err := stmt.ExecContext(ctx,
					uuid.New(), tenant, resource.Collection(), item.ID, item.Slug(),
					item.EffectiveLanguage().String(), string(body), item.Featured, pos,
				)
				if err != nil {
					return 0, fmt.Errorf("seed insert %s/%s/%s: %w", resource, lang, item.ID, err)
				}
				if n, err := res.RowsAffected(); err == nil {
					inserted += int(n)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed commit: %w", err)
	}

	if inserted == 0 {
		slog.Info("database already seeded, skipping", "tenant", tenant)
	} else {
		slog.Info("database seeded with mock dataset", "tenant", tenant, "documents", inserted)
	}
	return inserted, nil
}
