// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sitecontent/internal/cache"
	"sitecontent/internal/database"
	"sitecontent/internal/docstore"
	"sitecontent/internal/mock"
	"sitecontent/internal/models"
	"sitecontent/internal/tenant"
)

func newSeedCmd(opts *options) *cobra.Command {
	var tenantID string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the built-in dataset into the Postgres document store",
		Long: `seed copies every mock post and project, in every language, into the
documents table for one tenant. Existing documents are left untouched, so
running it twice is safe. Cached responses of the tenant are dropped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, logger := opts.cfg, opts.logger

			db, err := database.Connect(ctx, cfg.DSN())
			if err != nil {
				return err
			}
			defer db.Close()
			if err := database.Migrate(db); err != nil {
				return err
			}

			inserted, err := database.Seed(ctx, db, mock.NewDataset(), tenantID)
			if err != nil {
				return err
			}

			store := docstore.New(db)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "tenant %s: %d documents inserted\n", tenantID, inserted)
			for _, res := range models.Resources() {
				n, err := store.Count(ctx, tenantID, res.Collection())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "  %-10s %d documents\n", res.Collection(), n)
			}

			if inserted > 0 && cfg.CacheEnabled() {
				client, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
				if err != nil {
					logger.Warn("valkey unavailable, cached responses not invalidated", "error", err)
					return nil
				}
				defer client.Close()
				dropped := cache.NewContentCache(client, cfg.CacheTTL).InvalidateTenant(ctx, tenantID)
				logger.Info("content cache invalidated", "tenant", tenantID, "keys", dropped)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&tenantID, "tenant", tenant.Default, "tenant to seed")
	return cmd
}
