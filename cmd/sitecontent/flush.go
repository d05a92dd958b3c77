// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sitecontent/internal/cache"
)

func newFlushCacheCmd(opts *options) *cobra.Command {
	var tenantID string

	cmd := &cobra.Command{
		Use:   "flush-cache",
		Short: "Drop cached content responses from Valkey",
		Long: `flush-cache removes the cached list and item responses of one tenant,
or of every tenant when --tenant is not given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := opts.cfg
			if !cfg.CacheEnabled() {
				return errors.New("content cache is disabled: set VALKEY_HOST and a positive CACHE_TTL")
			}

			client, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
			if err != nil {
				return err
			}
			defer client.Close()

			cc := cache.NewContentCache(client, cfg.CacheTTL)
			var dropped int
			if tenantID != "" {
				dropped = cc.InvalidateTenant(ctx, tenantID)
			} else {
				dropped = cc.InvalidateAll(ctx)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d cached responses dropped\n", dropped)
			return nil
		},
	}
	cmd.Flags().StringVar(&tenantID, "tenant", "", "only flush this tenant")
	return cmd
}
