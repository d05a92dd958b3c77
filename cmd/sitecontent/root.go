// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"sitecontent/internal/config"
)

// options is shared by every subcommand once the root pre-run has loaded
// the environment.
type options struct {
	envFile string
	cfg     *config.Config
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "sitecontent",
		Short: "Multi-tenant, multi-language site content resolver",
		Long: `sitecontent resolves paginated blog posts and projects per tenant and
language against a content backend, falling back to built-in mock data
when the backend is unavailable.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadFile(opts.envFile); err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			opts.cfg = cfg
			opts.logger = newLogger(cmd.ErrOrStderr(), cfg)
			slog.SetDefault(opts.logger)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "file of KEY=VALUE pairs loaded before the environment is read")

	root.AddCommand(newServeCmd(opts), newSeedCmd(opts), newGetCmd(opts), newFlushCacheCmd(opts))
	return root
}

// newLogger outputs text in development and JSON everywhere else.
func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	if cfg.IsDev() {
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
