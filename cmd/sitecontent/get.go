// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sitecontent/internal/content"
	"sitecontent/internal/fetcher"
	"sitecontent/internal/i18n"
	"sitecontent/internal/models"
)

func newGetCmd(opts *options) *cobra.Command {
	var (
		lang     string
		tenantID string
		page     int
		limit    int
		document bool
	)

	cmd := &cobra.Command{
		Use:   "get <blog|projects> [id]",
		Short: "Resolve a page or a single item and print it as JSON",
		Example: `  sitecontent get blog --lang es --page 2 --limit 5
  sitecontent get projects 3 --lang pt
  sitecontent get blog postgres-indexes-we-regret --document`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			res, ok := models.ParseResource(args[0])
			if !ok {
				return fmt.Errorf("%w: %q", content.ErrUnknownResource, args[0])
			}

			var language i18n.Language
			if lang != "" {
				l, ok := i18n.Parse(lang)
				if !ok {
					return fmt.Errorf("unsupported language %q", lang)
				}
				language = l
			}

			a, err := newApp(ctx, opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			defer a.close()

			var result any
			switch {
			case len(args) == 1:
				result, err = a.registry.List(ctx, res, content.ListParams{
					Tenant: tenantID, Page: page, Limit: limit, Language: language,
				})
			case document:
				result, err = a.fetcher.Fetch(ctx, fetcher.Request{
					Resource: res, Slug: args[1], Language: language, Tenant: tenantID,
				})
			default:
				result, err = a.registry.ByID(ctx, res, content.ByIDParams{
					Tenant: tenantID, ID: strings.TrimSpace(args[1]), Language: language,
				})
			}
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&lang, "lang", "", "language (en, es, pt); lists default to en, items match any language")
	flags.StringVar(&tenantID, "tenant", "", "tenant id; resolved from configuration when empty")
	flags.IntVar(&page, "page", content.DefaultPage, "page number for lists")
	flags.IntVar(&limit, "limit", content.DefaultLimit, "page size for lists")
	flags.BoolVar(&document, "document", false, "fetch the item as a document by slug")
	return cmd
}
