// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package mock provides the built-in content dataset used when no backend
// is reachable and as the data behind the mock backend. Each language
// partition is generated on first use and memoized for the process.
package mock

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"sync"

	"sitecontent/internal/contract"
	"sitecontent/internal/i18n"
	"sitecontent/internal/models"
	"sitecontent/internal/slug"
)

// Set is the mock collection of one resource, partitioned by language.
type Set struct {
	resource models.Resource
	build    func(i18n.Language) []models.Item

	mu    sync.Mutex
	parts map[i18n.Language][]models.Item
}

// NewSet returns a set whose partitions are produced by build on demand.
func NewSet(resource models.Resource, build func(i18n.Language) []models.Item) *Set {
	return &Set{
		resource: resource,
		build:    build,
		parts:    make(map[i18n.Language][]models.Item),
	}
}

// Static returns a set over a fixed list of items, partitioned by each
// item's language. Untagged items belong to the default language.
func Static(resource models.Resource, items ...models.Item) *Set {
	return NewSet(resource, func(lang i18n.Language) []models.Item {
		var out []models.Item
		for _, it := range items {
			if it.MatchesLanguage(lang) {
				out = append(out, it.Clone())
			}
		}
		return out
	})
}

// Resource returns the resource this set holds.
func (s *Set) Resource() models.Resource {
	return s.resource
}

// ForLanguage returns a copy of the lang partition. Unsupported languages
// have no partition.
func (s *Set) ForLanguage(lang i18n.Language) []models.Item {
	if !lang.IsSupported() {
		return nil
	}
	return cloneItems(s.partition(lang))
}

// All returns a copy of every partition, in supported-language order.
func (s *Set) All() []models.Item {
	var out []models.Item
	for _, lang := range i18n.Supported() {
		out = append(out, cloneItems(s.partition(lang))...)
	}
	return out
}

// Generated lists the partitions built so far.
func (s *Set) Generated() []i18n.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]i18n.Language, 0, len(s.parts))
	for _, lang := range i18n.Supported() {
		if _, ok := s.parts[lang]; ok {
			out = append(out, lang)
		}
	}
	return out
}

func (s *Set) partition(lang i18n.Language) []models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	if part, ok := s.parts[lang]; ok {
		return part
	}
	part := s.build(lang)
	s.parts[lang] = part
	return part
}

// lookup finds id, or an item whose slug is id, in the lang partition.
func (s *Set) lookup(lang i18n.Language, id string) (models.Item, bool) {
	if !lang.IsSupported() {
		return models.Item{}, false
	}
	for _, it := range s.partition(lang) {
		if it.ID == id || it.Slug() == id {
			return it.Clone(), true
		}
	}
	return models.Item{}, false
}

func cloneItems(items []models.Item) []models.Item {
	if items == nil {
		return nil
	}
	out := make([]models.Item, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

// Dataset is the full mock content of a site. The same content is served
// to every tenant.
type Dataset struct {
	sets map[models.Resource]*Set
}

var _ contract.Source = (*Dataset)(nil)

// NewDataset returns the built-in dataset.
func NewDataset() *Dataset {
	return &Dataset{sets: map[models.Resource]*Set{
		models.ResourceBlog:     NewSet(models.ResourceBlog, buildBlog),
		models.ResourceProjects: NewSet(models.ResourceProjects, buildProjects),
	}}
}

// NewDatasetFrom builds a dataset over the given sets.
func NewDatasetFrom(sets ...*Set) *Dataset {
	d := &Dataset{sets: make(map[models.Resource]*Set, len(sets))}
	for _, s := range sets {
		d.sets[s.Resource()] = s
	}
	return d
}

// Set returns the set for resource.
func (d *Dataset) Set(resource models.Resource) (*Set, bool) {
	s, ok := d.sets[resource]
	return s, ok
}

// Handler serves the dataset over the backend HTTP contract.
func (d *Dataset) Handler(logger *slog.Logger) http.Handler {
	return contract.NewHandler(d, logger)
}

// List implements contract.Source.
func (d *Dataset) List(ctx context.Context, q contract.Query) ([]models.Item, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	s, ok := d.sets[q.Resource]
	if !ok {
		return nil, 0, fmt.Errorf("mock: unknown resource %q", q.Resource)
	}
	part := s.partition(q.Language.OrDefault())
	start, end := models.Window(len(part), q.Page, q.Limit)
	return cloneItems(part[start:end]), len(part), nil
}

// Find implements contract.Source. An empty language searches every
// partition, default language first.
func (d *Dataset) Find(ctx context.Context, q contract.Query, id string) (*models.Item, i18n.Language, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	s, ok := d.sets[q.Resource]
	if !ok {
		return nil, "", fmt.Errorf("mock: unknown resource %q", q.Resource)
	}

	candidates := []i18n.Language{q.Language, i18n.Default}
	if q.Language == "" {
		candidates = i18n.Supported()
	}
	for _, lang := range slices.Compact(candidates) {
		if it, ok := s.lookup(lang, id); ok {
			return &it, lang, nil
		}
	}
	return nil, q.Language.OrDefault(), contract.ErrNotFound
}

func buildBlog(lang i18n.Language) []models.Item {
	var items []models.Item
	for _, rec := range blogRecords {
		text, ok := rec.text[lang]
		if !ok || !available(rec.langs, lang) {
			continue
		}
		category := categoryNames[rec.category][lang]
		items = append(items, models.Item{
			ID:          rec.id,
			Title:       text.title,
			Body:        fmt.Sprintf(bodyTemplates[lang], text.title, text.description, category),
			Description: text.description,
			Image:       fmt.Sprintf("/images/blog/%s.jpg", rec.id),
			Category:    category,
			Date:        rec.date,
			Language:    lang,
			Featured:    rec.featured,
			Meta: map[string]any{
				"slug":   slug.Generate(text.title),
				"author": map[string]any{"name": rec.author, "email": rec.email},
				"tags":   slices.Clone(rec.tags),
			},
		})
	}
	return items
}

func buildProjects(lang i18n.Language) []models.Item {
	var items []models.Item
	for _, rec := range projectRecords {
		text, ok := rec.text[lang]
		if !ok || !available(rec.langs, lang) {
			continue
		}
		category := categoryNames[rec.category][lang]
		meta := map[string]any{
			"slug":         slug.Generate(text.title),
			"technologies": slices.Clone(rec.technologies),
			"team":         slices.Clone(rec.team),
		}
		if len(rec.references) > 0 {
			meta["references"] = slices.Clone(rec.references)
		}
		items = append(items, models.Item{
			ID:          rec.id,
			Title:       text.title,
			Body:        fmt.Sprintf(bodyTemplates[lang], text.title, text.description, category),
			Description: text.description,
			Image:       fmt.Sprintf("/images/projects/%s.jpg", rec.id),
			Category:    category,
			Date:        rec.date,
			Language:    lang,
			Featured:    rec.featured,
			Meta:        meta,
		})
	}
	return items
}

func available(langs []i18n.Language, lang i18n.Language) bool {
	return langs == nil || slices.Contains(langs, lang)
}
