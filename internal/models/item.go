// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"maps"
	"slices"

	"sitecontent/internal/i18n"
)

// Item is a single localized content record (a blog post or a project).
// Each (resource, id, language) triple is an independent record; items are
// never shared or mutated across languages.
type Item struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Body        string         `json:"body"`
	Description string         `json:"description,omitempty"`
	Image       string         `json:"image,omitempty"`
	Category    string         `json:"category,omitempty"`
	Date        string         `json:"date,omitempty"`
	Language    i18n.Language  `json:"language,omitempty"`
	Featured    bool           `json:"featured,omitempty"`
	Meta        map[string]any `json:"meta,omitempty"`
}

// EffectiveLanguage returns the item's language, treating an absent
// language as the default one.
func (it Item) EffectiveLanguage() i18n.Language {
	return it.Language.OrDefault()
}

// MatchesLanguage reports whether the item belongs to the lang partition:
// its language equals lang, or it is untagged and lang is the default.
func (it Item) MatchesLanguage(lang i18n.Language) bool {
	return it.Language == lang || (it.Language == "" && lang == i18n.Default)
}

// Clone returns a copy that shares no mutable state with it. Nested maps
// and slices in Meta are copied too.
func (it Item) Clone() Item {
	if it.Meta != nil {
		it.Meta = cloneMap(it.Meta)
	}
	return it
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

// cloneValue deep-copies the container types JSON decoding and the mock
// dataset put in Meta. Other values are immutable and returned as is.
func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return cloneMap(v)
	case map[string]string:
		return maps.Clone(v)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		return slices.Clone(v)
	default:
		return v
	}
}

// Slug returns the item's slug from Meta, or "" when none is set.
func (it Item) Slug() string {
	s, _ := it.Meta["slug"].(string)
	return s
}

// Document is an item after schema checking. A trusted document passed
// validation; an untrusted one failed it and keeps the original payload so
// it can be served unmodified. Item on an untrusted document is a
// best-effort decoded view.
type Document struct {
	Item    Item
	Raw     json.RawMessage
	Trusted bool
	Issues  []string
}

// MarshalJSON encodes trusted documents from the typed item and untrusted
// ones as their original payload.
func (d Document) MarshalJSON() ([]byte, error) {
	if !d.Trusted && len(d.Raw) > 0 {
		return d.Raw, nil
	}
	return json.Marshal(d.Item)
}

// Source tells whether content came from the live backend or the mock set.
type Source string

const (
	SourceBackend Source = "backend"
	SourceMock    Source = "mock"
)

// Result is a single resolved item. LangUsed is the language of the
// variant actually returned, which may differ from the one requested.
type Result struct {
	Document Document      `json:"data"`
	LangUsed i18n.Language `json:"langUsed"`
	Source   Source        `json:"source"`
}
