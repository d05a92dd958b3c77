// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package i18n defines the closed set of content languages and the
// fallback protocol shared by every content path. English is the
// universal fallback target whenever a requested language is unavailable.
package i18n

import (
	"context"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// Language is a supported content language code.
type Language string

const (
	English    Language = "en"
	Spanish    Language = "es"
	Portuguese Language = "pt"

	// Default is the language used when none is requested and the target
	// of every language fallback.
	Default = English
)

// supported is ordered to match matcherTags.
var supported = []Language{English, Spanish, Portuguese}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Spanish,
	language.Portuguese,
})

// Supported returns the supported languages, default first.
func Supported() []Language {
	return slices.Clone(supported)
}

// IsSupported reports whether l is one of the supported languages.
func (l Language) IsSupported() bool {
	return slices.Contains(supported, l)
}

func (l Language) String() string { return string(l) }

// OrDefault returns l, or Default when l is empty.
func (l Language) OrDefault() Language {
	if l == "" {
		return Default
	}
	return l
}

// Parse normalizes a language code such as "ES" or "pt-BR" to a supported
// Language. The second return value is false for empty or unknown codes.
func Parse(code string) (Language, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(code, "-_"); i > 0 {
		code = code[:i]
	}
	l := Language(code)
	if !l.IsSupported() {
		return "", false
	}
	return l, true
}

// Pick returns the first candidate that parses to a supported language,
// or Default when none does. Candidates are given in precedence order.
func Pick(candidates ...string) Language {
	for _, c := range candidates {
		if l, ok := Parse(c); ok {
			return l
		}
	}
	return Default
}

// FromAcceptLanguage matches an Accept-Language header against the
// supported languages. Unparseable or unmatched headers yield Default.
func FromAcceptLanguage(header string) Language {
	if strings.TrimSpace(header) == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(supported) {
		return Default
	}
	return supported[idx]
}

type ctxKey struct{}

// WithLanguage stores the ambient language in ctx.
func WithLanguage(ctx context.Context, l Language) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the ambient language stored in ctx, if any.
func FromContext(ctx context.Context) (Language, bool) {
	l, ok := ctx.Value(ctxKey{}).(Language)
	if !ok || l == "" {
		return "", false
	}
	return l, true
}
