// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package i18n

import "net/http"

// CookieName is the cookie carrying the visitor's chosen language.
const CookieName = "lang"

// Middleware resolves the ambient language for a request and stores it in
// the request context. The lang cookie wins over Accept-Language; the lang
// query parameter is not consulted here because handlers treat it as an
// explicit per-request choice.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithLanguage(r.Context(), Ambient(r))))
	})
}

// Ambient returns the language implied by the request's cookie or headers.
func Ambient(r *http.Request) Language {
	if c, err := r.Cookie(CookieName); err == nil {
		if l, ok := Parse(c.Value); ok {
			return l
		}
	}
	return FromAcceptLanguage(r.Header.Get("Accept-Language"))
}
