// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package contract

import (
	"net/http"
	"net/http/httptest"
	"time"
)

// Transport answers HTTP requests by invoking a handler in-process, so a
// real HTTP client can talk to the mock backend without a socket.
type Transport struct {
	Handler http.Handler
}

// RoundTrip implements http.RoundTripper.
func (t Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := req.Context().Err(); err != nil {
		return nil, err
	}
	rec := httptest.NewRecorder()
	t.Handler.ServeHTTP(rec, req)
	res := rec.Result()
	res.Request = req
	return res, nil
}

// NewClient returns an HTTP client routed through h.
func NewClient(h http.Handler, timeout time.Duration) *http.Client {
	return &http.Client{Transport: Transport{Handler: h}, Timeout: timeout}
}
