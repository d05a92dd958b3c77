// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"

	"sitecontent/internal/contract"
	"sitecontent/internal/tenant"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 4 << 20

// REST is a Backend over the content HTTP API. Requests are retried with
// exponential backoff on transport errors and 5xx responses, and a circuit
// breaker stops calling a backend that keeps failing.
type REST struct {
	base       *url.URL
	client     *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *slog.Logger
	maxRetries uint64
}

// Option configures a REST backend.
type Option func(*REST)

// WithHTTPClient sets the client used for requests.
func WithHTTPClient(c *http.Client) Option {
	return func(r *REST) { r.client = c }
}

// WithLogger sets the logger for breaker transitions.
func WithLogger(l *slog.Logger) Option {
	return func(r *REST) { r.logger = l }
}

// WithRetries sets how many times a failed request is retried.
func WithRetries(n uint64) Option {
	return func(r *REST) { r.maxRetries = n }
}

// NewREST returns a backend rooted at baseURL.
func NewREST(baseURL string, opts ...Option) (*REST, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("backend URL %q must be absolute", baseURL)
	}

	r := &REST{
		base:       base,
		client:     &http.Client{Timeout: 10 * time.Second},
		logger:     slog.Default(),
		maxRetries: 2,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "content-backend " + base.Host,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			r.logger.Warn("backend circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
		},
		IsSuccessful: isSuccessful,
	})
	return r, nil
}

// isSuccessful keeps answers the backend gave on purpose, such as a 404,
// from counting against the breaker.
func isSuccessful(err error) bool {
	if err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status < 500
}

// List implements Backend.
func (r *REST) List(ctx context.Context, q ListQuery) (*Envelope, error) {
	values := contract.ListValues(contract.Query{
		Tenant:   q.Tenant,
		Language: q.Language,
		Page:     q.Page,
		Limit:    q.Limit,
	})
	body, err := r.get(ctx, r.endpoint(q.Route), values)
	if err != nil {
		return nil, err
	}
	collection := q.Collection
	if collection == "" {
		collection = q.Route
	}
	return decodeEnvelope(body, collection)
}

// Get implements Backend.
func (r *REST) Get(ctx context.Context, q GetQuery) (*Detail, error) {
	values := url.Values{}
	if q.Language != "" {
		values.Set(contract.LangParam, q.Language.String())
	}
	if q.Tenant != "" {
		values.Set(tenant.QueryParam, q.Tenant)
	}
	body, err := r.get(ctx, r.endpoint(q.Route, q.ID), values)
	if err != nil {
		return nil, err
	}
	return decodeDetail(body)
}

func (r *REST) endpoint(segments ...string) string {
	u := *r.base
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	u.Path = r.base.Path + "/" + strings.Join(escaped, "/")
	u.RawPath = ""
	return u.String()
}

// get fetches target through the breaker, retrying transient failures.
func (r *REST) get(ctx context.Context, target string, values url.Values) ([]byte, error) {
	if len(values) > 0 {
		target += "?" + values.Encode()
	}

	out, err := r.breaker.Execute(func() (interface{}, error) {
		var body []byte
		op := func() error {
			b, err := r.do(ctx, target)
			if err != nil {
				if !retryable(err) {
					return backoff.Permanent(err)
				}
				return err
			}
			body = b
			return nil
		}
		policy := backoff.WithContext(backoff.WithMaxRetries(newBackOff(), r.maxRetries), ctx)
		if err := backoff.Retry(op, policy); err != nil {
			return nil, err
		}
		return body, nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}
	return out.([]byte), nil
}

func (r *REST) do(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	res, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", req.URL.Path, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &APIError{Status: res.StatusCode}
	}
	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

func retryable(err error) bool {
	if errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 500
	}
	return true
}

func newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = time.Second
	b.MaxElapsedTime = 5 * time.Second
	return b
}
