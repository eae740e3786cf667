// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"net/http"
	"time"
)

// defaultTimeout bounds a single request, including reading the body.
const defaultTimeout = 10 * time.Second

// Option customises the HTTP requester.
type Option func(*HTTP)

// WithHTTPClient uses a copy of c as the underlying client, so later options
// never modify the caller's client. The client's Jar is ignored; cookies are
// managed by the requester according to the credentials mode.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTP) {
		if c != nil {
			cp := *c
			h.client = &cp
		}
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTP) {
		if d > 0 {
			h.client.Timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent sent when the config does not set one.
func WithUserAgent(ua string) Option {
	return func(h *HTTP) {
		h.userAgent = ua
	}
}

// New creates the HTTP implementation of Requester.
func New(opts ...Option) *HTTP {
	return newHTTP(opts...)
}
