// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend provides the transport used to reach a session info endpoint.
// It defines the request/response contract the session controller depends on
// and an HTTP implementation of it. The package interprets nothing about the
// payload: status codes and JSON decoding are surfaced as-is to the caller.
package backend

import (
	"context"
	"net/http"
)

// Credentials controls whether cookies are attached to the request and
// whether cookies set by the response are kept for later attempts.
type Credentials string

const (
	// CredentialsInclude always sends and stores cookies.
	CredentialsInclude Credentials = "include"
	// CredentialsSameOrigin sends cookies only when the request stays on the
	// origin of the auth URL, including across redirects.
	CredentialsSameOrigin Credentials = "same-origin"
	// CredentialsOmit never sends or stores cookies.
	CredentialsOmit Credentials = "omit"
)

// Valid reports whether c is one of the known modes.
func (c Credentials) Valid() bool {
	switch c {
	case CredentialsInclude, CredentialsSameOrigin, CredentialsOmit:
		return true
	}
	return false
}

// RequestConfig describes how a single fetch attempt is issued.
type RequestConfig struct {
	Method      string            `json:"method"`
	Credentials Credentials       `json:"credentials"`
	Headers     map[string]string `json:"headers"`
}

// DefaultRequestConfig returns the configuration used when none is supplied.
func DefaultRequestConfig() RequestConfig {
	return RequestConfig{
		Method:      http.MethodGet,
		Credentials: CredentialsInclude,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}
}

// Clone returns a deep copy so callers can add headers without touching the original.
func (c RequestConfig) Clone() RequestConfig {
	out := c
	out.Headers = make(map[string]string, len(c.Headers))
	for k, v := range c.Headers {
		out.Headers[k] = v
	}
	return out
}

// Response is a received answer from the endpoint.
type Response interface {
	// StatusCode returns the HTTP status of the response.
	StatusCode() int
	// JSON decodes the body as JSON. It fails when the body cannot be read
	// or is not valid JSON.
	JSON() (any, error)
}

// Requester issues one request against url using cfg.
// An error means no response was received (network, DNS, timeout, bad URL).
// Implementations may call real HTTP endpoints or provide fakes for tests.
type Requester interface {
	Request(ctx context.Context, url string, cfg RequestConfig) (Response, error)
}

// RequesterFunc adapts a function to the Requester interface.
type RequesterFunc func(ctx context.Context, url string, cfg RequestConfig) (Response, error)

// Request calls f.
func (f RequesterFunc) Request(ctx context.Context, url string, cfg RequestConfig) (Response, error) {
	return f(ctx, url, cfg)
}
