// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package auth connects locally stored credentials to the session fetch cycle.
// The bearer token saved by `checkauth login` is read on every fetch attempt,
// so a token replaced while a watcher is running takes effect on its next refresh.
package auth

import (
	"errors"
	"net/http"

	"checkauth/cli/internal/backend"
	"checkauth/cli/internal/keychain"

	"github.com/rs/zerolog"
)

// TokenSource loads the current bearer token.
type TokenSource interface {
	LoadToken() (string, error)
}

// KeychainSource lazily opens the OS keychain on first use.
type KeychainSource struct{}

// LoadToken reads the token through the global keychain manager.
func (KeychainSource) LoadToken() (string, error) {
	km, err := keychain.GetManager()
	if err != nil {
		return "", err
	}
	return km.LoadToken()
}

// TokenHeaders returns a request config function that copies base and adds an
// Authorization header from src on every call. Headers already present in base
// win; a missing token leaves the request anonymous.
func TokenHeaders(base backend.RequestConfig, src TokenSource, log zerolog.Logger) func() backend.RequestConfig {
	return func() backend.RequestConfig {
		cfg := base.Clone()
		if HasAuthorization(cfg) {
			return cfg
		}
		token, err := src.LoadToken()
		switch {
		case err == nil && token != "":
			cfg.Headers["Authorization"] = backend.BearerHeader(token)
		case err != nil && !errors.Is(err, keychain.ErrTokenNotFound):
			log.Debug().Err(err).Msg("token unavailable, sending request without Authorization")
		}
		return cfg
	}
}

// StaticSource is a TokenSource holding a fixed token.
type StaticSource string

// LoadToken returns the token or keychain.ErrTokenNotFound when empty.
func (s StaticSource) LoadToken() (string, error) {
	if s == "" {
		return "", keychain.ErrTokenNotFound
	}
	return string(s), nil
}

// HasAuthorization reports whether cfg already carries credentials in a header.
func HasAuthorization(cfg backend.RequestConfig) bool {
	for k := range cfg.Headers {
		if http.CanonicalHeaderKey(k) == "Authorization" {
			return true
		}
	}
	return false
}
