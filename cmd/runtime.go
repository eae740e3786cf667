// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"strings"

	"checkauth/cli/internal/auth"
	"checkauth/cli/internal/backend"
	"checkauth/cli/internal/config"
	"checkauth/cli/internal/logger"
	"checkauth/cli/internal/session"

	"github.com/rs/zerolog"
)

var (
	// settings are the effective settings of the current invocation.
	settings config.Config

	// tokenSource supplies the bearer token for each fetch attempt.
	tokenSource auth.TokenSource = auth.KeychainSource{}

	// requester performs the auth request; nil uses the default HTTP transport.
	requester backend.Requester
)

// initRuntime resolves settings from config, environment and flags, then
// configures the logger.
func initRuntime() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if err := applyFlags(&cfg, flags); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	level := cfg.LogLevel
	if flags.verbose {
		level = "debug"
	}
	logger.Init(level, cfg.LogFormat)

	settings = cfg
	return cfg, nil
}

// applyFlags overrides cfg with every flag that carries a value.
func applyFlags(cfg *config.Config, f rootFlags) error {
	if v := strings.TrimSpace(f.authURL); v != "" {
		cfg.AuthURL = v
	}
	if v := strings.TrimSpace(f.method); v != "" {
		cfg.Method = v
	}
	if v := strings.TrimSpace(f.credentials); v != "" {
		cfg.Credentials = v
	}
	if len(f.headers) > 0 && cfg.Headers == nil {
		cfg.Headers = map[string]string{}
	}
	for _, raw := range f.headers {
		k, v, err := config.ParseHeader(raw)
		if err != nil {
			return err
		}
		cfg.Headers[k] = v
	}
	return nil
}

// newController wires a session controller for cfg. The stored token is
// re-read on every fetch attempt.
func newController(cfg config.Config, log zerolog.Logger) *session.Controller {
	opts := []session.Option{
		session.WithRequestConfigFunc(auth.TokenHeaders(cfg.RequestConfig(), tokenSource, log)),
		session.WithLogger(log),
	}
	if requester != nil {
		opts = append(opts, session.WithRequester(requester))
	} else {
		opts = append(opts, session.WithRequester(backend.New(backend.WithUserAgent(userAgent()))))
	}
	return session.NewController(session.NewStore(), cfg.AuthURL, opts...)
}

// userAgent identifies the CLI build to the auth endpoint.
func userAgent() string {
	return "checkauth-cli/" + Version
}
