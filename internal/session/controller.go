// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"checkauth/cli/internal/backend"
	apperrors "checkauth/cli/internal/errors"
	"checkauth/cli/internal/logging"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AcceptedStatusCodes are the statuses treated as an authenticated response.
var AcceptedStatusCodes = []int{http.StatusOK, http.StatusCreated, http.StatusAccepted}

// Accepted reports whether status is in AcceptedStatusCodes.
func Accepted(status int) bool {
	return slices.Contains(AcceptedStatusCodes, status)
}

// Controller runs fetch cycles against the auth URL and writes the outcome
// into its Store.
//
// Cycles are not coordinated: a refresh issued while another cycle is in
// flight starts an independent cycle, and whichever settles last determines
// the published state.
type Controller struct {
	store     *Store
	authURL   string
	config    func() backend.RequestConfig
	requester backend.Requester
	log       zerolog.Logger

	started atomic.Bool
	// bg tracks cycles started by RefreshAuth
	bg sync.WaitGroup

	mu sync.Mutex
	// ctx is used by RefreshAuth; it is replaced by Start
	ctx context.Context
}

// Option configures a Controller.
type Option func(*Controller)

// WithRequestConfig uses cfg for every attempt.
func WithRequestConfig(cfg backend.RequestConfig) Option {
	return func(c *Controller) {
		c.config = func() backend.RequestConfig { return cfg.Clone() }
	}
}

// WithRequestConfigFunc calls fn at the start of every attempt, so headers
// such as a freshly stored token are picked up by the next refresh.
func WithRequestConfigFunc(fn func() backend.RequestConfig) Option {
	return func(c *Controller) {
		if fn != nil {
			c.config = fn
		}
	}
}

// WithRequester replaces the HTTP transport.
func WithRequester(r backend.Requester) Option {
	return func(c *Controller) {
		if r != nil {
			c.requester = r
		}
	}
}

// WithLogger sets the logger used for cycle diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// NewController creates a controller for authURL and binds its refresh
// action into store.
func NewController(store *Store, authURL string, opts ...Option) *Controller {
	c := &Controller{
		store:     store,
		authURL:   strings.TrimSpace(authURL),
		config:    backend.DefaultRequestConfig,
		requester: backend.New(),
		log:       zerolog.Nop(),
		ctx:       context.Background(),
	}
	for _, opt := range opts {
		opt(c)
	}
	store.bindRefresh(c.RefreshAuth)
	return c
}

// Store returns the store the controller writes to.
func (c *Controller) Store() *Store {
	return c.store
}

// Start runs the first fetch cycle and returns once it has settled.
// It fails without issuing a request when the auth URL is empty or when the
// controller was already started. Fetch failures are published, not returned.
func (c *Controller) Start(ctx context.Context) error {
	if c.authURL == "" {
		return apperrors.New(apperrors.PreconditionFailed, "auth URL is required")
	}
	if !c.started.CompareAndSwap(false, true) {
		return apperrors.New(apperrors.PreconditionFailed, "controller already started")
	}

	c.mu.Lock()
	c.ctx = context.WithoutCancel(ctx)
	c.mu.Unlock()

	c.run(ctx)
	return nil
}

// Refresh runs a new fetch cycle regardless of the current state and returns
// once it has settled.
func (c *Controller) Refresh(ctx context.Context) {
	c.run(ctx)
}

// RefreshAuth is the action published to consumers. The loading state is
// committed before it returns; the request and settlement run in the
// background. It is safe to call from a subscriber callback.
func (c *Controller) RefreshAuth() {
	c.mu.Lock()
	ctx := c.ctx
	c.mu.Unlock()

	cyc := c.begin()
	c.bg.Add(1)
	go func() {
		defer c.bg.Done()
		c.settle(ctx, cyc)
	}()
}

// Wait blocks until every cycle started by RefreshAuth has settled.
func (c *Controller) Wait() {
	c.bg.Wait()
}

// cycle is a fetch attempt that has published its loading state.
type cycle struct {
	cfg backend.RequestConfig
	log zerolog.Logger
}

// run is one fetch cycle: loading, request, settle.
func (c *Controller) run(ctx context.Context) {
	c.settle(ctx, c.begin())
}

// begin resolves the request config and publishes the loading state.
func (c *Controller) begin() cycle {
	cfg := c.config()
	log := c.log.With().
		Str("cycle", uuid.NewString()).
		Str("url", logging.Mask(c.authURL)).
		Logger()

	c.store.publish(loadingState())
	log.Debug().
		Str("method", cfg.Method).
		Str("credentials", string(cfg.Credentials)).
		Interface("headers", maskHeaders(cfg.Headers)).
		Msg("fetch cycle started")
	return cycle{cfg: cfg, log: log}
}

// settle issues the request and publishes the outcome.
func (c *Controller) settle(ctx context.Context, cyc cycle) {
	log := cyc.log
	resp, err := c.requester.Request(ctx, c.authURL, cyc.cfg)
	if err != nil {
		c.fail(log, &ErrorInfo{
			Name:    string(apperrors.TransportFailed),
			Message: err.Error(),
			Raw:     err,
		})
		return
	}

	status := resp.StatusCode()
	body, err := resp.JSON()
	if err != nil {
		c.fail(log, &ErrorInfo{
			Name:    string(apperrors.FetchFailed),
			Message: err.Error(),
			Status:  status,
			Raw:     err,
		})
		return
	}

	if !Accepted(status) {
		c.fail(log, &ErrorInfo{
			Name:    string(apperrors.RejectedStatus),
			Message: rejectionMessage(status, body),
			Status:  status,
			Raw:     body,
		})
		return
	}

	c.store.publish(successState(body))
	log.Debug().Int("status", status).Msg("fetch cycle settled with user info")
}

func (c *Controller) fail(log zerolog.Logger, info *ErrorInfo) {
	c.store.publish(failureState(info))
	log.Debug().
		Str("error", info.Name).
		Int("status", info.Status).
		Str("message", logging.Mask(info.Message)).
		Msg("fetch cycle settled with error")
}

// rejectionMessage prefers a "message" or "error" string from the body.
func rejectionMessage(status int, body any) string {
	if m, ok := body.(map[string]any); ok {
		for _, key := range []string{"message", "error"} {
			if s, ok := m[key].(string); ok && s != "" {
				return s
			}
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "unexpected status"
}

func maskHeaders(headers map[string]string) map[string]string {
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		if strings.EqualFold(k, "Authorization") || strings.EqualFold(k, "Cookie") {
			out[k] = "***"
			continue
		}
		out[k] = logging.Mask(v)
	}
	return out
}
