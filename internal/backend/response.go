// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyBody is returned by JSON when the response carried no body.
var ErrEmptyBody = errors.New("empty response body")

// ErrBodyTooLarge is returned by JSON when the body exceeded maxBodySize.
var ErrBodyTooLarge = errors.New("response body too large")

// response is a fully buffered HTTP response.
type response struct {
	status  int
	body    []byte
	readErr error
}

func (r *response) StatusCode() int { return r.status }

// JSON decodes the buffered body into generic JSON values
// (map[string]any, []any, string, float64, bool or nil).
func (r *response) JSON() (any, error) {
	if r.readErr != nil {
		return nil, fmt.Errorf("read body: %w", r.readErr)
	}
	trimmed := bytes.TrimSpace(r.body)
	if len(trimmed) == 0 {
		return nil, ErrEmptyBody
	}
	var out any
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, fmt.Errorf("invalid json body: %w", err)
	}
	return out, nil
}

// NewResponse builds a Response from a status and raw body.
// It is used by fakes and by callers that already hold the payload.
func NewResponse(status int, body []byte) Response {
	return &response{status: status, body: body}
}
