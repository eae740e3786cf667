// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *E
		expected string
	}{
		{
			name:     "without cause",
			err:      New(PreconditionFailed, "auth URL is required"),
			expected: "PreconditionError: auth URL is required",
		},
		{
			name:     "with cause",
			err:      Wrap(TransportFailed, "request failed", stderrors.New("connection refused")),
			expected: "TransportError: request failed: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestKindOf(t *testing.T) {
	cause := stderrors.New("boom")
	wrapped := fmt.Errorf("start: %w", Wrap(FetchFailed, "decode body", cause))

	assert.Equal(t, FetchFailed, KindOf(wrapped))
	assert.True(t, Is(wrapped, FetchFailed))
	assert.False(t, Is(wrapped, RejectedStatus))
	assert.ErrorIs(t, wrapped, cause)

	assert.Equal(t, Kind(""), KindOf(cause))
	assert.False(t, Is(nil, FetchFailed))
}
