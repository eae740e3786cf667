// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for user-friendly reporting.
// It provides a structured approach to error handling with machine-readable error kinds
// and human-friendly messages. The kinds double as the names published in session
// error state, so a consumer can switch on them without importing transport details.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// PreconditionFailed indicates the controller was started without a usable auth URL.
	PreconditionFailed Kind = "PreconditionError"
	// TransportFailed indicates the request never produced a response.
	TransportFailed Kind = "TransportError"
	// FetchFailed indicates the response body could not be decoded as JSON.
	FetchFailed Kind = "FetchError"
	// RejectedStatus indicates the endpoint answered outside the accepted status set.
	RejectedStatus Kind = "RejectedStatusError"
	// StorageFailed indicates the keychain or the config file could not be used.
	StorageFailed Kind = "StorageError"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf returns the kind of the first *E in err's chain, or "" when there is none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
