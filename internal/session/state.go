// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package session holds the client-side view of the current user's session.
//
// A Store keeps the latest State and broadcasts every transition to its
// subscribers. A Controller owns the fetch cycle against the auth endpoint and
// is the only writer of the store. Hosts construct both, call Controller.Start
// once, and hand the Store (or a context carrying it) to whatever renders state.
package session

// State is the published authentication state. It is replaced wholesale on
// every transition.
//
// UserInfo and Error are never both set, and IsLoading implies neither is.
type State struct {
	IsLoading bool
	// UserInfo is the decoded JSON payload from the auth endpoint.
	UserInfo any
	// Error describes why the last attempt failed.
	Error *ErrorInfo
}

// Value is what consumers receive: the state plus the action that restarts a
// fetch cycle.
type Value struct {
	State
	RefreshAuth func()
}

// ErrorInfo describes a failed fetch attempt.
type ErrorInfo struct {
	// Name is the error kind: TransportError, FetchError or RejectedStatusError.
	Name    string
	Message string
	// Status is the HTTP status when a response was received, 0 otherwise.
	Status int
	// Raw is the transport or decode error, or the decoded JSON body of a
	// rejected response.
	Raw any
}

func (e *ErrorInfo) Error() string {
	if e.Message == "" {
		return e.Name
	}
	return e.Name + ": " + e.Message
}

// Unwrap exposes Raw when it is an error, so callers can inspect the cause
// with errors.As.
func (e *ErrorInfo) Unwrap() error {
	if err, ok := e.Raw.(error); ok {
		return err
	}
	return nil
}

// Authenticated reports whether the last cycle settled with user info.
func (s State) Authenticated() bool {
	return !s.IsLoading && s.Error == nil && s.UserInfo != nil
}

func loadingState() State {
	return State{IsLoading: true}
}

func successState(userInfo any) State {
	return State{UserInfo: userInfo}
}

func failureState(err *ErrorInfo) State {
	return State{Error: err}
}

// noopRefresh is the placeholder action published before a controller attaches.
func noopRefresh() {}

// DefaultValue is the value a store holds before any transition.
func DefaultValue() Value {
	return Value{RefreshAuth: noopRefresh}
}
