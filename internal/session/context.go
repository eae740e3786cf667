package session

import "context"

type contextKey struct{}

// NewContext returns a copy of ctx carrying store.
func NewContext(ctx context.Context, store *Store) context.Context {
	return context.WithValue(ctx, contextKey{}, store)
}

// StoreFromContext returns the store carried by ctx, or nil.
func StoreFromContext(ctx context.Context) *Store {
	store, _ := ctx.Value(contextKey{}).(*Store)
	return store
}

// FromContext reads the current value of the store carried by ctx.
// Without a store it returns DefaultValue, so callers always get a callable
// RefreshAuth.
func FromContext(ctx context.Context) Value {
	if store := StoreFromContext(ctx); store != nil {
		return store.Read()
	}
	return DefaultValue()
}
