package store

import "context"

type contextKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the Store carried by ctx. It panics when ctx carries
// none: reaching for a session outside of one is a programming error.
func FromContext(ctx context.Context) *Store {
	s, ok := Lookup(ctx)
	if !ok {
		panic("store: no form builder session in context; wrap it with store.NewContext")
	}
	return s
}

// Lookup returns the Store carried by ctx, if any.
func Lookup(ctx context.Context) (*Store, bool) {
	if ctx == nil {
		return nil, false
	}
	s, ok := ctx.Value(contextKey{}).(*Store)
	return s, ok && s != nil
}
