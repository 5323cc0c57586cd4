package service

import "context"

type cartStoreKey struct{}

// WithCartStore returns a copy of ctx carrying s.
func WithCartStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, cartStoreKey{}, s)
}

// CartStoreFrom returns the store placed in ctx by WithCartStore and panics
// when there is none.
func CartStoreFrom(ctx context.Context) *Store {
	s, ok := ctx.Value(cartStoreKey{}).(*Store)
	if !ok || s == nil {
		panic("service: no cart store in context; the handler must run behind the cart session middleware")
	}
	return s
}
