package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartStoreFrom(t *testing.T) {
	s, _ := openMemoryStore(t)

	ctx := WithCartStore(context.Background(), s)
	assert.Same(t, s, CartStoreFrom(ctx))
}

func TestCartStoreFrom_PanicsWithoutStore(t *testing.T) {
	assert.PanicsWithValue(t,
		"service: no cart store in context; the handler must run behind the cart session middleware",
		func() { CartStoreFrom(context.Background()) },
	)
	assert.Panics(t, func() { CartStoreFrom(WithCartStore(context.Background(), nil)) })
}
