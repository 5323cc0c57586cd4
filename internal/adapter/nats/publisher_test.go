package nats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewNATSPublisher_NilConnection(t *testing.T) {
	p, err := NewNATSPublisher(nil, "storefront")
	assert.Error(t, err)
	assert.Nil(t, p)
}

func TestQualify(t *testing.T) {
	assert.Equal(t, "storefront.order.placed", qualify("storefront", "order.placed"))
	assert.Equal(t, "cart.changed", qualify("", "cart.changed"))
}
