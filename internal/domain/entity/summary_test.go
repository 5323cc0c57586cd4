package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_Total(t *testing.T) {
	cart, _ := Cart{}.WithAdded(testProduct("A", 100), "M", 2)
	cart, _ = cart.WithAdded(testProduct("B", 50), "S", 1)

	s := Summarize(cart)

	require.Len(t, s.Groups, 2)
	assert.True(t, decimal.NewFromInt(200).Equal(s.Groups[0].Subtotal))
	assert.True(t, decimal.NewFromInt(50).Equal(s.Groups[1].Subtotal))
	assert.True(t, decimal.NewFromInt(250).Equal(s.Total), "total %s", s.Total)
	assert.Equal(t, 3, s.ItemCount)
}

func TestSummarize_RegroupsDuplicateKeys(t *testing.T) {
	a := testProduct("A", 100)
	cart := NewCart(
		CartLine{Product: a, Size: "M", Quantity: 1},
		CartLine{Product: testProduct("B", 50), Size: "S", Quantity: 1},
		CartLine{Product: a, Size: "M", Quantity: 2},
	)

	s := Summarize(cart)

	require.Len(t, s.Groups, 2)
	assert.Equal(t, "A", s.Groups[0].Product.ID.String())
	assert.Equal(t, "M", s.Groups[0].Size)
	assert.Equal(t, 3, s.Groups[0].Quantity)
	assert.True(t, decimal.NewFromInt(300).Equal(s.Groups[0].Subtotal))
	assert.Equal(t, "B", s.Groups[1].Product.ID.String())
	assert.Equal(t, "S", s.Groups[1].Size)
	assert.True(t, decimal.NewFromInt(350).Equal(s.Total))
}

func TestSummarize_UnrelatedLineDoesNotAffectSubtotal(t *testing.T) {
	cart, _ := Cart{}.WithAdded(testProduct("A", 100), "M", 2)
	cart, _ = cart.WithAdded(testProduct("B", 50), "S", 1)
	before := Summarize(cart)

	cart, _ = cart.WithQuantity("B", "S", 4)
	after := Summarize(cart)

	assert.True(t, before.Groups[0].Subtotal.Equal(after.Groups[0].Subtotal))
	assert.True(t, decimal.NewFromInt(200).Equal(after.Groups[1].Subtotal))
	assert.True(t, decimal.NewFromInt(400).Equal(after.Total))
}

func TestSummarize_FractionalPrices(t *testing.T) {
	p := testProduct("A", 0)
	p.Price = decimal.RequireFromString("0.1")
	cart, _ := Cart{}.WithAdded(p, "M", 3)

	s := Summarize(cart)
	assert.Equal(t, "0.3", s.Total.String())
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(Cart{})
	assert.True(t, s.IsEmpty())
	assert.True(t, s.Total.IsZero())
	assert.Equal(t, 0, s.ItemCount)
}
