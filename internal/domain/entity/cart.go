package entity

import (
	"encoding/json"
	"fmt"
	"math"
)

// LineKey is the composite key of a cart line.
type LineKey struct {
	ProductID string
	Size      string
}

func NewLineKey(productID, size string) LineKey {
	return LineKey{ProductID: productID, Size: size}
}

func (k LineKey) String() string {
	return k.ProductID + "-" + k.Size
}

type CartLine struct {
	Product  Product `json:"product"`
	Size     string  `json:"size"`
	Quantity int     `json:"quantity"`
}

func (l CartLine) Key() LineKey {
	return NewLineKey(l.Product.ID.String(), l.Size)
}

// Cart is an immutable snapshot of the ordered cart lines. Every mutation
// method returns a new Cart and leaves the receiver untouched.
type Cart struct {
	lines []CartLine
}

func NewCart(lines ...CartLine) Cart {
	if len(lines) == 0 {
		return Cart{}
	}
	cp := make([]CartLine, len(lines))
	copy(cp, lines)
	return Cart{lines: cp}
}

func (c Cart) Lines() []CartLine {
	cp := make([]CartLine, len(c.lines))
	copy(cp, c.lines)
	return cp
}

func (c Cart) Len() int {
	return len(c.lines)
}

func (c Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// TotalQuantity is the number shown on the header badge.
func (c Cart) TotalQuantity() int {
	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

func (c Cart) Line(productID, size string) (CartLine, bool) {
	idx := c.indexOf(NewLineKey(productID, size))
	if idx == -1 {
		return CartLine{}, false
	}
	return c.lines[idx], true
}

func (c Cart) indexOf(key LineKey) int {
	for i, l := range c.lines {
		if l.Key() == key {
			return i
		}
	}
	return -1
}

// WithAdded merges quantity units of product/size into the cart. An existing
// line keeps its position; a new key is appended. Quantities below 1, an
// empty size and a merge that would overflow the line quantity are rejected
// and reported as unchanged.
func (c Cart) WithAdded(product Product, size string, quantity int) (Cart, bool) {
	if quantity < 1 || size == "" {
		return c, false
	}

	key := NewLineKey(product.ID.String(), size)
	idx := c.indexOf(key)
	if idx != -1 {
		if c.lines[idx].Quantity > math.MaxInt-quantity {
			return c, false
		}
		lines := c.Lines()
		lines[idx].Quantity += quantity
		return Cart{lines: lines}, true
	}

	lines := make([]CartLine, len(c.lines), len(c.lines)+1)
	copy(lines, c.lines)
	lines = append(lines, CartLine{Product: product, Size: size, Quantity: quantity})
	return Cart{lines: lines}, true
}

func (c Cart) WithoutLine(productID, size string) (Cart, bool) {
	idx := c.indexOf(NewLineKey(productID, size))
	if idx == -1 {
		return c, false
	}

	lines := make([]CartLine, 0, len(c.lines)-1)
	lines = append(lines, c.lines[:idx]...)
	lines = append(lines, c.lines[idx+1:]...)
	return Cart{lines: lines}, true
}

// WithQuantity replaces the quantity of an existing line. Quantities below 1
// never change the cart: removal is a separate operation.
func (c Cart) WithQuantity(productID, size string, quantity int) (Cart, bool) {
	if quantity < 1 {
		return c, false
	}
	idx := c.indexOf(NewLineKey(productID, size))
	if idx == -1 || c.lines[idx].Quantity == quantity {
		return c, false
	}

	lines := c.Lines()
	lines[idx].Quantity = quantity
	return Cart{lines: lines}, true
}

func (c Cart) MarshalJSON() ([]byte, error) {
	if c.lines == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.lines)
}

func (c *Cart) UnmarshalJSON(data []byte) error {
	var lines []CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}
	*c = NewCart(lines...)
	return nil
}

// EncodeCart produces the persisted form of a cart: a JSON array of lines.
func EncodeCart(c Cart) ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cart: %w", err)
	}
	return data, nil
}

func DecodeCart(data []byte) (Cart, error) {
	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return Cart{}, fmt.Errorf("failed to decode cart: %w", err)
	}
	return c, nil
}
