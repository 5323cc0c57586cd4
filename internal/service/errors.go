package service

import "errors"

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidShipping = errors.New("invalid shipping details")
	ErrCartChanged     = errors.New("cart changed during checkout")
	ErrStoreClosed     = errors.New("cart store is closed")
)
