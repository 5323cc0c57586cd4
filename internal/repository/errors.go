package repository

import "errors"

var (
	ErrNotFound         = errors.New("entity not found")
	ErrEmptyKey         = errors.New("slot key must not be empty")
	ErrConnectionFailed = errors.New("storage connection failed")
	ErrQueryFailed      = errors.New("storage query failed")
)
