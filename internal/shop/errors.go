package shop

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrOutOfStock      = errors.New("product is out of stock")
)
