package data

import "errors"

var (
	// ErrNotFound reports a referenced customer, product, or order that
	// does not exist. It is raised before any dependent insert is tried.
	ErrNotFound = errors.New("not found")

	// ErrInvalidAmount reports a monetary amount that cannot be parsed
	// as an exact decimal.
	ErrInvalidAmount = errors.New("invalid amount")
)
