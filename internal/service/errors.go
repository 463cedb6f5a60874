package service

import "errors"

var (
	// ErrInvalidInput marks request validation failures; the wrapped message
	// names the offending field.
	ErrInvalidInput = errors.New("invalid input")

	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrForbidden marks access to a resource the caller does not own.
	ErrForbidden = errors.New("access denied")

	// ErrPaymentNotCompleted is returned when the provider does not confirm a
	// completed capture during pay verification.
	ErrPaymentNotCompleted = errors.New("payment not completed")

	ErrEmptyCart = errors.New("cart is empty")
)
