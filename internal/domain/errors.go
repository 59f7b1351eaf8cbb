package domain

import "errors"

var (
	// ErrOriginAlreadyRegistered is returned when creating a vault for an origin that already has one
	ErrOriginAlreadyRegistered = errors.New("origin already registered")

	// ErrVaultNotFound is returned when an index or origin lookup misses
	ErrVaultNotFound = errors.New("vault not found")

	// ErrAlreadyInitialized is returned when a vault is initialized twice
	ErrAlreadyInitialized = errors.New("vault already initialized")

	// ErrNotInitialized is returned when operating on a vault before its init call resolved
	ErrNotInitialized = errors.New("vault not initialized")

	// ErrInsufficientShares is returned when a withdrawal exceeds the caller's share balance
	ErrInsufficientShares = errors.New("insufficient share balance")

	// ErrSupplyUnderflow is returned when total supply is below a single unit value,
	// which would make the reported supply negative
	ErrSupplyUnderflow = errors.New("total supply below unit value")

	// ErrAmountUnderflow is returned when amount arithmetic would produce a negative value
	ErrAmountUnderflow = errors.New("amount underflow")

	// ErrUnauthorized is returned when the calling principal is not allowed to perform an operation
	ErrUnauthorized = errors.New("unauthorized")

	// ErrCallFailed is returned when a remote call resolved with a failure outcome
	ErrCallFailed = errors.New("remote call failed")

	// ErrCallPending is returned when a remote call has not resolved within its budget
	ErrCallPending = errors.New("remote call still pending")
)
