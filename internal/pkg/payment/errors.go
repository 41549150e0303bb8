package payment

import "errors"

// Error taxonomy. Gateway failures during initiate are deliberately absent:
// they are absorbed into the stub checkout URL and never surfaced to callers.
var (
	ErrInvalidUserID       = errors.New("payment: invalid user id")
	ErrInvalidAmount       = errors.New("payment: invalid amount")
	ErrUserNotFound        = errors.New("payment: user not found")
	ErrTransactionNotFound = errors.New("payment: transaction not found")
)
