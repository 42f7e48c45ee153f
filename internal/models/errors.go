package models

import "errors"

var (
	ErrUsernameTaken        = errors.New("username already exists")
	ErrUserNotFound         = errors.New("user not found")
	ErrSignatureInvalid     = errors.New("signature incorrect")
	ErrAmountNotPositive    = errors.New("amount must be positive")
	ErrBillNotFound         = errors.New("bill not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrVerificationNotFound = errors.New("verification link not found")
)
