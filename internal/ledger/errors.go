package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName         = errors.New("name cannot be empty")
	ErrEmptyPassword     = errors.New("password cannot be empty")
	ErrNegativeDeposit   = errors.New("initial deposit cannot be negative")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrAmountPrecision   = errors.New("amount cannot have more than 2 decimal places")
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrBadCredentials    = errors.New("invalid credentials")
	ErrLocked            = errors.New("account is locked due to multiple failed login attempts")
	ErrSelfTransfer      = errors.New("cannot transfer to your own account")
	ErrRecipientNotFound = errors.New("recipient account not found")
	ErrPasswordMismatch  = errors.New("passwords do not match")
)

// AuthAttemptError reports a failed login, carrying the attempts left before
// the account locks. It unwraps to ErrLocked once no attempts remain, and to
// ErrBadCredentials otherwise.
type AuthAttemptError struct {
	Remaining int
}

func (e *AuthAttemptError) Error() string {
	if e.Remaining <= 0 {
		return ErrLocked.Error()
	}
	return fmt.Sprintf("invalid credentials: %d attempts remaining", e.Remaining)
}

func (e *AuthAttemptError) Unwrap() error {
	if e.Remaining <= 0 {
		return ErrLocked
	}
	return ErrBadCredentials
}

// InsufficientFundsError reports a withdrawal or transfer that exceeds the
// available balance. It unwraps to ErrInsufficientFunds.
type InsufficientFundsError struct {
	Available decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient balance: available %s", e.Available.StringFixed(2))
}

func (e *InsufficientFundsError) Unwrap() error {
	return ErrInsufficientFunds
}
