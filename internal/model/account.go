package model

import "github.com/shopspring/decimal"

// Account represents a row in accounts.txt. Number is a 6-digit numeric
// string, unique across the store and immutable once assigned. PasswordHash
// holds a bcrypt hash; the plaintext password is never persisted.
type Account struct {
	Number       string
	Name         string
	PasswordHash string
	Balance      decimal.Decimal
}
