package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a balance-affecting event.
type TransactionType string

const (
	TypeInitialDeposit TransactionType = "Initial Deposit"
	TypeDeposit        TransactionType = "Deposit"
	TypeWithdrawal     TransactionType = "Withdrawal"
	TypeTransferOut    TransactionType = "Transfer to"
	TypeTransferIn     TransactionType = "Transfer from"
)

// Transaction represents a row in transactions.txt. Rows are append-only and
// immutable once written. Counterparty is set only for transfer types and
// names the other account involved.
type Transaction struct {
	AccountNumber string
	Type          TransactionType
	Counterparty  string
	Amount        decimal.Decimal
	Date          time.Time
}

// IsTransfer reports whether the transaction is one side of a transfer.
func (t Transaction) IsTransfer() bool {
	return t.Type == TypeTransferOut || t.Type == TypeTransferIn
}
