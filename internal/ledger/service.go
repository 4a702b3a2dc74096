// Package ledger implements the account ledger core: account creation,
// authentication with lockout, and the balance-affecting operations. All
// validation happens before any write; a failed operation leaves the store
// and the transaction log unchanged.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/passbook-dev/passbook/internal/auth"
	"github.com/passbook-dev/passbook/internal/model"
	"github.com/passbook-dev/passbook/internal/store"
	"github.com/passbook-dev/passbook/internal/txlog"
)

// DefaultStatementLimit is how many recent transactions a mini statement
// returns when the config does not say otherwise.
const DefaultStatementLimit = 10

// Session is the authenticated snapshot held by a caller for one logged-in
// interaction. The ledger re-syncs Balance from the just-written store state
// after every mutation, so the snapshot tracks the persisted record.
type Session struct {
	Number  string
	Name    string
	Balance decimal.Decimal
}

// Service orchestrates the account store, the transaction log, and the
// lockout guard.
type Service struct {
	store          *store.Store
	log            *txlog.Log
	guard          *auth.Guard
	statementLimit int
}

// NewService creates a ledger Service.
func NewService(st *store.Store, log *txlog.Log, guard *auth.Guard, statementLimit int) *Service {
	if statementLimit <= 0 {
		statementLimit = DefaultStatementLimit
	}
	return &Service{store: st, log: log, guard: guard, statementLimit: statementLimit}
}

// wholeCents reports whether the amount fits the two-decimal representation
// the files use. Amounts that don't would be rounded on write, leaving the
// store out of step with the sum of its own transactions.
func wholeCents(amount decimal.Decimal) bool {
	cents := amount.Mul(decimal.NewFromInt(100))
	return cents.Equal(cents.Floor())
}

// CreateAccount opens a new account with a generated 6-digit number and the
// given opening balance. A zero opening balance is allowed; either way the
// opening is recorded as one Initial Deposit transaction.
func (s *Service) CreateAccount(name string, initialDeposit decimal.Decimal, password string) (model.Account, error) {
	if strings.TrimSpace(name) == "" {
		return model.Account{}, ErrEmptyName
	}
	if initialDeposit.IsNegative() {
		return model.Account{}, ErrNegativeDeposit
	}
	if !wholeCents(initialDeposit) {
		return model.Account{}, ErrAmountPrecision
	}
	if password == "" {
		return model.Account{}, ErrEmptyPassword
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return model.Account{}, err
	}

	number, err := s.store.GenerateNumber()
	if err != nil {
		return model.Account{}, err
	}

	acct := model.Account{
		Number:       number,
		Name:         name,
		PasswordHash: hash,
		Balance:      initialDeposit,
	}
	if err := s.store.Append(acct); err != nil {
		return model.Account{}, err
	}

	if err := s.log.Append(model.Transaction{
		AccountNumber: number,
		Type:          model.TypeInitialDeposit,
		Amount:        initialDeposit,
		Date:          time.Now(),
	}); err != nil {
		return model.Account{}, fmt.Errorf("logging initial deposit: %w", err)
	}

	return acct, nil
}

// Authenticate verifies credentials and returns a Session snapshot. A locked
// account fails with ErrLocked before any credential check. A wrong password
// (or unknown number) increments the failure counter and reports the
// attempts left; the counter clears on success. Counters are tracked for
// whatever number the caller presented.
func (s *Service) Authenticate(number, password string) (*Session, error) {
	if s.guard.Locked(number) {
		return nil, ErrLocked
	}

	acct, ok := s.store.FindByNumber(number)
	if ok && auth.CheckPassword(acct.PasswordHash, password) {
		if err := s.guard.Reset(number); err != nil {
			return nil, err
		}
		return &Session{Number: acct.Number, Name: acct.Name, Balance: acct.Balance}, nil
	}

	if _, err := s.guard.RecordFailure(number); err != nil {
		return nil, err
	}
	return nil, &AuthAttemptError{Remaining: s.guard.Remaining(number)}
}

// Deposit adds a positive amount to the session's account.
func (s *Service) Deposit(sess *Session, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !wholeCents(amount) {
		return ErrAmountPrecision
	}

	acct, err := s.store.Update(sess.Number, func(a *model.Account) error {
		a.Balance = a.Balance.Add(amount)
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.log.Append(model.Transaction{
		AccountNumber: sess.Number,
		Type:          model.TypeDeposit,
		Amount:        amount,
		Date:          time.Now(),
	}); err != nil {
		return fmt.Errorf("logging deposit: %w", err)
	}

	sess.Balance = acct.Balance
	return nil
}

// Withdraw removes a positive amount from the session's account, failing
// with InsufficientFundsError (reporting the available balance) if the
// amount exceeds it.
func (s *Service) Withdraw(sess *Session, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !wholeCents(amount) {
		return ErrAmountPrecision
	}

	acct, err := s.store.Update(sess.Number, func(a *model.Account) error {
		if amount.GreaterThan(a.Balance) {
			return &InsufficientFundsError{Available: a.Balance}
		}
		a.Balance = a.Balance.Sub(amount)
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.log.Append(model.Transaction{
		AccountNumber: sess.Number,
		Type:          model.TypeWithdrawal,
		Amount:        amount,
		Date:          time.Now(),
	}); err != nil {
		return fmt.Errorf("logging withdrawal: %w", err)
	}

	sess.Balance = acct.Balance
	return nil
}

// Transfer moves a positive amount from the session's account to an existing
// recipient. Both balance changes are applied in a single store rewrite, so
// money is never destroyed mid-transfer; the two log rows (Transfer to for
// the sender, Transfer from for the recipient) are appended afterwards.
func (s *Service) Transfer(sess *Session, recipient string, amount decimal.Decimal) error {
	if recipient == sess.Number {
		return ErrSelfTransfer
	}
	if !s.store.Exists(recipient) {
		return ErrRecipientNotFound
	}
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !wholeCents(amount) {
		return ErrAmountPrecision
	}

	var newBalance decimal.Decimal
	err := s.store.Apply(func(byNumber map[string]*model.Account) error {
		sender, ok := byNumber[sess.Number]
		if !ok {
			return fmt.Errorf("%w: %s", store.ErrNotFound, sess.Number)
		}
		to, ok := byNumber[recipient]
		if !ok {
			return ErrRecipientNotFound
		}
		if amount.GreaterThan(sender.Balance) {
			return &InsufficientFundsError{Available: sender.Balance}
		}
		sender.Balance = sender.Balance.Sub(amount)
		to.Balance = to.Balance.Add(amount)
		newBalance = sender.Balance
		return nil
	})
	if err != nil {
		return err
	}

	now := time.Now()
	if err := s.log.Append(model.Transaction{
		AccountNumber: sess.Number,
		Type:          model.TypeTransferOut,
		Counterparty:  recipient,
		Amount:        amount,
		Date:          now,
	}); err != nil {
		return fmt.Errorf("logging transfer out: %w", err)
	}
	if err := s.log.Append(model.Transaction{
		AccountNumber: recipient,
		Type:          model.TypeTransferIn,
		Counterparty:  sess.Number,
		Amount:        amount,
		Date:          now,
	}); err != nil {
		return fmt.Errorf("logging transfer in: %w", err)
	}

	sess.Balance = newBalance
	return nil
}

// ChangePassword replaces the stored credential after re-verifying the
// current password. No transaction is logged.
func (s *Service) ChangePassword(sess *Session, current, newPassword, confirm string) error {
	acct, ok := s.store.FindByNumber(sess.Number)
	if !ok {
		return fmt.Errorf("%w: %s", store.ErrNotFound, sess.Number)
	}
	if !auth.CheckPassword(acct.PasswordHash, current) {
		return ErrBadCredentials
	}
	if newPassword == "" {
		return ErrEmptyPassword
	}
	if newPassword != confirm {
		return ErrPasswordMismatch
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	_, err = s.store.Update(sess.Number, func(a *model.Account) error {
		a.PasswordHash = hash
		return nil
	})
	return err
}

// MiniStatement returns the most recent transactions for the session's
// account, oldest first, and re-syncs the session balance from the store.
func (s *Service) MiniStatement(sess *Session) ([]model.Transaction, error) {
	txs, err := s.log.Recent(sess.Number, s.statementLimit)
	if err != nil {
		return nil, err
	}
	if acct, ok := s.store.FindByNumber(sess.Number); ok {
		sess.Balance = acct.Balance
	}
	return txs, nil
}
