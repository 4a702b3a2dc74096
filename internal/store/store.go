package store

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"

	"github.com/passbook-dev/passbook/internal/model"
)

// numberSpace is the count of assignable 6-digit account numbers
// (100000..999999).
const numberSpace = 900000

var (
	// ErrDuplicateNumber is returned by Append when the account number is
	// already present in the store.
	ErrDuplicateNumber = errors.New("account number already exists")
	// ErrNotFound is returned by Update when no account has the given number.
	ErrNotFound = errors.New("account not found")
	// ErrNumberSpaceExhausted is returned by GenerateNumber when every
	// 6-digit number is taken.
	ErrNumberSpaceExhausted = errors.New("account number space exhausted")
)

// Store owns the full persisted set of accounts. All reads return copies and
// every mutation goes through a whole-file rewrite, so a single Store must be
// the only writer for its file. A mutex serialises callers; two interleaved
// load-mutate-rewrite sequences cannot lose updates in-process.
type Store struct {
	path string

	mu       sync.Mutex
	accounts []model.Account
	byNumber map[string]int // account number -> index into accounts
}

// Open loads the account store at path, creating a header-only file if none
// exists.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating store dir: %w", err)
		}
		if err := os.WriteFile(path, []byte(Header+"\n"), 0o644); err != nil {
			return nil, fmt.Errorf("initializing accounts file: %w", err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening accounts file: %w", err)
	}
	defer f.Close()

	accounts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading accounts file: %w", err)
	}

	s := &Store{path: path, accounts: accounts}
	s.reindex()
	return s, nil
}

func (s *Store) reindex() {
	s.byNumber = make(map[string]int, len(s.accounts))
	for i, a := range s.accounts {
		s.byNumber[a.Number] = i
	}
}

// All returns a copy of every account in file order.
func (s *Store) All() []model.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}

// Exists reports whether an account number is in use.
func (s *Store) Exists(number string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.byNumber[number]
	return ok
}

// FindByNumber returns the account with the given number.
func (s *Store) FindByNumber(number string) (model.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.byNumber[number]
	if !ok {
		return model.Account{}, false
	}
	return s.accounts[i], true
}

// GenerateNumber draws random 6-digit numbers until it finds one not in use.
func (s *Store) GenerateNumber() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.accounts) >= numberSpace {
		return "", ErrNumberSpaceExhausted
	}

	for {
		number := fmt.Sprintf("%06d", rand.Intn(numberSpace)+100000)
		if _, taken := s.byNumber[number]; !taken {
			return number, nil
		}
	}
}

// Append persists a new account by appending one row to the file.
func (s *Store) Append(acct model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byNumber[acct.Number]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateNumber, acct.Number)
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening accounts file: %w", err)
	}
	defer f.Close()

	if err := appendRow(f, MarshalAccount(acct)); err != nil {
		return fmt.Errorf("appending account %s: %w", acct.Number, err)
	}

	s.accounts = append(s.accounts, acct)
	s.byNumber[acct.Number] = len(s.accounts) - 1
	return nil
}

// Apply runs mutate over a working copy of the full account set indexed by
// number, then atomically rewrites the file with the result. If mutate
// returns an error, nothing is written and the in-memory set is unchanged.
// This load-all, mutate, rewrite-all sequence is the sole mutation primitive
// for existing records; Apply may touch several records in one rewrite.
func (s *Store) Apply(mutate func(byNumber map[string]*model.Account) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	working := make([]model.Account, len(s.accounts))
	copy(working, s.accounts)

	byNumber := make(map[string]*model.Account, len(working))
	for i := range working {
		byNumber[working[i].Number] = &working[i]
	}

	if err := mutate(byNumber); err != nil {
		return err
	}

	if err := s.rewrite(working); err != nil {
		return err
	}

	s.accounts = working
	s.reindex()
	return nil
}

// Update mutates a single account and rewrites the store. It returns the
// updated record as persisted.
func (s *Store) Update(number string, mutate func(*model.Account) error) (model.Account, error) {
	var updated model.Account
	err := s.Apply(func(byNumber map[string]*model.Account) error {
		a, ok := byNumber[number]
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotFound, number)
		}
		if err := mutate(a); err != nil {
			return err
		}
		updated = *a
		return nil
	})
	if err != nil {
		return model.Account{}, err
	}
	return updated, nil
}

// rewrite replaces the file contents with header plus the given accounts,
// writing to a temp file in the same directory and renaming over the
// original so readers never observe a truncated store. Caller holds mu.
func (s *Store) rewrite(accounts []model.Account) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp accounts file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := WriteAccounts(tmp, accounts); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing accounts: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp accounts file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing accounts file: %w", err)
	}
	return nil
}
