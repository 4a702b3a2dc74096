package auth

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// LockoutHeader is the schema marker row for lockouts.csv.
const LockoutHeader = "Account Number,Failed Attempts"

const lockoutFields = 2

// Guard tracks consecutive failed login attempts per account number. State
// is persisted after every change, so a lockout survives restart until an
// operator clears the row. Counters are keyed by the number the caller
// presented, whether or not an account exists for it.
type Guard struct {
	path      string
	threshold int

	mu       sync.Mutex
	attempts map[string]int
}

// NewGuard loads the lockout file at path, creating it with a header if
// absent. threshold is the failure count at which an account locks.
func NewGuard(path string, threshold int) (*Guard, error) {
	g := &Guard{path: path, threshold: threshold, attempts: make(map[string]int)}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating lockout dir: %w", err)
		}
		if err := os.WriteFile(path, []byte(LockoutHeader+"\n"), 0o644); err != nil {
			return nil, fmt.Errorf("initializing lockout file: %w", err)
		}
		return g, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening lockout file: %w", err)
	}
	defer f.Close()

	if err := g.load(f); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Guard) load(r io.Reader) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = lockoutFields

	records, err := cr.ReadAll()
	if err != nil {
		return fmt.Errorf("reading lockout CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil
	}

	for i, rec := range records[1:] {
		count, err := strconv.Atoi(rec[1])
		if err != nil {
			return fmt.Errorf("row %d: parsing attempt count %q: %w", i+2, rec[1], err)
		}
		g.attempts[rec[0]] = count
	}
	return nil
}

// Locked reports whether the account has reached the lockout threshold.
func (g *Guard) Locked(number string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.attempts[number] >= g.threshold
}

// Remaining returns how many attempts are left before the account locks.
func (g *Guard) Remaining(number string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	left := g.threshold - g.attempts[number]
	if left < 0 {
		return 0
	}
	return left
}

// RecordFailure increments the failure counter for the account, persists,
// and returns the new count.
func (g *Guard) RecordFailure(number string) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.attempts[number]++
	if err := g.save(); err != nil {
		return 0, err
	}
	return g.attempts[number], nil
}

// Reset clears the failure counter for the account and persists.
func (g *Guard) Reset(number string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.attempts[number]; !ok {
		return nil
	}
	delete(g.attempts, number)
	return g.save()
}

// save rewrites the lockout file. Caller holds mu. The file is tiny, so a
// plain truncate-and-write is fine here.
func (g *Guard) save() error {
	f, err := os.Create(g.path)
	if err != nil {
		return fmt.Errorf("creating lockout file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if err := cw.Write(strings.Split(LockoutHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for number, count := range g.attempts {
		if err := cw.Write([]string{number, strconv.Itoa(count)}); err != nil {
			return fmt.Errorf("writing lockout row: %w", err)
		}
	}
	return cw.Error()
}
