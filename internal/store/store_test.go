package store

import (
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passbook-dev/passbook/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "accounts.txt"))
	require.NoError(t, err)
	return s
}

func testAccount(number string, balance string) model.Account {
	return model.Account{
		Number:       number,
		Name:         "Holder " + number,
		PasswordHash: "hash-" + number,
		Balance:      decimal.RequireFromString(balance),
	}
}

func TestOpen_CreatesHeaderOnlyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.txt")
	s, err := Open(path)
	require.NoError(t, err)
	assert.Empty(t, s.All())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Header+"\n", string(data))
}

func TestOpen_LoadsExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "accounts.txt")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Append(testAccount("123456", "500.00")))

	s2, err := Open(path)
	require.NoError(t, err)
	acct, ok := s2.FindByNumber("123456")
	require.True(t, ok)
	assert.Equal(t, "Holder 123456", acct.Name)
	assert.True(t, acct.Balance.Equal(decimal.RequireFromString("500.00")))
}

func TestAppend_Duplicate(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Append(testAccount("123456", "1.00")))

	err := s.Append(testAccount("123456", "2.00"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateNumber)
}

func TestGenerateNumber(t *testing.T) {
	s := newTestStore(t)
	sixDigits := regexp.MustCompile(`^[1-9]\d{5}$`)

	seen := make(map[string]bool)
	for n := 0; n < 20; n++ {
		number, err := s.GenerateNumber()
		require.NoError(t, err)
		assert.Regexp(t, sixDigits, number)
		require.NoError(t, s.Append(testAccount(number, "0.00")))
		assert.False(t, seen[number], "number %s issued twice", number)
		seen[number] = true
	}
}

func TestUpdate_RewritesStore(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Append(testAccount("123456", "100.00")))
	require.NoError(t, s.Append(testAccount("654321", "50.00")))

	updated, err := s.Update("123456", func(a *model.Account) error {
		a.Balance = a.Balance.Add(decimal.RequireFromString("25.00"))
		return nil
	})
	require.NoError(t, err)
	assert.True(t, updated.Balance.Equal(decimal.RequireFromString("125.00")))

	// Untouched record survives the rewrite.
	other, ok := s.FindByNumber("654321")
	require.True(t, ok)
	assert.True(t, other.Balance.Equal(decimal.RequireFromString("50.00")))
}

func TestUpdate_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Update("999999", func(a *model.Account) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApply_MutateErrorLeavesStoreUnchanged(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Append(testAccount("123456", "100.00")))

	boom := assert.AnError
	err := s.Apply(func(byNumber map[string]*model.Account) error {
		byNumber["123456"].Balance = decimal.Zero
		return boom
	})
	assert.ErrorIs(t, err, boom)

	acct, ok := s.FindByNumber("123456")
	require.True(t, ok)
	assert.True(t, acct.Balance.Equal(decimal.RequireFromString("100.00")))
}

func TestApply_MultiRecordRewrite(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Append(testAccount("123456", "100.00")))
	require.NoError(t, s.Append(testAccount("654321", "0.00")))

	amount := decimal.RequireFromString("40.00")
	err := s.Apply(func(byNumber map[string]*model.Account) error {
		byNumber["123456"].Balance = byNumber["123456"].Balance.Sub(amount)
		byNumber["654321"].Balance = byNumber["654321"].Balance.Add(amount)
		return nil
	})
	require.NoError(t, err)

	from, _ := s.FindByNumber("123456")
	to, _ := s.FindByNumber("654321")
	assert.True(t, from.Balance.Equal(decimal.RequireFromString("60.00")))
	assert.True(t, to.Balance.Equal(decimal.RequireFromString("40.00")))
}

// Interleaved load-mutate-rewrite sequences must not lose updates.
func TestUpdate_ConcurrentNoLostUpdates(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Append(testAccount("123456", "0.00")))

	const workers = 10
	const perWorker = 5
	one := decimal.RequireFromString("1.00")

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := 0; p < perWorker; p++ {
				_, err := s.Update("123456", func(a *model.Account) error {
					a.Balance = a.Balance.Add(one)
					return nil
				})
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	acct, ok := s.FindByNumber("123456")
	require.True(t, ok)
	assert.True(t, acct.Balance.Equal(decimal.NewFromInt(workers*perWorker)),
		"expected %d, got %s", workers*perWorker, acct.Balance)
}

func TestRewrite_PreservesHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "accounts.txt")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Append(testAccount("123456", "10.00")))

	_, err = s.Update("123456", func(a *model.Account) error {
		a.Balance = decimal.Zero
		return nil
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Header, string(data[:len(Header)]))
}
