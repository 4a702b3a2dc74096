package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Test Bank")
	cfg.Auth.MaxAttempts = 5
	cfg.Statement.Limit = 20

	path := filepath.Join(t.TempDir(), "passbook.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Bank.Name, got.Bank.Name)
	assert.Equal(t, cfg.Bank.Currency, got.Bank.Currency)
	assert.Equal(t, cfg.Storage.AccountsFile, got.Storage.AccountsFile)
	assert.Equal(t, cfg.Storage.TransactionsFile, got.Storage.TransactionsFile)
	assert.Equal(t, cfg.Storage.LockoutsFile, got.Storage.LockoutsFile)
	assert.Equal(t, 5, got.Auth.MaxAttempts)
	assert.Equal(t, 20, got.Statement.Limit)
}

func TestDefaults(t *testing.T) {
	cfg := Default("My Bank")

	assert.Equal(t, "My Bank", cfg.Bank.Name)
	assert.Equal(t, "accounts.txt", cfg.Storage.AccountsFile)
	assert.Equal(t, "transactions.txt", cfg.Storage.TransactionsFile)
	assert.Equal(t, "lockouts.csv", cfg.Storage.LockoutsFile)
	assert.Equal(t, 3, cfg.Auth.MaxAttempts)
	assert.Equal(t, 10, cfg.Statement.Limit)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
