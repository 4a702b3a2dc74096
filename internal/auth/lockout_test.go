package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGuard(t *testing.T) (*Guard, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lockouts.csv")
	g, err := NewGuard(path, 3)
	require.NoError(t, err)
	return g, path
}

func TestNewGuard_CreatesHeaderOnlyFile(t *testing.T) {
	_, path := newTestGuard(t)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, LockoutHeader+"\n", string(data))
}

func TestRecordFailure_LocksAtThreshold(t *testing.T) {
	g, _ := newTestGuard(t)

	for i := 1; i <= 2; i++ {
		count, err := g.RecordFailure("123456")
		require.NoError(t, err)
		assert.Equal(t, i, count)
		assert.False(t, g.Locked("123456"))
	}

	count, err := g.RecordFailure("123456")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.True(t, g.Locked("123456"))
	assert.Equal(t, 0, g.Remaining("123456"))
}

func TestReset_ClearsCounter(t *testing.T) {
	g, _ := newTestGuard(t)

	_, err := g.RecordFailure("123456")
	require.NoError(t, err)
	require.NoError(t, g.Reset("123456"))

	assert.Equal(t, 3, g.Remaining("123456"))
	assert.False(t, g.Locked("123456"))
}

func TestReset_UnknownAccountIsNoop(t *testing.T) {
	g, _ := newTestGuard(t)
	assert.NoError(t, g.Reset("999999"))
}

func TestGuard_SurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lockouts.csv")
	g, err := NewGuard(path, 3)
	require.NoError(t, err)

	for n := 0; n < 3; n++ {
		_, err := g.RecordFailure("123456")
		require.NoError(t, err)
	}
	require.True(t, g.Locked("123456"))

	// A new Guard over the same file sees the lock.
	g2, err := NewGuard(path, 3)
	require.NoError(t, err)
	assert.True(t, g2.Locked("123456"))
	assert.Equal(t, 0, g2.Remaining("123456"))
}

func TestGuard_PerAccountCounters(t *testing.T) {
	g, _ := newTestGuard(t)

	_, err := g.RecordFailure("123456")
	require.NoError(t, err)
	assert.Equal(t, 2, g.Remaining("123456"))
	assert.Equal(t, 3, g.Remaining("654321"))
}
