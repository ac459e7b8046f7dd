package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryAttemptStoreLimit(t *testing.T) {
	store := NewMemoryAttemptStore()

	for i := 0; i < 5; i++ {
		require.True(t, store.Allow("42", 5, time.Minute), "попытка %d", i+1)
	}
	require.False(t, store.Allow("42", 5, time.Minute), "шестая попытка сверх лимита")
}

func TestMemoryAttemptStoreKeysIndependent(t *testing.T) {
	store := NewMemoryAttemptStore()

	for i := 0; i < 5; i++ {
		require.True(t, store.Allow("a", 5, time.Minute))
	}
	require.False(t, store.Allow("a", 5, time.Minute))
	require.True(t, store.Allow("b", 5, time.Minute), "другой ключ не затронут")
}

func TestMemoryAttemptStoreWindowExpiry(t *testing.T) {
	store := NewMemoryAttemptStore()
	current := time.Date(2025, 11, 24, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	for i := 0; i < 5; i++ {
		require.True(t, store.Allow("42", 5, 5*time.Minute))
	}
	require.False(t, store.Allow("42", 5, 5*time.Minute))

	// Спустя окно старые попытки забываются
	current = current.Add(5*time.Minute + time.Second)
	require.True(t, store.Allow("42", 5, 5*time.Minute))
}
