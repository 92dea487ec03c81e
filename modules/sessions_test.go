package modules

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheSessionStore(t *testing.T) {
	store := NewCacheSessionStore(time.Minute)

	_, ok := store.Get("missing")
	assert.False(t, ok)

	store.Set("token-a", "user-1")
	userID, ok := store.Get("token-a")
	require.True(t, ok)
	assert.Equal(t, "user-1", userID)

	store.Destroy("token-a")
	_, ok = store.Get("token-a")
	assert.False(t, ok)
}

func TestCacheSessionStoreExpiry(t *testing.T) {
	store := NewCacheSessionStore(20 * time.Millisecond)

	store.Set("token-b", "user-2")
	_, ok := store.Get("token-b")
	require.True(t, ok)

	time.Sleep(50 * time.Millisecond)

	_, ok = store.Get("token-b")
	assert.False(t, ok)
}

func TestGenerateToken(t *testing.T) {
	first := GenerateToken()
	second := GenerateToken()

	assert.True(t, strings.HasPrefix(first, "fdb."))
	assert.NotEqual(t, first, second)
	assert.Greater(t, len(first), 40)
}
