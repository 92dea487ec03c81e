package modules

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/patrickmn/go-cache"
)

const SessionTTL = 7 * 24 * time.Hour

// SessionStore maps opaque cookie tokens to user ids. Expiry is enforced
// lazily on Get; any key-value store with TTL support can back it.
type SessionStore interface {
	Get(token string) (string, bool)
	Set(token string, userID string)
	Destroy(token string)
}

var Sessions SessionStore

func InitSessions() {
	Sessions = NewCacheSessionStore(SessionTTL)
}

type CacheSessionStore struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewCacheSessionStore(ttl time.Duration) *CacheSessionStore {
	return &CacheSessionStore{
		cache: cache.New(ttl, time.Hour),
		ttl:   ttl,
	}
}

func (s *CacheSessionStore) Get(token string) (string, bool) {
	value, found := s.cache.Get(token)
	if !found {
		return "", false
	}
	return value.(string), true
}

func (s *CacheSessionStore) Set(token string, userID string) {
	s.cache.Set(token, userID, s.ttl)
}

func (s *CacheSessionStore) Destroy(token string) {
	s.cache.Delete(token)
}

func GenerateToken() string {
	b := make([]byte, 64)

	if _, err := rand.Read(b); err != nil {
		return ""
	}
	encoder := base64.StdEncoding.WithPadding(base64.NoPadding)
	token := encoder.EncodeToString(b)

	return "fdb." + token
}
