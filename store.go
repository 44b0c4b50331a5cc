package console

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// tokenKey is the fixed key the credential lives under in durable
// storage. The cookie written by SessionManager carries the same value.
const tokenKey = "console:token"

const tokenBucket = "session"

// MemoryTokenStore keeps the token in process memory. Used in tests and
// in deployments where durability across restarts is not wanted.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (m *MemoryTokenStore) Read(_ context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, nil
}

func (m *MemoryTokenStore) Write(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryTokenStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

// BoltTokenStore persists the token in a bbolt file so a restarted
// process can rehydrate the session without a fresh login.
type BoltTokenStore struct {
	db *bolt.DB
}

func OpenBoltTokenStore(path string) (*BoltTokenStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(tokenBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &BoltTokenStore{db: db}, nil
}

func (s *BoltTokenStore) Read(_ context.Context) (string, error) {
	if s == nil || s.db == nil {
		return "", bolt.ErrDatabaseNotOpen
	}

	var token string
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(tokenBucket)).Get([]byte(tokenKey)); v != nil {
			token = string(v)
		}
		return nil
	})
	return token, err
}

func (s *BoltTokenStore) Write(_ context.Context, token string) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(tokenBucket)).Put([]byte(tokenKey), []byte(token))
	})
}

func (s *BoltTokenStore) Clear(_ context.Context) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(tokenBucket)).Delete([]byte(tokenKey))
	})
}

func (s *BoltTokenStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
