// Package session persists the client's authenticated session: an opaque token and the
// serialized identity it belongs to. Both entries are written and removed together; a store
// holding only one of them reports ErrInconsistent.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"appdownloader/internal/models"

	"github.com/boltdb/bolt"
)

var (
	// ErrNoSession indicates that nothing is stored.
	ErrNoSession = errors.New("session: no stored session")
	// ErrInconsistent indicates that only one of token and identity is stored.
	ErrInconsistent = errors.New("session: token and identity out of sync")
	// ErrEmptyToken rejects saving a session without a token.
	ErrEmptyToken = errors.New("session: empty token")
)

var (
	bucketName = []byte("session")
	tokenKey   = []byte("token")
	userKey    = []byte("user")
)

// Store is the durable key-value storage the controller mirrors its identity into.
type Store interface {
	Load() (string, models.Identity, error)
	Save(token string, identity models.Identity) error
	Clear() error
}

// BoltStore keeps the session in a single bolt bucket.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens (creating if needed) the bolt file at path.
func OpenBolt(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("create session bucket: %w", err)
	}
	return &BoltStore{db: db}, nil
}

// Close releases the underlying file.
func (store *BoltStore) Close() error {
	return store.db.Close()
}

// Load returns the stored token and identity.
func (store *BoltStore) Load() (string, models.Identity, error) {
	var token string
	var rawUser []byte
	if err := store.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		token = string(bucket.Get(tokenKey))
		if raw := bucket.Get(userKey); raw != nil {
			rawUser = append([]byte(nil), raw...)
		}
		return nil
	}); err != nil {
		return "", models.Identity{}, err
	}
	return decode(token, rawUser)
}

// Save writes token and identity in one transaction.
func (store *BoltStore) Save(token string, identity models.Identity) error {
	if token == "" {
		return ErrEmptyToken
	}
	rawUser, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	return store.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		if err := bucket.Put(tokenKey, []byte(token)); err != nil {
			return err
		}
		return bucket.Put(userKey, rawUser)
	})
}

// Clear removes both entries in one transaction. Clearing an empty store is not an error.
func (store *BoltStore) Clear() error {
	return store.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		if err := bucket.Delete(tokenKey); err != nil {
			return err
		}
		return bucket.Delete(userKey)
	})
}

// MemoryStore is a process-local Store for ephemeral sessions and tests.
type MemoryStore struct {
	token   string
	rawUser []byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the stored token and identity.
func (store *MemoryStore) Load() (string, models.Identity, error) {
	return decode(store.token, store.rawUser)
}

// Save replaces the stored session.
func (store *MemoryStore) Save(token string, identity models.Identity) error {
	if token == "" {
		return ErrEmptyToken
	}
	rawUser, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	store.token, store.rawUser = token, rawUser
	return nil
}

// Clear forgets the stored session.
func (store *MemoryStore) Clear() error {
	store.token, store.rawUser = "", nil
	return nil
}

// Put stores raw entries without validation, so tests can stage inconsistent states.
func (store *MemoryStore) Put(token string, rawUser []byte) {
	store.token, store.rawUser = token, rawUser
}

func decode(token string, rawUser []byte) (string, models.Identity, error) {
	var identity models.Identity
	switch {
	case token == "" && rawUser == nil:
		return "", identity, ErrNoSession
	case token == "" || rawUser == nil:
		return "", identity, ErrInconsistent
	}
	if err := json.Unmarshal(rawUser, &identity); err != nil {
		return "", identity, fmt.Errorf("%w: cant parse user: %v", ErrInconsistent, err)
	}
	return token, identity, nil
}
