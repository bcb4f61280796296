// Package cache keeps short-lived provider responses in an in-memory badger
// database. Nothing is written to disk and entries expire by TTL.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// TTLCache stores JSON values with a fixed time to live.
type TTLCache struct {
	db  *badger.DB
	ttl time.Duration
}

// New opens an in-memory cache. A non-positive ttl is rejected; callers
// disable caching by not constructing one.
func New(ttl time.Duration) (*TTLCache, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive, got %s", ttl)
	}
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}
	return &TTLCache{db: db, ttl: ttl}, nil
}

// Close releases the database.
func (c *TTLCache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Put encodes value as JSON under key.
func (c *TTLCache) Put(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	return c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), data).WithTTL(c.ttl)
		return txn.SetEntry(e)
	})
}

// Get decodes the value stored under key into target.
func (c *TTLCache) Get(key string, target any) error {
	var data []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrMiss
	}
	if err != nil {
		return fmt.Errorf("cache read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("cache decode %s: %w", key, err)
	}
	return nil
}
