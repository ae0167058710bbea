package cache

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"
)

// BadgerCache stores entries in an embedded Badger database. Expiration is
// handled by Badger's native entry TTL.
type BadgerCache struct {
	db *badger.DB
}

// NewBadgerCache opens (or creates) a Badger database in dir. An empty dir
// opens an in-memory database, which is mainly useful in tests.
func NewBadgerCache(dir string) (*BadgerCache, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	opts.MetricsEnabled = false
	if dir == "" {
		opts.InMemory = true
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "open badger cache %q", dir)
	}
	return &BadgerCache{db: db}, nil
}

// Get retrieves a value from the cache.
func (c *BadgerCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "badger get")
	}
	return data, true, nil
}

// Set stores a value in the cache.
func (c *BadgerCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), data)
		if ttl > 0 {
			e = e.WithTTL(ttl)
		}
		return txn.SetEntry(e)
	})
	return errors.Wrap(err, "badger set")
}

// Delete removes a value from the cache.
func (c *BadgerCache) Delete(ctx context.Context, key string) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	return errors.Wrap(err, "badger delete")
}

// Close flushes and closes the database.
func (c *BadgerCache) Close() error {
	return c.db.Close()
}

// Ensure BadgerCache implements Cache.
var _ Cache = (*BadgerCache)(nil)
