package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"
)

const storefrontBucket = "storefront"

// BoltStore is a KeyValue backed by a single bbolt file.
type BoltStore struct {
	db *bbolt.DB
}

var _ KeyValue = (*BoltStore)(nil)

// OpenBolt opens (creating if needed) the bbolt file at path.
func OpenBolt(path string) (*BoltStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(storefrontBucket)); err != nil {
			return fmt.Errorf("create %s bucket: %w", storefrontBucket, err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *BoltStore) Get(key string) ([]byte, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(storefrontBucket))
		if bucket == nil {
			return fmt.Errorf("%s bucket is missing", storefrontBucket)
		}
		payload := bucket.Get([]byte(key))
		if payload == nil {
			return ErrNotFound
		}
		// payload is only valid for the life of the transaction
		value = append([]byte(nil), payload...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *BoltStore) Set(key string, value []byte) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(storefrontBucket))
		if bucket == nil {
			return fmt.Errorf("%s bucket is missing", storefrontBucket)
		}
		return bucket.Put([]byte(key), value)
	})
}

func (s *BoltStore) Delete(key string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(storefrontBucket))
		if bucket == nil {
			return fmt.Errorf("%s bucket is missing", storefrontBucket)
		}
		return bucket.Delete([]byte(key))
	})
}
