package kvstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"oumybeauty/internal/domain/repository"
)

// BoltStore keeps one namespace (bbolt bucket) of keys in a single file.
type BoltStore struct {
	db     *bbolt.DB
	bucket []byte
	quota  int64
}

// OpenBoltStore opens or creates the file at path. quotaBytes bounds the
// total size of keys plus values in the namespace; zero disables the check.
func OpenBoltStore(path, namespace string, quotaBytes int64) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %v", err)
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open kv store %s: %v", path, err)
	}

	bucket := []byte(namespace)
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create namespace %s: %v", namespace, err)
	}

	return &BoltStore{db: db, bucket: bucket, quota: quotaBytes}, nil
}

func (s *BoltStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(s.bucket).Get([]byte(key))
		if v == nil {
			return repository.ErrKeyNotFound
		}
		// bbolt values are only valid inside the transaction
		value = append([]byte(nil), v...)
		return nil
	})
	return value, err
}

func (s *BoltStore) Set(ctx context.Context, key string, value []byte) error {
	return s.Update(ctx, key, func([]byte, bool) ([]byte, error) {
		return value, nil
	})
}

func (s *BoltStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(key))
	})
}

func (s *BoltStore) Update(ctx context.Context, key string, fn func(current []byte, exists bool) ([]byte, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucket)
		k := []byte(key)

		cur := b.Get(k)
		exists := cur != nil
		next, err := fn(append([]byte(nil), cur...), exists)
		if err != nil {
			return err
		}

		if s.quota > 0 {
			used := int64(len(k) + len(next))
			err := b.ForEach(func(ek, ev []byte) error {
				if string(ek) != key {
					used += int64(len(ek) + len(ev))
				}
				return nil
			})
			if err != nil {
				return err
			}
			if used > s.quota {
				return fmt.Errorf("%w: %d of %d bytes", repository.ErrQuotaExceeded, used, s.quota)
			}
		}

		return b.Put(k, next)
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
