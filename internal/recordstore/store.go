// Package recordstore provides key-value persistence for all domain records.
// Every entity is a JSON value under a typed key prefix; reads are direct key
// lookups or prefix scans, writes optionally batch under one transaction.
package recordstore

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when no record exists under the key.
var ErrKeyNotFound = errors.New("record not found")

// Txn is a transactional view of the store. Writes made through a Txn commit
// together or not at all.
type Txn interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// Store is the record store contract: direct key access plus prefix scans.
// Scan order is unspecified.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	ScanPrefix(ctx context.Context, prefix string) ([][]byte, error)

	// Update runs fn against a transactional view. Multi-key writes that must
	// not partially fail (an expense and its approval step) go through here.
	Update(ctx context.Context, fn func(txn Txn) error) error

	Ping(ctx context.Context) error
	Close() error
}
