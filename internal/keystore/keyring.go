// Package keystore holds the console's persistent key/value storage: the
// session record, the raw bearer token and the KYC document-status flag.
// Backends are interchangeable; the file backend is the default for a
// single-operator install, the redis backend is shared across console
// processes on the same host or team.
package keystore

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("keystore: key not found")

// Keyring is a minimal persistent key/value store.
type Keyring interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete is idempotent; removing an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Watcher is implemented by keyrings that can observe out-of-process changes
// to their keys. fn runs on every observed change until ctx is done.
type Watcher interface {
	Watch(ctx context.Context, keys []string, fn func()) error
}
