package storage

import (
	"errors"
	"fmt"
)

const (
	KindMemory = "memory"
	KindSQLite = "sqlite"
)

var ErrUnsupportedStore = errors.New("unsupported store backend")

// NewStore picks a backend by kind. An empty kind selects memory; sqlitePath
// is only read by the sqlite backend.
func NewStore(kind, sqlitePath string) (Store, error) {
	switch kind {
	case "", KindMemory:
		return NewMemoryStore(), nil
	case KindSQLite:
		return newSQLiteStore(sqlitePath)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedStore, kind)
	}
}

// CloseIfSupported closes stores that hold a resource, such as a database
// handle, and is a no-op for the rest.
func CloseIfSupported(store Store) error {
	closer, ok := store.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}
