package storage

import (
	"context"
	"errors"
	"testing"
)

func TestNewStoreMemory(t *testing.T) {
	store, err := NewStore("memory", "")
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	if store == nil {
		t.Fatal("expected non-nil store")
	}
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := CloseIfSupported(store); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestNewStoreUnsupported(t *testing.T) {
	_, err := NewStore("unknown", "")
	if !errors.Is(err, ErrUnsupportedStore) {
		t.Fatalf("expected ErrUnsupportedStore, got: %v", err)
	}
}

func TestDefaultStoreKindResolves(t *testing.T) {
	path := t.TempDir() + "/default.db"
	store, err := NewStore(DefaultStoreKind(), path)
	if err != nil {
		t.Fatalf("default store kind %s: %v", DefaultStoreKind(), err)
	}
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	_ = CloseIfSupported(store)
}
