package storage

import (
	"errors"
	"path/filepath"
	"testing"
)

func openTestBolt(t *testing.T, path string) *BoltStore {
	t.Helper()
	store, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return store
}

func TestBoltStoreSetGetDelete(t *testing.T) {
	store := openTestBolt(t, filepath.Join(t.TempDir(), "foodstore.db"))
	defer store.Close()

	if err := store.Set("cart", []byte(`[{"id":1,"quantity":2}]`)); err != nil {
		t.Fatalf("set cart: %v", err)
	}
	got, err := store.Get("cart")
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if string(got) != `[{"id":1,"quantity":2}]` {
		t.Fatalf("expected stored payload, got %q", got)
	}

	if err := store.Delete("cart"); err != nil {
		t.Fatalf("delete cart: %v", err)
	}
	if _, err := store.Get("cart"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.Delete("cart"); err != nil {
		t.Fatalf("deleting an absent key should be a no-op, got %v", err)
	}
}

func TestBoltStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foodstore.db")

	store := openTestBolt(t, path)
	if err := store.Set("user", []byte(`{"name":"Ada","email":"ada@example.com"}`)); err != nil {
		t.Fatalf("set user: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	reopened := openTestBolt(t, path)
	defer reopened.Close()
	got, err := reopened.Get("user")
	if err != nil {
		t.Fatalf("get user after reopen: %v", err)
	}
	if string(got) != `{"name":"Ada","email":"ada@example.com"}` {
		t.Fatalf("expected persisted user, got %q", got)
	}
}

func TestOpenBoltRequiresPath(t *testing.T) {
	if _, err := OpenBolt("  "); err == nil {
		t.Fatal("expected error for blank path")
	}
}

func TestNilBoltStoreIsNotConfigured(t *testing.T) {
	var store *BoltStore
	if err := store.Close(); err != nil {
		t.Fatalf("close on nil store: %v", err)
	}
	if _, err := store.Get("cart"); err == nil {
		t.Fatal("expected error from nil store")
	}
}
