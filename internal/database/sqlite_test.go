package database

import (
	"context"
	"path/filepath"
	"testing"
)

func TestOpenSQLite_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "favourites.db")

	store, err := OpenSQLite(path, "device1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Set(ctx, "favorites", `[{"url":"a"}]`); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := store.Set(ctx, "favorites", `[{"url":"b"}]`); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	store.Close()

	reopened, err := OpenSQLite(path, "device1")
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	value, ok, err := reopened.Get(ctx, "favorites")
	if err != nil || !ok {
		t.Fatalf("expected stored value, got ok=%v err=%v", ok, err)
	}
	if value != `[{"url":"b"}]` {
		t.Errorf("expected last write to win, got %s", value)
	}
}

func TestOpenSQLite_NamespacesAreIsolated(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "favourites.db")

	first, err := OpenSQLite(path, "device1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := first.Set(ctx, "favorites", "[]"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	first.Close()

	second, err := OpenSQLite(path, "device2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer second.Close()

	if _, ok, err := second.Get(ctx, "favorites"); err != nil || ok {
		t.Errorf("expected no value in other namespace, got ok=%v err=%v", ok, err)
	}
}
