package searchcache

import (
	"context"
	"path/filepath"
	"testing"

	"playtime/internal/logging"
)

func openStore(t *testing.T, path string) *Store {
	t.Helper()
	store, err := Open(path, logging.NewNop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestPutAndLookup(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "searches.db"))
	ctx := context.Background()

	if _, ok, err := store.Lookup(ctx, "commando 1985"); err != nil || ok {
		t.Fatalf("Lookup before Put = ok=%v err=%v", ok, err)
	}
	if err := store.Put(ctx, "Commando 1985", "tt0088944"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Lookups are case and whitespace insensitive.
	id, ok, err := store.Lookup(ctx, "  commando   1985 ")
	if err != nil || !ok || id != "tt0088944" {
		t.Fatalf("Lookup = %q ok=%v err=%v", id, ok, err)
	}
}

func TestPutReplacesEarlierAnswer(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "searches.db"))
	ctx := context.Background()

	if err := store.Put(ctx, "commando 1985", "tt0000001"); err != nil {
		t.Fatal(err)
	}
	if err := store.Put(ctx, "commando 1985", "tt0088944"); err != nil {
		t.Fatal(err)
	}
	id, ok, err := store.Lookup(ctx, "commando 1985")
	if err != nil || !ok || id != "tt0088944" {
		t.Fatalf("Lookup = %q ok=%v err=%v, want the replacement", id, ok, err)
	}
}

func TestClear(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "searches.db"))
	ctx := context.Background()

	if err := store.Put(ctx, "commando 1985", "tt0088944"); err != nil {
		t.Fatal(err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok, _ := store.Lookup(ctx, "commando 1985"); ok {
		t.Fatal("entry survived Clear")
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "searches.db")
	store := openStore(t, path)
	if err := store.Put(context.Background(), "commando 1985", "tt0088944"); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened := openStore(t, path)
	id, ok, err := reopened.Lookup(context.Background(), "commando 1985")
	if err != nil || !ok || id != "tt0088944" {
		t.Fatalf("Lookup after reopen = %q ok=%v err=%v", id, ok, err)
	}
}

func TestSchemaMismatchRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "searches.db")
	store := openStore(t, path)
	if _, err := store.db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := Open(path, logging.NewNop()); err == nil {
		t.Fatal("Open accepted a future schema version")
	}
}
