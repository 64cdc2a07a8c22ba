package services

import (
	"path/filepath"
	"testing"
)

func TestUserStore_AddAndDeduplicate(t *testing.T) {
	store := NewUserStore(filepath.Join(t.TempDir(), "users.json"), testLogger())

	added, err := store.Add(100)
	if err != nil {
		t.Fatalf("Add() returned error: %v", err)
	}
	if !added {
		t.Error("first Add() should report a new id")
	}

	added, err = store.Add(100)
	if err != nil {
		t.Fatalf("Add() returned error: %v", err)
	}
	if added {
		t.Error("second Add() of the same id should be a no-op")
	}

	if got := store.Count(); got != 1 {
		t.Errorf("Count() = %d, want 1", got)
	}
}

func TestUserStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")

	store := NewUserStore(path, testLogger())
	for _, id := range []int64{1, 2, 3} {
		if _, err := store.Add(id); err != nil {
			t.Fatalf("Add(%d) returned error: %v", id, err)
		}
	}

	reopened := NewUserStore(path, testLogger())
	if got := reopened.Count(); got != 3 {
		t.Fatalf("reopened Count() = %d, want 3", got)
	}

	ids := reopened.All()
	want := map[int64]bool{1: true, 2: true, 3: true}
	for _, id := range ids {
		if !want[id] {
			t.Errorf("unexpected id %d after reload", id)
		}
	}
}

func TestUserStore_MissingFileStartsEmpty(t *testing.T) {
	store := NewUserStore(filepath.Join(t.TempDir(), "does-not-exist.json"), testLogger())
	if got := store.Count(); got != 0 {
		t.Errorf("Count() = %d, want 0", got)
	}
}
