package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "nested", "agroaide.db"))
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteLoadMissingKey(t *testing.T) {
	s := newTestSQLite(t)

	_, err := s.Load(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteSaveOverwrites(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	if err := s.Save(ctx, "agroaide-store", []byte(`{"v":1}`)); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if err := s.Save(ctx, "agroaide-store", []byte(`{"v":2}`)); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	got, err := s.Load(ctx, "agroaide-store")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if string(got) != `{"v":2}` {
		t.Fatalf("expected latest value, got %s", got)
	}
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agroaide.db")
	ctx := context.Background()

	first, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	if err := first.Save(ctx, "k", []byte("persisted")); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	second, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer func() { _ = second.Close() }()

	got, err := second.Load(ctx, "k")
	if err != nil {
		t.Fatalf("load after reopen failed: %v", err)
	}
	if string(got) != "persisted" {
		t.Fatalf("unexpected value %q", got)
	}
}

func TestSQLiteDelete(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	if err := s.Save(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("deleting a missing key should succeed: %v", err)
	}
	if _, err := s.Load(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	buf := []byte("abc")
	if err := m.Save(ctx, "k", buf); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	buf[0] = 'z'

	got, err := m.Load(ctx, "k")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if string(got) != "abc" {
		t.Fatalf("stored value was aliased: %q", got)
	}
}
