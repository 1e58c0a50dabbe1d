package storage

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestLazy_createsOnFirstUse(t *testing.T) {
	var calls atomic.Int32
	dir := t.TempDir()
	lazy := NewLazy(func() (Store, error) {
		calls.Add(1)
		return NewSQLiteStore(filepath.Join(dir, "content.db"), 3)
	})
	t.Cleanup(func() { _ = lazy.Close() })

	if calls.Load() != 0 {
		t.Fatal("backend created before first use")
	}
	if err := lazy.Ping(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := lazy.AddContent(context.Background(), record("U1", "x", "", []float32{1, 0, 0}, time.Now().UTC())); err != nil {
		t.Fatal(err)
	}
	if calls.Load() != 1 {
		t.Errorf("backend created %d times, want 1", calls.Load())
	}
}

func TestLazy_failedCreateRetries(t *testing.T) {
	var calls atomic.Int32
	dir := t.TempDir()
	lazy := NewLazy(func() (Store, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("connection refused")
		}
		return NewSQLiteStore(filepath.Join(dir, "content.db"), 3)
	})
	t.Cleanup(func() { _ = lazy.Close() })

	if err := lazy.Ping(context.Background()); err == nil {
		t.Fatal("first ping should fail")
	}
	if err := lazy.Ping(context.Background()); err != nil {
		t.Fatalf("second ping should succeed: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("create called %d times, want 2", calls.Load())
	}
}

func TestLazy_closeWithoutUse(t *testing.T) {
	lazy := NewLazy(func() (Store, error) {
		t.Fatal("create should not be called")
		return nil, nil
	})
	if err := lazy.Close(); err != nil {
		t.Fatal(err)
	}
}
