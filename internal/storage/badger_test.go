package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/TrailGuard-io/mobile-app/internal/telemetry/logger"
)

func openBadger(t *testing.T, dir string) *BadgerEngine {
	t.Helper()
	e, err := NewBadgerEngine(DefaultConfig(dir), logger.NewNop())
	if err != nil {
		t.Fatalf("NewBadgerEngine() error = %v", err)
	}
	return e
}

func TestBadgerEngine_BasicOperations(t *testing.T) {
	engine := openBadger(t, t.TempDir())
	defer engine.Close()

	ctx := context.Background()

	t.Run("Set and Get", func(t *testing.T) {
		if err := engine.Set(ctx, []byte("token"), []byte("abc.def.ghi")); err != nil {
			t.Fatal(err)
		}
		got, err := engine.Get(ctx, []byte("token"))
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "abc.def.ghi" {
			t.Errorf("Get() = %q, want abc.def.ghi", got)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		if err := engine.Set(ctx, []byte("token"), []byte("second")); err != nil {
			t.Fatal(err)
		}
		got, _ := engine.Get(ctx, []byte("token"))
		if string(got) != "second" {
			t.Errorf("Get() = %q, want second", got)
		}
	})

	t.Run("Get non-existent key", func(t *testing.T) {
		if _, err := engine.Get(ctx, []byte("missing")); !errors.Is(err, ErrKeyNotFound) {
			t.Errorf("expected ErrKeyNotFound, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := engine.Delete(ctx, []byte("token")); err != nil {
			t.Fatal(err)
		}
		if _, err := engine.Get(ctx, []byte("token")); !errors.Is(err, ErrKeyNotFound) {
			t.Errorf("expected ErrKeyNotFound after delete, got %v", err)
		}
	})

	t.Run("Delete missing key", func(t *testing.T) {
		if err := engine.Delete(ctx, []byte("never-set")); err != nil {
			t.Errorf("Delete() of missing key error = %v", err)
		}
	})
}

func TestBadgerEngine_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first := openBadger(t, dir)
	if err := first.Set(ctx, []byte("token"), []byte("persisted-credential")); err != nil {
		t.Fatal(err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	second := openBadger(t, dir)
	defer second.Close()

	got, err := second.Get(ctx, []byte("token"))
	if err != nil {
		t.Fatalf("Get() after reopen error = %v", err)
	}
	if string(got) != "persisted-credential" {
		t.Errorf("Get() after reopen = %q", got)
	}
}

func TestBadgerEngine_Closed(t *testing.T) {
	engine := openBadger(t, t.TempDir())
	if err := engine.Close(); err != nil {
		t.Fatal(err)
	}
	if err := engine.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	ctx := context.Background()
	if _, err := engine.Get(ctx, []byte("token")); !errors.Is(err, ErrClosed) {
		t.Errorf("Get() after close = %v, want ErrClosed", err)
	}
	if err := engine.Set(ctx, []byte("token"), []byte("x")); !errors.Is(err, ErrClosed) {
		t.Errorf("Set() after close = %v, want ErrClosed", err)
	}
	if _, err := engine.GC(); !errors.Is(err, ErrClosed) {
		t.Errorf("GC() after close = %v, want ErrClosed", err)
	}
}

func TestBadgerEngine_GC(t *testing.T) {
	engine := openBadger(t, t.TempDir())
	defer engine.Close()

	if !engine.LastGC().IsZero() {
		t.Error("LastGC() should be zero before any run")
	}
	if _, err := engine.GC(); err != nil {
		t.Fatalf("GC() error = %v", err)
	}
	if engine.LastGC().IsZero() {
		t.Error("LastGC() should be set after a run")
	}
}

func TestBadgerEngine_CanceledContext(t *testing.T) {
	engine := openBadger(t, t.TempDir())
	defer engine.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := engine.Set(ctx, []byte("token"), []byte("x")); !errors.Is(err, context.Canceled) {
		t.Errorf("Set() with canceled ctx = %v, want context.Canceled", err)
	}
}

func TestNewBadgerEngine_RequiresDir(t *testing.T) {
	if _, err := NewBadgerEngine(Config{}, nil); err == nil {
		t.Error("NewBadgerEngine() without dir should fail")
	}
}
