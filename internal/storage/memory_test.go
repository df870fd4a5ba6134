package storage

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestMemoryEngine(t *testing.T) {
	m := NewMemoryEngine()
	ctx := context.Background()

	if _, err := m.Get(ctx, []byte("token")); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("Get() on empty = %v, want ErrKeyNotFound", err)
	}

	value := []byte("abc")
	if err := m.Set(ctx, []byte("token"), value); err != nil {
		t.Fatal(err)
	}
	value[0] = 'X'

	got, err := m.Get(ctx, []byte("token"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "abc" {
		t.Errorf("Get() = %q, want abc (stored value must be a copy)", got)
	}
	got[0] = 'Y'
	again, _ := m.Get(ctx, []byte("token"))
	if string(again) != "abc" {
		t.Errorf("returned slice aliases stored value: %q", again)
	}

	if err := m.Delete(ctx, []byte("token")); err != nil {
		t.Fatal(err)
	}
	if err := m.Delete(ctx, []byte("token")); err != nil {
		t.Errorf("second Delete() error = %v", err)
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}

	_ = m.Close()
	if err := m.Set(ctx, []byte("token"), []byte("x")); !errors.Is(err, ErrClosed) {
		t.Errorf("Set() after close = %v, want ErrClosed", err)
	}
}

func TestMemoryEngine_Concurrent(t *testing.T) {
	m := NewMemoryEngine()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = m.Set(ctx, []byte("token"), []byte{byte(i)})
			_, _ = m.Get(ctx, []byte("token"))
			if i%5 == 0 {
				_ = m.Delete(ctx, []byte("token"))
			}
		}(i)
	}
	wg.Wait()
}
