package storage

import (
	"context"
	"testing"

	"github.com/TrailGuard-io/mobile-app/internal/telemetry/logger"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		check   func(t *testing.T, kv KV)
	}{
		{
			name: "memory",
			cfg:  Config{Engine: EngineMemory},
			check: func(t *testing.T, kv KV) {
				if _, ok := kv.(*MemoryEngine); !ok {
					t.Errorf("Open() = %T, want *MemoryEngine", kv)
				}
			},
		},
		{
			name: "badger by default",
			cfg:  Config{Dir: t.TempDir()},
			check: func(t *testing.T, kv KV) {
				if _, ok := kv.(*BadgerEngine); !ok {
					t.Errorf("Open() = %T, want *BadgerEngine", kv)
				}
			},
		},
		{
			name: "encrypted memory",
			cfg:  Config{Engine: EngineMemory, EncryptionKey: testKey()},
			check: func(t *testing.T, kv KV) {
				if _, ok := kv.(*EncryptedKV); !ok {
					t.Errorf("Open() = %T, want *EncryptedKV", kv)
				}
			},
		},
		{name: "unknown engine", cfg: Config{Engine: "bolt"}, wantErr: true},
		{name: "bad key", cfg: Config{Engine: EngineMemory, EncryptionKey: []byte("x")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv, err := Open(tt.cfg, logger.NewNop())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer kv.Close()

			tt.check(t, kv)

			ctx := context.Background()
			if err := kv.Set(ctx, []byte("token"), []byte("v")); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			if got, err := kv.Get(ctx, []byte("token")); err != nil || string(got) != "v" {
				t.Errorf("Get() = %q, %v", got, err)
			}
		})
	}
}
