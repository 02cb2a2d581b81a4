package database

import (
	"context"
	"path/filepath"
	"testing"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{name: "memory", opts: Options{Driver: "memory"}},
		{name: "sqlite", opts: Options{Driver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "kv.db"), Namespace: "n"}},
		{name: "unknown driver", opts: Options{Driver: "redis"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(tt.opts)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer store.Close()

			if err := store.Ping(context.Background()); err != nil {
				t.Errorf("unexpected ping error: %v", err)
			}
		})
	}
}
