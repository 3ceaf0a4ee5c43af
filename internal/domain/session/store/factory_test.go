// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestOpen_UnknownBackend(t *testing.T) {
	s, err := Open(context.Background(), Options{Backend: "bolt"})
	if err == nil {
		t.Fatal("Expected error for unknown backend")
	}
	if s != nil {
		t.Fatalf("Expected nil store, got %v", s)
	}
	if !strings.Contains(err.Error(), "unknown store backend: bolt") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestOpen_DefaultsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions_state.json")
	s, err := Open(context.Background(), Options{FilePath: path})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	inst, ok := s.(*instrumented)
	if !ok {
		t.Fatalf("Expected instrumented store, got %T", s)
	}
	if inst.backend != BackendFile {
		t.Errorf("backend = %q, want %q", inst.backend, BackendFile)
	}
	if _, ok := inst.next.(*FileStore); !ok {
		t.Errorf("Expected *FileStore, got %T", inst.next)
	}
}

func TestOpen_RequiresBackendParameters(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{name: "file", opts: Options{Backend: BackendFile}, want: "requires a path"},
		{name: "sqlite", opts: Options{Backend: BackendSqlite}, want: "requires a path"},
		{name: "redis", opts: Options{Backend: BackendRedis}, want: "requires an address"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(context.Background(), tt.opts)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Open(%+v) error = %v, want substring %q", tt.opts, err, tt.want)
			}
		})
	}
}

func TestOpen_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	s, err := Open(context.Background(), Options{Backend: "REDIS", RedisAddr: mr.Addr(), RedisKey: "test:state"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if err := s.Save(context.Background(), defaultForTest()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !mr.Exists("test:state") {
		t.Error("expected key test:state to be written")
	}
}

func TestOpen_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, err := Open(context.Background(), Options{Backend: BackendRedis, RedisAddr: addr}); err == nil {
		t.Fatal("Expected error for unreachable redis")
	}
}
