// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package store

import (
	"context"
	"fmt"
	"strings"
)

// Supported backends.
const (
	BackendFile   = "file"
	BackendSqlite = "sqlite"
	BackendBadger = "badger"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Options selects and parameterizes a backend.
type Options struct {
	Backend    string
	FilePath   string
	SqlitePath string
	BadgerDir  string
	RedisAddr  string
	RedisKey   string
}

// Open creates the configured backend wrapped with instrumentation.
func Open(ctx context.Context, opts Options) (Store, error) {
	backend := strings.ToLower(strings.TrimSpace(opts.Backend))
	if backend == "" {
		backend = BackendFile
	}

	var (
		s   Store
		err error
	)
	switch backend {
	case BackendFile:
		if opts.FilePath == "" {
			return nil, fmt.Errorf("file backend requires a path")
		}
		s = NewFileStore(opts.FilePath)
	case BackendSqlite:
		if opts.SqlitePath == "" {
			return nil, fmt.Errorf("sqlite backend requires a path")
		}
		s, err = NewSqliteStore(opts.SqlitePath)
	case BackendBadger:
		s, err = NewBadgerStore(opts.BadgerDir)
	case BackendRedis:
		if opts.RedisAddr == "" {
			return nil, fmt.Errorf("redis backend requires an address")
		}
		s, err = NewRedisStore(ctx, opts.RedisAddr, opts.RedisKey)
	case BackendMemory:
		s = NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown store backend: %s (supported: file, sqlite, badger, redis, memory)", backend)
	}
	if err != nil {
		return nil, err
	}
	return Instrument(s, backend), nil
}
