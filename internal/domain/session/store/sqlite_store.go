// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ManuGH/bodydouble/internal/domain/session/model"
	xglog "github.com/ManuGH/bodydouble/internal/log"
	"github.com/ManuGH/bodydouble/internal/persistence/sqlite"
)

const (
	schemaVersion = 1
)

// SqliteStore keeps the record in three tables: the singleton state row, the
// ordered task rows and the ping opt-in set.
type SqliteStore struct {
	DB *sql.DB
}

// NewSqliteStore opens (and migrates) the database at dbPath. An existing
// file is integrity-checked first; problems are logged, not fatal.
func NewSqliteStore(dbPath string) (*SqliteStore, error) {
	if _, err := os.Stat(dbPath); err == nil {
		issues, verr := sqlite.QuickCheck(dbPath)
		logger := xglog.WithComponent("store")
		if verr != nil {
			logger.Warn().Err(verr).Str(xglog.FieldPath, dbPath).Str(xglog.FieldEvent, "store.verify_failed").Msg("sqlite integrity check could not run")
		} else if len(issues) > 0 {
			logger.Warn().Strs("issues", issues).Str(xglog.FieldPath, dbPath).Str(xglog.FieldEvent, "store.integrity_issues").Msg("sqlite integrity check reported issues")
		}
	}

	db, err := sqlite.Open(dbPath, sqlite.DefaultConfig())
	if err != nil {
		return nil, err
	}

	s := &SqliteStore{DB: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("session store: migration failed: %w", err)
	}

	return s, nil
}

func (s *SqliteStore) migrate() error {
	var currentVersion int
	if err := s.DB.QueryRow("PRAGMA user_version").Scan(&currentVersion); err != nil {
		return err
	}

	if currentVersion >= schemaVersion {
		return nil
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	schema := `
	CREATE TABLE IF NOT EXISTS session_state (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		active BOOLEAN NOT NULL DEFAULT 0,
		channel_id INTEGER,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS session_tasks (
		user_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		text TEXT NOT NULL,
		PRIMARY KEY (user_id, position)
	);

	CREATE TABLE IF NOT EXISTS session_ping_optin (
		user_id INTEGER PRIMARY KEY
	);
	`

	if _, err := tx.Exec(schema); err != nil {
		return err
	}

	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SqliteStore) Load(ctx context.Context) (model.PersistedState, error) {
	state := model.DefaultState()

	var active bool
	var channel sql.NullInt64
	err := s.DB.QueryRowContext(ctx, `SELECT active, channel_id FROM session_state WHERE id = 1`).Scan(&active, &channel)
	if errors.Is(err, sql.ErrNoRows) {
		return state, nil
	}
	if err != nil {
		return model.DefaultState(), fmt.Errorf("load session_state: %w", err)
	}
	state.Active = active
	if channel.Valid {
		ch := channel.Int64
		state.ChannelID = &ch
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT user_id, text FROM session_tasks ORDER BY user_id, position`)
	if err != nil {
		return model.DefaultState(), fmt.Errorf("load session_tasks: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var userID, text string
		if err := rows.Scan(&userID, &text); err != nil {
			return model.DefaultState(), fmt.Errorf("%w: scan task row: %v", ErrCorrupt, err)
		}
		state.Tasks[userID] = append(state.Tasks[userID], text)
	}
	if err := rows.Err(); err != nil {
		return model.DefaultState(), fmt.Errorf("load session_tasks: %w", err)
	}

	pingRows, err := s.DB.QueryContext(ctx, `SELECT user_id FROM session_ping_optin ORDER BY user_id`)
	if err != nil {
		return model.DefaultState(), fmt.Errorf("load session_ping_optin: %w", err)
	}
	defer pingRows.Close()
	for pingRows.Next() {
		var userID int64
		if err := pingRows.Scan(&userID); err != nil {
			return model.DefaultState(), fmt.Errorf("%w: scan ping row: %v", ErrCorrupt, err)
		}
		state.PingOptIn = append(state.PingOptIn, userID)
	}
	if err := pingRows.Err(); err != nil {
		return model.DefaultState(), fmt.Errorf("load session_ping_optin: %w", err)
	}

	return state.Normalize(), nil
}

// Save rewrites all three tables in one transaction.
func (s *SqliteStore) Save(ctx context.Context, state model.PersistedState) error {
	state = state.Normalize()

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var channel sql.NullInt64
	if state.ChannelID != nil {
		channel = sql.NullInt64{Int64: *state.ChannelID, Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
	INSERT INTO session_state (id, active, channel_id, updated_at)
	VALUES (1, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		active = excluded.active,
		channel_id = excluded.channel_id,
		updated_at = excluded.updated_at
	`, state.Active, channel, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save session_state: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM session_tasks`); err != nil {
		return fmt.Errorf("clear session_tasks: %w", err)
	}
	for userID, tasks := range state.Tasks {
		for pos, text := range tasks {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO session_tasks (user_id, position, text) VALUES (?, ?, ?)`,
				userID, pos, text,
			); err != nil {
				return fmt.Errorf("save session_tasks: %w", err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM session_ping_optin`); err != nil {
		return fmt.Errorf("clear session_ping_optin: %w", err)
	}
	for _, userID := range state.PingOptIn {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO session_ping_optin (user_id) VALUES (?)`, userID,
		); err != nil {
			return fmt.Errorf("save session_ping_optin: %w", err)
		}
	}

	return tx.Commit()
}

func (s *SqliteStore) Close() error {
	return s.DB.Close()
}
