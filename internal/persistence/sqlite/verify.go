// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
)

// QuickCheck runs PRAGMA quick_check against the database at path, opened
// read-only. It returns the reported problems, or nil when the file is healthy.
// An error means the check itself could not run.
func QuickCheck(path string) ([]string, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro&_pragma=busy_timeout(2000)")
	if err != nil {
		return nil, fmt.Errorf("open %s read-only: %w", path, err)
	}
	defer db.Close()

	rows, err := db.Query("PRAGMA quick_check")
	if err != nil {
		return nil, fmt.Errorf("quick_check %s: %w", path, err)
	}
	defer rows.Close()

	var problems []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, fmt.Errorf("quick_check %s: %w", path, err)
		}
		if !strings.EqualFold(line, "ok") {
			problems = append(problems, line)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("quick_check %s: %w", path, err)
	}
	return problems, nil
}
