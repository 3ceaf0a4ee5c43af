// SPDX-License-Identifier: MIT
package validate

import (
	"errors"
	"slices"
	"strings"
)

// LogLevel is a level name the logger accepts.
type LogLevel string

var logLevels = []LogLevel{"trace", "debug", "info", "warn", "error"}

var ErrInvalidLogLevel = errors.New("invalid log level (must be: trace, debug, info, warn, error)")

// ParseLogLevel normalizes s, ignoring case and surrounding space.
func ParseLogLevel(s string) (LogLevel, error) {
	level := LogLevel(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(logLevels, level) {
		return "", ErrInvalidLogLevel
	}
	return level, nil
}
