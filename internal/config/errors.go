// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"errors"

	"github.com/ManuGH/bodydouble/internal/validate"
)

var (
	// ErrUnknownConfigField classifies strict YAML parse failures caused by unknown keys.
	// Use errors.Is(err, ErrUnknownConfigField) instead of string matching.
	ErrUnknownConfigField = errors.New("unknown config field")

	// ErrInvalidEnvValue marks an environment variable that is set but cannot be parsed.
	ErrInvalidEnvValue = errors.New("invalid environment value")
)

// ValidationError lists every configuration problem found by Validate.
type ValidationError = validate.ValidationError
