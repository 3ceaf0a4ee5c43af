// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package config loads the bot configuration with precedence
// ENV > YAML file > defaults, after seeding the environment from an optional
// .env file. Validate rejects incomplete configurations before startup, and
// Holder hot-reloads the file to adjust the log level at runtime.
package config
