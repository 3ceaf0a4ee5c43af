// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package discord adapts the Discord gateway and REST API to the bot's
// ports: it delivers notifications, resolves users, lists scheduled events,
// forwards event lifecycle changes and serves the session commands.
package discord
