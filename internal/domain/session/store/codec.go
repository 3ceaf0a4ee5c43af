// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ManuGH/bodydouble/internal/domain/session/model"
)

func encodeState(state model.PersistedState) ([]byte, error) {
	data, err := json.MarshalIndent(state.Normalize(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode session state: %w", err)
	}
	return data, nil
}

// decodeState fills every missing field with its zero value. Malformed input
// yields the default state and an error wrapping ErrCorrupt.
func decodeState(data []byte) (model.PersistedState, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return model.DefaultState(), nil
	}
	var state model.PersistedState
	if err := json.Unmarshal(data, &state); err != nil {
		return model.DefaultState(), fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return state.Normalize(), nil
}
