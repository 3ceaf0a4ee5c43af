// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package reminder

import (
	"testing"
	"time"

	"github.com/ManuGH/bodydouble/internal/domain/ports"
	"github.com/stretchr/testify/assert"
)

func TestCard(t *testing.T) {
	start := time.Unix(1_800_000_000, 0).UTC()
	now := start.Add(-time.Hour)

	msg := Card(ports.ScheduledEvent{
		ID:          1,
		Name:        "study hall",
		Start:       start,
		Location:    "channel focus-room",
		Description: "quiet work",
	}, now)

	assert.Equal(t, "reminder", msg.Title)
	assert.Equal(t, "see you there", msg.Footer)
	assert.Equal(t, now, msg.Timestamp)
	assert.Equal(t,
		"📅 study hall\n"+
			"🕒 starts <t:1800000000:F> • (<t:1800000000:R>)\n"+
			"📍 channel focus-room\n"+
			"💡 quiet work",
		msg.Body)
	assert.False(t, msg.SessionControls)
}

func TestCard_OptionalFields(t *testing.T) {
	start := time.Unix(1_800_000_000, 0).UTC()
	msg := Card(ports.ScheduledEvent{ID: 1, Name: "standup", Start: start}, start)

	assert.Equal(t,
		"📅 standup\n"+
			"🕒 starts <t:1800000000:F> • (<t:1800000000:R>)\n"+
			"📍 unspecified",
		msg.Body)
}
