// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package reminder

import (
	"fmt"
	"strings"
	"time"

	"github.com/ManuGH/bodydouble/internal/domain/ports"
)

// EveryoneMention precedes every reminder card.
const EveryoneMention = "@everyone"

// Card renders the reminder for ev. now stamps the card.
func Card(ev ports.ScheduledEvent, now time.Time) ports.RichMessage {
	ts := ev.Start.Unix()
	lines := []string{
		"📅 " + ev.Name,
		fmt.Sprintf("🕒 starts <t:%d:F> • (<t:%d:R>)", ts, ts),
	}
	location := strings.TrimSpace(ev.Location)
	if location == "" {
		location = "unspecified"
	}
	lines = append(lines, "📍 "+location)
	if desc := strings.TrimSpace(ev.Description); desc != "" {
		lines = append(lines, "💡 "+desc)
	}

	return ports.RichMessage{
		Title:     "reminder",
		Body:      strings.Join(lines, "\n"),
		Footer:    "see you there",
		Timestamp: now.UTC(),
	}
}
