// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package manager

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ManuGH/bodydouble/internal/domain/ports"
	"github.com/ManuGH/bodydouble/internal/log"
)

const (
	// NoTasksRecorded is the summary text of a session nobody added tasks to.
	NoTasksRecorded = "no tasks were recorded."
	// NoTasksYet answers a task list request while the session has no tasks.
	NoTasksYet = "no tasks yet."
	// RecoveryNotice is sent once to the channel of a session cut short by a restart.
	RecoveryNotice = "previous session data restored after a restart. session is not running anymore."

	summaryTitle  = "session has ended"
	summaryPrefix = "session summary:\n\n"

	startDescription = "put down what you want to get done this session using the buttons below.\n\n" +
		"buttons:\n" +
		"- 🔔 ping me: receive a ping when the session ends.\n" +
		"- 📝 new task: add the task you want to work on.\n" +
		"- tasks list: see the current tasks privately during the session."
)

// UserTasks is one participant's tasks in insertion order.
type UserTasks struct {
	UserID int64    `json:"user_id"`
	Tasks  []string `json:"tasks"`
}

// Mention formats a user mention.
func Mention(userID int64) string {
	return fmt.Sprintf("<@%d>", userID)
}

// mentionLine joins the mentions of ids, or returns "" for none.
func mentionLine(ids []int64) string {
	if len(ids) == 0 {
		return ""
	}
	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	parts := make([]string, 0, len(sorted))
	for _, id := range sorted {
		parts = append(parts, Mention(id))
	}
	return strings.Join(parts, " ")
}

// listing renders "Name\n- t1\n- t2" per participant, blank line between
// participants. It returns "" when nobody has tasks.
func (m *Manager) listing(ctx context.Context, tasks []UserTasks) string {
	parts := make([]string, 0, len(tasks))
	for _, ut := range tasks {
		if len(ut.Tasks) == 0 {
			continue
		}
		var b strings.Builder
		b.WriteString(m.displayName(ctx, ut.UserID))
		for _, t := range ut.Tasks {
			b.WriteString("\n- ")
			b.WriteString(t)
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, "\n\n")
}

// displayName resolves a participant, falling back to a mention.
func (m *Manager) displayName(ctx context.Context, userID int64) string {
	if m.users == nil {
		return Mention(userID)
	}
	name, err := m.users.DisplayName(ctx, userID)
	if err != nil || strings.TrimSpace(name) == "" {
		logger := log.WithContext(ctx, m.logger)
		logger.Warn().
			Err(err).
			Str(log.FieldEvent, "session.display_name_failed").
			Int64(log.FieldUserID, userID).
			Msg("display name lookup failed, using mention")
		return Mention(userID)
	}
	return name
}

func summaryMessage(text string, now time.Time) ports.RichMessage {
	if text == "" {
		text = NoTasksRecorded
	}
	return ports.RichMessage{
		Title:     summaryTitle,
		Body:      summaryPrefix + text,
		Timestamp: now.UTC(),
	}
}

func startMessage(minutes int, now time.Time) ports.RichMessage {
	return ports.RichMessage{
		Title:           fmt.Sprintf("Body Doubling Session of %d minutes", minutes),
		Body:            startDescription,
		Timestamp:       now.UTC(),
		SessionControls: true,
	}
}
