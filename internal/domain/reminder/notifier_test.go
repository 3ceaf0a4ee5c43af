// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package reminder

import (
	"context"
	"sync"

	"github.com/ManuGH/bodydouble/internal/domain/ports"
)

type sent struct {
	channelID int64
	plain     string
	rich      *ports.RichMessage
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []sent
	plainErr error
	richErr  error
}

func (n *recordingNotifier) SendPlain(_ context.Context, channelID int64, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.plainErr != nil {
		return n.plainErr
	}
	n.messages = append(n.messages, sent{channelID: channelID, plain: text})
	return nil
}

func (n *recordingNotifier) SendRich(_ context.Context, channelID int64, msg ports.RichMessage) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.richErr != nil {
		return n.richErr
	}
	n.messages = append(n.messages, sent{channelID: channelID, rich: &msg})
	return nil
}

func (n *recordingNotifier) sent() []sent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sent(nil), n.messages...)
}
