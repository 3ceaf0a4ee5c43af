// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package ports

import (
	"errors"
	"fmt"
)

var (
	// ErrChannelUnavailable signals that the destination channel could not be
	// resolved or the bot may not post there.
	ErrChannelUnavailable = errors.New("channel unavailable")

	// ErrDeliveryFailed classifies every other notification failure.
	ErrDeliveryFailed = errors.New("notification delivery failed")

	// ErrUserNotFound signals that the directory has no such user.
	ErrUserNotFound = errors.New("user not found")
)

// DeliveryError carries the channel that a notification was addressed to.
type DeliveryError struct {
	ChannelID int64
	Err       error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver to channel %d: %v", e.ChannelID, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
