// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ManuGH/bodydouble/internal/domain/ports"
	"github.com/bwmarrin/discordgo"
)

// Directory resolves display names: the global name when set, else the
// username.
type Directory struct {
	api userFetcher
}

var _ ports.UserDirectory = (*Directory)(nil)

func (d *Directory) DisplayName(ctx context.Context, userID int64) (string, error) {
	u, err := d.api.User(formatID(userID), discordgo.WithContext(ctx))
	if err != nil {
		var rest *discordgo.RESTError
		if errors.As(err, &rest) && rest.Response != nil && rest.Response.StatusCode == http.StatusNotFound {
			return "", fmt.Errorf("%w: %d", ports.ErrUserNotFound, userID)
		}
		return "", fmt.Errorf("fetch user %d: %w", userID, err)
	}
	if u.GlobalName != "" {
		return u.GlobalName, nil
	}
	return u.Username, nil
}
