// SPDX-License-Identifier: MIT
package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func problems(t *testing.T, v *Validator) ValidationError {
	t.Helper()
	err := v.Err()
	if err == nil {
		return nil
	}
	var ve ValidationError
	require.True(t, errors.As(err, &ve), "expected ValidationError, got %T", err)
	return ve
}

func TestValidator_URL(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		schemes []string
		wantErr bool
	}{
		{"valid http", "http://example.com", []string{"http", "https"}, false},
		{"valid https", "https://example.com", []string{"http", "https"}, false},
		{"empty url", "", []string{"http"}, true},
		{"no host", "http://", []string{"http"}, true},
		{"invalid scheme", "ftp://example.com", []string{"http", "https"}, true},
		{"no scheme", "example.com", []string{"http"}, true},
		{"with path", "https://forms.example.com/welcome", []string{"https"}, false},
		{"any scheme", "gopher://example.com", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.URL("WELCOME_QUESTIONS_URL", tt.value, tt.schemes)
			assert.Equal(t, tt.wantErr, v.Err() != nil, "URL(%q)", tt.value)
		})
	}
}

func TestValidator_ListenAddr(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"all interfaces", ":9090", false},
		{"loopback", "127.0.0.1:8080", false},
		{"missing port", "localhost", true},
		{"port zero", ":0", true},
		{"port out of range", ":70000", true},
		{"named port", ":http", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.ListenAddr("OPS_LISTEN", tt.value)
			assert.Equal(t, tt.wantErr, v.Err() != nil, "ListenAddr(%q)", tt.value)
		})
	}
}

func TestValidator_PositiveID(t *testing.T) {
	v := New()
	v.PositiveID("GUILD_ID", 1234567890123)
	require.NoError(t, v.Err())

	v.PositiveID("GUILD_ID", 0)
	v.PositiveID("MODS_CHANNEL_ID", -4)
	assert.Equal(t, []string{"GUILD_ID", "MODS_CHANNEL_ID"}, problems(t, v).Fields())
}

func TestValidator_OneOf(t *testing.T) {
	v := New()
	v.OneOf("STORE_BACKEND", "file", []string{"file", "sqlite"})
	v.OneOf("STORE_BACKEND", "bolt", []string{"file", "sqlite"})

	got := problems(t, v)
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Message, `"bolt"`)
	assert.Equal(t, "bolt", got[0].Value)
}

func TestValidator_FloatRange(t *testing.T) {
	v := New()
	v.FloatRange("TRACING_SAMPLE_RATE", 0.5, 0, 1)
	v.FloatRange("TRACING_SAMPLE_RATE", 1.5, 0, 1)
	assert.Len(t, problems(t, v), 1)
}

func TestValidationError_Aggregates(t *testing.T) {
	v := New()
	assert.NoError(t, v.Err())

	v.NotEmpty("DISCORD_BOT_TOKEN", "  ")
	v.FloatRange("NOTIFY_RATE_PER_SEC", 0, 0.1, 50)

	err := v.Err()
	assert.Equal(t, []string{"DISCORD_BOT_TOKEN", "NOTIFY_RATE_PER_SEC"}, problems(t, v).Fields())
	assert.Contains(t, err.Error(), "DISCORD_BOT_TOKEN: value cannot be empty; NOTIFY_RATE_PER_SEC:")
}

func TestValidator_ErrIsSnapshot(t *testing.T) {
	v := New()
	v.NotEmpty("DISCORD_BOT_TOKEN", "")
	first := v.Err()
	v.NotEmpty("STORE_REDIS_ADDR", "")

	var ve ValidationError
	require.True(t, errors.As(first, &ve))
	assert.Len(t, ve, 1)
}

func TestValidator_Custom(t *testing.T) {
	v := New()
	v.Custom("DISCORD_BOT_TOKEN", "token_here", func(val any) error {
		if val.(string) == "token_here" {
			return errors.New("placeholder value")
		}
		return nil
	})
	got := problems(t, v)
	require.Len(t, got, 1)
	assert.Equal(t, "placeholder value", got[0].Message)
}

func TestParseLogLevel(t *testing.T) {
	level, err := ParseLogLevel(" DEBUG ")
	require.NoError(t, err)
	assert.Equal(t, LogLevel("debug"), level)

	_, err = ParseLogLevel("verbose")
	assert.ErrorIs(t, err, ErrInvalidLogLevel)
}
