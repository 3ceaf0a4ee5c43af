// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseInt64(t *testing.T) {
	t.Setenv("BD_TEST_ID", " 1234567890123456789 ")
	assert.Equal(t, int64(1234567890123456789), ParseInt64("BD_TEST_ID", 0))

	t.Setenv("BD_TEST_ID", "12abc")
	assert.Equal(t, int64(7), ParseInt64("BD_TEST_ID", 7))

	assert.Equal(t, int64(3), ParseInt64("BD_TEST_UNSET", 3))
}

func TestParseBool(t *testing.T) {
	for value, want := range map[string]bool{"true": true, "YES": true, "1": true, "false": false, "no": false, "0": false} {
		t.Setenv("BD_TEST_BOOL", value)
		assert.Equal(t, want, ParseBool("BD_TEST_BOOL", !want), value)
	}
	t.Setenv("BD_TEST_BOOL", "maybe")
	assert.True(t, ParseBool("BD_TEST_BOOL", true))
}

func TestParseDuration(t *testing.T) {
	t.Setenv("BD_TEST_DUR", "250ms")
	assert.Equal(t, 250*time.Millisecond, ParseDuration("BD_TEST_DUR", time.Second))

	t.Setenv("BD_TEST_DUR", "soon")
	assert.Equal(t, time.Second, ParseDuration("BD_TEST_DUR", time.Second))
}

func TestParseString_EmptyUsesDefault(t *testing.T) {
	t.Setenv("BD_TEST_STR", "")
	assert.Equal(t, "fallback", ParseString("BD_TEST_STR", "fallback"))
}

func TestParseFloat(t *testing.T) {
	t.Setenv("BD_TEST_FLOAT", "2.5")
	assert.Equal(t, 2.5, ParseFloat("BD_TEST_FLOAT", 1))
	t.Setenv("BD_TEST_FLOAT", "fast")
	assert.Equal(t, 1.0, ParseFloat("BD_TEST_FLOAT", 1))
}
