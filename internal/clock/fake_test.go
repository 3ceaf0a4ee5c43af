// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFake_AdvanceRunsDueCallbacksInOrder(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewFake(start)

	var order []string
	c.AfterFunc(2*time.Hour, func() { order = append(order, "second") })
	c.AfterFunc(time.Hour, func() { order = append(order, "first") })
	c.AfterFunc(3*time.Hour, func() { order = append(order, "late") })

	c.Advance(2 * time.Hour)

	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, start.Add(2*time.Hour), c.Now())
	assert.Equal(t, 1, c.Pending())
}

func TestFake_StopPreventsCallback(t *testing.T) {
	c := NewFake(time.Unix(0, 0))
	fired := false
	timer := c.AfterFunc(time.Minute, func() { fired = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop(), "second stop reports already stopped")

	c.Advance(time.Hour)
	assert.False(t, fired)
}

func TestFake_StopAfterFireReportsFalse(t *testing.T) {
	c := NewFake(time.Unix(0, 0))
	timer := c.AfterFunc(time.Second, func() {})
	c.Advance(time.Second)
	assert.False(t, timer.Stop())
}

func TestFake_CallbackCanScheduleMore(t *testing.T) {
	c := NewFake(time.Unix(0, 0))
	count := 0
	c.AfterFunc(time.Minute, func() {
		count++
		c.AfterFunc(time.Minute, func() { count++ })
	})
	c.Advance(5 * time.Minute)
	assert.Equal(t, 2, count)
}
