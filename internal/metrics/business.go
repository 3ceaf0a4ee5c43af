// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package metrics exposes the Prometheus collectors of the bot.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Reminder metrics
	remindersScheduledTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bodydouble_reminders_scheduled_total",
		Help: "Reminder jobs armed, by offset",
	}, []string{"offset"})

	remindersSkippedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bodydouble_reminders_skipped_total",
		Help: "Reminder offsets skipped because their lead time already elapsed",
	}, []string{"offset"})

	remindersCancelledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bodydouble_reminders_cancelled_total",
		Help: "Reminder jobs cancelled before firing",
	})

	remindersFiredTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bodydouble_reminders_fired_total",
		Help: "Reminder jobs fired, by offset and outcome",
	}, []string{"offset", "outcome"}) // outcome=delivered|dropped

	remindersPending = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bodydouble_reminders_pending",
		Help: "Reminder jobs currently waiting to fire",
	})

	// Session metrics
	sessionActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bodydouble_session_active",
		Help: "Whether a session is running (1) or not (0)",
	})

	sessionTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bodydouble_session_transitions_total",
		Help: "Session state machine transitions",
	}, []string{"transition"}) // transition=start|expire|end|recover

	sessionRejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bodydouble_session_rejections_total",
		Help: "Session commands rejected, by reason",
	}, []string{"reason"})

	sessionTasksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bodydouble_session_tasks_total",
		Help: "Tasks recorded across all sessions",
	})

	// Persistence metrics
	storeOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bodydouble_store_operations_total",
		Help: "Session state store operations by backend, operation and outcome",
	}, []string{"backend", "op", "outcome"}) // op=load|save, outcome=success|failure|corrupt

	// Notification metrics
	notificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bodydouble_notifications_total",
		Help: "Outbound chat notifications by kind and outcome",
	}, []string{"kind", "outcome"}) // kind=plain|rich
)

func IncReminderScheduled(offset string) { remindersScheduledTotal.WithLabelValues(offset).Inc() }
func IncReminderSkipped(offset string)   { remindersSkippedTotal.WithLabelValues(offset).Inc() }
func AddRemindersCancelled(n int)        { remindersCancelledTotal.Add(float64(n)) }
func SetRemindersPending(n int)          { remindersPending.Set(float64(n)) }

func IncReminderFired(offset string, delivered bool) {
	outcome := "delivered"
	if !delivered {
		outcome = "dropped"
	}
	remindersFiredTotal.WithLabelValues(offset, outcome).Inc()
}

func SetSessionActive(active bool) {
	if active {
		sessionActive.Set(1)
		return
	}
	sessionActive.Set(0)
}

func IncSessionTransition(transition string) {
	sessionTransitionsTotal.WithLabelValues(transition).Inc()
}

func IncSessionRejection(reason string) { sessionRejectionsTotal.WithLabelValues(reason).Inc() }
func IncSessionTask()                   { sessionTasksTotal.Inc() }

func IncStoreOperation(backend, op, outcome string) {
	storeOperationsTotal.WithLabelValues(backend, op, outcome).Inc()
}

func IncNotification(kind string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	notificationsTotal.WithLabelValues(kind, outcome).Inc()
}
