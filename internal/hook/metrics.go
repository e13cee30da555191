// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package hook

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Status constants for handler invocation metrics.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Registrations is the counter for handler registrations.
// Use RegisterMetrics to register this with a Prometheus registry.
var Registrations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "hookloader_hook_registrations_total",
		Help: "Total number of hook handler registrations",
	},
	[]string{"event"},
)

// Invocations is the counter for handler invocations.
// Use RegisterMetrics to register this with a Prometheus registry.
var Invocations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "hookloader_hook_invocations_total",
		Help: "Total number of hook handler invocations",
	},
	[]string{"event", "status"},
)

// RegisterMetrics registers hook package metrics with the given Prometheus registry.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(Registrations)
	reg.MustRegister(Invocations)
}

func recordRegistration(event string) {
	Registrations.WithLabelValues(event).Inc()
}

func recordInvocation(event, status string) {
	Invocations.WithLabelValues(event, status).Inc()
}
