// Package metrics defines and registers all custom Prometheus metrics for the
// hospital management API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// package init via promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hospital"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts created user accounts.
// Label:
//   - role: patient, doctor, admin, or receptionist
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of user accounts created, by role.",
	},
	[]string{"role"},
)

// AppointmentsBookedTotal counts successfully booked appointments.
// Label:
//   - type: general, follow-up, emergency, consultation, or checkup
var AppointmentsBookedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointments_booked_total",
		Help:      "Total number of appointments booked, by appointment type.",
	},
	[]string{"type"},
)

// AppointmentTransitionsTotal counts status writes applied to appointments.
// Label:
//   - status: the status that was applied (including "cancelled")
var AppointmentTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointment_transitions_total",
		Help:      "Total number of appointment status updates, by new status.",
	},
	[]string{"status"},
)

// BookingConflictsTotal counts bookings rejected by the slot-conflict check.
var BookingConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_conflicts_total",
		Help:      "Total number of bookings rejected because the slot was taken.",
	},
)

// PrescriptionsIssuedTotal counts issued prescriptions.
var PrescriptionsIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "prescriptions_issued_total",
		Help:      "Total number of prescriptions issued.",
	},
)

// RateLimitedTotal counts requests rejected by the rate limiter.
// Label:
//   - scope: "api" or "auth"
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter, by scope.",
	},
	[]string{"scope"},
)
