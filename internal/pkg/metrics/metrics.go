// Package metrics defines the custom Prometheus metrics of the admin portal.
// Metrics register with the default registry on import through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Policy metrics ────────────────────────────────────────────────────────────

// PolicyDecisionsTotal counts policy engine decisions.
// Labels:
//   - action: the protected action (e.g. "delete-user")
//   - role: the actor's role
//   - outcome: "allow" or "deny"
var PolicyDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "policy_decisions_total",
		Help:      "Total number of authorization decisions, by action, role and outcome.",
	},
	[]string{"action", "role", "outcome"},
)

// ── Credential metrics ────────────────────────────────────────────────────────

// CredentialEventsTotal counts onboarding and session operations.
// Labels:
//   - event: "invite", "verify_otp", "set_password", "login", "refresh"
//   - result: "ok" or "error"
var CredentialEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "credential_events_total",
		Help:      "Total number of credential lifecycle operations, by event and result.",
	},
	[]string{"event", "result"},
)

// InviteGuardTotal counts invite lock attempts.
// Label:
//   - result: "acquired", "contended" or "error"
var InviteGuardTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invite_guard_total",
		Help:      "Total number of invite lock attempts, labelled by result.",
	},
	[]string{"result"},
)

// NotificationsTotal counts invite link deliveries.
// Labels:
//   - channel: "log" or "rabbitmq"
//   - result: "ok" or "error"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of invite notifications, by channel and result.",
	},
	[]string{"channel", "result"},
)

// ── Resource metrics ──────────────────────────────────────────────────────────

// UsersInvitedTotal counts accounts created through invitation.
// Label:
//   - role: the role of the new account
var UsersInvitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_invited_total",
		Help:      "Total number of invited accounts, by role.",
	},
	[]string{"role"},
)

// TransactionsCreatedTotal counts created transactions.
var TransactionsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transactions_created_total",
		Help:      "Total number of transactions created.",
	},
)

// Result maps an error to the "ok"/"error" label value.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
