package domain

import "time"

// AuditAction labels what happened in an AuditEvent.
type AuditAction string

const (
	AuditLoginSucceeded   AuditAction = "login_succeeded"
	AuditLoginFailed      AuditAction = "login_failed"
	AuditLogout           AuditAction = "logout"
	AuditNavigationDenied AuditAction = "navigation_denied"
)

// AuditEvent records an authentication or access decision.
type AuditEvent struct {
	Action   AuditAction
	Username string
	Role     Role   // empty when the actor is unknown
	Path     string // only for navigation events
	At       time.Time
}
