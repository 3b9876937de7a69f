package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/emr-api/internal/core/domain"
	"github.com/clinicdesk/emr-api/internal/core/session"
)

// Context keys written by Auth/OptionalAuth and read by handlers.
const (
	keySession       = "session"
	keySessionRecord = "session_record"
	keyUsername      = "username"
	keyRole          = "role"
	keyAccountID     = "account_id"
)

// Bind attaches a resolved session to the request: a Store logged in with its
// identity, the record itself and the identity's claims.
func Bind(c echo.Context, rec domain.SessionRecord) {
	store := session.New()
	store.Login(rec.Identity)

	c.Set(keySession, store)
	c.Set(keySessionRecord, rec)
	c.Set(keyUsername, rec.Identity.Username)
	c.Set(keyRole, string(rec.Identity.Role))
	c.Set(keyAccountID, rec.Identity.AccountID)
}

// SetStore attaches s as the request's session Store.
func SetStore(c echo.Context, s *session.Store) {
	c.Set(keySession, s)
}

// Store returns the request's session Store. Requests that bypassed the auth
// middleware get an empty one.
func Store(c echo.Context) *session.Store {
	if s, ok := c.Get(keySession).(*session.Store); ok && s != nil {
		return s
	}
	return session.New()
}

// Record returns the persisted session behind the request's token, if any.
func Record(c echo.Context) (domain.SessionRecord, bool) {
	rec, ok := c.Get(keySessionRecord).(domain.SessionRecord)
	return rec, ok
}

// Role returns the caller's role, empty for anonymous requests.
func Role(c echo.Context) string {
	role, _ := c.Get(keyRole).(string)
	return role
}

// SetRole overrides the caller's role.
func SetRole(c echo.Context, role domain.Role) {
	c.Set(keyRole, string(role))
}
