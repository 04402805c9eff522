package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"taxi_orders/internal/permissions"
)

const (
	sessionName     = "taxi_session"
	sessionUserKey  = "user_id"
	sessionStaffKey = "is_staff"
)

// Sessions installs the cookie-backed session store used by the
// browser pages for login state and flash messages.
func Sessions() gin.HandlerFunc {
	store := cookie.NewStore(secret)
	return sessions.Sessions(sessionName, store)
}

// LoginSession records the user in the browser session.
func LoginSession(c *gin.Context, userID uint, isStaff bool) error {
	session := sessions.Default(c)
	session.Set(sessionUserKey, userID)
	session.Set(sessionStaffKey, isStaff)
	return session.Save()
}

// LogoutSession drops the login state.
func LogoutSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Delete(sessionUserKey)
	session.Delete(sessionStaffKey)
	return session.Save()
}

// SessionPrincipal extracts the logged-in user from the browser
// session, if any.
func SessionPrincipal(c *gin.Context) (permissions.Principal, bool) {
	session := sessions.Default(c)
	idVal := session.Get(sessionUserKey)
	id, ok := idVal.(uint)
	if !ok {
		return permissions.Principal{}, false
	}
	isStaff, _ := session.Get(sessionStaffKey).(bool)
	return permissions.Principal{ID: id, IsStaff: isStaff}, true
}

// Flash queues a one-shot message for the next rendered page.
func Flash(c *gin.Context, msg string) {
	session := sessions.Default(c)
	session.AddFlash(msg)
	_ = session.Save()
}

// Flashes drains queued messages.
func Flashes(c *gin.Context) []string {
	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) > 0 {
		_ = session.Save()
	}
	msgs := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			msgs = append(msgs, s)
		}
	}
	return msgs
}
