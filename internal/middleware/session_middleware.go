package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionIDKey is the context key holding the storefront session ID
const SessionIDKey = "session_id"

// SessionMiddleware identifies the storefront session behind every request.
// A first-time visitor gets a fresh ID in a cookie; returning visitors keep
// the one they have, which is what ties them back to their persisted cart.
type SessionMiddleware struct {
	cookieName string
	ttlSeconds int
}

func NewSessionMiddleware(cookieName string, ttlSeconds int) *SessionMiddleware {
	return &SessionMiddleware{
		cookieName: cookieName,
		ttlSeconds: ttlSeconds,
	}
}

// Identify resolves or mints the session ID and stores it in the context
func (m *SessionMiddleware) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		sessionID, err := c.Cookie(m.cookieName)
		if err != nil || sessionID == "" {
			sessionID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(m.cookieName, sessionID, m.ttlSeconds, "/", "", false, true)
			log.Debug("Minted new session", map[string]interface{}{
				"session_id": sessionID,
			})
		}

		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}

// GetSessionID extracts the session ID from context
func GetSessionID(c *gin.Context) (string, bool) {
	sessionID := c.GetString(SessionIDKey)
	return sessionID, sessionID != ""
}
