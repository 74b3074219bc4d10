package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/boilerparts/internal/common"
	"github.com/gin-gonic/gin"
)

const (
	ctxUserKey    = "sessionUser"
	ctxSessionKey = "sessionID"
)

// sessionAuth gates protected routes: it reads the session cookie,
// verifies the signed token, loads the server-side session, and stores
// the resolved user on the request context. Anything short of a live
// session answers 401.
func (s *Server) sessionAuth(c *gin.Context) {

	token, err := c.Cookie(common.SessionCookieName)
	if err != nil || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	user, sessionID, err := s.users.Authenticate(c.Request.Context(), token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	c.Set(ctxUserKey, user)
	c.Set(ctxSessionKey, sessionID)
	c.Next()
}
