package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/preppal/internal/application"
	"github.com/oksasatya/preppal/internal/domain/entity"
	"github.com/oksasatya/preppal/pkg/helpers"
	"github.com/oksasatya/preppal/pkg/response"
)

const (
	CtxSessionKey = "session"
	CtxUserIDKey  = "userID"
	CtxEmailKey   = "userEmail"

	LoginPath = "/login"
)

// SessionAuth loads the session named by the session cookie. Requests
// without a valid session are redirected to the login page.
func SessionAuth(sessions *application.SessionService, cookies *helpers.Manager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := sessions.Require(c.Request.Context(), cookies.SessionID(c))
		if err != nil {
			if errors.Is(err, application.ErrUnauthenticated) {
				cookies.Clear(c)
				c.Redirect(http.StatusSeeOther, LoginPath)
				c.Abort()
				return
			}
			if logger != nil {
				logger.WithError(err).Error("session lookup failed")
			}
			response.Abort(c, http.StatusInternalServerError, "internal server error")
			return
		}
		c.Set(CtxSessionKey, sess)
		c.Set(CtxUserIDKey, sess.UserID)
		c.Set(CtxEmailKey, sess.Email)
		c.Next()
	}
}

// CurrentSession returns the session stored by SessionAuth.
func CurrentSession(c *gin.Context) *entity.Session {
	v, ok := c.Get(CtxSessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*entity.Session)
	return sess
}
