package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/preppal/internal/application"
	"github.com/oksasatya/preppal/internal/interface/middleware"
	"github.com/oksasatya/preppal/pkg/helpers"
	"github.com/oksasatya/preppal/pkg/response"
)

// writeError maps application errors onto HTTP statuses. Unknown errors are
// logged and reported as 500 without detail.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	var verr *application.ValidationError
	var berr *application.BatchError
	switch {
	case errors.As(err, &berr):
		failed := make([]string, 0, len(berr.Failed))
		for _, f := range berr.Failed {
			failed = append(failed, f.Name)
		}
		if berr.Rejected() {
			response.Error[any](c, http.StatusBadRequest, "some kitchen items are invalid", gin.H{"failed": failed})
			return
		}
		if logger != nil {
			logger.WithError(err).WithFields(helpers.RequestFields(c)).Error("kitchen batch failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "some kitchen items could not be saved", gin.H{"failed": failed})
	case errors.As(err, &verr):
		response.Error[any](c, http.StatusBadRequest, "invalid payload", verr.Fields)
	case errors.Is(err, application.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, "not found", nil)
	case errors.Is(err, application.ErrEmailInUse):
		response.Error[any](c, http.StatusConflict, "email address is already in use", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "invalid email or password", nil)
	case errors.Is(err, application.ErrTokenExpired), errors.Is(err, application.ErrTokenInvalid):
		response.Error[any](c, http.StatusBadRequest, "reset link is invalid or has expired", nil)
	case errors.Is(err, application.ErrUnauthenticated):
		response.Error[any](c, http.StatusUnauthorized, "login required", nil)
	default:
		if logger != nil {
			logger.WithError(err).WithFields(helpers.RequestFields(c)).Error("request failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
	}
}

func ownerEmail(c *gin.Context) string {
	return c.GetString(middleware.CtxEmailKey)
}
