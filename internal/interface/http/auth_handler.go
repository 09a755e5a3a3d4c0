package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/preppal/internal/application"
	"github.com/oksasatya/preppal/internal/domain/entity"
	"github.com/oksasatya/preppal/pkg/helpers"
	"github.com/oksasatya/preppal/pkg/response"
	"github.com/oksasatya/preppal/pkg/validation"
)

// AuthHandler serves signup, login, logout and the password reset flow.
type AuthHandler struct {
	Sessions *application.SessionService
	Resets   *application.ResetService
	Cookies  *helpers.Manager
	Logger   *logrus.Logger
}

func NewAuthHandler(sessions *application.SessionService, resets *application.ResetService, cookies *helpers.Manager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Sessions: sessions, Resets: resets, Cookies: cookies, Logger: logger}
}

func sessionBody(s *entity.Session) gin.H {
	return gin.H{"user_id": s.UserID, "email": s.Email, "username": s.Username}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	sess, err := h.Sessions.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.Cookies.SetSession(c, sess.ID, h.Sessions.ExpiresAt(sess))
	response.Success(c, http.StatusCreated, sessionBody(sess), "signed up", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	sess, err := h.Sessions.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	exp := h.Sessions.ExpiresAt(sess)
	h.Cookies.SetSession(c, sess.ID, exp)
	response.Success(c, http.StatusOK, sessionBody(sess), "login successful", gin.H{"expires_at": exp})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Sessions.Logout(c.Request.Context(), h.Cookies.SessionID(c)); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Resets.RequestReset(c.Request.Context(), req.Email); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"sent": true}, "if the address is registered, a reset link is on its way", nil)
}

// ResetForm checks a reset link before the user picks a new password.
func (h *AuthHandler) ResetForm(c *gin.Context) {
	claims, err := h.Resets.Verify(c.Request.Context(), c.Param("userId"), c.Param("token"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"email": claims.Email}, "reset link is valid", gin.H{"expires_at": claims.ExpiresAt.Time})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	err := h.Resets.Reset(c.Request.Context(), c.Param("userId"), c.Param("token"), req.Password, req.ConfirmPassword)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"reset": true}, "password updated", nil)
}
