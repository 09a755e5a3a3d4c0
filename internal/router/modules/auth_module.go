package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/preppal/internal/container"
	handlers "github.com/oksasatya/preppal/internal/interface/http"
	"github.com/oksasatya/preppal/internal/interface/middleware"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public endpoints with IP-based rate limits
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	signupLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetInitLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetConfirmLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/signup", signupLimiter, m.Handler.Signup)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/logout", m.Handler.Logout)
	rg.POST("/forgot-password", resetInitLimiter, m.Handler.ForgotPassword)
	rg.GET("/reset-password/:userId/:token", resetConfirmLimiter, m.Handler.ResetForm)
	rg.POST("/reset-password/:userId/:token", resetConfirmLimiter, m.Handler.ResetPassword)
}
