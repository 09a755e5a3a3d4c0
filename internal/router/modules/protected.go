package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/preppal/internal/container"
	"github.com/oksasatya/preppal/internal/interface/middleware"
)

// Guard is the session check run before every protected route.
type Guard gin.HandlerFunc

// protected returns a group behind the session guard with per-IP and
// per-user limits.
func protected(rg *gin.RouterGroup, guard Guard) *gin.RouterGroup {
	auth := rg.Group("/")
	auth.Use(gin.HandlerFunc(guard))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	return auth
}
