package modules

import (
	"expvar"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/preppal/internal/container"
	"github.com/oksasatya/preppal/internal/interface/middleware"
)

var (
	startedAt   = time.Now()
	publishOnce sync.Once
)

// DebugModule exposes expvar counters (sessions, rate limits) at /api/debug/vars.
type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	publishOnce.Do(func() {
		expvar.Publish("uptime_seconds", expvar.Func(func() any {
			return int64(time.Since(startedAt).Seconds())
		}))
	})
	// private networks (scrapers) skip the per-IP limit
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
