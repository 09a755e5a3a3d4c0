package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/preppal/internal/interface/http"
)

// UserModule serves the personal page, settings, home browsing and the
// saved search ingredients.
type UserModule struct {
	Handler *handlers.UserHandler
	Guard   Guard
}

func NewUserModule(h *handlers.UserHandler, guard Guard) *UserModule {
	return &UserModule{Handler: h, Guard: guard}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := protected(rg, m.Guard)
	{
		auth.GET("/profile", m.Handler.Profile)
		auth.POST("/settings", m.Handler.Settings)
		auth.POST("/settings/password", m.Handler.ChangePassword)
		auth.POST("/home/browsing", m.Handler.Browsing)
		auth.GET("/ingredients", m.Handler.ListIngredients)
		auth.POST("/ingredients", m.Handler.AddIngredient)
		auth.POST("/ingredients/remove", m.Handler.RemoveIngredient)
	}
}
