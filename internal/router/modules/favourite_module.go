package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/preppal/internal/interface/http"
)

type FavouriteModule struct {
	Handler *handlers.FavouriteHandler
	Guard   Guard
}

func NewFavouriteModule(h *handlers.FavouriteHandler, guard Guard) *FavouriteModule {
	return &FavouriteModule{Handler: h, Guard: guard}
}

func (m *FavouriteModule) Register(rg *gin.RouterGroup) {
	auth := protected(rg, m.Guard)
	{
		auth.POST("/favourites/toggle", m.Handler.Toggle)
		auth.GET("/favourites", m.Handler.List)
		auth.GET("/favourites/overview", m.Handler.Overview)
		auth.GET("/favourites/search", m.Handler.Search)
		auth.GET("/favourites/:recipeId", m.Handler.Get)
		auth.PUT("/favourites/:recipeId", m.Handler.Update)
	}
}
