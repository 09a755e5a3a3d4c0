package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/preppal/internal/interface/http"
)

// PantryModule groups the shopping list and "my kitchen" routes.
type PantryModule struct {
	Shopping *handlers.ShoppingHandler
	Kitchen  *handlers.KitchenHandler
	Guard    Guard
}

func NewPantryModule(shopping *handlers.ShoppingHandler, kitchen *handlers.KitchenHandler, guard Guard) *PantryModule {
	return &PantryModule{Shopping: shopping, Kitchen: kitchen, Guard: guard}
}

func (m *PantryModule) Register(rg *gin.RouterGroup) {
	auth := protected(rg, m.Guard)
	{
		auth.POST("/shoppinglist", m.Shopping.Add)
		auth.GET("/shoppinglist", m.Shopping.List)
		auth.DELETE("/shoppinglist/:id", m.Shopping.Remove)
		auth.GET("/kitchen", m.Kitchen.List)
		auth.POST("/kitchen", m.Kitchen.Apply)
	}
}
