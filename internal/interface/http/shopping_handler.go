package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/preppal/internal/application"
	"github.com/oksasatya/preppal/pkg/response"
	"github.com/oksasatya/preppal/pkg/validation"
)

type ShoppingHandler struct {
	Svc    *application.ShoppingService
	Logger *logrus.Logger
}

func NewShoppingHandler(svc *application.ShoppingService, logger *logrus.Logger) *ShoppingHandler {
	return &ShoppingHandler{Svc: svc, Logger: logger}
}

func (h *ShoppingHandler) Add(c *gin.Context) {
	var req addShoppingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Svc.Add(c.Request.Context(), ownerEmail(c), req.RecipeID, req.Title, req.ingredients())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	if res == application.AlreadyPresent {
		response.Success(c, http.StatusOK, gin.H{"result": res.String()}, "this recipe is already in your shopping list", nil)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"result": res.String()}, "added to shopping list", nil)
}

func (h *ShoppingHandler) List(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context(), ownerEmail(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	out := shoppingListResponse{
		Items:   make([]shoppingItemResponse, 0, len(list.Items)),
		IsEmpty: list.IsEmpty,
		OnHand:  make([]string, 0, len(list.OnHand)),
	}
	if list.IsEmpty {
		out.Message = "There is nothing in your shopping list!"
	}
	for _, it := range list.Items {
		out.Items = append(out.Items, shoppingItemResponse{
			ID:          it.ID,
			RecipeID:    it.RecipeID,
			Title:       it.Title,
			Ingredients: nonNilSlice(it.Ingredients),
			Missing:     list.Missing(it),
			CreatedAt:   it.CreatedAt,
		})
	}
	for name := range list.OnHand {
		out.OnHand = append(out.OnHand, name)
	}
	sort.Strings(out.OnHand)
	response.Success(c, http.StatusOK, out, "shopping list", nil)
}

func (h *ShoppingHandler) Remove(c *gin.Context) {
	if err := h.Svc.Remove(c.Request.Context(), ownerEmail(c), c.Param("id")); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"removed": true}, "removed from shopping list", nil)
}
