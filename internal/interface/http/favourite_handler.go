package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/preppal/internal/application"
	"github.com/oksasatya/preppal/pkg/response"
	"github.com/oksasatya/preppal/pkg/validation"
)

type FavouriteHandler struct {
	Svc    *application.FavouriteService
	Logger *logrus.Logger
}

func NewFavouriteHandler(svc *application.FavouriteService, logger *logrus.Logger) *FavouriteHandler {
	return &FavouriteHandler{Svc: svc, Logger: logger}
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func (h *FavouriteHandler) Toggle(c *gin.Context) {
	var req toggleFavouriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	on, err := h.Svc.Toggle(c.Request.Context(), ownerEmail(c), req.RecipeID, req.toInput())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	msg := "removed from favourites"
	if on {
		msg = "added to favourites"
	}
	response.Success(c, http.StatusOK, gin.H{"recipe_id": req.RecipeID, "favourited": on}, msg, nil)
}

func (h *FavouriteHandler) List(c *gin.Context) {
	favs, err := h.Svc.List(c.Request.Context(), ownerEmail(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toFavouriteResponses(favs), "favourites", gin.H{"count": len(favs)})
}

func (h *FavouriteHandler) Overview(c *gin.Context) {
	favs, total, err := h.Svc.Overview(c.Request.Context(), ownerEmail(c), queryInt(c, "limit", overviewSize))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toFavouriteResponses(favs), "favourites overview", gin.H{"total": total})
}

func (h *FavouriteHandler) Search(c *gin.Context) {
	hits, err := h.Svc.Search(c.Request.Context(), ownerEmail(c), c.Query("q"), queryInt(c, "size", 10))
	if err != nil {
		response.Error[any](c, http.StatusServiceUnavailable, "search is unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)})
}

func (h *FavouriteHandler) Get(c *gin.Context) {
	f, err := h.Svc.Get(c.Request.Context(), ownerEmail(c), c.Param("recipeId"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toFavouriteResponse(*f), "favourite", gin.H{"is_favourited": true})
}

func (h *FavouriteHandler) Update(c *gin.Context) {
	var req updateFavouriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	f, err := h.Svc.Update(c.Request.Context(), ownerEmail(c), c.Param("recipeId"), req.toUpdate())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toFavouriteResponse(*f), "favourite updated", nil)
}
