package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/preppal/internal/application"
	"github.com/oksasatya/preppal/internal/interface/middleware"
	"github.com/oksasatya/preppal/pkg/response"
	"github.com/oksasatya/preppal/pkg/validation"
)

const overviewSize = 2

// UserHandler serves the per-user pages: home, personal page, settings and
// the search ingredient list.
type UserHandler struct {
	Sessions    *application.SessionService
	Credentials *application.CredentialService
	Favourites  *application.FavouriteService
	Logger      *logrus.Logger
}

func NewUserHandler(sessions *application.SessionService, creds *application.CredentialService, favs *application.FavouriteService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Sessions: sessions, Credentials: creds, Favourites: favs, Logger: logger}
}

func (h *UserHandler) Profile(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	favs, total, err := h.Favourites.Overview(c.Request.Context(), sess.Email, overviewSize)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"user_id":          sess.UserID,
		"username":         sess.Username,
		"email":            sess.Email,
		"date_of_birth":    sess.DateOfBirth,
		"recipe_count":     sess.RecipeCount,
		"favourites":       toFavouriteResponses(favs),
		"favourites_total": total,
	}, "profile", nil)
}

func (h *UserHandler) Settings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	sess := middleware.CurrentSession(c)
	if err := h.Sessions.SetDateOfBirth(c.Request.Context(), sess, req.DateOfBirth); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"date_of_birth": sess.DateOfBirth}, "settings saved", nil)
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	sess := middleware.CurrentSession(c)
	if err := h.Credentials.ChangePassword(c.Request.Context(), sess.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"changed": true}, "password changed", nil)
}

// Browsing handles the home page "show more" button.
func (h *UserHandler) Browsing(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if err := h.Sessions.LoadMore(c.Request.Context(), sess); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"recipe_count": sess.RecipeCount, "click_count": sess.ClickCount}, "ok", nil)
}

func (h *UserHandler) ListIngredients(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	response.Success(c, http.StatusOK, gin.H{"ingredients": h.Sessions.SearchIngredients(sess)}, "ok", nil)
}

// AddIngredient always reports success, including for names already listed.
func (h *UserHandler) AddIngredient(c *gin.Context) {
	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	sess := middleware.CurrentSession(c)
	if err := h.Sessions.AddSearchIngredient(c.Request.Context(), sess, req.IngredientName); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RemoveIngredient reports success only when the name was listed.
func (h *UserHandler) RemoveIngredient(c *gin.Context) {
	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	sess := middleware.CurrentSession(c)
	removed, err := h.Sessions.RemoveSearchIngredient(c.Request.Context(), sess, req.IngredientName)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": removed})
}
