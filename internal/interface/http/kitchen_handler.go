package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/preppal/internal/application"
	"github.com/oksasatya/preppal/internal/domain/entity"
	"github.com/oksasatya/preppal/pkg/response"
	"github.com/oksasatya/preppal/pkg/validation"
)

type KitchenHandler struct {
	Svc    *application.KitchenService
	Logger *logrus.Logger
}

func NewKitchenHandler(svc *application.KitchenService, logger *logrus.Logger) *KitchenHandler {
	return &KitchenHandler{Svc: svc, Logger: logger}
}

func (h *KitchenHandler) List(c *gin.Context) {
	items, err := h.Svc.ListItems(c.Request.Context(), ownerEmail(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	out := make([]kitchenItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, kitchenItemResponse{Name: it.Name, BestBefore: it.BestBefore.Format(entity.DateLayout)})
	}
	response.Success(c, http.StatusOK, out, "my kitchen", nil)
}

func (h *KitchenHandler) Apply(c *gin.Context) {
	var req kitchenBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	entries := make([]entity.KitchenEntry, 0, len(req.Items))
	for _, it := range req.Items {
		e := entity.KitchenEntry{Name: it.Name, Delete: it.Delete}
		if it.BestBefore != "" {
			// already checked by the date binding
			e.BestBefore, _ = time.Parse(entity.DateLayout, it.BestBefore)
		}
		entries = append(entries, e)
	}
	if err := h.Svc.ApplyBatch(c.Request.Context(), ownerEmail(c), entries); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"applied": len(entries)}, "kitchen saved", nil)
}
