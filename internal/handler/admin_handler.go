package handler

import (
	"net/http"

	"stokgudang/backend/internal/middleware"
	"stokgudang/backend/internal/model"
	"stokgudang/backend/internal/store"
	"stokgudang/backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	store store.RecordStore
}

func NewAdminHandler(recordStore store.RecordStore) *AdminHandler {
	return &AdminHandler{store: recordStore}
}

func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.RequireRole(model.RolePIC))
	{
		admin.POST("/reset", h.Reset)
	}
}

// Reset wipes every collection. Meant for demo environments only.
// @Summary      Reset all data
// @Description  Deletes every stored record across all collections
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /api/admin/reset [post]
func (h *AdminHandler) Reset(c *gin.Context) {
	if err := h.store.ClearAll(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to reset data"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"reset": true}))
}
