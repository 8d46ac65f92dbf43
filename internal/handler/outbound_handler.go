package handler

import (
	"net/http"

	"stokgudang/backend/internal/middleware"
	"stokgudang/backend/internal/model"
	"stokgudang/backend/internal/service"
	"stokgudang/backend/pkg/pagination"
	"stokgudang/backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type OutboundHandler struct {
	outboundService service.OutboundService
}

func NewOutboundHandler(outboundService service.OutboundService) *OutboundHandler {
	return &OutboundHandler{outboundService: outboundService}
}

func (h *OutboundHandler) RegisterRoutes(router *gin.RouterGroup) {
	outbound := router.Group("/api/barang-keluar")
	outbound.Use(middleware.RequireRole(model.RolePIC, model.RoleGuest))
	{
		outbound.GET("", h.List)
		outbound.POST("", h.Create)
		outbound.DELETE("/:id", h.Delete)
	}
}

// List returns all outbound transactions, newest first
// @Summary      List outbound transactions
// @Description  Retrieves all barang keluar transactions sorted by timestamp descending
// @Tags         barang-keluar
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.OutboundRecord}
// @Failure      500  {object}  response.Response
// @Router       /api/barang-keluar [get]
func (h *OutboundHandler) List(c *gin.Context) {
	records, err := h.outboundService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to retrieve outbound records: "+err.Error()))
		return
	}

	window, meta := pagination.Window(records, pagination.Parse(c))
	c.JSON(http.StatusOK, response.Paged(http.StatusOK, window, meta))
}

// Create submits one outbound transaction (DR, MB or RB)
// @Summary      Create outbound transaction
// @Description  Submits a barang keluar transaction; MB-kind submissions also register the inter-warehouse transfer
// @Tags         barang-keluar
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateOutboundRequest  true  "Outbound Transaction Payload"
// @Success      201      {object}  response.Response{data=service.OutboundResponse}
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /api/barang-keluar [post]
func (h *OutboundHandler) Create(c *gin.Context) {
	var req service.CreateOutboundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	actor := middleware.ActorFromContext(c)

	result, err := h.outboundService.Create(c.Request.Context(), actor, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, result))
}

// Delete removes one outbound transaction by document id
// @Summary      Delete outbound transaction
// @Description  Deletes a barang keluar transaction by its reference-date id
// @Tags         barang-keluar
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Transaction id (reference-DDMMYYYY)"
// @Success      200  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /api/barang-keluar/{id} [delete]
func (h *OutboundHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.outboundService.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": id}))
}
