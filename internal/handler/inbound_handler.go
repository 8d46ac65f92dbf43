package handler

import (
	"net/http"
	"time"

	"stokgudang/backend/internal/middleware"
	"stokgudang/backend/internal/model"
	"stokgudang/backend/internal/service"
	"stokgudang/backend/pkg/pagination"
	"stokgudang/backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type InboundHandler struct {
	inboundService service.InboundService
}

func NewInboundHandler(inboundService service.InboundService) *InboundHandler {
	return &InboundHandler{inboundService: inboundService}
}

func (h *InboundHandler) RegisterRoutes(router *gin.RouterGroup) {
	inbound := router.Group("/api/barang-masuk")
	inbound.Use(middleware.RequireRole(model.RolePIC, model.RoleGuest))
	{
		inbound.GET("", h.List)
		inbound.POST("", h.Create)
		inbound.PUT("", h.Update)
		inbound.DELETE("", h.Delete)
	}
}

// List returns inbound records, newest first
// @Summary      List inbound records
// @Description  Retrieves barang masuk records sorted by timestamp descending
// @Tags         barang-masuk
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200  {object}  response.Response{data=[]model.InboundRecord}
// @Failure      500  {object}  response.Response
// @Router       /api/barang-masuk [get]
func (h *InboundHandler) List(c *gin.Context) {
	records, err := h.inboundService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to retrieve inbound records: "+err.Error()))
		return
	}

	window, meta := pagination.Window(records, pagination.Parse(c))
	c.JSON(http.StatusOK, response.Paged(http.StatusOK, window, meta))
}

// Create records one received-goods event
// @Summary      Create inbound record
// @Description  Records a barang masuk event for one item
// @Tags         barang-masuk
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateInboundRequest  true  "Inbound Record Payload"
// @Success      201      {object}  response.Response{data=model.InboundRecord}
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /api/barang-masuk [post]
func (h *InboundHandler) Create(c *gin.Context) {
	var req service.CreateInboundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	record, err := h.inboundService.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, record))
}

// Update corrects fields on an existing inbound record
// @Summary      Update inbound record
// @Description  Applies a field-level correction to an existing barang masuk record
// @Tags         barang-masuk
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.UpdateInboundRequest  true  "Update Payload"
// @Success      200      {object}  response.Response{data=model.InboundRecord}
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /api/barang-masuk [put]
func (h *InboundHandler) Update(c *gin.Context) {
	var req service.UpdateInboundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	record, err := h.inboundService.Update(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, record))
}

// Delete removes one inbound record by its (code, timestamp) composite
// @Summary      Delete inbound record
// @Description  Deletes a single barang masuk record addressed by code and timestamp
// @Tags         barang-masuk
// @Security     BearerAuth
// @Produce      json
// @Param        code       query     string  true  "Item code"
// @Param        timestamp  query     string  true  "Record timestamp (RFC3339)"
// @Success      200        {object}  response.Response
// @Failure      400        {object}  response.Response
// @Failure      500        {object}  response.Response
// @Router       /api/barang-masuk [delete]
func (h *InboundHandler) Delete(c *gin.Context) {
	code := c.Query("code")
	rawTimestamp := c.Query("timestamp")
	if code == "" || rawTimestamp == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "code and timestamp query parameters are required"))
		return
	}

	timestamp, err := time.Parse(time.RFC3339, rawTimestamp)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid timestamp: "+err.Error()))
		return
	}

	if err := h.inboundService.Delete(c.Request.Context(), code, timestamp); err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": code}))
}
