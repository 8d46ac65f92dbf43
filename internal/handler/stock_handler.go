package handler

import (
	"net/http"

	"stokgudang/backend/internal/middleware"
	"stokgudang/backend/internal/model"
	"stokgudang/backend/internal/service"
	"stokgudang/backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type StockHandler struct {
	stockService service.StockService
}

func NewStockHandler(stockService service.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

func (h *StockHandler) RegisterRoutes(router *gin.RouterGroup) {
	stock := router.Group("/api/stock")
	stock.Use(middleware.RequireRole(model.RolePIC, model.RoleGuest))
	{
		stock.GET("", h.GetCurrentStock)
		stock.GET("/gudang", h.GetWarehouseBreakdown)
		stock.GET("/principles", h.ListPrinciples)
	}
}

// GetCurrentStock returns the flat current-stock table
// @Summary      Current stock
// @Description  Recomputes net stock per item code across all warehouses
// @Tags         stock
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.StockRow}
// @Failure      500  {object}  response.Response
// @Router       /api/stock [get]
func (h *StockHandler) GetCurrentStock(c *gin.Context) {
	rows, err := h.stockService.GetCurrentStock(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to compute stock: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

// GetWarehouseBreakdown returns per-item stock split by warehouse
// @Summary      Stock per warehouse
// @Description  Recomputes per-item, per-warehouse stock, optionally filtered to one principal
// @Tags         stock
// @Security     BearerAuth
// @Produce      json
// @Param        principle  query     string  false  "Filter by principal/brand"
// @Success      200        {object}  response.Response{data=[]service.WarehouseStock}
// @Failure      500        {object}  response.Response
// @Router       /api/stock/gudang [get]
func (h *StockHandler) GetWarehouseBreakdown(c *gin.Context) {
	principle := c.Query("principle")

	entries, err := h.stockService.GetWarehouseBreakdown(c.Request.Context(), principle)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to compute breakdown: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, entries))
}

// ListPrinciples returns the distinct principal/brand values
// @Summary      List principles
// @Description  Lists the distinct principal values seen across inbound records
// @Tags         stock
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]string}
// @Failure      500  {object}  response.Response
// @Router       /api/stock/principles [get]
func (h *StockHandler) ListPrinciples(c *gin.Context) {
	principles, err := h.stockService.ListPrinciples(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, principles))
}
