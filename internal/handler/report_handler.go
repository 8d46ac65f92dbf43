package handler

import (
	"errors"
	"net/http"

	"stokgudang/backend/internal/middleware"
	"stokgudang/backend/internal/model"
	"stokgudang/backend/internal/service"
	"stokgudang/backend/internal/store"
	"stokgudang/backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type GenerateReportRequest struct {
	Principle string `json:"principle" binding:"required"`
}

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	laporan := router.Group("/api/laporan")
	laporan.Use(middleware.RequireRole(model.RolePIC, model.RoleGuest))
	{
		laporan.GET("", h.List)
		laporan.POST("/generate", h.Generate)
		laporan.GET("/:id/export", h.Export)
		laporan.DELETE("/:id", h.Delete)
	}
}

// Generate builds and stores a brand-grouped stock report
// @Summary      Generate report
// @Description  Aggregates current stock for one principal and stores the result for export
// @Tags         laporan
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      GenerateReportRequest  true  "Report parameters"
// @Success      201      {object}  response.Response{data=model.StockReport}
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /api/laporan/generate [post]
func (h *ReportHandler) Generate(c *gin.Context) {
	var req GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	actor := middleware.ActorFromContext(c)

	report, err := h.reportService.Generate(c.Request.Context(), actor, req.Principle)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, report))
}

// List returns all stored reports
// @Summary      List reports
// @Tags         laporan
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.StockReport}
// @Failure      500  {object}  response.Response
// @Router       /api/laporan [get]
func (h *ReportHandler) List(c *gin.Context) {
	reports, err := h.reportService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, reports))
}

// Export downloads a stored report as a spreadsheet
// @Summary      Export report
// @Description  Renders a stored report as an XLSX download
// @Tags         laporan
// @Security     BearerAuth
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id   path  string  true  "Report id"
// @Success      200  {file}  binary
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /api/laporan/{id}/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	id := c.Param("id")

	data, err := h.reportService.ExportXLSX(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Report not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="laporan-stok.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// Delete removes a stored report
// @Summary      Delete report
// @Tags         laporan
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Report id"
// @Success      200  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /api/laporan/{id} [delete]
func (h *ReportHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.reportService.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": id}))
}
