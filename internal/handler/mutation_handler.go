package handler

import (
	"errors"
	"net/http"

	"stokgudang/backend/internal/middleware"
	"stokgudang/backend/internal/model"
	"stokgudang/backend/internal/service"
	"stokgudang/backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type RejectMutationRequest struct {
	Reason string `json:"reason"`
}

type MutationHandler struct {
	mutationService service.MutationService
}

func NewMutationHandler(mutationService service.MutationService) *MutationHandler {
	return &MutationHandler{mutationService: mutationService}
}

func (h *MutationHandler) RegisterRoutes(router *gin.RouterGroup) {
	mutasi := router.Group("/api/mutasi")
	mutasi.Use(middleware.RequireRole(model.RolePIC, model.RoleGuest))
	{
		mutasi.GET("/inbox", h.Inbox)
		mutasi.POST("/:runId/approve", h.Approve)
		mutasi.POST("/:runId/reject", h.Reject)
	}
}

// Inbox lists pending transfers destined for the caller's warehouses
// @Summary      Mutation inbox
// @Description  Lists PENDING transfer requests whose destination falls in the caller's warehouse groups, oldest first
// @Tags         mutasi
// @Security     BearerAuth
// @Produce      json
// @Param        filter  query     string  false  "Case-insensitive text filter (run id, source, destination, operator)"
// @Success      200     {object}  response.Response{data=[]model.InboxRecord}
// @Failure      500     {object}  response.Response
// @Router       /api/mutasi/inbox [get]
func (h *MutationHandler) Inbox(c *gin.Context) {
	allowed := middleware.WarehousesFromContext(c)
	filter := c.Query("filter")

	records, err := h.mutationService.ListInbox(c.Request.Context(), allowed, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to load inbox: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, records))
}

// Approve finalizes a transfer at the destination
// @Summary      Approve mutation
// @Description  Approves a pending inter-warehouse transfer; retrying an already-approved run is a safe no-op
// @Tags         mutasi
// @Security     BearerAuth
// @Produce      json
// @Param        runId  path      string  true  "Mutation run id"
// @Success      200    {object}  response.Response{data=model.MutationRequest}
// @Failure      409    {object}  response.Response
// @Failure      500    {object}  response.Response
// @Router       /api/mutasi/{runId}/approve [post]
func (h *MutationHandler) Approve(c *gin.Context) {
	runID := c.Param("runId")
	actor := middleware.ActorFromContext(c)

	request, err := h.mutationService.Approve(c.Request.Context(), runID, actor)
	if err != nil {
		h.decisionError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, request))
}

// Reject cancels a transfer at the destination
// @Summary      Reject mutation
// @Description  Rejects a pending inter-warehouse transfer, stamping the reason onto the outbound record
// @Tags         mutasi
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        runId    path      string                 true   "Mutation run id"
// @Param        payload  body      RejectMutationRequest  false  "Rejection reason"
// @Success      200      {object}  response.Response{data=model.MutationRequest}
// @Failure      409      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /api/mutasi/{runId}/reject [post]
func (h *MutationHandler) Reject(c *gin.Context) {
	runID := c.Param("runId")
	actor := middleware.ActorFromContext(c)

	var req RejectMutationRequest
	// Reason defaults to empty; an absent body is fine
	_ = c.ShouldBindJSON(&req)

	request, err := h.mutationService.Reject(c.Request.Context(), runID, actor, req.Reason)
	if err != nil {
		h.decisionError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, request))
}

func (h *MutationHandler) decisionError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrConflictingDecision) {
		c.JSON(http.StatusConflict, response.Error(http.StatusConflict, err.Error()))
		return
	}
	// Any store failure is recoverable: the whole call is safe to retry
	c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Operation failed, please retry: "+err.Error()))
}
