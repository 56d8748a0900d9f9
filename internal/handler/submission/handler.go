package submission

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medlaunch/onboard-api/internal/handler"
	"github.com/medlaunch/onboard-api/internal/model"
	"github.com/medlaunch/onboard-api/internal/repository"
	submissionService "github.com/medlaunch/onboard-api/internal/service/submission"
)

type Handler struct {
	service    submissionService.SubmissionServicer
	production bool
}

func NewHandler(service submissionService.SubmissionServicer, production bool) *Handler {
	return &Handler{service: service, production: production}
}

// RegisterPublicRoutes exposes the form-facing endpoint.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/submissions", h.CreateSubmission)
}

// RegisterAdminRoutes exposes the dashboard endpoints; the caller mounts them
// behind the auth middleware.
func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	submissions := r.Group("/submissions")
	{
		submissions.GET("", h.ListSubmissions)
		submissions.GET("/stats/overview", h.GetStats)
		submissions.GET("/:id", h.GetSubmission)
		submissions.PUT("/:id/status", h.UpdateStatus)
	}
}

func (h *Handler) CreateSubmission(c *gin.Context) {
	var req model.SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(handler.MsgValidationFailed))
		return
	}

	ack, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err, h.production)
		return
	}

	c.JSON(http.StatusCreated, handler.NewMessageResponse(handler.MsgSubmissionCreated, ack))
}

func (h *Handler) ListSubmissions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	filter := model.SubmissionFilter{
		Status:    c.Query("status"),
		Specialty: c.Query("specialty"),
		Search:    c.Query("search"),
	}

	submissions, meta, err := h.service.List(c.Request.Context(), filter, model.Pagination{Page: page, Limit: limit})
	if err != nil {
		handler.RespondError(c, err, h.production)
		return
	}

	if submissions == nil {
		submissions = []*model.Submission{}
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"submissions": submissions,
		"pagination":  meta,
	}))
}

func (h *Handler) GetSubmission(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// Malformed identifiers read as absent records, matching how the
		// dashboard treats stale links.
		handler.RespondError(c, repository.ErrNotFound, h.production)
		return
	}

	submission, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err, h.production)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(submission))
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.RespondError(c, repository.ErrNotFound, h.production)
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(handler.MsgValidationFailed))
		return
	}

	ack, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		handler.RespondError(c, err, h.production)
		return
	}

	c.JSON(http.StatusOK, handler.NewMessageResponse(handler.MsgStatusUpdated, ack))
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err, h.production)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(stats))
}
