package handler

import (
	"context"

	appschooling "github.com/easygo-schools/backend/internal/application/schooling"
	"github.com/easygo-schools/backend/internal/domain/schooling"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// JustificationHandler handles absence justification workflows
type JustificationHandler struct {
	BaseHandler
	justificationService *appschooling.JustificationService
}

// NewJustificationHandler creates a new justification handler
func NewJustificationHandler(justificationService *appschooling.JustificationService) *JustificationHandler {
	return &JustificationHandler{justificationService: justificationService}
}

// Submit files a justification for an absence
func (h *JustificationHandler) Submit(c *gin.Context) {
	submittedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appschooling.SubmitJustificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	justification, err := h.justificationService.SubmitJustification(c.Request.Context(), submittedBy, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, justification)
}

// Approve accepts a justification and excuses the matching absence
func (h *JustificationHandler) Approve(c *gin.Context) {
	h.review(c, h.justificationService.ApproveJustification)
}

// Reject declines a justification with mandatory comments
func (h *JustificationHandler) Reject(c *gin.Context) {
	h.review(c, h.justificationService.RejectJustification)
}

// Get returns a single justification by ID
func (h *JustificationHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid justification ID")
		return
	}

	justification, err := h.justificationService.GetJustification(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, justification)
}

// List returns justifications matching the query filters
func (h *JustificationHandler) List(c *gin.Context) {
	list, err := bindPagination(c)
	if err != nil {
		h.BadRequest(c, "Invalid pagination parameters")
		return
	}
	studentID, err := parseUUIDQuery(c, "student_id")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	fromDate, err := parseDateQuery(c, "from_date")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	toDate, err := parseDateQuery(c, "to_date")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := schooling.JustificationFilter{
		StudentID: studentID,
		Status:    schooling.JustificationStatus(c.Query("status")),
		FromDate:  fromDate,
		ToDate:    toDate,
		Page:      list.Page,
		PageSize:  list.PageSize,
	}

	justifications, total, err := h.justificationService.ListJustifications(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, justifications, total, list.Page, list.PageSize)
}

type justificationReviewFunc func(ctx context.Context, id, reviewedBy uuid.UUID, req appschooling.ReviewJustificationRequest) (*schooling.AttendanceJustification, error)

func (h *JustificationHandler) review(c *gin.Context, apply justificationReviewFunc) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid justification ID")
		return
	}
	reviewedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appschooling.ReviewJustificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	justification, err := apply(c.Request.Context(), id, reviewedBy, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, justification)
}
