package handler

import (
	"context"

	appsupport "github.com/easygo-schools/backend/internal/application/support"
	"github.com/easygo-schools/backend/internal/domain/support"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SupportHandler handles remedial plans and orientation counseling
type SupportHandler struct {
	BaseHandler
	supportService *appsupport.SupportService
}

// NewSupportHandler creates a new support handler
func NewSupportHandler(supportService *appsupport.SupportService) *SupportHandler {
	return &SupportHandler{supportService: supportService}
}

// CreateRemedialPlan drafts a remedial plan with its initial sessions
func (h *SupportHandler) CreateRemedialPlan(c *gin.Context) {
	var req appsupport.CreateRemedialPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	plan, err := h.supportService.CreateRemedialPlan(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, plan)
}

// AddSession appends a session to a draft plan
func (h *SupportHandler) AddSession(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid plan ID")
		return
	}

	var req appsupport.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	plan, err := h.supportService.AddSession(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plan)
}

// ActivateRemedialPlan starts a planned program
func (h *SupportHandler) ActivateRemedialPlan(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid plan ID")
		return
	}

	plan, err := h.supportService.ActivateRemedialPlan(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plan)
}

// CompleteSession records attendance and progress notes for one session
func (h *SupportHandler) CompleteSession(c *gin.Context) {
	planID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid plan ID")
		return
	}
	sessionID, err := parseIDParam(c, "sessionId")
	if err != nil {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	var req appsupport.CompleteSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	plan, err := h.supportService.CompleteSession(c.Request.Context(), planID, sessionID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plan)
}

// CompleteRemedialPlan closes a fully delivered program
func (h *SupportHandler) CompleteRemedialPlan(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid plan ID")
		return
	}

	plan, err := h.supportService.CompleteRemedialPlan(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plan)
}

// CancelRemedialPlan abandons a program with a reason
func (h *SupportHandler) CancelRemedialPlan(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid plan ID")
		return
	}

	var req appsupport.CancelRemedialPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	plan, err := h.supportService.CancelRemedialPlan(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plan)
}

// GetRemedialPlan returns a single remedial plan by ID
func (h *SupportHandler) GetRemedialPlan(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid plan ID")
		return
	}

	plan, err := h.supportService.GetRemedialPlan(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plan)
}

// ListRemedialPlans returns remedial plans matching the query filters
func (h *SupportHandler) ListRemedialPlans(c *gin.Context) {
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

	filter := support.RemedialPlanFilter{
		StudentID: studentID,
		Subject:   c.Query("subject"),
		Status:    support.PlanStatus(c.Query("status")),
		Page:      list.Page,
		PageSize:  list.PageSize,
	}

	plans, total, err := h.supportService.ListRemedialPlans(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, plans, total, list.Page, list.PageSize)
}

// CreateOrientationPlan opens an orientation file for a student
func (h *SupportHandler) CreateOrientationPlan(c *gin.Context) {
	counselorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appsupport.CreateOrientationPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	plan, err := h.supportService.CreateOrientationPlan(c.Request.Context(), counselorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, plan)
}

// RecommendStream records the counselor's stream recommendation
func (h *SupportHandler) RecommendStream(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid plan ID")
		return
	}

	var req appsupport.RecommendStreamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	plan, err := h.supportService.RecommendStream(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plan)
}

// SubmitOrientationPlan sends the file for management review
func (h *SupportHandler) SubmitOrientationPlan(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid plan ID")
		return
	}

	plan, err := h.supportService.SubmitOrientationPlan(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plan)
}

// ApproveOrientationPlan confirms the final stream and notifies the guardian
func (h *SupportHandler) ApproveOrientationPlan(c *gin.Context) {
	h.reviewOrientation(c, h.supportService.ApproveOrientationPlan)
}

// RejectOrientationPlan returns the file to the counselor for revision
func (h *SupportHandler) RejectOrientationPlan(c *gin.Context) {
	h.reviewOrientation(c, h.supportService.RejectOrientationPlan)
}

// GetOrientationPlan returns a single orientation plan by ID
func (h *SupportHandler) GetOrientationPlan(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid plan ID")
		return
	}

	plan, err := h.supportService.GetOrientationPlan(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plan)
}

// ListOrientationPlans returns orientation plans matching the query filters
func (h *SupportHandler) ListOrientationPlans(c *gin.Context) {
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

	filter := support.OrientationFilter{
		StudentID:    studentID,
		AcademicYear: c.Query("academic_year"),
		Status:       support.OrientationStatus(c.Query("status")),
		Page:         list.Page,
		PageSize:     list.PageSize,
	}

	plans, total, err := h.supportService.ListOrientationPlans(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, plans, total, list.Page, list.PageSize)
}

func (h *SupportHandler) reviewOrientation(
	c *gin.Context,
	apply func(ctx context.Context, id, reviewedBy uuid.UUID, req appsupport.ReviewOrientationRequest) (*support.OrientationPlan, error),
) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid plan ID")
		return
	}
	reviewedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appsupport.ReviewOrientationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	plan, err := apply(c.Request.Context(), id, reviewedBy, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plan)
}
