package handler

import (
	"context"

	apphr "github.com/easygo-schools/backend/internal/application/hr"
	"github.com/easygo-schools/backend/internal/domain/hr"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LeaveHandler handles leave applications and approvals
type LeaveHandler struct {
	BaseHandler
	leaveService *apphr.LeaveService
}

// NewLeaveHandler creates a new leave handler
func NewLeaveHandler(leaveService *apphr.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveService: leaveService}
}

// Apply files a leave application
func (h *LeaveHandler) Apply(c *gin.Context) {
	var req apphr.ApplyLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	leave, err := h.leaveService.ApplyLeave(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, leave)
}

// Approve grants a pending leave application
func (h *LeaveHandler) Approve(c *gin.Context) {
	h.review(c, h.leaveService.ApproveLeave)
}

// Reject declines a pending leave application
func (h *LeaveHandler) Reject(c *gin.Context) {
	h.review(c, h.leaveService.RejectLeave)
}

// Cancel withdraws a pending application
func (h *LeaveHandler) Cancel(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid leave ID")
		return
	}

	leave, err := h.leaveService.CancelLeave(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, leave)
}

// Get returns a single leave application by ID
func (h *LeaveHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid leave ID")
		return
	}

	leave, err := h.leaveService.GetLeave(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, leave)
}

// List returns leave applications matching the query filters
func (h *LeaveHandler) List(c *gin.Context) {
	list, err := bindPagination(c)
	if err != nil {
		h.BadRequest(c, "Invalid pagination parameters")
		return
	}
	employeeID, err := parseUUIDQuery(c, "employee_id")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := hr.LeaveFilter{
		EmployeeID: employeeID,
		Status:     hr.LeaveStatus(c.Query("status")),
		LeaveType:  hr.LeaveType(c.Query("leave_type")),
		Page:       list.Page,
		PageSize:   list.PageSize,
	}

	leaves, total, err := h.leaveService.ListLeaves(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, leaves, total, list.Page, list.PageSize)
}

func (h *LeaveHandler) review(
	c *gin.Context,
	apply func(ctx context.Context, id, reviewedBy uuid.UUID, req apphr.ReviewLeaveRequest) (*hr.LeaveApplication, error),
) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid leave ID")
		return
	}
	reviewedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req apphr.ReviewLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	leave, err := apply(c.Request.Context(), id, reviewedBy, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, leave)
}
