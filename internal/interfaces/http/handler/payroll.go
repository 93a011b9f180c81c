package handler

import (
	apphr "github.com/easygo-schools/backend/internal/application/hr"
	"github.com/easygo-schools/backend/internal/domain/hr"
	"github.com/gin-gonic/gin"
)

// PayrollHandler handles salary slip generation and processing
type PayrollHandler struct {
	BaseHandler
	payrollService *apphr.PayrollService
}

// NewPayrollHandler creates a new payroll handler
func NewPayrollHandler(payrollService *apphr.PayrollService) *PayrollHandler {
	return &PayrollHandler{payrollService: payrollService}
}

// GeneratePeriodRequest identifies one pay period, formatted YYYY-MM
type GeneratePeriodRequest struct {
	PayPeriod string `json:"pay_period" binding:"required"`
}

// Generate drafts one salary slip for an employee and period
func (h *PayrollHandler) Generate(c *gin.Context) {
	var req apphr.GenerateSlipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	slip, err := h.payrollService.GenerateSlip(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, slip)
}

// GenerateBatch drafts slips for every active employee without one
func (h *PayrollHandler) GenerateBatch(c *gin.Context) {
	var req GeneratePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	created, err := h.payrollService.GenerateSlipsForPeriod(c.Request.Context(), req.PayPeriod)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"created": created})
}

// SetAttendance records working and absent days on a draft slip
func (h *PayrollHandler) SetAttendance(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid slip ID")
		return
	}

	var req apphr.SetSlipAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	slip, err := h.payrollService.SetSlipAttendance(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, slip)
}

// Process finalizes a slip, posts it to the ledger and notifies the employee
func (h *PayrollHandler) Process(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid slip ID")
		return
	}
	processedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	slip, err := h.payrollService.ProcessSlip(c.Request.Context(), id, processedBy)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, slip)
}

// Cancel voids a draft slip
func (h *PayrollHandler) Cancel(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid slip ID")
		return
	}

	slip, err := h.payrollService.CancelSlip(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, slip)
}

// Get returns a single salary slip by ID
func (h *PayrollHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid slip ID")
		return
	}

	slip, err := h.payrollService.GetSlip(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, slip)
}

// List returns salary slips matching the query filters
func (h *PayrollHandler) List(c *gin.Context) {
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

	filter := hr.SalarySlipFilter{
		EmployeeID: employeeID,
		PayPeriod:  c.Query("pay_period"),
		Status:     hr.SalarySlipStatus(c.Query("status")),
		Page:       list.Page,
		PageSize:   list.PageSize,
	}

	slips, total, err := h.payrollService.ListSlips(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, slips, total, list.Page, list.PageSize)
}

// Summary aggregates slip totals for one pay period
func (h *PayrollHandler) Summary(c *gin.Context) {
	payPeriod := c.Query("pay_period")
	if payPeriod == "" {
		h.BadRequest(c, "pay_period is required")
		return
	}

	summary, err := h.payrollService.PeriodSummary(c.Request.Context(), payPeriod)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
