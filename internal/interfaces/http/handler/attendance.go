package handler

import (
	"time"

	appschooling "github.com/easygo-schools/backend/internal/application/schooling"
	"github.com/easygo-schools/backend/internal/domain/schooling"
	"github.com/easygo-schools/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AttendanceHandler handles attendance recording and reporting
type AttendanceHandler struct {
	BaseHandler
	attendanceService *appschooling.AttendanceService
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(attendanceService *appschooling.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// ClassAttendanceRequest is the bulk attendance sheet for one class and day.
// Students not listed as absent or late are recorded present.
type ClassAttendanceRequest struct {
	SchoolClass string      `json:"school_class" binding:"required"`
	Date        time.Time   `json:"date" binding:"required"`
	AbsentIDs   []uuid.UUID `json:"absent_ids"`
	LateIDs     []uuid.UUID `json:"late_ids"`
}

// Record creates a single attendance entry
func (h *AttendanceHandler) Record(c *gin.Context) {
	recordedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appschooling.RecordAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	attendance, err := h.attendanceService.RecordAttendance(c.Request.Context(), recordedBy, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, attendance)
}

// RecordClass records a whole class sheet in one call
func (h *AttendanceHandler) RecordClass(c *gin.Context) {
	recordedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ClassAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	recorded, err := h.attendanceService.RecordClassAttendance(
		c.Request.Context(), recordedBy, req.SchoolClass, req.Date, req.AbsentIDs, req.LateIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"recorded": recorded})
}

// Correct amends the status or remark of an existing entry
func (h *AttendanceHandler) Correct(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid attendance ID")
		return
	}

	var req appschooling.CorrectAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	attendance, err := h.attendanceService.CorrectAttendance(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, attendance)
}

// List returns attendance entries matching the query filters
func (h *AttendanceHandler) List(c *gin.Context) {
	filter, list, ok := h.bindFilter(c)
	if !ok {
		return
	}

	entries, total, err := h.attendanceService.ListAttendance(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, entries, total, list.Page, list.PageSize)
}

// Summary returns aggregate counts per status for the filtered entries
func (h *AttendanceHandler) Summary(c *gin.Context) {
	filter, _, ok := h.bindFilter(c)
	if !ok {
		return
	}

	summary, err := h.attendanceService.SummarizeAttendance(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

func (h *AttendanceHandler) bindFilter(c *gin.Context) (schooling.AttendanceFilter, dto.ListRequest, bool) {
	list, err := bindPagination(c)
	if err != nil {
		h.BadRequest(c, "Invalid pagination parameters")
		return schooling.AttendanceFilter{}, list, false
	}
	studentID, err := parseUUIDQuery(c, "student_id")
	if err != nil {
		h.BadRequest(c, err.Error())
		return schooling.AttendanceFilter{}, list, false
	}
	fromDate, err := parseDateQuery(c, "from_date")
	if err != nil {
		h.BadRequest(c, err.Error())
		return schooling.AttendanceFilter{}, list, false
	}
	toDate, err := parseDateQuery(c, "to_date")
	if err != nil {
		h.BadRequest(c, err.Error())
		return schooling.AttendanceFilter{}, list, false
	}

	return schooling.AttendanceFilter{
		StudentID:   studentID,
		SchoolClass: c.Query("school_class"),
		Status:      schooling.AttendanceStatus(c.Query("status")),
		FromDate:    fromDate,
		ToDate:      toDate,
		Page:        list.Page,
		PageSize:    list.PageSize,
	}, list, true
}
