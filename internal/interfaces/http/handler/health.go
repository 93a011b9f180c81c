package handler

import (
	apphealth "github.com/easygo-schools/backend/internal/application/health"
	"github.com/easygo-schools/backend/internal/domain/health"
	"github.com/gin-gonic/gin"
)

// HealthHandler handles infirmary records and medical visits
type HealthHandler struct {
	BaseHandler
	healthService *apphealth.HealthService
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(healthService *apphealth.HealthService) *HealthHandler {
	return &HealthHandler{healthService: healthService}
}

// CreateRecord opens a health record for a student
func (h *HealthHandler) CreateRecord(c *gin.Context) {
	var req apphealth.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	record, err := h.healthService.CreateRecord(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, record)
}

// RecordMeasurement appends a height/weight measurement
func (h *HealthHandler) RecordMeasurement(c *gin.Context) {
	studentID, err := parseIDParam(c, "studentId")
	if err != nil {
		h.BadRequest(c, "Invalid student ID")
		return
	}

	var req apphealth.RecordMeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	record, err := h.healthService.RecordMeasurement(c.Request.Context(), studentID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// UpdateRecord edits allergies, conditions and emergency contact
func (h *HealthHandler) UpdateRecord(c *gin.Context) {
	studentID, err := parseIDParam(c, "studentId")
	if err != nil {
		h.BadRequest(c, "Invalid student ID")
		return
	}

	var req apphealth.UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	record, err := h.healthService.UpdateRecord(c.Request.Context(), studentID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// GetRecord returns the health record of a student
func (h *HealthHandler) GetRecord(c *gin.Context) {
	studentID, err := parseIDParam(c, "studentId")
	if err != nil {
		h.BadRequest(c, "Invalid student ID")
		return
	}

	record, err := h.healthService.GetRecord(c.Request.Context(), studentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// OpenVisit registers an infirmary visit
func (h *HealthHandler) OpenVisit(c *gin.Context) {
	attendedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req apphealth.OpenVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	visit, err := h.healthService.OpenVisit(c.Request.Context(), attendedBy, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, visit)
}

// CloseVisit records the outcome and alerts the guardian when needed
func (h *HealthHandler) CloseVisit(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid visit ID")
		return
	}

	var req apphealth.CloseVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	visit, err := h.healthService.CloseVisit(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, visit)
}

// GetVisit returns a single visit by ID
func (h *HealthHandler) GetVisit(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid visit ID")
		return
	}

	visit, err := h.healthService.GetVisit(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, visit)
}

// ListVisits returns visits matching the query filters
func (h *HealthHandler) ListVisits(c *gin.Context) {
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

	filter := health.VisitFilter{
		StudentID: studentID,
		Outcome:   health.VisitOutcome(c.Query("outcome")),
		FromDate:  fromDate,
		ToDate:    toDate,
		Page:      list.Page,
		PageSize:  list.PageSize,
	}

	visits, total, err := h.healthService.ListVisits(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, visits, total, list.Page, list.PageSize)
}
