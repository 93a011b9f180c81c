package handler

import (
	appschooling "github.com/easygo-schools/backend/internal/application/schooling"
	"github.com/easygo-schools/backend/internal/domain/schooling"
	"github.com/gin-gonic/gin"
)

// StudentHandler handles admissions and student records
type StudentHandler struct {
	BaseHandler
	studentService *appschooling.StudentService
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(studentService *appschooling.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// Register creates an applicant awaiting admission approval
func (h *StudentHandler) Register(c *gin.Context) {
	var req appschooling.RegisterApplicantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	student, err := h.studentService.RegisterApplicant(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, student)
}

// Approve admits an applicant and assigns a class
func (h *StudentHandler) Approve(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid student ID")
		return
	}

	var req appschooling.ApproveAdmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	student, err := h.studentService.ApproveAdmission(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, student)
}

// Update edits guardian contact, class assignment and dietary restrictions
func (h *StudentHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid student ID")
		return
	}

	var req appschooling.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	student, err := h.studentService.UpdateStudent(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, student)
}

// Depart records a transfer, graduation or withdrawal
func (h *StudentHandler) Depart(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid student ID")
		return
	}

	var req appschooling.LeaveSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	student, err := h.studentService.RecordDeparture(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, student)
}

// Get returns a single student by ID
func (h *StudentHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid student ID")
		return
	}

	student, err := h.studentService.GetStudent(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, student)
}

// GetByMassarCode returns a single student by national student code
func (h *StudentHandler) GetByMassarCode(c *gin.Context) {
	student, err := h.studentService.GetStudentByMassarCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, student)
}

// List returns students matching the query filters
func (h *StudentHandler) List(c *gin.Context) {
	list, err := bindPagination(c)
	if err != nil {
		h.BadRequest(c, "Invalid pagination parameters")
		return
	}

	filter := schooling.StudentFilter{
		Search:      c.Query("search"),
		SchoolClass: c.Query("school_class"),
		Status:      schooling.StudentStatus(c.Query("status")),
		Page:        list.Page,
		PageSize:    list.PageSize,
	}

	students, total, err := h.studentService.ListStudents(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, students, total, list.Page, list.PageSize)
}
