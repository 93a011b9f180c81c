package handler

import (
	apphr "github.com/easygo-schools/backend/internal/application/hr"
	"github.com/easygo-schools/backend/internal/domain/hr"
	"github.com/gin-gonic/gin"
)

// EmployeeHandler handles employee records and salary structures
type EmployeeHandler struct {
	BaseHandler
	employeeService *apphr.EmployeeService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *apphr.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// Create registers an employee with their salary structure
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req apphr.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	employee, err := h.employeeService.CreateEmployee(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, employee)
}

// AddComponent appends an earning or deduction to the salary structure
func (h *EmployeeHandler) AddComponent(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	var req apphr.SalaryComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	employee, err := h.employeeService.AddComponent(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employee)
}

// SetBasicSalary changes the employee's base pay
func (h *EmployeeHandler) SetBasicSalary(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	var req apphr.SetBasicSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	employee, err := h.employeeService.SetBasicSalary(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employee)
}

// Relieve ends an employee's service
func (h *EmployeeHandler) Relieve(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	var req apphr.RelieveEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	employee, err := h.employeeService.RelieveEmployee(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employee)
}

// Get returns a single employee by ID
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	employee, err := h.employeeService.GetEmployee(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employee)
}

// List returns employees matching the query filters
func (h *EmployeeHandler) List(c *gin.Context) {
	list, err := bindPagination(c)
	if err != nil {
		h.BadRequest(c, "Invalid pagination parameters")
		return
	}

	filter := hr.EmployeeFilter{
		Search:   c.Query("search"),
		Status:   hr.EmployeeStatus(c.Query("status")),
		Page:     list.Page,
		PageSize: list.PageSize,
	}

	employees, total, err := h.employeeService.ListEmployees(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, employees, total, list.Page, list.PageSize)
}
