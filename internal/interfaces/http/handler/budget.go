package handler

import (
	appfinance "github.com/easygo-schools/backend/internal/application/finance"
	"github.com/easygo-schools/backend/internal/domain/finance"
	"github.com/gin-gonic/gin"
)

// BudgetHandler handles fiscal-year budget management
type BudgetHandler struct {
	BaseHandler
	budgetService *appfinance.BudgetService
}

// NewBudgetHandler creates a new budget handler
func NewBudgetHandler(budgetService *appfinance.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// Create drafts a budget with its initial cost-center lines
func (h *BudgetHandler) Create(c *gin.Context) {
	var req appfinance.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	budget, err := h.budgetService.CreateBudget(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, budget)
}

// AddLine appends a cost-center line to a draft budget
func (h *BudgetHandler) AddLine(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid budget ID")
		return
	}

	var req appfinance.BudgetLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	budget, err := h.budgetService.AddBudgetLine(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, budget)
}

// Activate puts a budget in force
func (h *BudgetHandler) Activate(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid budget ID")
		return
	}

	budget, err := h.budgetService.ActivateBudget(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, budget)
}

// Close ends a budget at the close of the fiscal year
func (h *BudgetHandler) Close(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid budget ID")
		return
	}

	budget, err := h.budgetService.CloseBudget(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, budget)
}

// RecordExpense books spending against a cost-center line
func (h *BudgetHandler) RecordExpense(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid budget ID")
		return
	}

	var req appfinance.RecordExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	budget, err := h.budgetService.RecordExpense(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, budget)
}

// Get returns a single budget by ID
func (h *BudgetHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid budget ID")
		return
	}

	budget, err := h.budgetService.GetBudget(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, budget)
}

// List returns budgets matching the query filters
func (h *BudgetHandler) List(c *gin.Context) {
	list, err := bindPagination(c)
	if err != nil {
		h.BadRequest(c, "Invalid pagination parameters")
		return
	}

	filter := finance.BudgetFilter{
		FiscalYear: c.Query("fiscal_year"),
		Status:     finance.BudgetStatus(c.Query("status")),
		Page:       list.Page,
		PageSize:   list.PageSize,
	}

	budgets, total, err := h.budgetService.ListBudgets(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, budgets, total, list.Page, list.PageSize)
}
