package handler

import (
	"time"

	appfinance "github.com/easygo-schools/backend/internal/application/finance"
	"github.com/easygo-schools/backend/internal/domain/finance"
	"github.com/gin-gonic/gin"
)

// BillingHandler handles fee bills, payments and ledger reporting
type BillingHandler struct {
	BaseHandler
	billingService *appfinance.BillingService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billingService *appfinance.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// CreateBill drafts a fee bill for a student
func (h *BillingHandler) CreateBill(c *gin.Context) {
	var req appfinance.CreateFeeBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	bill, err := h.billingService.CreateFeeBill(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, bill)
}

// SubmitBill posts a draft bill to the ledger and notifies the guardian
func (h *BillingHandler) SubmitBill(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	bill, err := h.billingService.SubmitFeeBill(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bill)
}

// CancelBill voids a bill, reversing its ledger postings if it was open
func (h *BillingHandler) CancelBill(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	bill, err := h.billingService.CancelFeeBill(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bill)
}

// GetBill returns a single fee bill by ID
func (h *BillingHandler) GetBill(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	bill, err := h.billingService.GetFeeBill(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bill)
}

// ListBills returns fee bills matching the query filters
func (h *BillingHandler) ListBills(c *gin.Context) {
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

	filter := finance.FeeBillFilter{
		StudentID:    studentID,
		AcademicYear: c.Query("academic_year"),
		Status:       finance.FeeBillStatus(c.Query("status")),
		OverdueOnly:  c.Query("overdue_only") == "true",
		Page:         list.Page,
		PageSize:     list.PageSize,
	}

	bills, total, err := h.billingService.ListFeeBills(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, bills, total, list.Page, list.PageSize)
}

// RecordPayment registers a payment against an open bill
func (h *BillingHandler) RecordPayment(c *gin.Context) {
	receivedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appfinance.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	payment, err := h.billingService.RecordPayment(c.Request.Context(), receivedBy, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, payment)
}

// ListPayments returns payment entries matching the query filters
func (h *BillingHandler) ListPayments(c *gin.Context) {
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
	feeBillID, err := parseUUIDQuery(c, "fee_bill_id")
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

	filter := finance.PaymentEntryFilter{
		StudentID: studentID,
		FeeBillID: feeBillID,
		Method:    finance.PaymentMethod(c.Query("method")),
		FromDate:  fromDate,
		ToDate:    toDate,
		Page:      list.Page,
		PageSize:  list.PageSize,
	}

	payments, total, err := h.billingService.ListPayments(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, payments, total, list.Page, list.PageSize)
}

// ListLedger returns ledger entries matching the query filters
func (h *BillingHandler) ListLedger(c *gin.Context) {
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
	referenceID, err := parseUUIDQuery(c, "reference_id")
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

	filter := finance.LedgerFilter{
		Account:       c.Query("account"),
		StudentID:     studentID,
		ReferenceType: finance.LedgerReferenceType(c.Query("reference_type")),
		ReferenceID:   referenceID,
		FromDate:      fromDate,
		ToDate:        toDate,
		Page:          list.Page,
		PageSize:      list.PageSize,
	}

	entries, total, err := h.billingService.ListLedger(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, entries, total, list.Page, list.PageSize)
}

// CollectionSummary reports billed, collected and outstanding totals
func (h *BillingHandler) CollectionSummary(c *gin.Context) {
	summary, err := h.billingService.CollectionSummary(c.Request.Context(), c.Query("academic_year"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// TrialBalance reports per-account debit and credit totals over a period
func (h *BillingHandler) TrialBalance(c *gin.Context) {
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

	// Default to the current calendar year when no range is given
	now := time.Now()
	from := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	to := now
	if fromDate != nil {
		from = *fromDate
	}
	if toDate != nil {
		to = *toDate
	}

	balances, err := h.billingService.TrialBalance(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, balances)
}
