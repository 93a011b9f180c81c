package models

import (
	"time"

	"github.com/easygo-schools/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetModel is the persistence model for the Budget aggregate root.
type BudgetModel struct {
	AggregateModel
	FiscalYear           string               `gorm:"type:varchar(10);not null;index"`
	Title                string               `gorm:"type:varchar(200);not null"`
	Lines                []BudgetLineModel    `gorm:"foreignKey:BudgetID;references:ID"`
	TotalAmount          decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	TotalConsumed        decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	Status               finance.BudgetStatus `gorm:"type:varchar(10);not null;index"`
	WarnThresholdPercent decimal.Decimal      `gorm:"type:decimal(5,2);not null"`
}

// TableName returns the table name for GORM
func (BudgetModel) TableName() string {
	return "budgets"
}

// BudgetLineModel is the persistence model for a budget cost-center line.
type BudgetLineModel struct {
	BaseModel
	BudgetID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	CostCenter string          `gorm:"type:varchar(100);not null"`
	Allocated  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Consumed   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (BudgetLineModel) TableName() string {
	return "budget_lines"
}

// ToDomain converts the persistence model to a domain Budget entity.
func (m *BudgetModel) ToDomain() *finance.Budget {
	lines := make([]finance.BudgetLine, len(m.Lines))
	for i, l := range m.Lines {
		lines[i] = finance.BudgetLine{
			BaseEntity: l.BaseModel.ToDomain(),
			BudgetID:   l.BudgetID,
			CostCenter: l.CostCenter,
			Allocated:  l.Allocated,
			Consumed:   l.Consumed,
		}
	}
	return &finance.Budget{
		BaseAggregateRoot:    m.ToDomainAggregateRoot(),
		FiscalYear:           m.FiscalYear,
		Title:                m.Title,
		Lines:                lines,
		TotalAmount:          m.TotalAmount,
		TotalConsumed:        m.TotalConsumed,
		Status:               m.Status,
		WarnThresholdPercent: m.WarnThresholdPercent,
	}
}

// FromDomain populates the persistence model from a domain Budget entity.
func (m *BudgetModel) FromDomain(b *finance.Budget) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.FiscalYear = b.FiscalYear
	m.Title = b.Title
	m.TotalAmount = b.TotalAmount
	m.TotalConsumed = b.TotalConsumed
	m.Status = b.Status
	m.WarnThresholdPercent = b.WarnThresholdPercent
	m.Lines = make([]BudgetLineModel, len(b.Lines))
	for i, l := range b.Lines {
		line := BudgetLineModel{
			BudgetID:   l.BudgetID,
			CostCenter: l.CostCenter,
			Allocated:  l.Allocated,
			Consumed:   l.Consumed,
		}
		line.FromDomainBaseEntity(l.BaseEntity)
		m.Lines[i] = line
	}
}

// BudgetModelFromDomain creates a new persistence model from a domain Budget.
func BudgetModelFromDomain(b *finance.Budget) *BudgetModel {
	m := &BudgetModel{}
	m.FromDomain(b)
	return m
}

// FeeBillModel is the persistence model for the FeeBill aggregate root.
type FeeBillModel struct {
	AggregateModel
	BillNumber   string                `gorm:"type:varchar(50);not null;uniqueIndex"`
	StudentID    uuid.UUID             `gorm:"type:uuid;not null;index"`
	AcademicYear string                `gorm:"type:varchar(10);not null;index"`
	PostingDate  time.Time             `gorm:"not null"`
	DueDate      time.Time             `gorm:"index"`
	Items        []FeeItemModel        `gorm:"foreignKey:FeeBillID;references:ID"`
	TotalAmount  decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	PaidAmount   decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	Outstanding  decimal.Decimal       `gorm:"type:decimal(18,2);not null;index"`
	Status       finance.FeeBillStatus `gorm:"type:varchar(20);not null;index"`
	SubmittedAt  *time.Time
	CancelledAt  *time.Time
	Remark       string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (FeeBillModel) TableName() string {
	return "fee_bills"
}

// FeeItemModel is the persistence model for one fee line.
type FeeItemModel struct {
	BaseModel
	FeeBillID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	FeeType     string          `gorm:"type:varchar(50);not null"`
	Description string          `gorm:"type:varchar(500)"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (FeeItemModel) TableName() string {
	return "fee_items"
}

// ToDomain converts the persistence model to a domain FeeBill entity.
func (m *FeeBillModel) ToDomain() *finance.FeeBill {
	items := make([]finance.FeeItem, len(m.Items))
	for i, it := range m.Items {
		items[i] = finance.FeeItem{
			BaseEntity:  it.BaseModel.ToDomain(),
			FeeBillID:   it.FeeBillID,
			FeeType:     it.FeeType,
			Description: it.Description,
			Amount:      it.Amount,
		}
	}
	return &finance.FeeBill{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		BillNumber:        m.BillNumber,
		StudentID:         m.StudentID,
		AcademicYear:      m.AcademicYear,
		PostingDate:       m.PostingDate,
		DueDate:           m.DueDate,
		Items:             items,
		TotalAmount:       m.TotalAmount,
		PaidAmount:        m.PaidAmount,
		Outstanding:       m.Outstanding,
		Status:            m.Status,
		SubmittedAt:       m.SubmittedAt,
		CancelledAt:       m.CancelledAt,
		Remark:            m.Remark,
	}
}

// FromDomain populates the persistence model from a domain FeeBill entity.
func (m *FeeBillModel) FromDomain(b *finance.FeeBill) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.BillNumber = b.BillNumber
	m.StudentID = b.StudentID
	m.AcademicYear = b.AcademicYear
	m.PostingDate = b.PostingDate
	m.DueDate = b.DueDate
	m.TotalAmount = b.TotalAmount
	m.PaidAmount = b.PaidAmount
	m.Outstanding = b.Outstanding
	m.Status = b.Status
	m.SubmittedAt = b.SubmittedAt
	m.CancelledAt = b.CancelledAt
	m.Remark = b.Remark
	m.Items = make([]FeeItemModel, len(b.Items))
	for i, it := range b.Items {
		item := FeeItemModel{
			FeeBillID:   it.FeeBillID,
			FeeType:     it.FeeType,
			Description: it.Description,
			Amount:      it.Amount,
		}
		item.FromDomainBaseEntity(it.BaseEntity)
		m.Items[i] = item
	}
}

// FeeBillModelFromDomain creates a new persistence model from a domain FeeBill.
func FeeBillModelFromDomain(b *finance.FeeBill) *FeeBillModel {
	m := &FeeBillModel{}
	m.FromDomain(b)
	return m
}

// PaymentEntryModel is the persistence model for the PaymentEntry aggregate root.
type PaymentEntryModel struct {
	AggregateModel
	PaymentNumber string                     `gorm:"type:varchar(50);not null;uniqueIndex"`
	FeeBillID     uuid.UUID                  `gorm:"type:uuid;not null;index"`
	StudentID     uuid.UUID                  `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal            `gorm:"type:decimal(18,2);not null"`
	Method        finance.PaymentMethod      `gorm:"type:varchar(20);not null"`
	Reference     string                     `gorm:"type:varchar(100)"`
	PaymentDate   time.Time                  `gorm:"not null;index"`
	Status        finance.PaymentEntryStatus `gorm:"type:varchar(10);not null;index"`
	ReceivedBy    uuid.UUID                  `gorm:"type:uuid;not null"`
	SubmittedAt   *time.Time
	CancelledAt   *time.Time
}

// TableName returns the table name for GORM
func (PaymentEntryModel) TableName() string {
	return "payment_entries"
}

// ToDomain converts the persistence model to a domain PaymentEntry entity.
func (m *PaymentEntryModel) ToDomain() *finance.PaymentEntry {
	return &finance.PaymentEntry{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		PaymentNumber:     m.PaymentNumber,
		FeeBillID:         m.FeeBillID,
		StudentID:         m.StudentID,
		Amount:            m.Amount,
		Method:            m.Method,
		Reference:         m.Reference,
		PaymentDate:       m.PaymentDate,
		Status:            m.Status,
		ReceivedBy:        m.ReceivedBy,
		SubmittedAt:       m.SubmittedAt,
		CancelledAt:       m.CancelledAt,
	}
}

// FromDomain populates the persistence model from a domain PaymentEntry entity.
func (m *PaymentEntryModel) FromDomain(p *finance.PaymentEntry) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.PaymentNumber = p.PaymentNumber
	m.FeeBillID = p.FeeBillID
	m.StudentID = p.StudentID
	m.Amount = p.Amount
	m.Method = p.Method
	m.Reference = p.Reference
	m.PaymentDate = p.PaymentDate
	m.Status = p.Status
	m.ReceivedBy = p.ReceivedBy
	m.SubmittedAt = p.SubmittedAt
	m.CancelledAt = p.CancelledAt
}

// PaymentEntryModelFromDomain creates a new persistence model from a domain PaymentEntry.
func PaymentEntryModelFromDomain(p *finance.PaymentEntry) *PaymentEntryModel {
	m := &PaymentEntryModel{}
	m.FromDomain(p)
	return m
}

// LedgerEntryModel is the persistence model for an append-only ledger entry.
type LedgerEntryModel struct {
	BaseModel
	PostingDate   time.Time                   `gorm:"not null;index"`
	Account       string                      `gorm:"type:varchar(100);not null;index"`
	StudentID     *uuid.UUID                  `gorm:"type:uuid;index"`
	ReferenceType finance.LedgerReferenceType `gorm:"type:varchar(20);not null;index:idx_ledger_reference,priority:1"`
	ReferenceID   uuid.UUID                   `gorm:"type:uuid;not null;index:idx_ledger_reference,priority:2"`
	Debit         decimal.Decimal             `gorm:"type:decimal(18,2);not null"`
	Credit        decimal.Decimal             `gorm:"type:decimal(18,2);not null"`
	Description   string                      `gorm:"type:varchar(500)"`
	IsReversal    bool                        `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}

// ToDomain converts the persistence model to a domain LedgerEntry entity.
func (m *LedgerEntryModel) ToDomain() *finance.LedgerEntry {
	return &finance.LedgerEntry{
		BaseEntity:    m.BaseModel.ToDomain(),
		PostingDate:   m.PostingDate,
		Account:       m.Account,
		StudentID:     m.StudentID,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		Debit:         m.Debit,
		Credit:        m.Credit,
		Description:   m.Description,
		IsReversal:    m.IsReversal,
	}
}

// LedgerEntryModelFromDomain creates a new persistence model from a domain LedgerEntry.
func LedgerEntryModelFromDomain(e *finance.LedgerEntry) *LedgerEntryModel {
	m := &LedgerEntryModel{
		PostingDate:   e.PostingDate,
		Account:       e.Account,
		StudentID:     e.StudentID,
		ReferenceType: e.ReferenceType,
		ReferenceID:   e.ReferenceID,
		Debit:         e.Debit,
		Credit:        e.Credit,
		Description:   e.Description,
		IsReversal:    e.IsReversal,
	}
	m.FromDomainBaseEntity(e.BaseEntity)
	return m
}
