package models

import (
	"time"

	"github.com/easygo-schools/backend/internal/domain/hr"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmployeeModel is the persistence model for the Employee aggregate root.
type EmployeeModel struct {
	AggregateModel
	EmployeeNumber string                 `gorm:"type:varchar(20);not null;uniqueIndex"`
	UserID         *uuid.UUID             `gorm:"type:uuid;index"`
	FirstName      string                 `gorm:"type:varchar(100);not null"`
	LastName       string                 `gorm:"type:varchar(100);not null"`
	Email          string                 `gorm:"type:varchar(200)"`
	Designation    string                 `gorm:"type:varchar(100)"`
	JoiningDate    time.Time              `gorm:"not null"`
	RelievingDate  *time.Time
	Status         hr.EmployeeStatus      `gorm:"type:varchar(10);not null;index"`
	BasicSalary    decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	Components     []SalaryComponentModel `gorm:"foreignKey:EmployeeID;references:ID"`
}

// TableName returns the table name for GORM
func (EmployeeModel) TableName() string {
	return "employees"
}

// SalaryComponentModel is the persistence model for a salary structure component.
type SalaryComponentModel struct {
	BaseModel
	EmployeeID     uuid.UUID        `gorm:"type:uuid;not null;index"`
	Name           string           `gorm:"type:varchar(100);not null"`
	Kind           hr.ComponentKind `gorm:"type:varchar(10);not null"`
	FixedAmount    decimal.Decimal  `gorm:"type:decimal(18,2);not null"`
	PercentOfBasic decimal.Decimal  `gorm:"type:decimal(5,2);not null"`
}

// TableName returns the table name for GORM
func (SalaryComponentModel) TableName() string {
	return "salary_components"
}

// ToDomain converts the persistence model to a domain Employee entity.
func (m *EmployeeModel) ToDomain() *hr.Employee {
	components := make([]hr.SalaryComponent, len(m.Components))
	for i, c := range m.Components {
		components[i] = hr.SalaryComponent{
			BaseEntity:     c.BaseModel.ToDomain(),
			EmployeeID:     c.EmployeeID,
			Name:           c.Name,
			Kind:           c.Kind,
			FixedAmount:    c.FixedAmount,
			PercentOfBasic: c.PercentOfBasic,
		}
	}
	return &hr.Employee{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		EmployeeNumber:    m.EmployeeNumber,
		UserID:            m.UserID,
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		Email:             m.Email,
		Designation:       m.Designation,
		JoiningDate:       m.JoiningDate,
		RelievingDate:     m.RelievingDate,
		Status:            m.Status,
		BasicSalary:       m.BasicSalary,
		Components:        components,
	}
}

// FromDomain populates the persistence model from a domain Employee entity.
func (m *EmployeeModel) FromDomain(e *hr.Employee) {
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	m.EmployeeNumber = e.EmployeeNumber
	m.UserID = e.UserID
	m.FirstName = e.FirstName
	m.LastName = e.LastName
	m.Email = e.Email
	m.Designation = e.Designation
	m.JoiningDate = e.JoiningDate
	m.RelievingDate = e.RelievingDate
	m.Status = e.Status
	m.BasicSalary = e.BasicSalary
	m.Components = make([]SalaryComponentModel, len(e.Components))
	for i, c := range e.Components {
		component := SalaryComponentModel{
			EmployeeID:     c.EmployeeID,
			Name:           c.Name,
			Kind:           c.Kind,
			FixedAmount:    c.FixedAmount,
			PercentOfBasic: c.PercentOfBasic,
		}
		component.FromDomainBaseEntity(c.BaseEntity)
		m.Components[i] = component
	}
}

// EmployeeModelFromDomain creates a new persistence model from a domain Employee.
func EmployeeModelFromDomain(e *hr.Employee) *EmployeeModel {
	m := &EmployeeModel{}
	m.FromDomain(e)
	return m
}

// SalarySlipModel is the persistence model for the SalarySlip aggregate root.
type SalarySlipModel struct {
	AggregateModel
	EmployeeID      uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex:idx_slip_employee_period,priority:1"`
	PayPeriod       string               `gorm:"type:varchar(7);not null;uniqueIndex:idx_slip_employee_period,priority:2;index"`
	BasicSalary     decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	Components      []SlipComponentModel `gorm:"foreignKey:SalarySlipID;references:ID"`
	GrossSalary     decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	TotalDeductions decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	NetSalary       decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	WorkingDays     int                  `gorm:"not null;default:0"`
	PresentDays     int                  `gorm:"not null;default:0"`
	LeaveDays       int                  `gorm:"not null;default:0"`
	AbsentDays      int                  `gorm:"not null;default:0"`
	Status          hr.SalarySlipStatus  `gorm:"type:varchar(10);not null;index"`
	ProcessedAt     *time.Time
	ProcessedBy     *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (SalarySlipModel) TableName() string {
	return "salary_slips"
}

// SlipComponentModel is the persistence model for one computed slip line.
type SlipComponentModel struct {
	BaseModel
	SalarySlipID uuid.UUID        `gorm:"type:uuid;not null;index"`
	Name         string           `gorm:"type:varchar(100);not null"`
	Kind         hr.ComponentKind `gorm:"type:varchar(10);not null"`
	Amount       decimal.Decimal  `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (SlipComponentModel) TableName() string {
	return "slip_components"
}

// ToDomain converts the persistence model to a domain SalarySlip entity.
func (m *SalarySlipModel) ToDomain() *hr.SalarySlip {
	components := make([]hr.SlipComponent, len(m.Components))
	for i, c := range m.Components {
		components[i] = hr.SlipComponent{
			BaseEntity:   c.BaseModel.ToDomain(),
			SalarySlipID: c.SalarySlipID,
			Name:         c.Name,
			Kind:         c.Kind,
			Amount:       c.Amount,
		}
	}
	return &hr.SalarySlip{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		EmployeeID:        m.EmployeeID,
		PayPeriod:         m.PayPeriod,
		BasicSalary:       m.BasicSalary,
		Components:        components,
		GrossSalary:       m.GrossSalary,
		TotalDeductions:   m.TotalDeductions,
		NetSalary:         m.NetSalary,
		WorkingDays:       m.WorkingDays,
		PresentDays:       m.PresentDays,
		LeaveDays:         m.LeaveDays,
		AbsentDays:        m.AbsentDays,
		Status:            m.Status,
		ProcessedAt:       m.ProcessedAt,
		ProcessedBy:       m.ProcessedBy,
	}
}

// FromDomain populates the persistence model from a domain SalarySlip entity.
func (m *SalarySlipModel) FromDomain(s *hr.SalarySlip) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.EmployeeID = s.EmployeeID
	m.PayPeriod = s.PayPeriod
	m.BasicSalary = s.BasicSalary
	m.GrossSalary = s.GrossSalary
	m.TotalDeductions = s.TotalDeductions
	m.NetSalary = s.NetSalary
	m.WorkingDays = s.WorkingDays
	m.PresentDays = s.PresentDays
	m.LeaveDays = s.LeaveDays
	m.AbsentDays = s.AbsentDays
	m.Status = s.Status
	m.ProcessedAt = s.ProcessedAt
	m.ProcessedBy = s.ProcessedBy
	m.Components = make([]SlipComponentModel, len(s.Components))
	for i, c := range s.Components {
		component := SlipComponentModel{
			SalarySlipID: c.SalarySlipID,
			Name:         c.Name,
			Kind:         c.Kind,
			Amount:       c.Amount,
		}
		component.FromDomainBaseEntity(c.BaseEntity)
		m.Components[i] = component
	}
}

// SalarySlipModelFromDomain creates a new persistence model from a domain SalarySlip.
func SalarySlipModelFromDomain(s *hr.SalarySlip) *SalarySlipModel {
	m := &SalarySlipModel{}
	m.FromDomain(s)
	return m
}

// LeaveApplicationModel is the persistence model for the LeaveApplication aggregate root.
type LeaveApplicationModel struct {
	AggregateModel
	EmployeeID uuid.UUID      `gorm:"type:uuid;not null;index"`
	LeaveType  hr.LeaveType   `gorm:"type:varchar(10);not null"`
	FromDate   time.Time      `gorm:"not null;index"`
	ToDate     time.Time      `gorm:"not null"`
	TotalDays  int            `gorm:"not null"`
	Reason     string         `gorm:"type:varchar(500);not null"`
	Status     hr.LeaveStatus `gorm:"type:varchar(10);not null;index"`
	ReviewedBy *uuid.UUID     `gorm:"type:uuid"`
	ReviewedAt *time.Time
	ReviewNote string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (LeaveApplicationModel) TableName() string {
	return "leave_applications"
}

// ToDomain converts the persistence model to a domain LeaveApplication entity.
func (m *LeaveApplicationModel) ToDomain() *hr.LeaveApplication {
	return &hr.LeaveApplication{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		EmployeeID:        m.EmployeeID,
		LeaveType:         m.LeaveType,
		FromDate:          m.FromDate,
		ToDate:            m.ToDate,
		TotalDays:         m.TotalDays,
		Reason:            m.Reason,
		Status:            m.Status,
		ReviewedBy:        m.ReviewedBy,
		ReviewedAt:        m.ReviewedAt,
		ReviewNote:        m.ReviewNote,
	}
}

// FromDomain populates the persistence model from a domain LeaveApplication entity.
func (m *LeaveApplicationModel) FromDomain(l *hr.LeaveApplication) {
	m.FromDomainAggregateRoot(l.BaseAggregateRoot)
	m.EmployeeID = l.EmployeeID
	m.LeaveType = l.LeaveType
	m.FromDate = l.FromDate
	m.ToDate = l.ToDate
	m.TotalDays = l.TotalDays
	m.Reason = l.Reason
	m.Status = l.Status
	m.ReviewedBy = l.ReviewedBy
	m.ReviewedAt = l.ReviewedAt
	m.ReviewNote = l.ReviewNote
}

// LeaveApplicationModelFromDomain creates a new persistence model from a domain LeaveApplication.
func LeaveApplicationModelFromDomain(l *hr.LeaveApplication) *LeaveApplicationModel {
	m := &LeaveApplicationModel{}
	m.FromDomain(l)
	return m
}
