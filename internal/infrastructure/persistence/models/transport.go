package models

import (
	"time"

	"github.com/easygo-schools/backend/internal/domain/transport"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RouteModel is the persistence model for the Route aggregate root.
type RouteModel struct {
	AggregateModel
	RouteCode     string                `gorm:"type:varchar(20);not null;uniqueIndex"`
	RouteName     string                `gorm:"type:varchar(200);not null"`
	Capacity      int                   `gorm:"not null"`
	DepartureTime string                `gorm:"type:varchar(5);not null"`
	ReturnTime    string                `gorm:"type:varchar(5);not null"`
	MonthlyFee    decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	OperatingDays string                `gorm:"type:varchar(50)"`
	Status        transport.RouteStatus `gorm:"type:varchar(10);not null;index"`
	Stops         []StopModel           `gorm:"foreignKey:RouteID;references:ID"`
	Enrollments   []EnrollmentModel     `gorm:"foreignKey:RouteID;references:ID"`
}

// TableName returns the table name for GORM
func (RouteModel) TableName() string {
	return "transport_routes"
}

// StopModel is the persistence model for a pickup stop.
type StopModel struct {
	BaseModel
	RouteID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(200);not null"`
	PickupTime string    `gorm:"type:varchar(5);not null"`
	Sequence   int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StopModel) TableName() string {
	return "transport_stops"
}

// EnrollmentModel is the persistence model for a route enrollment.
type EnrollmentModel struct {
	BaseModel
	RouteID       uuid.UUID                  `gorm:"type:uuid;not null;index"`
	StudentID     uuid.UUID                  `gorm:"type:uuid;not null;index"`
	StopName      string                     `gorm:"type:varchar(200);not null"`
	MonthlyFee    decimal.Decimal            `gorm:"type:decimal(18,2);not null"`
	Status        transport.EnrollmentStatus `gorm:"type:varchar(10);not null;index"`
	EnrolledAt    time.Time                  `gorm:"not null"`
	RemovedAt     *time.Time
	RemovalReason string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (EnrollmentModel) TableName() string {
	return "transport_enrollments"
}

// ToDomain converts the persistence model to a domain Route entity.
func (m *RouteModel) ToDomain() *transport.Route {
	stops := make([]transport.Stop, len(m.Stops))
	for i, s := range m.Stops {
		stops[i] = transport.Stop{
			BaseEntity: s.BaseModel.ToDomain(),
			RouteID:    s.RouteID,
			Name:       s.Name,
			PickupTime: s.PickupTime,
			Sequence:   s.Sequence,
		}
	}
	enrollments := make([]transport.Enrollment, len(m.Enrollments))
	for i, e := range m.Enrollments {
		enrollments[i] = transport.Enrollment{
			BaseEntity:    e.BaseModel.ToDomain(),
			RouteID:       e.RouteID,
			StudentID:     e.StudentID,
			StopName:      e.StopName,
			MonthlyFee:    e.MonthlyFee,
			Status:        e.Status,
			EnrolledAt:    e.EnrolledAt,
			RemovedAt:     e.RemovedAt,
			RemovalReason: e.RemovalReason,
		}
	}
	return &transport.Route{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		RouteCode:         m.RouteCode,
		RouteName:         m.RouteName,
		Capacity:          m.Capacity,
		DepartureTime:     m.DepartureTime,
		ReturnTime:        m.ReturnTime,
		MonthlyFee:        m.MonthlyFee,
		OperatingDays:     m.OperatingDays,
		Status:            m.Status,
		Stops:             stops,
		Enrollments:       enrollments,
	}
}

// FromDomain populates the persistence model from a domain Route entity.
func (m *RouteModel) FromDomain(r *transport.Route) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.RouteCode = r.RouteCode
	m.RouteName = r.RouteName
	m.Capacity = r.Capacity
	m.DepartureTime = r.DepartureTime
	m.ReturnTime = r.ReturnTime
	m.MonthlyFee = r.MonthlyFee
	m.OperatingDays = r.OperatingDays
	m.Status = r.Status
	m.Stops = make([]StopModel, len(r.Stops))
	for i, s := range r.Stops {
		stop := StopModel{
			RouteID:    s.RouteID,
			Name:       s.Name,
			PickupTime: s.PickupTime,
			Sequence:   s.Sequence,
		}
		stop.FromDomainBaseEntity(s.BaseEntity)
		m.Stops[i] = stop
	}
	m.Enrollments = make([]EnrollmentModel, len(r.Enrollments))
	for i, e := range r.Enrollments {
		enrollment := EnrollmentModel{
			RouteID:       e.RouteID,
			StudentID:     e.StudentID,
			StopName:      e.StopName,
			MonthlyFee:    e.MonthlyFee,
			Status:        e.Status,
			EnrolledAt:    e.EnrolledAt,
			RemovedAt:     e.RemovedAt,
			RemovalReason: e.RemovalReason,
		}
		enrollment.FromDomainBaseEntity(e.BaseEntity)
		m.Enrollments[i] = enrollment
	}
}

// RouteModelFromDomain creates a new persistence model from a domain Route.
func RouteModelFromDomain(r *transport.Route) *RouteModel {
	m := &RouteModel{}
	m.FromDomain(r)
	return m
}
