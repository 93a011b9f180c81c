package models

import (
	"time"

	"github.com/easygo-schools/backend/internal/domain/canteen"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuModel is the persistence model for the Menu aggregate root.
type MenuModel struct {
	AggregateModel
	MenuDate     time.Time        `gorm:"not null;uniqueIndex:idx_menu_date_type,priority:1"`
	MealType     canteen.MealType `gorm:"type:varchar(10);not null;uniqueIndex:idx_menu_date_type,priority:2"`
	Description  string           `gorm:"type:text;not null"`
	PricePerMeal decimal.Decimal  `gorm:"type:decimal(18,2);not null"`
	MaxServings  int              `gorm:"not null"`
	OrderedCount int              `gorm:"not null;default:0"`
	IsActive     bool             `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (MenuModel) TableName() string {
	return "canteen_menus"
}

// ToDomain converts the persistence model to a domain Menu entity.
func (m *MenuModel) ToDomain() *canteen.Menu {
	return &canteen.Menu{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		MenuDate:          m.MenuDate,
		MealType:          m.MealType,
		Description:       m.Description,
		PricePerMeal:      m.PricePerMeal,
		MaxServings:       m.MaxServings,
		OrderedCount:      m.OrderedCount,
		IsActive:          m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Menu entity.
func (m *MenuModel) FromDomain(menu *canteen.Menu) {
	m.FromDomainAggregateRoot(menu.BaseAggregateRoot)
	m.MenuDate = menu.MenuDate
	m.MealType = menu.MealType
	m.Description = menu.Description
	m.PricePerMeal = menu.PricePerMeal
	m.MaxServings = menu.MaxServings
	m.OrderedCount = menu.OrderedCount
	m.IsActive = menu.IsActive
}

// MenuModelFromDomain creates a new persistence model from a domain Menu.
func MenuModelFromDomain(menu *canteen.Menu) *MenuModel {
	m := &MenuModel{}
	m.FromDomain(menu)
	return m
}

// MealOrderModel is the persistence model for the MealOrder aggregate root.
type MealOrderModel struct {
	AggregateModel
	MenuID              uuid.UUID                  `gorm:"type:uuid;not null;index:idx_order_menu_student,priority:1"`
	StudentID           uuid.UUID                  `gorm:"type:uuid;not null;index:idx_order_menu_student,priority:2;index"`
	MenuDate            time.Time                  `gorm:"not null;index"`
	Quantity            int                        `gorm:"not null"`
	PricePerMeal        decimal.Decimal            `gorm:"type:decimal(18,2);not null"`
	DiscountAmount      decimal.Decimal            `gorm:"type:decimal(18,2);not null"`
	TotalAmount         decimal.Decimal            `gorm:"type:decimal(18,2);not null"`
	FinalAmount         decimal.Decimal            `gorm:"type:decimal(18,2);not null"`
	DietaryRequirements string                     `gorm:"type:varchar(500)"`
	LateOrder           bool                       `gorm:"not null;default:false"`
	Status              canteen.OrderStatus        `gorm:"type:varchar(10);not null;index"`
	PaymentStatus       canteen.OrderPaymentStatus `gorm:"type:varchar(10);not null"`
	OrderedAt           time.Time                  `gorm:"not null"`
	ConfirmedAt         *time.Time
	ServedAt            *time.Time
	CancelledAt         *time.Time
	CancelReason        string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (MealOrderModel) TableName() string {
	return "meal_orders"
}

// ToDomain converts the persistence model to a domain MealOrder entity.
func (m *MealOrderModel) ToDomain() *canteen.MealOrder {
	return &canteen.MealOrder{
		BaseAggregateRoot:   m.ToDomainAggregateRoot(),
		MenuID:              m.MenuID,
		StudentID:           m.StudentID,
		MenuDate:            m.MenuDate,
		Quantity:            m.Quantity,
		PricePerMeal:        m.PricePerMeal,
		DiscountAmount:      m.DiscountAmount,
		TotalAmount:         m.TotalAmount,
		FinalAmount:         m.FinalAmount,
		DietaryRequirements: m.DietaryRequirements,
		LateOrder:           m.LateOrder,
		Status:              m.Status,
		PaymentStatus:       m.PaymentStatus,
		OrderedAt:           m.OrderedAt,
		ConfirmedAt:         m.ConfirmedAt,
		ServedAt:            m.ServedAt,
		CancelledAt:         m.CancelledAt,
		CancelReason:        m.CancelReason,
	}
}

// FromDomain populates the persistence model from a domain MealOrder entity.
func (m *MealOrderModel) FromDomain(o *canteen.MealOrder) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.MenuID = o.MenuID
	m.StudentID = o.StudentID
	m.MenuDate = o.MenuDate
	m.Quantity = o.Quantity
	m.PricePerMeal = o.PricePerMeal
	m.DiscountAmount = o.DiscountAmount
	m.TotalAmount = o.TotalAmount
	m.FinalAmount = o.FinalAmount
	m.DietaryRequirements = o.DietaryRequirements
	m.LateOrder = o.LateOrder
	m.Status = o.Status
	m.PaymentStatus = o.PaymentStatus
	m.OrderedAt = o.OrderedAt
	m.ConfirmedAt = o.ConfirmedAt
	m.ServedAt = o.ServedAt
	m.CancelledAt = o.CancelledAt
	m.CancelReason = o.CancelReason
}

// MealOrderModelFromDomain creates a new persistence model from a domain MealOrder.
func MealOrderModelFromDomain(o *canteen.MealOrder) *MealOrderModel {
	m := &MealOrderModel{}
	m.FromDomain(o)
	return m
}
