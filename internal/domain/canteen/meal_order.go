package canteen

import (
	"fmt"
	"time"

	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle of a meal order
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "DRAFT"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusServed    OrderStatus = "SERVED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusConfirmed, OrderStatusServed, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// OrderPaymentStatus tracks whether the order has been paid
type OrderPaymentStatus string

const (
	OrderPaymentUnpaid OrderPaymentStatus = "UNPAID"
	OrderPaymentPaid   OrderPaymentStatus = "PAID"
)

// MealOrder represents one student's order against a canteen menu.
// final = quantity × price − discount; discount never exceeds the total.
type MealOrder struct {
	shared.BaseAggregateRoot
	MenuID              uuid.UUID          `json:"menu_id"`
	StudentID           uuid.UUID          `json:"student_id"`
	MenuDate            time.Time          `json:"menu_date"`
	Quantity            int                `json:"quantity"`
	PricePerMeal        decimal.Decimal    `json:"price_per_meal"`
	DiscountAmount      decimal.Decimal    `json:"discount_amount"`
	TotalAmount         decimal.Decimal    `json:"total_amount"`
	FinalAmount         decimal.Decimal    `json:"final_amount"`
	DietaryRequirements string             `json:"dietary_requirements"`
	LateOrder           bool               `json:"late_order"`
	Status              OrderStatus        `json:"status"`
	PaymentStatus       OrderPaymentStatus `json:"payment_status"`
	OrderedAt           time.Time          `json:"ordered_at"`
	ConfirmedAt         *time.Time         `json:"confirmed_at"`
	ServedAt            *time.Time         `json:"served_at"`
	CancelledAt         *time.Time         `json:"cancelled_at"`
	CancelReason        string             `json:"cancel_reason"`
}

// NewMealOrder creates a draft order against a menu
func NewMealOrder(menu *Menu, studentID uuid.UUID, quantity int, discount decimal.Decimal) (*MealOrder, error) {
	if menu == nil {
		return nil, shared.NewDomainError("INVALID_MENU", "Menu is required")
	}
	if !menu.IsActive {
		return nil, shared.NewDomainError("INACTIVE_MENU", "Selected menu is not active")
	}
	if studentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STUDENT", "Student is required")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if quantity > menu.RemainingServings() {
		return nil, shared.NewDomainError("INSUFFICIENT_SERVINGS", "Not enough servings remaining on this menu")
	}
	if discount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}

	order := &MealOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		MenuID:            menu.ID,
		StudentID:         studentID,
		MenuDate:          menu.MenuDate,
		Quantity:          quantity,
		PricePerMeal:      menu.PricePerMeal,
		DiscountAmount:    discount,
		Status:            OrderStatusDraft,
		PaymentStatus:     OrderPaymentUnpaid,
		OrderedAt:         time.Now(),
	}
	if err := order.recalcAmounts(); err != nil {
		return nil, err
	}
	return order, nil
}

// MarkLate flags the order as placed after the cutoff; it may still be
// fulfilled at the canteen's discretion
func (o *MealOrder) MarkLate() {
	o.LateOrder = true
	o.Touch()
}

// SetDietaryRequirements records per-order dietary requirements
func (o *MealOrder) SetDietaryRequirements(requirements string) {
	o.DietaryRequirements = requirements
	o.Touch()
}

// Confirm moves the order out of draft; the caller reserves menu servings
func (o *MealOrder) Confirm() error {
	if o.Status != OrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm order in %s status", o.Status))
	}
	now := time.Now()
	o.Status = OrderStatusConfirmed
	o.ConfirmedAt = &now
	o.Touch()
	return nil
}

// MarkPaid records payment of the order
func (o *MealOrder) MarkPaid() error {
	if o.PaymentStatus == OrderPaymentPaid {
		return shared.NewDomainError("ALREADY_PAID", "Order is already paid")
	}
	o.PaymentStatus = OrderPaymentPaid
	o.Touch()
	return nil
}

// MarkServed completes a confirmed order on the serving day
func (o *MealOrder) MarkServed() error {
	if o.Status != OrderStatusConfirmed {
		return shared.NewDomainError("INVALID_STATE", "Only confirmed orders can be served")
	}
	now := time.Now()
	o.Status = OrderStatusServed
	o.ServedAt = &now
	o.Touch()
	return nil
}

// Cancel voids the order before its serving date; the caller releases the
// reserved servings for confirmed orders
func (o *MealOrder) Cancel(reason string, asOf time.Time) error {
	if o.Status != OrderStatusDraft && o.Status != OrderStatusConfirmed {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}
	if !dayOf(asOf).Before(o.MenuDate) {
		return shared.NewDomainError("TOO_LATE", "Orders can only be cancelled before the serving date")
	}
	now := time.Now()
	o.Status = OrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.Touch()
	return nil
}

func (o *MealOrder) recalcAmounts() error {
	o.TotalAmount = o.PricePerMeal.Mul(decimal.NewFromInt(int64(o.Quantity)))
	if o.DiscountAmount.GreaterThan(o.TotalAmount) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot exceed the order total")
	}
	o.FinalAmount = o.TotalAmount.Sub(o.DiscountAmount)
	return nil
}

// OrderFilter defines filtering options for meal order queries
type OrderFilter struct {
	StudentID *uuid.UUID
	MenuID    *uuid.UUID
	Status    OrderStatus
	FromDate  *time.Time
	ToDate    *time.Time
	Page      int
	PageSize  int
}
