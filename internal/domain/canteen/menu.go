package canteen

import (
	"time"

	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MealType classifies the meal a menu serves
type MealType string

const (
	MealTypeBreakfast MealType = "BREAKFAST"
	MealTypeLunch     MealType = "LUNCH"
	MealTypeSnack     MealType = "SNACK"
)

// IsValid checks if the type is a valid MealType
func (t MealType) IsValid() bool {
	switch t {
	case MealTypeBreakfast, MealTypeLunch, MealTypeSnack:
		return true
	}
	return false
}

// String returns the string representation of MealType
func (t MealType) String() string {
	return string(t)
}

// Menu represents one canteen menu for a date and meal type.
// Servings are a hard capacity: confirmed orders consume them and
// cancellations restore them.
type Menu struct {
	shared.BaseAggregateRoot
	MenuDate     time.Time       `json:"menu_date"`
	MealType     MealType        `json:"meal_type"`
	Description  string          `json:"description"`
	PricePerMeal decimal.Decimal `json:"price_per_meal"`
	MaxServings  int             `json:"max_servings"`
	OrderedCount int             `json:"ordered_count"`
	IsActive     bool            `json:"is_active"`
}

// NewMenu creates an active canteen menu
func NewMenu(menuDate time.Time, mealType MealType, description string, pricePerMeal decimal.Decimal, maxServings int) (*Menu, error) {
	if !mealType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MEAL_TYPE", "Meal type is not valid")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Menu description is required")
	}
	if pricePerMeal.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price per meal must be positive")
	}
	if maxServings <= 0 {
		return nil, shared.NewDomainError("INVALID_SERVINGS", "Max servings must be positive")
	}

	return &Menu{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		MenuDate:          dayOf(menuDate),
		MealType:          mealType,
		Description:       description,
		PricePerMeal:      pricePerMeal,
		MaxServings:       maxServings,
		IsActive:          true,
	}, nil
}

// RemainingServings returns how many more orders the menu can take
func (m *Menu) RemainingServings() int {
	remaining := m.MaxServings - m.OrderedCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ReserveServings consumes servings for a confirmed order
func (m *Menu) ReserveServings(quantity int) error {
	if !m.IsActive {
		return shared.NewDomainError("INACTIVE_MENU", "Menu is not active")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if quantity > m.RemainingServings() {
		return shared.NewDomainError("INSUFFICIENT_SERVINGS", "Not enough servings remaining")
	}
	m.OrderedCount += quantity
	m.Touch()
	return nil
}

// ReleaseServings restores servings after an order cancellation
func (m *Menu) ReleaseServings(quantity int) {
	if quantity <= 0 {
		return
	}
	m.OrderedCount -= quantity
	if m.OrderedCount < 0 {
		m.OrderedCount = 0
	}
	m.Touch()
}

// Deactivate closes the menu for new orders
func (m *Menu) Deactivate() {
	m.IsActive = false
	m.Touch()
}

// Activate reopens the menu for orders
func (m *Menu) Activate() {
	m.IsActive = true
	m.Touch()
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// MenuFilter defines filtering options for menu list queries
type MenuFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	MealType   MealType
	ActiveOnly bool
	Page       int
	PageSize   int
}
