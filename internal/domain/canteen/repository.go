package canteen

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MenuRepository defines persistence operations for canteen menus
type MenuRepository interface {
	Create(ctx context.Context, menu *Menu) error
	Update(ctx context.Context, menu *Menu) error
	FindByID(ctx context.Context, id uuid.UUID) (*Menu, error)
	FindByDateAndType(ctx context.Context, date time.Time, mealType MealType) (*Menu, error)
	FindAll(ctx context.Context, filter MenuFilter) ([]*Menu, int64, error)
}

// OrderRepository defines persistence operations for meal orders
type OrderRepository interface {
	Create(ctx context.Context, order *MealOrder) error
	Update(ctx context.Context, order *MealOrder) error
	FindByID(ctx context.Context, id uuid.UUID) (*MealOrder, error)
	FindAll(ctx context.Context, filter OrderFilter) ([]*MealOrder, int64, error)
	ExistsForMenu(ctx context.Context, studentID, menuID uuid.UUID) (bool, error)
}
