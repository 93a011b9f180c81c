package canteen

import (
	"context"
	"fmt"
	"time"

	"github.com/easygo-schools/backend/internal/domain/canteen"
	"github.com/easygo-schools/backend/internal/domain/schooling"
	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/easygo-schools/backend/internal/infrastructure/notify"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CanteenService handles menus and student meal orders
type CanteenService struct {
	menuRepo         canteen.MenuRepository
	orderRepo        canteen.OrderRepository
	studentRepo      schooling.StudentRepository
	notifier         *notify.Notifier
	servingHour      int
	orderCutoffHours int
	logger           *zap.Logger
}

// NewCanteenService creates a new canteen service. Orders placed within
// orderCutoffHours of the menu's serving time (servingHour on the menu
// date) are flagged late.
func NewCanteenService(
	menuRepo canteen.MenuRepository,
	orderRepo canteen.OrderRepository,
	studentRepo schooling.StudentRepository,
	notifier *notify.Notifier,
	servingHour int,
	orderCutoffHours int,
	logger *zap.Logger,
) *CanteenService {
	return &CanteenService{
		menuRepo:         menuRepo,
		orderRepo:        orderRepo,
		studentRepo:      studentRepo,
		notifier:         notifier,
		servingHour:      servingHour,
		orderCutoffHours: orderCutoffHours,
		logger:           logger,
	}
}

// CreateMenuRequest carries a new canteen menu
type CreateMenuRequest struct {
	MenuDate     time.Time       `json:"menu_date" binding:"required"`
	MealType     string          `json:"meal_type" binding:"required"`
	Description  string          `json:"description" binding:"required"`
	PricePerMeal decimal.Decimal `json:"price_per_meal" binding:"required"`
	MaxServings  int             `json:"max_servings" binding:"required"`
}

// CreateMenu publishes a menu for a date and meal type. One menu per
// (date, meal type).
func (s *CanteenService) CreateMenu(ctx context.Context, req CreateMenuRequest) (*canteen.Menu, error) {
	menu, err := canteen.NewMenu(req.MenuDate, canteen.MealType(req.MealType), req.Description, req.PricePerMeal, req.MaxServings)
	if err != nil {
		return nil, err
	}

	existing, err := s.menuRepo.FindByDateAndType(ctx, menu.MenuDate, menu.MealType)
	if err != nil && err != shared.ErrNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A menu for this date and meal type already exists")
	}

	if err := s.menuRepo.Create(ctx, menu); err != nil {
		return nil, err
	}
	s.logger.Info("menu created",
		zap.Time("menu_date", menu.MenuDate),
		zap.String("meal_type", menu.MealType.String()),
		zap.Int("max_servings", menu.MaxServings),
	)
	return menu, nil
}

// SetMenuActive opens or closes a menu for new orders
func (s *CanteenService) SetMenuActive(ctx context.Context, id uuid.UUID, active bool) (*canteen.Menu, error) {
	menu, err := s.menuRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if active {
		menu.Activate()
	} else {
		menu.Deactivate()
	}
	if err := s.menuRepo.Update(ctx, menu); err != nil {
		return nil, err
	}
	return menu, nil
}

// GetMenu fetches one menu by ID
func (s *CanteenService) GetMenu(ctx context.Context, id uuid.UUID) (*canteen.Menu, error) {
	return s.menuRepo.FindByID(ctx, id)
}

// ListMenus returns menus matching the filter
func (s *CanteenService) ListMenus(ctx context.Context, filter canteen.MenuFilter) ([]*canteen.Menu, int64, error) {
	return s.menuRepo.FindAll(ctx, filter)
}

// PlaceOrderRequest carries one meal order
type PlaceOrderRequest struct {
	MenuID              uuid.UUID       `json:"menu_id" binding:"required"`
	StudentID           uuid.UUID       `json:"student_id" binding:"required"`
	Quantity            int             `json:"quantity" binding:"required"`
	DiscountAmount      decimal.Decimal `json:"discount_amount"`
	DietaryRequirements string          `json:"dietary_requirements"`
}

// PlaceOrder drafts a meal order against a menu. One active order per
// (student, menu); orders placed inside the cutoff window before serving
// time are flagged late. The student's recorded dietary restrictions are
// carried onto the order unless the request overrides them.
func (s *CanteenService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*canteen.MealOrder, error) {
	menu, err := s.menuRepo.FindByID(ctx, req.MenuID)
	if err != nil {
		return nil, err
	}
	student, err := s.studentRepo.FindByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	exists, err := s.orderRepo.ExistsForMenu(ctx, req.StudentID, req.MenuID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Student already has an order for this menu")
	}

	order, err := canteen.NewMealOrder(menu, req.StudentID, req.Quantity, req.DiscountAmount)
	if err != nil {
		return nil, err
	}
	cutoff := menu.MenuDate.Add(time.Duration(s.servingHour-s.orderCutoffHours) * time.Hour)
	if !order.OrderedAt.Before(cutoff) {
		order.MarkLate()
	}
	requirements := req.DietaryRequirements
	if requirements == "" {
		requirements = student.DietaryRestrictions
	}
	if requirements != "" {
		order.SetDietaryRequirements(requirements)
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	s.logger.Info("meal order placed",
		zap.String("massar_code", student.MassarCode),
		zap.Time("menu_date", menu.MenuDate),
		zap.Bool("late", order.LateOrder),
	)
	return order, nil
}

// ConfirmOrder reserves the menu servings and confirms the order. The menu
// update carries an optimistic version check, so two racing confirmations
// cannot oversell the last servings.
func (s *CanteenService) ConfirmOrder(ctx context.Context, id uuid.UUID) (*canteen.MealOrder, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	menu, err := s.menuRepo.FindByID(ctx, order.MenuID)
	if err != nil {
		return nil, err
	}

	if err := menu.ReserveServings(order.Quantity); err != nil {
		return nil, err
	}
	if err := s.menuRepo.Update(ctx, menu); err != nil {
		return nil, err
	}

	if err := order.Confirm(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	s.notifyOrder(ctx, order, menu)
	return order, nil
}

// CancelOrderRequest carries the cancellation reason
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// CancelOrder voids an order before the serving date, releasing any
// reserved servings.
func (s *CanteenService) CancelOrder(ctx context.Context, id uuid.UUID, req CancelOrderRequest) (*canteen.MealOrder, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	wasConfirmed := order.Status == canteen.OrderStatusConfirmed
	if err := order.Cancel(req.Reason, time.Now()); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	if wasConfirmed {
		menu, err := s.menuRepo.FindByID(ctx, order.MenuID)
		if err != nil {
			return nil, err
		}
		menu.ReleaseServings(order.Quantity)
		if err := s.menuRepo.Update(ctx, menu); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// MarkOrderServed completes a confirmed order on the serving day
func (s *CanteenService) MarkOrderServed(ctx context.Context, id uuid.UUID) (*canteen.MealOrder, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.MarkServed(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// MarkOrderPaid records payment of an order
func (s *CanteenService) MarkOrderPaid(ctx context.Context, id uuid.UUID) (*canteen.MealOrder, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.MarkPaid(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrder fetches one meal order by ID
func (s *CanteenService) GetOrder(ctx context.Context, id uuid.UUID) (*canteen.MealOrder, error) {
	return s.orderRepo.FindByID(ctx, id)
}

// ListOrders returns meal orders matching the filter
func (s *CanteenService) ListOrders(ctx context.Context, filter canteen.OrderFilter) ([]*canteen.MealOrder, int64, error) {
	return s.orderRepo.FindAll(ctx, filter)
}

func (s *CanteenService) notifyOrder(ctx context.Context, order *canteen.MealOrder, menu *canteen.Menu) {
	student, err := s.studentRepo.FindByID(ctx, order.StudentID)
	if err != nil {
		s.logger.Error("looking up ordering student", zap.Error(err))
		return
	}
	if !student.Guardian.HasEmail() {
		return
	}
	subject := fmt.Sprintf("Meal order confirmed for %s", menu.MenuDate.Format("2006-01-02"))
	body := fmt.Sprintf(
		"Dear %s,\n\nThe %s order for %s on %s is confirmed. Amount due: %s MAD.",
		student.Guardian.Name, menu.MealType, student.FullName(),
		menu.MenuDate.Format("2006-01-02"), order.FinalAmount.StringFixed(2),
	)
	s.notifier.SendEmail(ctx, student.Guardian.Email, subject, body, "MEAL_ORDER", &order.ID)
}
