package canteen

import (
	"context"
	"testing"
	"time"

	"github.com/easygo-schools/backend/internal/domain/canteen"
	"github.com/easygo-schools/backend/internal/domain/comms"
	"github.com/easygo-schools/backend/internal/domain/schooling"
	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/easygo-schools/backend/internal/infrastructure/notify"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockMenuRepository is a testify mock of canteen.MenuRepository
type MockMenuRepository struct {
	mock.Mock
}

func (m *MockMenuRepository) Create(ctx context.Context, menu *canteen.Menu) error {
	args := m.Called(ctx, menu)
	return args.Error(0)
}

func (m *MockMenuRepository) Update(ctx context.Context, menu *canteen.Menu) error {
	args := m.Called(ctx, menu)
	return args.Error(0)
}

func (m *MockMenuRepository) FindByID(ctx context.Context, id uuid.UUID) (*canteen.Menu, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*canteen.Menu), args.Error(1)
}

func (m *MockMenuRepository) FindByDateAndType(ctx context.Context, date time.Time, mealType canteen.MealType) (*canteen.Menu, error) {
	args := m.Called(ctx, date, mealType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*canteen.Menu), args.Error(1)
}

func (m *MockMenuRepository) FindAll(ctx context.Context, filter canteen.MenuFilter) ([]*canteen.Menu, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*canteen.Menu), args.Get(1).(int64), args.Error(2)
}

// MockOrderRepository is a testify mock of canteen.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *canteen.MealOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, order *canteen.MealOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*canteen.MealOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*canteen.MealOrder), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter canteen.OrderFilter) ([]*canteen.MealOrder, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*canteen.MealOrder), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) ExistsForMenu(ctx context.Context, studentID, menuID uuid.UUID) (bool, error) {
	args := m.Called(ctx, studentID, menuID)
	return args.Bool(0), args.Error(1)
}

// MockStudentRepository is a testify mock of schooling.StudentRepository
type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) Create(ctx context.Context, student *schooling.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) Update(ctx context.Context, student *schooling.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) FindByID(ctx context.Context, id uuid.UUID) (*schooling.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schooling.Student), args.Error(1)
}

func (m *MockStudentRepository) FindByMassarCode(ctx context.Context, massarCode string) (*schooling.Student, error) {
	args := m.Called(ctx, massarCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schooling.Student), args.Error(1)
}

func (m *MockStudentRepository) FindAll(ctx context.Context, filter schooling.StudentFilter) ([]*schooling.Student, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*schooling.Student), args.Get(1).(int64), args.Error(2)
}

func (m *MockStudentRepository) FindByClass(ctx context.Context, schoolClass string) ([]*schooling.Student, error) {
	args := m.Called(ctx, schoolClass)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*schooling.Student), args.Error(1)
}

func (m *MockStudentRepository) ExistsByMassarCode(ctx context.Context, massarCode string) (bool, error) {
	args := m.Called(ctx, massarCode)
	return args.Bool(0), args.Error(1)
}

// MockLogRepository is a testify mock of comms.LogRepository
type MockLogRepository struct {
	mock.Mock
}

func (m *MockLogRepository) Append(ctx context.Context, entry *comms.LogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLogRepository) FindAll(ctx context.Context, filter comms.LogFilter) ([]*comms.LogEntry, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*comms.LogEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockLogRepository) CountByChannel(ctx context.Context, from, to time.Time) ([]comms.ChannelCount, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]comms.ChannelCount), args.Error(1)
}

var (
	_ canteen.MenuRepository      = (*MockMenuRepository)(nil)
	_ canteen.OrderRepository     = (*MockOrderRepository)(nil)
	_ schooling.StudentRepository = (*MockStudentRepository)(nil)
	_ comms.LogRepository         = (*MockLogRepository)(nil)
)

type canteenFixture struct {
	menus    *MockMenuRepository
	orders   *MockOrderRepository
	students *MockStudentRepository
	logs     *MockLogRepository
	svc      *CanteenService
}

func newCanteenFixture() *canteenFixture {
	return newCanteenFixtureWithCutoff(8, 2)
}

func newCanteenFixtureWithCutoff(servingHour, cutoffHours int) *canteenFixture {
	logger := zap.NewNop()
	f := &canteenFixture{
		menus:    new(MockMenuRepository),
		orders:   new(MockOrderRepository),
		students: new(MockStudentRepository),
		logs:     new(MockLogRepository),
	}
	notifier := notify.NewNotifier(
		notify.NewConsoleEmailSender(logger),
		notify.NewConsoleSMSSender(logger),
		f.logs, logger,
	)
	f.svc = NewCanteenService(f.menus, f.orders, f.students, notifier, servingHour, cutoffHours, logger)
	return f
}

func lunchMenu(t *testing.T) *canteen.Menu {
	menu, err := canteen.NewMenu(time.Now().AddDate(0, 0, 3), canteen.MealTypeLunch,
		"Couscous with vegetables", decimal.NewFromInt(25), 100)
	require.NoError(t, err)
	return menu
}

func orderingStudent(t *testing.T) *schooling.Student {
	student, err := schooling.NewStudent("G130001234", "Yassine", "Idrissi",
		time.Date(2014, 3, 12, 0, 0, 0, 0, time.UTC),
		schooling.Guardian{Name: "Fatima Idrissi", Email: "fatima@example.com"})
	require.NoError(t, err)
	require.NoError(t, student.Enroll("6A"))
	return student
}

func TestCanteenService_CreateMenu(t *testing.T) {
	ctx := context.Background()

	t.Run("creates when the slot is free", func(t *testing.T) {
		f := newCanteenFixture()
		f.menus.On("FindByDateAndType", ctx, mock.Anything, canteen.MealTypeLunch).
			Return(nil, shared.ErrNotFound)
		f.menus.On("Create", ctx, mock.Anything).Return(nil)

		menu, err := f.svc.CreateMenu(ctx, CreateMenuRequest{
			MenuDate:     time.Now().AddDate(0, 0, 3),
			MealType:     "LUNCH",
			Description:  "Couscous with vegetables",
			PricePerMeal: decimal.NewFromInt(25),
			MaxServings:  100,
		})
		require.NoError(t, err)
		assert.True(t, menu.IsActive)
		f.menus.AssertExpectations(t)
	})

	t.Run("rejects a second menu for the slot", func(t *testing.T) {
		f := newCanteenFixture()
		f.menus.On("FindByDateAndType", ctx, mock.Anything, canteen.MealTypeLunch).
			Return(lunchMenu(t), nil)

		_, err := f.svc.CreateMenu(ctx, CreateMenuRequest{
			MenuDate:     time.Now().AddDate(0, 0, 3),
			MealType:     "LUNCH",
			Description:  "Couscous with vegetables",
			PricePerMeal: decimal.NewFromInt(25),
			MaxServings:  100,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
		f.menus.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestCanteenService_PlaceOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("drafts an order and carries dietary restrictions", func(t *testing.T) {
		f := newCanteenFixture()
		menu := lunchMenu(t)
		student := orderingStudent(t)
		student.SetDietaryRestrictions("No peanuts")

		f.menus.On("FindByID", ctx, menu.ID).Return(menu, nil)
		f.students.On("FindByID", ctx, student.ID).Return(student, nil)
		f.orders.On("ExistsForMenu", ctx, student.ID, menu.ID).Return(false, nil)
		f.orders.On("Create", ctx, mock.Anything).Return(nil)

		order, err := f.svc.PlaceOrder(ctx, PlaceOrderRequest{
			MenuID:    menu.ID,
			StudentID: student.ID,
			Quantity:  2,
		})
		require.NoError(t, err)
		assert.Equal(t, canteen.OrderStatusDraft, order.Status)
		assert.Equal(t, "No peanuts", order.DietaryRequirements)
		assert.False(t, order.LateOrder)
	})

	t.Run("one order per student per menu", func(t *testing.T) {
		f := newCanteenFixture()
		menu := lunchMenu(t)
		student := orderingStudent(t)

		f.menus.On("FindByID", ctx, menu.ID).Return(menu, nil)
		f.students.On("FindByID", ctx, student.ID).Return(student, nil)
		f.orders.On("ExistsForMenu", ctx, student.ID, menu.ID).Return(true, nil)

		_, err := f.svc.PlaceOrder(ctx, PlaceOrderRequest{
			MenuID:    menu.ID,
			StudentID: student.ID,
			Quantity:  1,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already has an order")
	})

	t.Run("flags orders inside the cutoff window as late", func(t *testing.T) {
		// Serving at 08:00 with a 40h cutoff puts tomorrow's cutoff at
		// 16:00 yesterday, so an order placed now is always late.
		f := newCanteenFixtureWithCutoff(8, 40)
		menu, err := canteen.NewMenu(time.Now().AddDate(0, 0, 1), canteen.MealTypeLunch,
			"Couscous", decimal.NewFromInt(25), 100)
		require.NoError(t, err)
		student := orderingStudent(t)

		f.menus.On("FindByID", ctx, menu.ID).Return(menu, nil)
		f.students.On("FindByID", ctx, student.ID).Return(student, nil)
		f.orders.On("ExistsForMenu", ctx, student.ID, menu.ID).Return(false, nil)
		f.orders.On("Create", ctx, mock.Anything).Return(nil)

		order, err := f.svc.PlaceOrder(ctx, PlaceOrderRequest{
			MenuID:    menu.ID,
			StudentID: student.ID,
			Quantity:  1,
		})
		require.NoError(t, err)
		assert.True(t, order.LateOrder)
	})

	t.Run("flags same-day orders as late", func(t *testing.T) {
		// Cutoff equal to the serving hour means midnight of the menu
		// date, so any same-day order is late.
		f := newCanteenFixtureWithCutoff(8, 8)
		menu, err := canteen.NewMenu(time.Now(), canteen.MealTypeLunch,
			"Couscous", decimal.NewFromInt(25), 100)
		require.NoError(t, err)
		student := orderingStudent(t)

		f.menus.On("FindByID", ctx, menu.ID).Return(menu, nil)
		f.students.On("FindByID", ctx, student.ID).Return(student, nil)
		f.orders.On("ExistsForMenu", ctx, student.ID, menu.ID).Return(false, nil)
		f.orders.On("Create", ctx, mock.Anything).Return(nil)

		order, err := f.svc.PlaceOrder(ctx, PlaceOrderRequest{
			MenuID:    menu.ID,
			StudentID: student.ID,
			Quantity:  1,
		})
		require.NoError(t, err)
		assert.True(t, order.LateOrder)
	})
}

func TestCanteenService_ConfirmOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("reserves servings and notifies the guardian", func(t *testing.T) {
		f := newCanteenFixture()
		menu := lunchMenu(t)
		student := orderingStudent(t)
		order, err := canteen.NewMealOrder(menu, student.ID, 2, decimal.Zero)
		require.NoError(t, err)

		f.orders.On("FindByID", ctx, order.ID).Return(order, nil)
		f.menus.On("FindByID", ctx, menu.ID).Return(menu, nil)
		f.menus.On("Update", ctx, menu).Return(nil)
		f.orders.On("Update", ctx, order).Return(nil)
		f.students.On("FindByID", ctx, student.ID).Return(student, nil)
		f.logs.On("Append", ctx, mock.Anything).Return(nil)

		confirmed, err := f.svc.ConfirmOrder(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, canteen.OrderStatusConfirmed, confirmed.Status)
		assert.Equal(t, 98, menu.RemainingServings())
		f.logs.AssertCalled(t, "Append", ctx, mock.Anything)
	})

	t.Run("sold-out menu blocks confirmation", func(t *testing.T) {
		f := newCanteenFixture()
		menu, err := canteen.NewMenu(time.Now().AddDate(0, 0, 3), canteen.MealTypeLunch,
			"Couscous", decimal.NewFromInt(25), 2)
		require.NoError(t, err)
		order, err := canteen.NewMealOrder(menu, uuid.New(), 2, decimal.Zero)
		require.NoError(t, err)
		require.NoError(t, menu.ReserveServings(1))

		f.orders.On("FindByID", ctx, order.ID).Return(order, nil)
		f.menus.On("FindByID", ctx, menu.ID).Return(menu, nil)

		_, err = f.svc.ConfirmOrder(ctx, order.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Not enough servings")
		f.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestCanteenService_CancelOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("releases servings of a confirmed order", func(t *testing.T) {
		f := newCanteenFixture()
		menu := lunchMenu(t)
		order, err := canteen.NewMealOrder(menu, uuid.New(), 2, decimal.Zero)
		require.NoError(t, err)
		require.NoError(t, menu.ReserveServings(2))
		require.NoError(t, order.Confirm())

		f.orders.On("FindByID", ctx, order.ID).Return(order, nil)
		f.orders.On("Update", ctx, order).Return(nil)
		f.menus.On("FindByID", ctx, menu.ID).Return(menu, nil)
		f.menus.On("Update", ctx, menu).Return(nil)

		cancelled, err := f.svc.CancelOrder(ctx, order.ID, CancelOrderRequest{Reason: "Sick child"})
		require.NoError(t, err)
		assert.Equal(t, canteen.OrderStatusCancelled, cancelled.Status)
		assert.Equal(t, 100, menu.RemainingServings())
	})

	t.Run("draft cancellation leaves the menu untouched", func(t *testing.T) {
		f := newCanteenFixture()
		menu := lunchMenu(t)
		order, err := canteen.NewMealOrder(menu, uuid.New(), 2, decimal.Zero)
		require.NoError(t, err)

		f.orders.On("FindByID", ctx, order.ID).Return(order, nil)
		f.orders.On("Update", ctx, order).Return(nil)

		_, err = f.svc.CancelOrder(ctx, order.ID, CancelOrderRequest{Reason: "Changed plans"})
		require.NoError(t, err)
		f.menus.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
