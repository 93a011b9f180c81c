package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/easygo-schools/backend/internal/domain/comms"
	"github.com/easygo-schools/backend/internal/domain/finance"
	"github.com/easygo-schools/backend/internal/domain/schooling"
	"github.com/easygo-schools/backend/internal/infrastructure/cache"
	"github.com/easygo-schools/backend/internal/infrastructure/notify"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockFeeBillRepository is a testify mock of finance.FeeBillRepository
type MockFeeBillRepository struct {
	mock.Mock
}

func (m *MockFeeBillRepository) Create(ctx context.Context, bill *finance.FeeBill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockFeeBillRepository) Update(ctx context.Context, bill *finance.FeeBill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockFeeBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.FeeBill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.FeeBill), args.Error(1)
}

func (m *MockFeeBillRepository) FindByBillNumber(ctx context.Context, billNumber string) (*finance.FeeBill, error) {
	args := m.Called(ctx, billNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.FeeBill), args.Error(1)
}

func (m *MockFeeBillRepository) FindAll(ctx context.Context, filter finance.FeeBillFilter) ([]*finance.FeeBill, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*finance.FeeBill), args.Get(1).(int64), args.Error(2)
}

func (m *MockFeeBillRepository) FindOverdue(ctx context.Context, asOf time.Time) ([]*finance.FeeBill, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*finance.FeeBill), args.Error(1)
}

func (m *MockFeeBillRepository) Summarize(ctx context.Context, academicYear string) (finance.FeeCollectionSummary, error) {
	args := m.Called(ctx, academicYear)
	return args.Get(0).(finance.FeeCollectionSummary), args.Error(1)
}

func (m *MockFeeBillRepository) NextBillNumber(ctx context.Context, year int) (string, error) {
	args := m.Called(ctx, year)
	return args.String(0), args.Error(1)
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
	_ finance.FeeBillRepository   = (*MockFeeBillRepository)(nil)
	_ schooling.StudentRepository = (*MockStudentRepository)(nil)
	_ comms.LogRepository         = (*MockLogRepository)(nil)
)

func newTestNotifier(logs comms.LogRepository) *notify.Notifier {
	logger := zap.NewNop()
	return notify.NewNotifier(
		notify.NewConsoleEmailSender(logger),
		notify.NewConsoleSMSSender(logger),
		logs, logger,
	)
}

func overdueBill(t *testing.T, studentID uuid.UUID) *finance.FeeBill {
	t.Helper()
	bill, err := finance.NewFeeBill("FB-2026-00001", studentID, "2025-2026",
		time.Now().AddDate(0, -2, 0))
	require.NoError(t, err)
	require.NoError(t, bill.AddItem("TUITION", "Tuition term 1", decimal.NewFromInt(3000)))
	require.NoError(t, bill.Submit())
	bill.RefreshStatus(time.Now())
	require.Equal(t, finance.FeeBillStatusOverdue, bill.Status)
	return bill
}

func billedStudent(t *testing.T, email string) *schooling.Student {
	t.Helper()
	student, err := schooling.NewStudent("G130001234", "Yassine", "Idrissi",
		time.Date(2014, 3, 12, 0, 0, 0, 0, time.UTC),
		schooling.Guardian{Name: "Fatima Idrissi", Email: email})
	require.NoError(t, err)
	require.NoError(t, student.Enroll("6A"))
	return student
}

func TestFeeReminderJob_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("reminds each overdue bill once per week", func(t *testing.T) {
		bills := new(MockFeeBillRepository)
		students := new(MockStudentRepository)
		logs := new(MockLogRepository)
		store := cache.NewInMemoryIdempotencyStore()
		defer store.Close()

		student := billedStudent(t, "fatima@example.com")
		bill := overdueBill(t, student.ID)

		bills.On("FindOverdue", ctx, mock.Anything).Return([]*finance.FeeBill{bill}, nil)
		students.On("FindByID", ctx, student.ID).Return(student, nil)
		logs.On("Append", ctx, mock.Anything).Return(nil)

		job := NewFeeReminderJob(time.Monday, 7, bills, students, newTestNotifier(logs), store, zap.NewNop())
		require.NoError(t, job.Run(ctx))
		logs.AssertNumberOfCalls(t, "Append", 1)

		// Second run within the same week stays silent.
		require.NoError(t, job.Run(ctx))
		logs.AssertNumberOfCalls(t, "Append", 1)
	})

	t.Run("flips freshly late bills to overdue", func(t *testing.T) {
		bills := new(MockFeeBillRepository)
		students := new(MockStudentRepository)
		logs := new(MockLogRepository)
		store := cache.NewInMemoryIdempotencyStore()
		defer store.Close()

		student := billedStudent(t, "fatima@example.com")
		bill, err := finance.NewFeeBill("FB-2026-00002", student.ID, "2025-2026",
			time.Now().AddDate(0, -2, 0))
		require.NoError(t, err)
		require.NoError(t, bill.AddItem("TUITION", "Tuition term 1", decimal.NewFromInt(3000)))
		require.NoError(t, bill.Submit())
		require.Equal(t, finance.FeeBillStatusSubmitted, bill.Status)

		bills.On("FindOverdue", ctx, mock.Anything).Return([]*finance.FeeBill{bill}, nil)
		bills.On("Update", ctx, bill).Return(nil)
		students.On("FindByID", ctx, student.ID).Return(student, nil)
		logs.On("Append", ctx, mock.Anything).Return(nil)

		job := NewFeeReminderJob(time.Monday, 7, bills, students, newTestNotifier(logs), store, zap.NewNop())
		require.NoError(t, job.Run(ctx))

		assert.Equal(t, finance.FeeBillStatusOverdue, bill.Status)
		bills.AssertCalled(t, "Update", ctx, bill)
	})

	t.Run("skips guardians without email", func(t *testing.T) {
		bills := new(MockFeeBillRepository)
		students := new(MockStudentRepository)
		logs := new(MockLogRepository)
		store := cache.NewInMemoryIdempotencyStore()
		defer store.Close()

		student := billedStudent(t, "")
		bill := overdueBill(t, student.ID)

		bills.On("FindOverdue", ctx, mock.Anything).Return([]*finance.FeeBill{bill}, nil)
		students.On("FindByID", ctx, student.ID).Return(student, nil)

		job := NewFeeReminderJob(time.Monday, 7, bills, students, newTestNotifier(logs), store, zap.NewNop())
		require.NoError(t, job.Run(ctx))
		logs.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("propagates repository failure", func(t *testing.T) {
		bills := new(MockFeeBillRepository)
		store := cache.NewInMemoryIdempotencyStore()
		defer store.Close()

		bills.On("FindOverdue", mock.Anything, mock.Anything).Return(nil, assert.AnError)

		job := NewFeeReminderJob(time.Monday, 7, bills, new(MockStudentRepository),
			newTestNotifier(new(MockLogRepository)), store, zap.NewNop())
		require.Error(t, job.Run(context.Background()))
	})
}
