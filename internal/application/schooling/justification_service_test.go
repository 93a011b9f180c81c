package schooling

import (
	"context"
	"testing"
	"time"

	"github.com/easygo-schools/backend/internal/domain/comms"
	"github.com/easygo-schools/backend/internal/domain/identity"
	"github.com/easygo-schools/backend/internal/domain/schooling"
	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/easygo-schools/backend/internal/infrastructure/notify"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockJustificationRepository is a testify mock of schooling.JustificationRepository
type MockJustificationRepository struct {
	mock.Mock
}

func (m *MockJustificationRepository) Create(ctx context.Context, justification *schooling.AttendanceJustification) error {
	args := m.Called(ctx, justification)
	return args.Error(0)
}

func (m *MockJustificationRepository) Update(ctx context.Context, justification *schooling.AttendanceJustification) error {
	args := m.Called(ctx, justification)
	return args.Error(0)
}

func (m *MockJustificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*schooling.AttendanceJustification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schooling.AttendanceJustification), args.Error(1)
}

func (m *MockJustificationRepository) FindAll(ctx context.Context, filter schooling.JustificationFilter) ([]*schooling.AttendanceJustification, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*schooling.AttendanceJustification), args.Get(1).(int64), args.Error(2)
}

func (m *MockJustificationRepository) ExistsActiveForDate(ctx context.Context, studentID uuid.UUID, date time.Time, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, studentID, date, excludeID)
	return args.Bool(0), args.Error(1)
}

// MockAttendanceRepository is a testify mock of schooling.AttendanceRepository
type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) Create(ctx context.Context, attendance *schooling.StudentAttendance) error {
	args := m.Called(ctx, attendance)
	return args.Error(0)
}

func (m *MockAttendanceRepository) Update(ctx context.Context, attendance *schooling.StudentAttendance) error {
	args := m.Called(ctx, attendance)
	return args.Error(0)
}

func (m *MockAttendanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*schooling.StudentAttendance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schooling.StudentAttendance), args.Error(1)
}

func (m *MockAttendanceRepository) FindByStudentAndDate(ctx context.Context, studentID uuid.UUID, date time.Time) (*schooling.StudentAttendance, error) {
	args := m.Called(ctx, studentID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schooling.StudentAttendance), args.Error(1)
}

func (m *MockAttendanceRepository) FindAll(ctx context.Context, filter schooling.AttendanceFilter) ([]*schooling.StudentAttendance, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*schooling.StudentAttendance), args.Get(1).(int64), args.Error(2)
}

func (m *MockAttendanceRepository) FindUnexcusedAbsences(ctx context.Context, date time.Time) ([]*schooling.StudentAttendance, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*schooling.StudentAttendance), args.Error(1)
}

func (m *MockAttendanceRepository) Summarize(ctx context.Context, filter schooling.AttendanceFilter) (schooling.AttendanceSummary, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(schooling.AttendanceSummary), args.Error(1)
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

// MockUserRepository is a testify mock of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByRole(ctx context.Context, role identity.Role) ([]*identity.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
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
	_ schooling.JustificationRepository = (*MockJustificationRepository)(nil)
	_ schooling.AttendanceRepository    = (*MockAttendanceRepository)(nil)
	_ schooling.StudentRepository       = (*MockStudentRepository)(nil)
	_ identity.UserRepository           = (*MockUserRepository)(nil)
	_ comms.LogRepository               = (*MockLogRepository)(nil)
)

type justificationFixture struct {
	justifications *MockJustificationRepository
	attendance     *MockAttendanceRepository
	students       *MockStudentRepository
	users          *MockUserRepository
	logs           *MockLogRepository
	svc            *JustificationService
}

func newJustificationFixture() *justificationFixture {
	logger := zap.NewNop()
	f := &justificationFixture{
		justifications: new(MockJustificationRepository),
		attendance:     new(MockAttendanceRepository),
		students:       new(MockStudentRepository),
		users:          new(MockUserRepository),
		logs:           new(MockLogRepository),
	}
	notifier := notify.NewNotifier(
		notify.NewConsoleEmailSender(logger),
		notify.NewConsoleSMSSender(logger),
		f.logs, logger,
	)
	f.svc = NewJustificationService(f.justifications, f.attendance, f.students, f.users, notifier, logger)
	return f
}

func pendingJustification(t *testing.T, studentID uuid.UUID) *schooling.AttendanceJustification {
	t.Helper()
	justification, err := schooling.NewAttendanceJustification(studentID,
		time.Now().AddDate(0, 0, -1), schooling.JustificationReasonIllness,
		"Fever, saw the doctor", uuid.New())
	require.NoError(t, err)
	return justification
}

func recordedAttendance(t *testing.T, studentID uuid.UUID, date time.Time, status schooling.AttendanceStatus) *schooling.StudentAttendance {
	t.Helper()
	attendance, err := schooling.NewStudentAttendance(studentID, "6A", date, status, uuid.New())
	require.NoError(t, err)
	return attendance
}

func submittingGuardian(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("fatima.idrissi", "fatima@example.com", "s3cret-pass", identity.RoleGuardian)
	require.NoError(t, err)
	return user
}

func TestJustificationService_ApproveJustification(t *testing.T) {
	ctx := context.Background()
	reviewer := uuid.New()

	t.Run("excuses the matching absence and links the justification", func(t *testing.T) {
		f := newJustificationFixture()
		studentID := uuid.New()
		justification := pendingJustification(t, studentID)
		attendance := recordedAttendance(t, studentID, justification.AttendanceDate, schooling.AttendanceStatusAbsent)
		submitter := submittingGuardian(t)

		f.justifications.On("FindByID", ctx, justification.ID).Return(justification, nil)
		f.justifications.On("Update", ctx, justification).Return(nil)
		f.attendance.On("FindByStudentAndDate", ctx, studentID, justification.AttendanceDate).Return(attendance, nil)
		f.attendance.On("Update", ctx, attendance).Return(nil)
		f.users.On("FindByID", ctx, justification.SubmittedBy).Return(submitter, nil)
		f.logs.On("Append", ctx, mock.Anything).Return(nil)

		approved, err := f.svc.ApproveJustification(ctx, justification.ID, reviewer, ReviewJustificationRequest{Comments: "Medical note received"})
		require.NoError(t, err)
		assert.Equal(t, schooling.JustificationStatusApproved, approved.Status)

		assert.Equal(t, schooling.AttendanceStatusExcused, attendance.Status)
		require.NotNil(t, attendance.JustificationID)
		assert.Equal(t, justification.ID, *attendance.JustificationID)
		f.attendance.AssertCalled(t, "Update", ctx, attendance)
		f.logs.AssertNumberOfCalls(t, "Append", 1)
	})

	t.Run("approves even when no attendance was recorded", func(t *testing.T) {
		f := newJustificationFixture()
		justification := pendingJustification(t, uuid.New())

		f.justifications.On("FindByID", ctx, justification.ID).Return(justification, nil)
		f.justifications.On("Update", ctx, justification).Return(nil)
		f.attendance.On("FindByStudentAndDate", ctx, justification.StudentID, justification.AttendanceDate).
			Return(nil, shared.ErrNotFound)
		f.users.On("FindByID", ctx, justification.SubmittedBy).Return(submittingGuardian(t), nil)
		f.logs.On("Append", ctx, mock.Anything).Return(nil)

		approved, err := f.svc.ApproveJustification(ctx, justification.ID, reviewer, ReviewJustificationRequest{})
		require.NoError(t, err)
		assert.Equal(t, schooling.JustificationStatusApproved, approved.Status)
		f.attendance.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("leaves a present record untouched", func(t *testing.T) {
		f := newJustificationFixture()
		studentID := uuid.New()
		justification := pendingJustification(t, studentID)
		attendance := recordedAttendance(t, studentID, justification.AttendanceDate, schooling.AttendanceStatusPresent)

		f.justifications.On("FindByID", ctx, justification.ID).Return(justification, nil)
		f.justifications.On("Update", ctx, justification).Return(nil)
		f.attendance.On("FindByStudentAndDate", ctx, studentID, justification.AttendanceDate).Return(attendance, nil)
		f.users.On("FindByID", ctx, justification.SubmittedBy).Return(submittingGuardian(t), nil)
		f.logs.On("Append", ctx, mock.Anything).Return(nil)

		_, err := f.svc.ApproveJustification(ctx, justification.ID, reviewer, ReviewJustificationRequest{})
		require.NoError(t, err)
		assert.Equal(t, schooling.AttendanceStatusPresent, attendance.Status)
		assert.Nil(t, attendance.JustificationID)
		f.attendance.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("propagates attendance lookup failures", func(t *testing.T) {
		f := newJustificationFixture()
		justification := pendingJustification(t, uuid.New())

		f.justifications.On("FindByID", ctx, justification.ID).Return(justification, nil)
		f.justifications.On("Update", ctx, justification).Return(nil)
		f.attendance.On("FindByStudentAndDate", ctx, justification.StudentID, justification.AttendanceDate).
			Return(nil, assert.AnError)

		_, err := f.svc.ApproveJustification(ctx, justification.ID, reviewer, ReviewJustificationRequest{})
		require.Error(t, err)
	})

	t.Run("cannot approve twice", func(t *testing.T) {
		f := newJustificationFixture()
		justification := pendingJustification(t, uuid.New())
		require.NoError(t, justification.Approve(reviewer, ""))

		f.justifications.On("FindByID", ctx, justification.ID).Return(justification, nil)

		_, err := f.svc.ApproveJustification(ctx, justification.ID, reviewer, ReviewJustificationRequest{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already APPROVED")
		f.justifications.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
