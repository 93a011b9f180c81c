package schooling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGuardian() Guardian {
	return Guardian{Name: "Fatima Idrissi", Email: "fatima@example.com", Phone: "+212600000001"}
}

func newApplicant(t *testing.T) *Student {
	student, err := NewStudent("G130001234", "Yassine", "Idrissi",
		time.Date(2014, 3, 12, 0, 0, 0, 0, time.UTC), testGuardian())
	require.NoError(t, err)
	return student
}

func newEnrolled(t *testing.T) *Student {
	student := newApplicant(t)
	require.NoError(t, student.Enroll("6A"))
	return student
}

func TestNewStudent(t *testing.T) {
	t.Run("creates applicant", func(t *testing.T) {
		student := newApplicant(t)

		assert.Equal(t, "G130001234", student.MassarCode)
		assert.Equal(t, "Yassine Idrissi", student.FullName())
		assert.Equal(t, StudentStatusApplicant, student.Status)
		assert.Nil(t, student.EnrolledAt)
		assert.Empty(t, student.SchoolClass)
	})

	t.Run("normalizes massar code", func(t *testing.T) {
		student, err := NewStudent(" g130001235 ", "Lina", "Tazi", time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC), testGuardian())
		require.NoError(t, err)
		assert.Equal(t, "G130001235", student.MassarCode)
	})

	t.Run("fails with empty massar code", func(t *testing.T) {
		_, err := NewStudent("", "Lina", "Tazi", time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC), testGuardian())
		require.Error(t, err)
	})

	t.Run("fails with massar code too long", func(t *testing.T) {
		_, err := NewStudent("G1300012345678901234567890", "Lina", "Tazi", time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC), testGuardian())
		require.Error(t, err)
	})

	t.Run("fails with future date of birth", func(t *testing.T) {
		_, err := NewStudent("G130001236", "Lina", "Tazi", time.Now().AddDate(1, 0, 0), testGuardian())
		require.Error(t, err)
	})

	t.Run("fails without guardian name", func(t *testing.T) {
		_, err := NewStudent("G130001237", "Lina", "Tazi", time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC), Guardian{})
		require.Error(t, err)
	})
}

func TestStudent_Enroll(t *testing.T) {
	t.Run("enrolls applicant into a class", func(t *testing.T) {
		student := newApplicant(t)
		require.NoError(t, student.Enroll("6A"))

		assert.Equal(t, StudentStatusEnrolled, student.Status)
		assert.Equal(t, "6A", student.SchoolClass)
		require.NotNil(t, student.EnrolledAt)
		assert.True(t, student.Status.IsActive())
	})

	t.Run("fails without class", func(t *testing.T) {
		student := newApplicant(t)
		require.Error(t, student.Enroll(""))
	})

	t.Run("cannot enroll twice", func(t *testing.T) {
		student := newEnrolled(t)
		require.Error(t, student.Enroll("6B"))
	})
}

func TestStudent_AssignClass(t *testing.T) {
	t.Run("moves enrolled student", func(t *testing.T) {
		student := newEnrolled(t)
		require.NoError(t, student.AssignClass("6B"))
		assert.Equal(t, "6B", student.SchoolClass)
	})

	t.Run("applicant cannot change class", func(t *testing.T) {
		student := newApplicant(t)
		require.Error(t, student.AssignClass("6B"))
	})
}

func TestStudent_Departure(t *testing.T) {
	t.Run("transfer", func(t *testing.T) {
		student := newEnrolled(t)
		require.NoError(t, student.Transfer("Moved to Rabat"))

		assert.Equal(t, StudentStatusTransferred, student.Status)
		assert.Equal(t, "Moved to Rabat", student.LeaveReason)
		require.NotNil(t, student.LeftAt)
	})

	t.Run("graduate", func(t *testing.T) {
		student := newEnrolled(t)
		require.NoError(t, student.Graduate())
		assert.Equal(t, StudentStatusGraduated, student.Status)
	})

	t.Run("withdraw requires a reason", func(t *testing.T) {
		student := newEnrolled(t)
		require.Error(t, student.Withdraw(""))

		require.NoError(t, student.Withdraw("Family request"))
		assert.Equal(t, StudentStatusWithdrawn, student.Status)
	})

	t.Run("applicant cannot depart", func(t *testing.T) {
		student := newApplicant(t)
		require.Error(t, student.Graduate())
	})

	t.Run("cannot depart twice", func(t *testing.T) {
		student := newEnrolled(t)
		require.NoError(t, student.Graduate())
		require.Error(t, student.Transfer("too late"))
	})
}

func TestStudent_UpdateGuardian(t *testing.T) {
	student := newEnrolled(t)

	require.Error(t, student.UpdateGuardian(Guardian{}))

	next := Guardian{Name: "Hassan Idrissi", Phone: "+212600000002"}
	require.NoError(t, student.UpdateGuardian(next))
	assert.Equal(t, next, student.Guardian)
	assert.True(t, student.Guardian.HasPhone())
	assert.False(t, student.Guardian.HasEmail())
}
