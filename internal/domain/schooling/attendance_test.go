package schooling

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStudentAttendance(t *testing.T) {
	studentID := uuid.New()
	recordedBy := uuid.New()

	t.Run("creates record truncated to the day", func(t *testing.T) {
		at := time.Now().Add(-3 * time.Hour)
		rec, err := NewStudentAttendance(studentID, "6A", at, AttendanceStatusPresent, recordedBy)
		require.NoError(t, err)

		assert.Equal(t, studentID, rec.StudentID)
		assert.Equal(t, "6A", rec.SchoolClass)
		assert.Equal(t, AttendanceStatusPresent, rec.Status)
		assert.Zero(t, rec.AttendanceDate.Hour())
		assert.Zero(t, rec.AttendanceDate.Minute())
	})

	t.Run("rejects future date", func(t *testing.T) {
		_, err := NewStudentAttendance(studentID, "6A", time.Now().AddDate(0, 0, 1), AttendanceStatusAbsent, recordedBy)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "future")
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		_, err := NewStudentAttendance(studentID, "6A", time.Now(), AttendanceStatus("SLEEPING"), recordedBy)
		require.Error(t, err)
	})

	t.Run("rejects nil student", func(t *testing.T) {
		_, err := NewStudentAttendance(uuid.Nil, "6A", time.Now(), AttendanceStatusPresent, recordedBy)
		require.Error(t, err)
	})

	t.Run("rejects nil recorder", func(t *testing.T) {
		_, err := NewStudentAttendance(studentID, "6A", time.Now(), AttendanceStatusPresent, uuid.Nil)
		require.Error(t, err)
	})
}

func TestStudentAttendance_Correct(t *testing.T) {
	rec, err := NewStudentAttendance(uuid.New(), "6A", time.Now(), AttendanceStatusAbsent, uuid.New())
	require.NoError(t, err)

	require.NoError(t, rec.Correct(AttendanceStatusLate, "Arrived 09:15"))
	assert.Equal(t, AttendanceStatusLate, rec.Status)
	assert.Equal(t, "Arrived 09:15", rec.Remark)

	require.Error(t, rec.Correct(AttendanceStatus("NOPE"), ""))
}

func TestStudentAttendance_Excuse(t *testing.T) {
	t.Run("excuses an absence", func(t *testing.T) {
		rec, err := NewStudentAttendance(uuid.New(), "6A", time.Now(), AttendanceStatusAbsent, uuid.New())
		require.NoError(t, err)
		assert.True(t, rec.IsUnexcusedAbsence())

		justificationID := uuid.New()
		require.NoError(t, rec.Excuse(justificationID))

		assert.Equal(t, AttendanceStatusExcused, rec.Status)
		require.NotNil(t, rec.JustificationID)
		assert.Equal(t, justificationID, *rec.JustificationID)
		assert.False(t, rec.IsUnexcusedAbsence())
	})

	t.Run("cannot excuse a presence", func(t *testing.T) {
		rec, err := NewStudentAttendance(uuid.New(), "6A", time.Now(), AttendanceStatusPresent, uuid.New())
		require.NoError(t, err)
		require.Error(t, rec.Excuse(uuid.New()))
	})

	t.Run("requires justification reference", func(t *testing.T) {
		rec, err := NewStudentAttendance(uuid.New(), "6A", time.Now(), AttendanceStatusAbsent, uuid.New())
		require.NoError(t, err)
		require.Error(t, rec.Excuse(uuid.Nil))
	})
}

func TestAttendanceSummary(t *testing.T) {
	t.Run("rate counts present and late", func(t *testing.T) {
		s := AttendanceSummary{Present: 16, Absent: 2, Late: 2, Excused: 0}
		assert.Equal(t, int64(20), s.Total())
		assert.InDelta(t, 90.0, s.AttendanceRate(), 0.001)
	})

	t.Run("empty summary has zero rate", func(t *testing.T) {
		s := AttendanceSummary{}
		assert.Zero(t, s.AttendanceRate())
	})
}
