package health

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStudentRecord(t *testing.T) *Record {
	rec, err := NewRecord(uuid.New(), BloodGroupOPos, "Fatima Idrissi", "+212600000001")
	require.NoError(t, err)
	return rec
}

func TestNewRecord(t *testing.T) {
	t.Run("creates record", func(t *testing.T) {
		rec := newStudentRecord(t)

		assert.Equal(t, BloodGroupOPos, rec.BloodGroup)
		assert.Equal(t, "Fatima Idrissi", rec.EmergencyContact)
		assert.True(t, rec.BMI.IsZero())
		assert.Nil(t, rec.MeasuredAt)
	})

	t.Run("blood group is optional", func(t *testing.T) {
		_, err := NewRecord(uuid.New(), "", "Fatima Idrissi", "+212600000001")
		require.NoError(t, err)
	})

	t.Run("rejects invalid blood group", func(t *testing.T) {
		_, err := NewRecord(uuid.New(), BloodGroup("C+"), "Fatima Idrissi", "+212600000001")
		require.Error(t, err)
	})

	t.Run("rejects nil student", func(t *testing.T) {
		_, err := NewRecord(uuid.Nil, BloodGroupAPos, "Fatima Idrissi", "+212600000001")
		require.Error(t, err)
	})

	t.Run("emergency contact is mandatory", func(t *testing.T) {
		_, err := NewRecord(uuid.New(), BloodGroupAPos, "", "+212600000001")
		require.Error(t, err)

		_, err = NewRecord(uuid.New(), BloodGroupAPos, "Fatima Idrissi", "")
		require.Error(t, err)
	})
}

func TestRecord_RecordMeasurement(t *testing.T) {
	t.Run("derives BMI", func(t *testing.T) {
		rec := newStudentRecord(t)

		require.NoError(t, rec.RecordMeasurement(decimal.NewFromInt(150), decimal.NewFromInt(45)))
		assert.Equal(t, "20", rec.BMI.String())
		require.NotNil(t, rec.MeasuredAt)
	})

	t.Run("rounds to one decimal", func(t *testing.T) {
		rec := newStudentRecord(t)

		require.NoError(t, rec.RecordMeasurement(decimal.NewFromInt(143), decimal.NewFromInt(38)))
		assert.Equal(t, "18.6", rec.BMI.String())
	})

	t.Run("rejects non-positive measurements", func(t *testing.T) {
		rec := newStudentRecord(t)
		require.Error(t, rec.RecordMeasurement(decimal.Zero, decimal.NewFromInt(40)))
		require.Error(t, rec.RecordMeasurement(decimal.NewFromInt(150), decimal.NewFromInt(-1)))
	})
}

func TestRecord_UpdateEmergencyContact(t *testing.T) {
	rec := newStudentRecord(t)

	require.Error(t, rec.UpdateEmergencyContact("", "+212600000002"))
	require.Error(t, rec.UpdateEmergencyContact("Hassan Idrissi", ""))

	require.NoError(t, rec.UpdateEmergencyContact("Hassan Idrissi", "+212600000002"))
	assert.Equal(t, "Hassan Idrissi", rec.EmergencyContact)
	assert.Equal(t, "+212600000002", rec.EmergencyPhone)
}

func TestRecord_Conditions(t *testing.T) {
	rec := newStudentRecord(t)

	rec.SetAllergies("Peanuts")
	rec.SetChronicConditions("Asthma")

	assert.Equal(t, "Peanuts", rec.Allergies)
	assert.Equal(t, "Asthma", rec.ChronicConditions)
}
