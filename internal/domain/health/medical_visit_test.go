package health

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpenVisit(t *testing.T) *MedicalVisit {
	visit, err := NewMedicalVisit(uuid.New(), "Stomach ache during recess", uuid.New())
	require.NoError(t, err)
	return visit
}

func TestNewMedicalVisit(t *testing.T) {
	t.Run("opens a visit", func(t *testing.T) {
		visit := newOpenVisit(t)

		assert.Equal(t, VisitStatusOpen, visit.Status)
		assert.False(t, visit.VisitedAt.IsZero())
		assert.Nil(t, visit.ClosedAt)
	})

	t.Run("rejects nil student", func(t *testing.T) {
		_, err := NewMedicalVisit(uuid.Nil, "Headache", uuid.New())
		require.Error(t, err)
	})

	t.Run("rejects empty reason", func(t *testing.T) {
		_, err := NewMedicalVisit(uuid.New(), "", uuid.New())
		require.Error(t, err)
	})

	t.Run("rejects nil attendant", func(t *testing.T) {
		_, err := NewMedicalVisit(uuid.New(), "Headache", uuid.Nil)
		require.Error(t, err)
	})
}

func TestMedicalVisit_Close(t *testing.T) {
	t.Run("closes with outcome", func(t *testing.T) {
		visit := newOpenVisit(t)

		require.NoError(t, visit.Close("Mild gastritis", "Rest and water", VisitOutcomeBackToClass))
		assert.Equal(t, VisitStatusClosed, visit.Status)
		assert.Equal(t, VisitOutcomeBackToClass, visit.Outcome)
		require.NotNil(t, visit.ClosedAt)
	})

	t.Run("cannot close twice", func(t *testing.T) {
		visit := newOpenVisit(t)
		require.NoError(t, visit.Close("Mild gastritis", "", VisitOutcomeSentHome))
		require.Error(t, visit.Close("Again", "", VisitOutcomeBackToClass))
	})

	t.Run("requires diagnosis", func(t *testing.T) {
		visit := newOpenVisit(t)
		err := visit.Close("", "", VisitOutcomeBackToClass)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Diagnosis")
	})

	t.Run("rejects invalid outcome", func(t *testing.T) {
		visit := newOpenVisit(t)
		require.Error(t, visit.Close("Sprain", "", VisitOutcome("DISCHARGED")))
	})
}

func TestVisitOutcome_RequiresGuardianAlert(t *testing.T) {
	assert.False(t, VisitOutcomeBackToClass.RequiresGuardianAlert())
	assert.True(t, VisitOutcomeSentHome.RequiresGuardianAlert())
	assert.True(t, VisitOutcomeReferred.RequiresGuardianAlert())
}
