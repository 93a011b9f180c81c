package support

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraftOrientation(t *testing.T) *OrientationPlan {
	plan, err := NewOrientationPlan(uuid.New(), "2025-2026", uuid.New())
	require.NoError(t, err)
	return plan
}

func newSubmittedOrientation(t *testing.T) *OrientationPlan {
	plan := newDraftOrientation(t)
	require.NoError(t, plan.AddChoice("Sciences Maths"))
	require.NoError(t, plan.AddChoice("Sciences Physiques"))
	require.NoError(t, plan.Submit())
	return plan
}

func TestNewOrientationPlan(t *testing.T) {
	t.Run("creates draft plan", func(t *testing.T) {
		plan := newDraftOrientation(t)
		assert.Equal(t, OrientationStatusDraft, plan.Status)
		assert.Empty(t, plan.Choices)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		_, err := NewOrientationPlan(uuid.Nil, "2025-2026", uuid.New())
		require.Error(t, err)

		_, err = NewOrientationPlan(uuid.New(), "", uuid.New())
		require.Error(t, err)

		_, err = NewOrientationPlan(uuid.New(), "2025-2026", uuid.Nil)
		require.Error(t, err)
	})
}

func TestOrientationPlan_AddChoice(t *testing.T) {
	t.Run("ranks choices in order", func(t *testing.T) {
		plan := newDraftOrientation(t)
		require.NoError(t, plan.AddChoice("Sciences Maths"))
		require.NoError(t, plan.AddChoice("Lettres"))

		require.Len(t, plan.Choices, 2)
		assert.Equal(t, 1, plan.Choices[0].Rank)
		assert.Equal(t, 2, plan.Choices[1].Rank)
	})

	t.Run("rejects duplicate stream", func(t *testing.T) {
		plan := newDraftOrientation(t)
		require.NoError(t, plan.AddChoice("Sciences Maths"))

		err := plan.AddChoice("Sciences Maths")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already chosen")
	})

	t.Run("only on draft plans", func(t *testing.T) {
		plan := newSubmittedOrientation(t)
		require.Error(t, plan.AddChoice("Lettres"))
	})

	t.Run("rejects empty stream", func(t *testing.T) {
		plan := newDraftOrientation(t)
		require.Error(t, plan.AddChoice(""))
	})
}

func TestOrientationPlan_Submit(t *testing.T) {
	t.Run("requires at least one choice", func(t *testing.T) {
		plan := newDraftOrientation(t)
		err := plan.Submit()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "At least one stream choice")
	})

	t.Run("submits once", func(t *testing.T) {
		plan := newSubmittedOrientation(t)
		assert.Equal(t, OrientationStatusSubmitted, plan.Status)
		require.NotNil(t, plan.SubmittedAt)
		require.Error(t, plan.Submit())
	})
}

func TestOrientationPlan_Approve(t *testing.T) {
	t.Run("approves explicit stream", func(t *testing.T) {
		plan := newSubmittedOrientation(t)
		reviewer := uuid.New()

		require.NoError(t, plan.Approve(reviewer, "Sciences Physiques", "Strong lab work"))
		assert.Equal(t, OrientationStatusApproved, plan.Status)
		assert.Equal(t, "Sciences Physiques", plan.FinalStream)
		require.NotNil(t, plan.ReviewedBy)
		assert.Equal(t, reviewer, *plan.ReviewedBy)
	})

	t.Run("falls back to the recommendation", func(t *testing.T) {
		plan := newSubmittedOrientation(t)
		require.NoError(t, plan.Recommend("Sciences Physiques"))

		require.NoError(t, plan.Approve(uuid.New(), "", ""))
		assert.Equal(t, "Sciences Physiques", plan.FinalStream)
	})

	t.Run("falls back to the first choice", func(t *testing.T) {
		plan := newSubmittedOrientation(t)
		require.NoError(t, plan.Approve(uuid.New(), "", ""))
		assert.Equal(t, "Sciences Maths", plan.FinalStream)
	})

	t.Run("draft plan cannot be approved", func(t *testing.T) {
		plan := newDraftOrientation(t)
		require.Error(t, plan.Approve(uuid.New(), "Lettres", ""))
	})

	t.Run("reviewer is required", func(t *testing.T) {
		plan := newSubmittedOrientation(t)
		require.Error(t, plan.Approve(uuid.Nil, "Lettres", ""))
	})
}

func TestOrientationPlan_Reject(t *testing.T) {
	t.Run("requires comments", func(t *testing.T) {
		plan := newSubmittedOrientation(t)
		err := plan.Reject(uuid.New(), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "comments are required")

		require.NoError(t, plan.Reject(uuid.New(), "Grades below stream threshold"))
		assert.Equal(t, OrientationStatusRejected, plan.Status)
	})

	t.Run("cannot review twice", func(t *testing.T) {
		plan := newSubmittedOrientation(t)
		require.NoError(t, plan.Approve(uuid.New(), "Lettres", ""))
		require.Error(t, plan.Reject(uuid.New(), "late"))
	})
}

func TestOrientationPlan_Recommend(t *testing.T) {
	t.Run("allowed before review", func(t *testing.T) {
		plan := newDraftOrientation(t)
		require.NoError(t, plan.Recommend("Sciences Maths"))
		assert.Equal(t, "Sciences Maths", plan.RecommendedStream)
	})

	t.Run("rejected after review", func(t *testing.T) {
		plan := newSubmittedOrientation(t)
		require.NoError(t, plan.Approve(uuid.New(), "Lettres", ""))
		require.Error(t, plan.Recommend("Sciences Maths"))
	})

	t.Run("rejects empty stream", func(t *testing.T) {
		plan := newDraftOrientation(t)
		require.Error(t, plan.Recommend(""))
	})
}
