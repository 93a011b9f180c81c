package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/easygo-schools/backend/internal/domain/schooling"
	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStudent(t *testing.T, repo *GormStudentRepository, massarCode, firstName, lastName, class string) *schooling.Student {
	t.Helper()
	student, err := schooling.NewStudent(massarCode, firstName, lastName,
		time.Date(2014, 3, 12, 0, 0, 0, 0, time.UTC),
		schooling.Guardian{Name: "Fatima Idrissi", Phone: "+212600000001"})
	require.NoError(t, err)
	if class != "" {
		require.NoError(t, student.Enroll(class))
	}
	require.NoError(t, repo.Create(context.Background(), student))
	return student
}

func TestGormStudentRepository_CreateAndFind(t *testing.T) {
	repo := NewGormStudentRepository(newTestDB(t))
	ctx := context.Background()

	student := seedStudent(t, repo, "G130001234", "Yassine", "Idrissi", "6A")

	t.Run("find by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, student.ID)
		require.NoError(t, err)
		assert.Equal(t, "G130001234", found.MassarCode)
		assert.Equal(t, "6A", found.SchoolClass)
		assert.Equal(t, schooling.StudentStatusEnrolled, found.Status)
		assert.Equal(t, "Fatima Idrissi", found.Guardian.Name)
	})

	t.Run("find by massar code normalizes input", func(t *testing.T) {
		found, err := repo.FindByMassarCode(ctx, "  g130001234 ")
		require.NoError(t, err)
		assert.Equal(t, student.ID, found.ID)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("exists by massar code", func(t *testing.T) {
		ok, err := repo.ExistsByMassarCode(ctx, "g130001234")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.ExistsByMassarCode(ctx, "G999999999")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("duplicate massar code is rejected", func(t *testing.T) {
		dup, err := schooling.NewStudent("G130001234", "Other", "Kid",
			time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC),
			schooling.Guardian{Name: "Someone"})
		require.NoError(t, err)
		require.Error(t, repo.Create(ctx, dup))
	})
}

func TestGormStudentRepository_Update(t *testing.T) {
	repo := NewGormStudentRepository(newTestDB(t))
	ctx := context.Background()

	student := seedStudent(t, repo, "G130001235", "Lina", "Tazi", "6A")

	t.Run("persists changes", func(t *testing.T) {
		require.NoError(t, student.AssignClass("6B"))
		require.NoError(t, repo.Update(ctx, student))

		found, err := repo.FindByID(ctx, student.ID)
		require.NoError(t, err)
		assert.Equal(t, "6B", found.SchoolClass)
		assert.Equal(t, student.Version, found.Version)
	})

	t.Run("stale version conflicts", func(t *testing.T) {
		stale := *student
		stale.Version = student.Version - 1
		err := repo.Update(ctx, &stale)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestGormStudentRepository_FindAll(t *testing.T) {
	repo := NewGormStudentRepository(newTestDB(t))
	ctx := context.Background()

	seedStudent(t, repo, "G130001234", "Yassine", "Idrissi", "6A")
	seedStudent(t, repo, "G130001235", "Lina", "Tazi", "6A")
	seedStudent(t, repo, "G130001236", "Omar", "Bennani", "6B")

	t.Run("filters by class", func(t *testing.T) {
		students, total, err := repo.FindAll(ctx, schooling.StudentFilter{SchoolClass: "6A"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, students, 2)
	})

	t.Run("searches names case-insensitively", func(t *testing.T) {
		students, total, err := repo.FindAll(ctx, schooling.StudentFilter{Search: "tazi"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, students, 1)
		assert.Equal(t, "Lina", students[0].FirstName)
	})

	t.Run("paginates with stable order", func(t *testing.T) {
		students, total, err := repo.FindAll(ctx, schooling.StudentFilter{Page: 1, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, students, 2)
		assert.Equal(t, "Bennani", students[0].LastName)
	})

	t.Run("find by class", func(t *testing.T) {
		students, err := repo.FindByClass(ctx, "6B")
		require.NoError(t, err)
		require.Len(t, students, 1)
		assert.Equal(t, "Omar", students[0].FirstName)
	})
}
