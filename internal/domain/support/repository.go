package support

import (
	"context"

	"github.com/google/uuid"
)

// RemedialPlanRepository defines persistence operations for remedial plans
type RemedialPlanRepository interface {
	Create(ctx context.Context, plan *RemedialPlan) error
	Update(ctx context.Context, plan *RemedialPlan) error
	FindByID(ctx context.Context, id uuid.UUID) (*RemedialPlan, error)
	FindAll(ctx context.Context, filter RemedialPlanFilter) ([]*RemedialPlan, int64, error)
}

// OrientationPlanRepository defines persistence operations for orientation plans
type OrientationPlanRepository interface {
	Create(ctx context.Context, plan *OrientationPlan) error
	Update(ctx context.Context, plan *OrientationPlan) error
	FindByID(ctx context.Context, id uuid.UUID) (*OrientationPlan, error)
	FindAll(ctx context.Context, filter OrientationFilter) ([]*OrientationPlan, int64, error)
	ExistsForYear(ctx context.Context, studentID uuid.UUID, academicYear string, excludeID uuid.UUID) (bool, error)
}
