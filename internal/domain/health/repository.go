package health

import (
	"context"

	"github.com/google/uuid"
)

// RecordRepository defines persistence operations for health records
type RecordRepository interface {
	Create(ctx context.Context, record *Record) error
	Update(ctx context.Context, record *Record) error
	FindByID(ctx context.Context, id uuid.UUID) (*Record, error)
	FindByStudent(ctx context.Context, studentID uuid.UUID) (*Record, error)
	ExistsForStudent(ctx context.Context, studentID uuid.UUID) (bool, error)
}

// VisitRepository defines persistence operations for medical visits
type VisitRepository interface {
	Create(ctx context.Context, visit *MedicalVisit) error
	Update(ctx context.Context, visit *MedicalVisit) error
	FindByID(ctx context.Context, id uuid.UUID) (*MedicalVisit, error)
	FindAll(ctx context.Context, filter VisitFilter) ([]*MedicalVisit, int64, error)
}
