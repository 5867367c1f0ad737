package application

import (
	"context"

	"estagio/internal/common"
)

type Repository interface {
	// Create persists a new application. The (student_id, posting_id) unique
	// index is the source of truth for "one application per pair"; a
	// storage-level violation surfaces as CodeConflict.
	Create(ctx context.Context, app Application) (*Application, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	FindByStudentAndPosting(ctx context.Context, studentID, postingID common.UUID) (*Application, error)
	ListByStudent(ctx context.Context, studentID common.UUID) ([]StudentView, error)
	ListByPosting(ctx context.Context, postingID common.UUID) ([]Applicant, error)
	UpdateStatus(ctx context.Context, id common.UUID, status Status) (*Application, error)
}
