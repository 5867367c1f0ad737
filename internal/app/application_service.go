package app

import (
	"context"
	"fmt"
	"time"

	"estagio/internal/common"
	"estagio/internal/domain/application"
	"estagio/internal/domain/document"
	"estagio/internal/domain/posting"
	"estagio/internal/domain/user"
)

type ApplicationService struct {
	repo      application.Repository
	postings  posting.Repository
	documents document.Repository
	users     user.Repository
	logger    Logger

	// allowStatusOverride lets technicians overwrite a final status,
	// restoring the legacy unguarded behavior.
	allowStatusOverride bool

	now func() time.Time
}

func NewApplicationService(repo application.Repository, postings posting.Repository, documents document.Repository, users user.Repository, logger Logger, allowStatusOverride bool) *ApplicationService {
	return &ApplicationService{
		repo:                repo,
		postings:            postings,
		documents:           documents,
		users:               users,
		logger:              logger,
		allowStatusOverride: allowStatusOverride,
		now:                 func() time.Time { return time.Now().UTC() },
	}
}

// Apply checks the preconditions in a fixed order, first failure wins:
// posting exists, posting open, no duplicate, résumé uploaded.
func (s *ApplicationService) Apply(ctx context.Context, studentID, postingID common.UUID) (*application.Detail, error) {
	vaga, err := s.postings.GetByID(ctx, postingID)
	if err != nil {
		return nil, err
	}
	if !vaga.OpenAt(s.now()) {
		return nil, common.NewError(common.CodeInvalidState, "posting is not open for applications", nil)
	}
	if _, err := s.repo.FindByStudentAndPosting(ctx, studentID, postingID); err == nil {
		return nil, common.NewError(common.CodeConflict, "already applied to this posting", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	if _, err := s.documents.FindByOwnerAndType(ctx, studentID, document.TypeCurriculum); err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodePrecondition, "a curriculum upload is required before applying", nil)
		}
		return nil, err
	}

	// The duplicate lookup above races with concurrent applies; the unique
	// index turns the loser's insert into CodeConflict.
	created, err := s.repo.Create(ctx, application.Application{
		StudentID: studentID,
		PostingID: postingID,
		Status:    application.StatusPending,
	})
	if err != nil {
		return nil, err
	}
	s.logInfo(fmt.Sprintf("application created application_id=%s posting_id=%s", created.ID, postingID))
	return s.detail(ctx, created)
}

func (s *ApplicationService) ListMine(ctx context.Context, studentID common.UUID) ([]application.StudentView, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

// GetMineForPosting returns CodeNotFound when the student has not applied;
// callers treat that as a normal outcome, not a failure.
func (s *ApplicationService) GetMineForPosting(ctx context.Context, studentID, postingID common.UUID) (*application.Application, error) {
	return s.repo.FindByStudentAndPosting(ctx, studentID, postingID)
}

func (s *ApplicationService) ListForPosting(ctx context.Context, postingID common.UUID) ([]application.Applicant, error) {
	if _, err := s.postings.GetByID(ctx, postingID); err != nil {
		return nil, err
	}
	return s.repo.ListByPosting(ctx, postingID)
}

func (s *ApplicationService) SetStatus(ctx context.Context, applicationID common.UUID, status application.Status) (*application.Detail, error) {
	next := application.NormalizeStatus(string(status))
	if next != application.StatusApproved && next != application.StatusRejected {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be APROVADO or REPROVADO"})
	}
	current, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if current.Status.Final() && !s.allowStatusOverride {
		return nil, common.NewError(common.CodeInvalidState, "application status is already final", nil)
	}
	updated, err := s.repo.UpdateStatus(ctx, applicationID, next)
	if err != nil {
		return nil, err
	}
	s.logInfo(fmt.Sprintf("application status changed application_id=%s status=%s", applicationID, next))
	// Notifying the student here is the designated extension point.
	return s.detail(ctx, updated)
}

func (s *ApplicationService) detail(ctx context.Context, app *application.Application) (*application.Detail, error) {
	detail := application.Detail{Application: *app}
	if vaga, err := s.postings.GetByID(ctx, app.PostingID); err == nil {
		detail.Posting = application.PostingSummary{
			ID:       vaga.ID,
			Title:    vaga.Title,
			Company:  vaga.Company,
			Location: vaga.Location,
			ClosesAt: vaga.ClosesAt,
		}
	}
	if student, err := s.users.GetByID(ctx, app.StudentID); err == nil {
		detail.Student = application.StudentSummary{
			ID:       student.ID,
			FullName: student.FullName,
			Email:    student.Email,
		}
	}
	return &detail, nil
}

func (s *ApplicationService) logInfo(msg string) {
	if s.logger == nil {
		return
	}
	s.logger.Info(msg)
}
