package app

import (
	"context"
	"fmt"
	"strings"

	"estagio/internal/common"
	"estagio/internal/domain/posting"
	"estagio/internal/domain/user"
)

type PostingService struct {
	postings posting.Repository
	users    user.Repository
	logger   Logger
}

func NewPostingService(postings posting.Repository, users user.Repository, logger Logger) *PostingService {
	return &PostingService{postings: postings, users: users, logger: logger}
}

func validatePosting(p *posting.Posting) error {
	details := map[string]string{}
	if strings.TrimSpace(p.Title) == "" {
		details["titulo"] = "title is required"
	}
	if strings.TrimSpace(p.Description) == "" {
		details["descricao"] = "description is required"
	}
	if strings.TrimSpace(p.Company) == "" {
		details["empresa"] = "company is required"
	}
	if strings.TrimSpace(p.Location) == "" {
		details["local"] = "location is required"
	}
	if p.OpensAt.IsZero() {
		details["data_abertura"] = "opening date is required"
	}
	if p.ClosesAt.IsZero() {
		details["data_encerramento"] = "closing date is required"
	}
	if len(details) > 0 {
		return common.NewValidationError("missing required fields", details)
	}
	if p.ClosesAt.Before(p.OpensAt) {
		return common.NewValidationError("invalid date window", map[string]string{"data_encerramento": "closing date must not precede the opening date"})
	}
	if p.MinTerm < 0 {
		return common.NewValidationError("invalid minimum term", map[string]string{"periodo_minimo": "minimum term must be >= 0"})
	}
	return nil
}

func (s *PostingService) Create(ctx context.Context, p posting.Posting, technicianID common.UUID) (*posting.Posting, error) {
	p.CreatedBy = technicianID
	if err := validatePosting(&p); err != nil {
		return nil, err
	}
	created, err := s.postings.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.logInfo(fmt.Sprintf("posting created posting_id=%s technician_id=%s", created.ID, technicianID))
	return created, nil
}

// Update follows the shared-admin model: any technician may edit any posting.
func (s *PostingService) Update(ctx context.Context, p posting.Posting) (*posting.Posting, error) {
	existing, err := s.postings.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.CreatedBy = existing.CreatedBy
	p.CreatedAt = existing.CreatedAt
	if err := validatePosting(&p); err != nil {
		return nil, err
	}
	return s.postings.Update(ctx, p)
}

func (s *PostingService) Get(ctx context.Context, id common.UUID) (*posting.Detail, error) {
	p, err := s.postings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := posting.Detail{Posting: *p}
	if creator, err := s.users.GetByID(ctx, p.CreatedBy); err == nil {
		detail.CreatorName = creator.FullName
		detail.CreatorEmail = creator.Email
	}
	return &detail, nil
}

// ListOpen is the public feed: active postings only. Date windows are
// re-checked on detail and apply, not at list level.
func (s *PostingService) ListOpen(ctx context.Context) ([]posting.Summary, error) {
	return s.postings.ListActive(ctx)
}

func (s *PostingService) ListMine(ctx context.Context, technicianID common.UUID) ([]posting.Summary, error) {
	return s.postings.ListByCreator(ctx, technicianID)
}

// Delete cascades to the posting's applications; the repository runs both
// deletes in one transaction, applications first.
func (s *PostingService) Delete(ctx context.Context, id common.UUID) error {
	if err := s.postings.DeleteCascade(ctx, id); err != nil {
		return err
	}
	s.logInfo(fmt.Sprintf("posting deleted posting_id=%s", id))
	return nil
}

func (s *PostingService) logInfo(msg string) {
	if s.logger == nil {
		return
	}
	s.logger.Info(msg)
}
