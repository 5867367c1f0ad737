package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"estagio/internal/common"
	"estagio/internal/domain/document"
	"estagio/internal/domain/user"
	"estagio/internal/storage"
)

type DocumentService struct {
	repo   document.Repository
	files  storage.FileStore
	logger Logger
	now    func() time.Time
}

func NewDocumentService(repo document.Repository, files storage.FileStore, logger Logger) *DocumentService {
	return &DocumentService{
		repo:   repo,
		files:  files,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Upload stores a document, replacing any previous upload of the same type.
// A replace keeps the metadata row id and removes the superseded file; a
// metadata failure after the file write cleans the fresh file up again.
func (s *DocumentService) Upload(ctx context.Context, ownerID common.UUID, docType document.Type, originalName string, content io.Reader) (*document.Document, bool, error) {
	if !docType.Known() {
		return nil, false, common.NewValidationError("invalid document type", map[string]string{"tipo": fmt.Sprintf("type must be one of %v", document.KnownTypes())})
	}
	if originalName == "" {
		return nil, false, common.NewValidationError("no file provided", map[string]string{"arquivo": "a file is required"})
	}

	existing, err := s.repo.FindByOwnerAndType(ctx, ownerID, docType)
	if err != nil && !common.Is(err, common.CodeNotFound) {
		return nil, false, err
	}

	storedName, err := s.files.Save(originalName, content)
	if err != nil {
		return nil, false, common.NewError(common.CodeInternal, "failed to store file", err)
	}

	if existing != nil {
		updated, err := s.repo.Replace(ctx, existing.ID, storedName, originalName, s.now())
		if err != nil {
			_ = s.files.Remove(storedName)
			return nil, false, err
		}
		if removeErr := s.files.Remove(existing.StoredName); removeErr != nil {
			s.logError(fmt.Sprintf("failed to remove replaced file stored_name=%s: %v", existing.StoredName, removeErr))
		}
		return updated, false, nil
	}

	created, err := s.repo.Create(ctx, document.Document{
		OwnerID:      ownerID,
		Type:         docType,
		StoredName:   storedName,
		OriginalName: originalName,
		UploadedAt:   s.now(),
	})
	if err != nil {
		_ = s.files.Remove(storedName)
		return nil, false, err
	}
	s.logInfo(fmt.Sprintf("document uploaded document_id=%s type=%s", created.ID, docType))
	return created, true, nil
}

func (s *DocumentService) ListMine(ctx context.Context, ownerID common.UUID) ([]document.Document, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Delete removes the physical file before the metadata row. If the file
// exists but cannot be removed the row is kept, so the pointer to the
// orphaned file survives.
func (s *DocumentService) Delete(ctx context.Context, id, requesterID common.UUID) error {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if doc.OwnerID != requesterID {
		return common.NewError(common.CodeNotFound, "document not found or not yours", nil)
	}
	if s.files.Exists(doc.StoredName) {
		if err := s.files.Remove(doc.StoredName); err != nil {
			return common.NewError(common.CodeInternal, "failed to remove stored file", err)
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logInfo(fmt.Sprintf("document deleted document_id=%s", id))
	return nil
}

// Open authorizes and returns the document plus its content stream. Students
// may only open their own documents; technicians may open any.
func (s *DocumentService) Open(ctx context.Context, id, requesterID common.UUID, requesterRole user.Role) (*document.Document, io.ReadSeekCloser, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if requesterRole != user.RoleTechnician && doc.OwnerID != requesterID {
		return nil, nil, common.NewError(common.CodeForbidden, "insufficient permission to access this document", nil)
	}
	content, err := s.files.Open(doc.StoredName)
	if err != nil {
		return nil, nil, common.NewError(common.CodeNotFound, "stored file is missing", err)
	}
	return doc, content, nil
}

func (s *DocumentService) logInfo(msg string) {
	if s.logger == nil {
		return
	}
	s.logger.Info(msg)
}

func (s *DocumentService) logError(msg string) {
	if s.logger == nil {
		return
	}
	s.logger.Error(msg)
}
