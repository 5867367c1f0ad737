package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"estagio/internal/common"
	"estagio/internal/domain/document"
)

type DocumentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(ctx context.Context, doc document.Document) (*document.Document, error) {
	doc.ID = common.NewUUID()
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO documents (id, owner_id, doc_type, stored_name, original_name, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		doc.ID, doc.OwnerID, doc.Type, doc.StoredName, doc.OriginalName, doc.UploadedAt)
	if err != nil {
		if _, ok := isUniqueViolation(err); ok {
			return nil, common.NewError(common.CodeConflict, "a document of this type already exists", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create document", err)
	}
	return &doc, nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id common.UUID) (*document.Document, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, owner_id, doc_type, stored_name, original_name, uploaded_at FROM documents WHERE id = $1`, id)
	return scanDocument(row)
}

func (r *DocumentRepository) FindByOwnerAndType(ctx context.Context, ownerID common.UUID, docType document.Type) (*document.Document, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, owner_id, doc_type, stored_name, original_name, uploaded_at FROM documents WHERE owner_id = $1 AND doc_type = $2`, ownerID, docType)
	return scanDocument(row)
}

func (r *DocumentRepository) ListByOwner(ctx context.Context, ownerID common.UUID) ([]document.Document, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, owner_id, doc_type, stored_name, original_name, uploaded_at FROM documents WHERE owner_id = $1 ORDER BY uploaded_at DESC`, ownerID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list documents", err)
	}
	defer rows.Close()
	var items []document.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to iterate documents", err)
	}
	return items, nil
}

func (r *DocumentRepository) Replace(ctx context.Context, id common.UUID, storedName, originalName string, uploadedAt time.Time) (*document.Document, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE documents SET stored_name = $1, original_name = $2, uploaded_at = $3 WHERE id = $4`,
		storedName, originalName, uploadedAt, id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to replace document", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "document not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, id)
}

func (r *DocumentRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete document", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "document not found", sql.ErrNoRows)
	}
	return nil
}

func scanDocument(row rowScanner) (*document.Document, error) {
	var doc document.Document
	if err := row.Scan(&doc.ID, &doc.OwnerID, &doc.Type, &doc.StoredName, &doc.OriginalName, &doc.UploadedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "document not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load document", err)
	}
	return &doc, nil
}
