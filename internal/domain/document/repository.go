package document

import (
	"context"
	"time"

	"estagio/internal/common"
)

type Repository interface {
	Create(ctx context.Context, doc Document) (*Document, error)
	GetByID(ctx context.Context, id common.UUID) (*Document, error)
	FindByOwnerAndType(ctx context.Context, ownerID common.UUID, docType Type) (*Document, error)
	ListByOwner(ctx context.Context, ownerID common.UUID) ([]Document, error)
	// Replace rewrites the file reference of an existing row in place,
	// keeping its id.
	Replace(ctx context.Context, id common.UUID, storedName, originalName string, uploadedAt time.Time) (*Document, error)
	Delete(ctx context.Context, id common.UUID) error
}
