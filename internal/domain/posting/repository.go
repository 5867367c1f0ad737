package posting

import (
	"context"

	"estagio/internal/common"
)

type Repository interface {
	Create(ctx context.Context, p Posting) (*Posting, error)
	Update(ctx context.Context, p Posting) (*Posting, error)
	GetByID(ctx context.Context, id common.UUID) (*Posting, error)
	ListActive(ctx context.Context) ([]Summary, error)
	ListByCreator(ctx context.Context, technicianID common.UUID) ([]Summary, error)
	// DeleteCascade removes the posting and every application referencing it
	// in one transaction, applications first.
	DeleteCascade(ctx context.Context, id common.UUID) error
}
