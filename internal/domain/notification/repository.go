package notification

import (
	"context"

	"estagio/internal/common"
)

type Repository interface {
	// CreateBatch inserts one row per recipient in a single statement and
	// returns the number of rows written.
	CreateBatch(ctx context.Context, items []Notification) (int, error)
	ListByRecipient(ctx context.Context, recipientID common.UUID) ([]WithSender, error)
	ListUnread(ctx context.Context, recipientID common.UUID, limit int) ([]Notification, error)
	// MarkRead, Delete: scoped to the recipient; zero rows affected is
	// CodeNotFound, never silent success.
	MarkRead(ctx context.Context, id, recipientID common.UUID) error
	MarkAllRead(ctx context.Context, recipientID common.UUID) error
	Delete(ctx context.Context, id, recipientID common.UUID) error
}
