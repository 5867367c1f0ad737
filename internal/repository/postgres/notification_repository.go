package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"estagio/internal/common"
	"estagio/internal/domain/notification"
)

type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) CreateBatch(ctx context.Context, items []notification.Notification) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	var (
		builder strings.Builder
		args    []any
	)
	builder.WriteString(`INSERT INTO notifications (id, title, body, read, sender_id, recipient_id, sent_at) VALUES `)
	for i, item := range items {
		if i > 0 {
			builder.WriteString(", ")
		}
		base := i * 7
		fmt.Fprintf(&builder, "($%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7)
		args = append(args, common.NewUUID(), item.Title, item.Body, false, item.SenderID, item.RecipientID, now)
	}
	result, err := r.db.ExecContext(ctx, builder.String(), args...)
	if err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to create notifications", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return len(items), nil
	}
	return int(rows), nil
}

func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID common.UUID) ([]notification.WithSender, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT n.id, n.title, n.body, n.read, n.sender_id, n.recipient_id, n.sent_at, u.full_name
		FROM notifications n
		JOIN users u ON u.id = n.sender_id
		WHERE n.recipient_id = $1
		ORDER BY n.sent_at DESC`, recipientID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list notifications", err)
	}
	defer rows.Close()
	var items []notification.WithSender
	for rows.Next() {
		var item notification.WithSender
		if err := rows.Scan(&item.ID, &item.Title, &item.Body, &item.Read, &item.SenderID, &item.RecipientID, &item.SentAt, &item.SenderName); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan notification", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to iterate notifications", err)
	}
	return items, nil
}

func (r *NotificationRepository) ListUnread(ctx context.Context, recipientID common.UUID, limit int) ([]notification.Notification, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, body, read, sender_id, recipient_id, sent_at
		FROM notifications
		WHERE recipient_id = $1 AND read = FALSE
		ORDER BY sent_at DESC
		LIMIT $2`, recipientID, limit)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list unread notifications", err)
	}
	defer rows.Close()
	var items []notification.Notification
	for rows.Next() {
		var item notification.Notification
		if err := rows.Scan(&item.ID, &item.Title, &item.Body, &item.Read, &item.SenderID, &item.RecipientID, &item.SentAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan notification", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to iterate notifications", err)
	}
	return items, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, recipientID common.UUID) error {
	result, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1 AND recipient_id = $2`, id, recipientID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to mark notification as read", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "notification not found", sql.ErrNoRows)
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID common.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = TRUE WHERE recipient_id = $1 AND read = FALSE`, recipientID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to mark notifications as read", err)
	}
	return nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id, recipientID common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1 AND recipient_id = $2`, id, recipientID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete notification", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "notification not found", sql.ErrNoRows)
	}
	return nil
}
