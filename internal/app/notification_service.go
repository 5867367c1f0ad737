package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"estagio/internal/common"
	"estagio/internal/domain/notification"
	"estagio/internal/domain/user"
)

type NotificationService struct {
	repo   notification.Repository
	users  user.Repository
	logger Logger
	now    func() time.Time
}

func NewNotificationService(repo notification.Repository, users user.Repository, logger Logger) *NotificationService {
	return &NotificationService{
		repo:   repo,
		users:  users,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// SendInput targets exactly one of: a single matrícula, a course, or every
// student.
type SendInput struct {
	Matricula   string
	Course      string
	AllStudents bool
	Title       string
	Body        string
}

const unreadBadgeLimit = 10

func (s *NotificationService) Send(ctx context.Context, senderID common.UUID, input SendInput) (int, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Body) == "" {
		return 0, common.NewValidationError("missing fields", map[string]string{"titulo": "title and body are required"})
	}
	targets := 0
	if strings.TrimSpace(input.Matricula) != "" {
		targets++
	}
	if strings.TrimSpace(input.Course) != "" {
		targets++
	}
	if input.AllStudents {
		targets++
	}
	if targets != 1 {
		return 0, common.NewValidationError("invalid target", map[string]string{"destinatario": "specify exactly one of matricula, course or all students"})
	}

	recipients, err := s.resolveRecipients(ctx, input)
	if err != nil {
		return 0, err
	}

	now := s.now()
	items := make([]notification.Notification, 0, len(recipients))
	for _, recipientID := range recipients {
		items = append(items, notification.Notification{
			Title:       strings.TrimSpace(input.Title),
			Body:        strings.TrimSpace(input.Body),
			SenderID:    senderID,
			RecipientID: recipientID,
			SentAt:      now,
		})
	}
	count, err := s.repo.CreateBatch(ctx, items)
	if err != nil {
		return 0, err
	}
	s.logInfo(fmt.Sprintf("notification sent sender_id=%s recipients=%d", senderID, count))
	return count, nil
}

func (s *NotificationService) resolveRecipients(ctx context.Context, input SendInput) ([]common.UUID, error) {
	switch {
	case strings.TrimSpace(input.Matricula) != "":
		account, err := s.users.GetByMatricula(ctx, strings.TrimSpace(input.Matricula))
		if err != nil {
			if common.Is(err, common.CodeNotFound) {
				return nil, common.NewError(common.CodeNotFound, "no student with that matrícula", nil)
			}
			return nil, err
		}
		if account.Role != user.RoleStudent {
			return nil, common.NewError(common.CodeNotFound, "no student with that matrícula", nil)
		}
		return []common.UUID{account.ID}, nil
	case strings.TrimSpace(input.Course) != "":
		students, err := s.users.ListStudentsByCourse(ctx, strings.TrimSpace(input.Course))
		if err != nil {
			return nil, err
		}
		if len(students) == 0 {
			return nil, common.NewError(common.CodeNotFound, "no students enrolled in that course", nil)
		}
		return studentIDs(students), nil
	default:
		students, err := s.users.ListStudents(ctx)
		if err != nil {
			return nil, err
		}
		if len(students) == 0 {
			return nil, common.NewError(common.CodeNotFound, "no students registered", nil)
		}
		return studentIDs(students), nil
	}
}

func studentIDs(students []user.User) []common.UUID {
	ids := make([]common.UUID, 0, len(students))
	for i := range students {
		ids = append(ids, students[i].ID)
	}
	return ids
}

func (s *NotificationService) ListMine(ctx context.Context, recipientID common.UUID) ([]notification.WithSender, error) {
	return s.repo.ListByRecipient(ctx, recipientID)
}

func (s *NotificationService) ListUnread(ctx context.Context, recipientID common.UUID) ([]notification.Notification, error) {
	return s.repo.ListUnread(ctx, recipientID, unreadBadgeLimit)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, recipientID common.UUID) error {
	return s.repo.MarkRead(ctx, id, recipientID)
}

// MarkAllRead is idempotent; affecting zero rows is not an error.
func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID common.UUID) error {
	return s.repo.MarkAllRead(ctx, recipientID)
}

func (s *NotificationService) Delete(ctx context.Context, id, recipientID common.UUID) error {
	return s.repo.Delete(ctx, id, recipientID)
}

func (s *NotificationService) logInfo(msg string) {
	if s.logger == nil {
		return
	}
	s.logger.Info(msg)
}
