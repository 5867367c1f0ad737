package user

import (
	"context"

	"estagio/internal/common"
)

type Repository interface {
	Create(ctx context.Context, account User) (*User, error)
	GetByID(ctx context.Context, id common.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByMatricula(ctx context.Context, matricula string) (*User, error)
	ListStudents(ctx context.Context) ([]User, error)
	ListStudentsByCourse(ctx context.Context, course string) ([]User, error)
	Update(ctx context.Context, account User) (*User, error)
	UpdateSettings(ctx context.Context, id common.UUID, settings Settings) error
}
