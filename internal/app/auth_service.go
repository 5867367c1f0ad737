package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"estagio/internal/common"
	"estagio/internal/domain/user"
	"estagio/internal/security"
)

// Logger is the narrow logging surface services require.
type Logger interface {
	Info(msg string)
	Error(msg string)
}

type AuthService struct {
	users       user.Repository
	jwtProvider *security.JWTProvider
	logger      Logger
}

func NewAuthService(users user.Repository, jwtProvider *security.JWTProvider, logger Logger) *AuthService {
	return &AuthService{users: users, jwtProvider: jwtProvider, logger: logger}
}

type RegisterInput struct {
	FullName        string
	Email           string
	Password        string
	ConfirmPassword string
	Phone           string
	BirthDate       string
	CPF             string
	Course          string
	Term            int
	Matricula       string
}

const minPasswordLength = 6

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*user.Profile, error) {
	details := map[string]string{}
	if strings.TrimSpace(input.FullName) == "" {
		details["nome_completo"] = "full name is required"
	}
	if strings.TrimSpace(input.Email) == "" {
		details["email"] = "email is required"
	}
	if input.Password == "" {
		details["senha"] = "password is required"
	}
	if strings.TrimSpace(input.CPF) == "" {
		details["cpf"] = "cpf is required"
	}
	if len(details) > 0 {
		return nil, common.NewValidationError("missing required fields", details)
	}
	if len(input.Password) < minPasswordLength {
		return nil, common.NewValidationError("password too short", map[string]string{"senha": fmt.Sprintf("password must have at least %d characters", minPasswordLength)})
	}
	if input.Password != input.ConfirmPassword {
		return nil, common.NewValidationError("passwords do not match", map[string]string{"confirmar_senha": "passwords do not match"})
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, common.NewError(common.CodeConflict, "email already registered", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}

	var birthDate *time.Time
	if strings.TrimSpace(input.BirthDate) != "" {
		parsed, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(input.BirthDate), time.UTC)
		if err != nil {
			return nil, common.NewValidationError("invalid birth date", map[string]string{"data_nascimento": "birth date must be YYYY-MM-DD"})
		}
		birthDate = &parsed
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to hash password", err)
	}

	account := user.User{
		FullName:     strings.TrimSpace(input.FullName),
		Email:        email,
		PasswordHash: hash,
		Role:         user.RoleStudent,
		Phone:        strings.TrimSpace(input.Phone),
		BirthDate:    birthDate,
		CPF:          strings.TrimSpace(input.CPF),
		Course:       strings.TrimSpace(input.Course),
		Term:         input.Term,
		Matricula:    strings.TrimSpace(input.Matricula),
		Settings:     user.DefaultSettings(),
	}

	// The unique indexes on email, cpf and matricula are the real guard;
	// the lookups above only produce friendlier messages.
	created, err := s.users.Create(ctx, account)
	if err != nil {
		return nil, err
	}
	s.logInfo(fmt.Sprintf("student registered user_id=%s", created.ID))
	profile := created.Profile()
	return &profile, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password produce the same generic error so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *user.Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, common.NewValidationError("missing credentials", map[string]string{"email": "email and password are required"})
	}
	account, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return "", nil, invalidCredentials()
		}
		return "", nil, err
	}
	if !security.ComparePassword(account.PasswordHash, password) {
		return "", nil, invalidCredentials()
	}
	token, _, err := s.jwtProvider.Generate(account.ID, string(account.Role))
	if err != nil {
		return "", nil, common.NewError(common.CodeInternal, "failed to generate token", err)
	}
	s.logInfo(fmt.Sprintf("user logged in user_id=%s", account.ID))
	profile := account.Profile()
	return token, &profile, nil
}

func invalidCredentials() error {
	return common.NewError(common.CodeUnauthorized, "invalid credentials", nil)
}

func (s *AuthService) logInfo(msg string) {
	if s.logger == nil {
		return
	}
	s.logger.Info(msg)
}
