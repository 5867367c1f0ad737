package app

import (
	"context"
	"strings"
	"time"

	"estagio/internal/common"
	"estagio/internal/domain/document"
	"estagio/internal/domain/user"
	"estagio/internal/security"
)

type UserService struct {
	users     user.Repository
	documents document.Repository
}

func NewUserService(users user.Repository, documents document.Repository) *UserService {
	return &UserService{users: users, documents: documents}
}

// ProfileWithDocuments mirrors the profile page payload: the sanitized user
// plus their uploaded document metadata.
type ProfileWithDocuments struct {
	user.Profile
	Documents []document.Document `json:"documentos"`
}

func (s *UserService) GetProfile(ctx context.Context, userID common.UUID) (*ProfileWithDocuments, error) {
	account, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	docs, err := s.documents.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ProfileWithDocuments{Profile: account.Profile(), Documents: docs}, nil
}

// UpdateProfileInput carries partial updates; nil pointers mean "leave as is".
type UpdateProfileInput struct {
	FullName  *string
	Phone     *string
	BirthDate *string
	PhotoURL  *string
	Email     *string
	CPF       *string
	Course    *string
	Term      *int
	Matricula *string

	OldPassword        string
	NewPassword        string
	ConfirmNewPassword string
}

func (s *UserService) UpdateProfile(ctx context.Context, userID common.UUID, input UpdateProfileInput) (*user.Profile, error) {
	account, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	changed := false
	if input.FullName != nil {
		account.FullName = strings.TrimSpace(*input.FullName)
		changed = true
	}
	if input.Phone != nil {
		account.Phone = strings.TrimSpace(*input.Phone)
		changed = true
	}
	if input.PhotoURL != nil {
		account.PhotoURL = strings.TrimSpace(*input.PhotoURL)
		changed = true
	}
	if input.BirthDate != nil {
		if strings.TrimSpace(*input.BirthDate) == "" {
			account.BirthDate = nil
		} else {
			parsed, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(*input.BirthDate), time.UTC)
			if err != nil {
				return nil, common.NewValidationError("invalid birth date", map[string]string{"data_nascimento": "birth date must be YYYY-MM-DD"})
			}
			account.BirthDate = &parsed
		}
		changed = true
	}

	// Student-only fields are ignored for technicians, matching the original
	// behavior of silently dropping them.
	if account.Role == user.RoleStudent {
		if input.CPF != nil {
			account.CPF = strings.TrimSpace(*input.CPF)
			changed = true
		}
		if input.Course != nil {
			account.Course = strings.TrimSpace(*input.Course)
			changed = true
		}
		if input.Term != nil {
			account.Term = *input.Term
			changed = true
		}
		if input.Matricula != nil {
			account.Matricula = strings.TrimSpace(*input.Matricula)
			changed = true
		}
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email != "" && email != account.Email {
			if existing, err := s.users.GetByEmail(ctx, email); err == nil && existing.ID != userID {
				return nil, common.NewError(common.CodeConflict, "email already in use", nil)
			} else if err != nil && !common.Is(err, common.CodeNotFound) {
				return nil, err
			}
			account.Email = email
			changed = true
		}
	}

	if input.NewPassword != "" {
		if input.OldPassword == "" {
			return nil, common.NewValidationError("current password required", map[string]string{"senha_antiga": "confirm your current password to set a new one"})
		}
		if len(input.NewPassword) < minPasswordLength {
			return nil, common.NewValidationError("password too short", map[string]string{"nova_senha": "password must have at least 6 characters"})
		}
		if input.NewPassword != input.ConfirmNewPassword {
			return nil, common.NewValidationError("passwords do not match", map[string]string{"confirmar_nova_senha": "passwords do not match"})
		}
		if !security.ComparePassword(account.PasswordHash, input.OldPassword) {
			return nil, common.NewValidationError("current password incorrect", map[string]string{"senha_antiga": "current password incorrect"})
		}
		hash, err := security.HashPassword(input.NewPassword)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to hash password", err)
		}
		account.PasswordHash = hash
		changed = true
	}

	if !changed {
		return nil, common.NewValidationError("no fields to update", nil)
	}

	updated, err := s.users.Update(ctx, *account)
	if err != nil {
		return nil, err
	}
	profile := updated.Profile()
	return &profile, nil
}

func (s *UserService) UpdateSettings(ctx context.Context, userID common.UUID, settings user.Settings) (*user.Settings, error) {
	if !user.ValidTheme(settings.Theme) {
		return nil, common.NewValidationError("invalid theme", map[string]string{"tema": "theme must be light, dark or system"})
	}
	if err := s.users.UpdateSettings(ctx, userID, settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// GetStudent is the technician's detail view of one student, documents
// included. Any id that does not belong to a student reads as not found.
func (s *UserService) GetStudent(ctx context.Context, studentID common.UUID) (*ProfileWithDocuments, error) {
	account, err := s.users.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if account.Role != user.RoleStudent {
		return nil, common.NewError(common.CodeNotFound, "student not found", nil)
	}
	docs, err := s.documents.ListByOwner(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return &ProfileWithDocuments{Profile: account.Profile(), Documents: docs}, nil
}

// ListStudents feeds the technician's notification composer.
func (s *UserService) ListStudents(ctx context.Context) ([]user.Profile, error) {
	students, err := s.users.ListStudents(ctx)
	if err != nil {
		return nil, err
	}
	profiles := make([]user.Profile, 0, len(students))
	for i := range students {
		profiles = append(profiles, students[i].Profile())
	}
	return profiles, nil
}
