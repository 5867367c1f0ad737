package user

import (
	"time"

	"estagio/internal/common"
)

type Role string

const (
	RoleStudent    Role = "ALUNO"
	RoleTechnician Role = "TECNICO"
)

// Valid reports whether the role belongs to the closed set. Anything else is
// rejected by the role gate, never treated as one of the known roles.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleTechnician
}

type Settings struct {
	Theme              string `json:"tema"`
	EmailNotifications bool   `json:"notificacoesEmail"`
}

func DefaultSettings() Settings {
	return Settings{Theme: "light", EmailNotifications: true}
}

func ValidTheme(theme string) bool {
	return theme == "light" || theme == "dark" || theme == "system"
}

type User struct {
	ID           common.UUID `json:"id"`
	FullName     string      `json:"nome_completo"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Role         Role        `json:"tipo"`
	Phone        string      `json:"numero,omitempty"`
	PhotoURL     string      `json:"foto_perfil,omitempty"`

	// Student-only fields. Empty for technicians.
	BirthDate *time.Time `json:"-"`
	CPF       string     `json:"cpf,omitempty"`
	Course    string     `json:"curso,omitempty"`
	Term      int        `json:"periodo,omitempty"`
	Matricula string     `json:"matricula,omitempty"`

	Settings  Settings  `json:"configuracoes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile is the sanitized projection returned to clients: no password hash,
// birth date flattened to a plain calendar date.
type Profile struct {
	ID        common.UUID `json:"id"`
	FullName  string      `json:"nome_completo"`
	Email     string      `json:"email"`
	Role      Role        `json:"tipo"`
	Phone     string      `json:"numero,omitempty"`
	PhotoURL  string      `json:"foto_perfil,omitempty"`
	BirthDate string      `json:"data_nascimento,omitempty"`
	CPF       string      `json:"cpf,omitempty"`
	Course    string      `json:"curso,omitempty"`
	Term      int         `json:"periodo,omitempty"`
	Matricula string      `json:"matricula,omitempty"`
	Settings  Settings    `json:"configuracoes"`
}

func (u *User) Profile() Profile {
	profile := Profile{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		Phone:     u.Phone,
		PhotoURL:  u.PhotoURL,
		CPF:       u.CPF,
		Course:    u.Course,
		Term:      u.Term,
		Matricula: u.Matricula,
		Settings:  u.Settings.withDefaults(),
	}
	if u.BirthDate != nil {
		profile.BirthDate = u.BirthDate.UTC().Format("2006-01-02")
	}
	return profile
}

// withDefaults backfills rows created before settings were typed.
func (s Settings) withDefaults() Settings {
	if s.Theme == "" {
		s.Theme = DefaultSettings().Theme
	}
	return s
}
