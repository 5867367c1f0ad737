package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"estagio/internal/common"
	"estagio/internal/domain/user"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, full_name, email, password_hash, role, phone, photo_url, birth_date, cpf, course, term, matricula, settings, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, account user.User) (*user.User, error) {
	account.ID = common.NewUUID()
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now
	settings, err := json.Marshal(account.Settings)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to encode settings", err)
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO users (id, full_name, email, password_hash, role, phone, photo_url, birth_date, cpf, course, term, matricula, settings, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		account.ID, account.FullName, account.Email, account.PasswordHash, account.Role,
		nullString(account.Phone), nullString(account.PhotoURL), nullTime(account.BirthDate),
		nullString(account.CPF), nullString(account.Course), nullInt(account.Term), nullString(account.Matricula),
		settings, account.CreatedAt, account.UpdatedAt)
	if err != nil {
		if constraint, ok := isUniqueViolation(err); ok {
			return nil, common.NewError(common.CodeConflict, conflictMessage(constraint), err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create user", err)
	}
	return &account, nil
}

func conflictMessage(constraint string) string {
	switch {
	case strings.Contains(constraint, "email"):
		return "email already registered"
	case strings.Contains(constraint, "cpf"):
		return "cpf already registered"
	case strings.Contains(constraint, "matricula"):
		return "matrícula already registered"
	default:
		return "user already exists"
	}
}

func (r *UserRepository) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *UserRepository) GetByMatricula(ctx context.Context, matricula string) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE matricula = $1`, matricula)
	return scanUser(row)
}

func (r *UserRepository) ListStudents(ctx context.Context) ([]user.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY full_name ASC`, user.RoleStudent)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list students", err)
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (r *UserRepository) ListStudentsByCourse(ctx context.Context, course string) ([]user.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users WHERE role = $1 AND course = $2 ORDER BY full_name ASC`, user.RoleStudent, course)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list students by course", err)
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (r *UserRepository) Update(ctx context.Context, account user.User) (*user.User, error) {
	account.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE users SET full_name = $1, email = $2, password_hash = $3, phone = $4, photo_url = $5, birth_date = $6, cpf = $7, course = $8, term = $9, matricula = $10, updated_at = $11
		WHERE id = $12`,
		account.FullName, account.Email, account.PasswordHash,
		nullString(account.Phone), nullString(account.PhotoURL), nullTime(account.BirthDate),
		nullString(account.CPF), nullString(account.Course), nullInt(account.Term), nullString(account.Matricula),
		account.UpdatedAt, account.ID)
	if err != nil {
		if constraint, ok := isUniqueViolation(err); ok {
			return nil, common.NewError(common.CodeConflict, conflictMessage(constraint), err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to update user", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "user not found", sql.ErrNoRows)
	}
	return &account, nil
}

func (r *UserRepository) UpdateSettings(ctx context.Context, id common.UUID, settings user.Settings) error {
	encoded, err := json.Marshal(settings)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to encode settings", err)
	}
	result, err := r.db.ExecContext(ctx, `UPDATE users SET settings = $1, updated_at = $2 WHERE id = $3`, encoded, time.Now().UTC(), id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to update settings", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "user not found", sql.ErrNoRows)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*user.User, error) {
	var (
		account   user.User
		phone     sql.NullString
		photo     sql.NullString
		birthDate sql.NullTime
		cpf       sql.NullString
		course    sql.NullString
		term      sql.NullInt64
		matricula sql.NullString
		settings  []byte
	)
	err := row.Scan(&account.ID, &account.FullName, &account.Email, &account.PasswordHash, &account.Role,
		&phone, &photo, &birthDate, &cpf, &course, &term, &matricula, &settings,
		&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "user not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load user", err)
	}
	account.Phone = phone.String
	account.PhotoURL = photo.String
	if birthDate.Valid {
		value := birthDate.Time.UTC()
		account.BirthDate = &value
	}
	account.CPF = cpf.String
	account.Course = course.String
	account.Term = int(term.Int64)
	account.Matricula = matricula.String
	account.Settings = decodeSettings(settings)
	return &account, nil
}

func scanUsers(rows *sql.Rows) ([]user.User, error) {
	var items []user.User
	for rows.Next() {
		account, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to iterate users", err)
	}
	return items, nil
}

// decodeSettings falls back to the defaults for rows predating the column.
func decodeSettings(raw []byte) user.Settings {
	if len(raw) == 0 {
		return user.DefaultSettings()
	}
	var settings user.Settings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return user.DefaultSettings()
	}
	if settings.Theme == "" {
		settings.Theme = user.DefaultSettings().Theme
	}
	return settings
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

func nullInt(value int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(value), Valid: value != 0}
}

func nullTime(value *time.Time) sql.NullTime {
	if value == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *value, Valid: true}
}
