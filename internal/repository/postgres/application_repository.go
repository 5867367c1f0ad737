package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"estagio/internal/common"
	"estagio/internal/domain/application"
)

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	app.ID = common.NewUUID()
	app.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO applications (id, student_id, posting_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		app.ID, app.StudentID, app.PostingID, app.Status, app.CreatedAt)
	if err != nil {
		if _, ok := isUniqueViolation(err); ok {
			return nil, common.NewError(common.CodeConflict, "already applied to this posting", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, student_id, posting_id, status, created_at FROM applications WHERE id = $1`, id)
	return scanApplication(row)
}

func (r *ApplicationRepository) FindByStudentAndPosting(ctx context.Context, studentID, postingID common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, student_id, posting_id, status, created_at FROM applications WHERE student_id = $1 AND posting_id = $2`, studentID, postingID)
	return scanApplication(row)
}

func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID common.UUID) ([]application.StudentView, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT a.id, a.student_id, a.posting_id, a.status, a.created_at,
			p.id, p.title, p.company, p.location, p.closes_at
		FROM applications a
		JOIN postings p ON p.id = a.posting_id
		WHERE a.student_id = $1
		ORDER BY a.created_at DESC`, studentID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list student applications", err)
	}
	defer rows.Close()
	var items []application.StudentView
	for rows.Next() {
		var view application.StudentView
		if err := rows.Scan(&view.ID, &view.StudentID, &view.PostingID, &view.Status, &view.CreatedAt,
			&view.Posting.ID, &view.Posting.Title, &view.Posting.Company, &view.Posting.Location, &view.Posting.ClosesAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan application", err)
		}
		items = append(items, view)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to iterate applications", err)
	}
	return items, nil
}

func (r *ApplicationRepository) ListByPosting(ctx context.Context, postingID common.UUID) ([]application.Applicant, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT a.id, a.student_id, a.posting_id, a.status, a.created_at,
			u.id, u.full_name, u.email, u.course, u.term
		FROM applications a
		JOIN users u ON u.id = a.student_id
		WHERE a.posting_id = $1
		ORDER BY a.created_at ASC`, postingID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list posting applications", err)
	}
	defer rows.Close()
	var items []application.Applicant
	for rows.Next() {
		var (
			applicant application.Applicant
			course    sql.NullString
			term      sql.NullInt64
		)
		if err := rows.Scan(&applicant.ID, &applicant.StudentID, &applicant.PostingID, &applicant.Status, &applicant.CreatedAt,
			&applicant.Student.ID, &applicant.Student.FullName, &applicant.Student.Email, &course, &term); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan applicant", err)
		}
		applicant.Student.Course = course.String
		applicant.Student.Term = int(term.Int64)
		items = append(items, applicant)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to iterate applicants", err)
	}
	return items, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id common.UUID, status application.Status) (*application.Application, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE applications SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application status", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "application not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, id)
}

func scanApplication(row rowScanner) (*application.Application, error) {
	var app application.Application
	if err := row.Scan(&app.ID, &app.StudentID, &app.PostingID, &app.Status, &app.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return &app, nil
}
