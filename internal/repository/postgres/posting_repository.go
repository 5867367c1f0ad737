package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"estagio/internal/common"
	"estagio/internal/domain/posting"
)

type PostingRepository struct {
	db *sql.DB
}

func NewPostingRepository(db *sql.DB) *PostingRepository {
	return &PostingRepository{db: db}
}

const postingColumns = `id, title, description, company, location, stipend, weekly_hours, requirements, benefits, opens_at, closes_at, active, required_course, min_term, shift, image_url, notice_url, created_by, created_at, updated_at`

func (r *PostingRepository) Create(ctx context.Context, p posting.Posting) (*posting.Posting, error) {
	p.ID = common.NewUUID()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO postings (id, title, description, company, location, stipend, weekly_hours, requirements, benefits, opens_at, closes_at, active, required_course, min_term, shift, image_url, notice_url, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		p.ID, p.Title, p.Description, p.Company, p.Location,
		nullString(p.Stipend), nullInt(p.WeeklyHours), nullString(p.Requirements), nullString(p.Benefits),
		p.OpensAt, p.ClosesAt, p.Active,
		nullString(p.RequiredCourse), nullInt(p.MinTerm), nullString(p.Shift),
		nullString(p.ImageURL), nullString(p.NoticeURL), p.CreatedBy, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create posting", err)
	}
	return &p, nil
}

func (r *PostingRepository) Update(ctx context.Context, p posting.Posting) (*posting.Posting, error) {
	p.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE postings SET title = $1, description = $2, company = $3, location = $4, stipend = $5, weekly_hours = $6, requirements = $7, benefits = $8, opens_at = $9, closes_at = $10, active = $11, required_course = $12, min_term = $13, shift = $14, image_url = $15, notice_url = $16, updated_at = $17
		WHERE id = $18`,
		p.Title, p.Description, p.Company, p.Location,
		nullString(p.Stipend), nullInt(p.WeeklyHours), nullString(p.Requirements), nullString(p.Benefits),
		p.OpensAt, p.ClosesAt, p.Active,
		nullString(p.RequiredCourse), nullInt(p.MinTerm), nullString(p.Shift),
		nullString(p.ImageURL), nullString(p.NoticeURL), p.UpdatedAt, p.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update posting", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "posting not found", sql.ErrNoRows)
	}
	return &p, nil
}

func (r *PostingRepository) GetByID(ctx context.Context, id common.UUID) (*posting.Posting, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+postingColumns+` FROM postings WHERE id = $1`, id)
	return scanPosting(row)
}

func (r *PostingRepository) ListActive(ctx context.Context) ([]posting.Summary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, company, location, stipend, opens_at, closes_at, active, image_url
		FROM postings WHERE active = TRUE ORDER BY opens_at DESC`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list postings", err)
	}
	defer rows.Close()
	return scanSummaries(rows)
}

func (r *PostingRepository) ListByCreator(ctx context.Context, technicianID common.UUID) ([]posting.Summary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, company, location, stipend, opens_at, closes_at, active, image_url
		FROM postings WHERE created_by = $1 ORDER BY created_at DESC`, technicianID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list technician postings", err)
	}
	defer rows.Close()
	return scanSummaries(rows)
}

// DeleteCascade removes applications first so stores without referential
// cascade never leave dangling rows; both deletes share one transaction.
func (r *PostingRepository) DeleteCascade(ctx context.Context, id common.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM applications WHERE posting_id = $1`, id); err != nil {
		return common.NewError(common.CodeInternal, "failed to delete posting applications", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM postings WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete posting", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "posting not found", sql.ErrNoRows)
	}
	if err := tx.Commit(); err != nil {
		return common.NewError(common.CodeInternal, "failed to commit posting delete", err)
	}
	return nil
}

func scanPosting(row rowScanner) (*posting.Posting, error) {
	var (
		p           posting.Posting
		stipend     sql.NullString
		weeklyHours sql.NullInt64
		reqs        sql.NullString
		benefits    sql.NullString
		course      sql.NullString
		minTerm     sql.NullInt64
		shift       sql.NullString
		image       sql.NullString
		notice      sql.NullString
	)
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Company, &p.Location,
		&stipend, &weeklyHours, &reqs, &benefits,
		&p.OpensAt, &p.ClosesAt, &p.Active,
		&course, &minTerm, &shift, &image, &notice,
		&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "posting not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load posting", err)
	}
	p.Stipend = stipend.String
	p.WeeklyHours = int(weeklyHours.Int64)
	p.Requirements = reqs.String
	p.Benefits = benefits.String
	p.RequiredCourse = course.String
	p.MinTerm = int(minTerm.Int64)
	p.Shift = shift.String
	p.ImageURL = image.String
	p.NoticeURL = notice.String
	return &p, nil
}

func scanSummaries(rows *sql.Rows) ([]posting.Summary, error) {
	var items []posting.Summary
	for rows.Next() {
		var (
			s       posting.Summary
			stipend sql.NullString
			image   sql.NullString
		)
		if err := rows.Scan(&s.ID, &s.Title, &s.Company, &s.Location, &stipend, &s.OpensAt, &s.ClosesAt, &s.Active, &image); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan posting", err)
		}
		s.Stipend = stipend.String
		s.ImageURL = image.String
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to iterate postings", err)
	}
	return items, nil
}
