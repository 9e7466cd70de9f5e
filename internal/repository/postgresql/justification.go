package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/justification"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

type justificationRepositoryImpl struct {
	db *database.DB
}

func NewJustificationRepository(db *database.DB) justification.JustificationRepository {
	return &justificationRepositoryImpl{db: db}
}

const justificationColumns = `
	id, employee_id, date, type, notes, attachment_path, file_name,
	created_by, created_at, updated_at
`

// Create implements justification.JustificationRepository.
func (r *justificationRepositoryImpl) Create(ctx context.Context, j justification.Justification) (justification.Justification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO justifications (
			id, employee_id, date, type, notes, attachment_path, file_name, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + justificationColumns

	created, err := scanJustification(q.QueryRow(ctx, query,
		j.ID, j.EmployeeID, j.Date, string(j.Type), j.Notes, j.AttachmentPath, j.FileName, j.CreatedBy,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return justification.Justification{}, justification.ErrJustificationExists
		}
		return justification.Justification{}, fmt.Errorf("failed to insert justification: %w", err)
	}

	return created, nil
}

// GetByID implements justification.JustificationRepository.
func (r *justificationRepositoryImpl) GetByID(ctx context.Context, id string) (justification.Justification, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + justificationColumns + ` FROM justifications WHERE id = $1`

	j, err := scanJustification(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return justification.Justification{}, justification.ErrJustificationNotFound
		}
		return justification.Justification{}, fmt.Errorf("failed to get justification: %w", err)
	}

	return j, nil
}

// GetByEmployeeAndDate implements justification.JustificationRepository.
func (r *justificationRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*justification.Justification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + justificationColumns + `
		FROM justifications
		WHERE employee_id = $1 AND date = $2
		ORDER BY created_at, id
		LIMIT 1
	`

	j, err := scanJustification(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get justification by employee and date: %w", err)
	}

	return &j, nil
}

// Update implements justification.JustificationRepository.
func (r *justificationRepositoryImpl) Update(ctx context.Context, j justification.Justification) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE justifications
		SET type = $2, notes = $3, attachment_path = $4, file_name = $5, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, j.ID, string(j.Type), j.Notes, j.AttachmentPath, j.FileName)
	if err != nil {
		return fmt.Errorf("failed to update justification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return justification.ErrJustificationNotFound
	}

	return nil
}

// Delete implements justification.JustificationRepository.
func (r *justificationRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM justifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete justification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return justification.ErrJustificationNotFound
	}

	return nil
}

// ListByEmployeeInRange implements justification.JustificationRepository.
func (r *justificationRepositoryImpl) ListByEmployeeInRange(ctx context.Context, employeeID string, from, to time.Time) ([]justification.Justification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + justificationColumns + `
		FROM justifications
		WHERE employee_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date, created_at, id
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query justifications: %w", err)
	}
	defer rows.Close()

	var out []justification.Justification
	for rows.Next() {
		j, err := scanJustification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan justification: %w", err)
		}
		out = append(out, j)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

func scanJustification(row pgx.Row) (justification.Justification, error) {
	var (
		j   justification.Justification
		typ string
	)
	err := row.Scan(
		&j.ID, &j.EmployeeID, &j.Date, &typ, &j.Notes, &j.AttachmentPath, &j.FileName,
		&j.CreatedBy, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return justification.Justification{}, err
	}
	j.Type = justification.Type(typ)
	return j, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
