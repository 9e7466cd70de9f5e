package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/dailynote"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type dailyNoteRepositoryImpl struct {
	db *database.DB
}

func NewDailyNoteRepository(db *database.DB) dailynote.DailyNoteRepository {
	return &dailyNoteRepositoryImpl{db: db}
}

const dailyNoteColumns = `id, employee_id, project_id, date, notes, created_at, updated_at`

// Get implements dailynote.DailyNoteRepository.
func (r *dailyNoteRepositoryImpl) Get(ctx context.Context, employeeID, projectID string, date time.Time) (*dailynote.Note, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + dailyNoteColumns + `
		FROM daily_notes
		WHERE employee_id = $1 AND project_id = $2 AND date = $3
	`

	n, err := scanDailyNote(q.QueryRow(ctx, query, employeeID, projectID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get daily note: %w", err)
	}

	return &n, nil
}

// Upsert implements dailynote.DailyNoteRepository. The id of an existing
// note is kept.
func (r *dailyNoteRepositoryImpl) Upsert(ctx context.Context, n dailynote.Note) (dailynote.Note, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO daily_notes (id, employee_id, project_id, date, notes)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, project_id, date)
		DO UPDATE SET notes = EXCLUDED.notes, updated_at = NOW()
		RETURNING ` + dailyNoteColumns

	saved, err := scanDailyNote(q.QueryRow(ctx, query, n.ID, n.EmployeeID, n.ProjectID, n.Date, n.Notes))
	if err != nil {
		return dailynote.Note{}, fmt.Errorf("failed to upsert daily note: %w", err)
	}

	return saved, nil
}

func scanDailyNote(row pgx.Row) (dailynote.Note, error) {
	var n dailynote.Note
	err := row.Scan(&n.ID, &n.EmployeeID, &n.ProjectID, &n.Date, &n.Notes, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}
