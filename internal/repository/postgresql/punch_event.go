package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/tracking"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type punchEventRepositoryImpl struct {
	db *database.DB
}

func NewPunchEventRepository(db *database.DB) punch.PunchRepository {
	return &punchEventRepositoryImpl{db: db}
}

const punchEventColumns = `
	e.id, e.employee_id, e.project_id, e.kind, e.punched_at,
	e.latitude, e.longitude, e.notes, e.created_at,
	p.name, p.tracking_mode
`

// Create implements punch.PunchRepository.
func (r *punchEventRepositoryImpl) Create(ctx context.Context, event punch.Event) (punch.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO punch_events (
			id, employee_id, project_id, kind, punched_at, latitude, longitude, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		event.ID,
		event.EmployeeID,
		event.ProjectID,
		string(event.Kind),
		event.Timestamp,
		event.Latitude,
		event.Longitude,
		event.Notes,
	).Scan(&event.CreatedAt)
	if err != nil {
		return punch.Event{}, fmt.Errorf("failed to insert punch event: %w", err)
	}

	return event, nil
}

// ListByEmployeeInRange implements punch.PunchRepository.
func (r *punchEventRepositoryImpl) ListByEmployeeInRange(ctx context.Context, employeeID string, start, end time.Time) ([]punch.Event, error) {
	return r.List(ctx, punch.EventFilter{
		EmployeeID: &employeeID,
		Start:      start,
		End:        end,
	})
}

// ListKindsForProjectDay implements punch.PunchRepository.
func (r *punchEventRepositoryImpl) ListKindsForProjectDay(ctx context.Context, employeeID, projectID string, start, end time.Time) ([]tracking.Kind, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT kind
		FROM punch_events
		WHERE employee_id = $1
		  AND project_id = $2
		  AND punched_at >= $3
		  AND punched_at < $4
		ORDER BY punched_at, id
	`

	rows, err := q.Query(ctx, query, employeeID, projectID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query punch kinds: %w", err)
	}
	defer rows.Close()

	var kinds []tracking.Kind
	for rows.Next() {
		var kind string
		if err := rows.Scan(&kind); err != nil {
			return nil, fmt.Errorf("failed to scan punch kind: %w", err)
		}
		kinds = append(kinds, tracking.Kind(kind))
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return kinds, nil
}

// List implements punch.PunchRepository.
func (r *punchEventRepositoryImpl) List(ctx context.Context, filter punch.EventFilter) ([]punch.Event, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "WHERE e.punched_at >= $1 AND e.punched_at < $2"
	args := []any{filter.Start, filter.End}
	argIdx := 3

	if filter.EmployeeID != nil {
		baseWhere += fmt.Sprintf(" AND e.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.ProjectID != nil {
		baseWhere += fmt.Sprintf(" AND e.project_id = $%d", argIdx)
		args = append(args, *filter.ProjectID)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM punch_events e
		LEFT JOIN projects p ON p.id = e.project_id
		%s
		ORDER BY e.punched_at, e.id
	`, punchEventColumns, baseWhere)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query punch events: %w", err)
	}
	defer rows.Close()

	var events []punch.Event
	for rows.Next() {
		event, err := scanPunchEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// LockProjectDay implements punch.PunchRepository.
// The advisory lock is released when the surrounding transaction ends.
func (r *punchEventRepositoryImpl) LockProjectDay(ctx context.Context, employeeID, projectID string, day string) error {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	if !ok {
		return errors.New("lock project day: no transaction in context")
	}

	key := employeeID + "|" + projectID + "|" + day
	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", key); err != nil {
		return fmt.Errorf("failed to acquire punch lock: %w", err)
	}
	return nil
}

func scanPunchEvent(row pgx.Row) (punch.Event, error) {
	var (
		event       punch.Event
		kind        string
		projectName *string
		mode        *string
	)

	err := row.Scan(
		&event.ID, &event.EmployeeID, &event.ProjectID, &kind, &event.Timestamp,
		&event.Latitude, &event.Longitude, &event.Notes, &event.CreatedAt,
		&projectName, &mode,
	)
	if err != nil {
		return punch.Event{}, fmt.Errorf("failed to scan punch event: %w", err)
	}

	event.Kind = tracking.Kind(kind)
	event.ProjectName = projectName
	if mode != nil && *mode != "" {
		m := tracking.Mode(*mode)
		event.TrackingMode = &m
	}

	return event, nil
}
