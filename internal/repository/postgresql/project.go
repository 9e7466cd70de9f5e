package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/tracking"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type projectRepositoryImpl struct {
	db *database.DB
}

func NewProjectRepository(db *database.DB) project.ProjectRepository {
	return &projectRepositoryImpl{db: db}
}

// GetByID implements project.ProjectRepository.
func (r *projectRepositoryImpl) GetByID(ctx context.Context, id string) (project.Project, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.name, p.company_id, COALESCE(p.tracking_mode, ''), p.is_active,
			   p.created_at, p.updated_at, c.name
		FROM projects p
		LEFT JOIN companies c ON c.id = p.company_id
		WHERE p.id = $1
	`

	var (
		p    project.Project
		mode string
	)
	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.CompanyID, &mode, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt, &p.CompanyName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return project.Project{}, fmt.Errorf("project with id %s: %w", id, project.ErrProjectNotFound)
		}
		return project.Project{}, fmt.Errorf("failed to get project with id %s: %w", id, err)
	}
	p.TrackingMode = tracking.Mode(mode)

	return p, nil
}

// CountByTrackingMode implements project.ProjectRepository.
func (r *projectRepositoryImpl) CountByTrackingMode(ctx context.Context, mode tracking.Mode) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM projects WHERE tracking_mode = $1`, string(mode)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count projects on mode %s: %w", mode, err)
	}
	return count, nil
}

// ReplaceTrackingMode implements project.ProjectRepository.
func (r *projectRepositoryImpl) ReplaceTrackingMode(ctx context.Context, from, to tracking.Mode) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE projects
		SET tracking_mode = $2, updated_at = NOW()
		WHERE tracking_mode = $1
	`

	tag, err := q.Exec(ctx, query, string(from), string(to))
	if err != nil {
		return 0, fmt.Errorf("failed to move projects from %s to %s: %w", from, to, err)
	}
	return tag.RowsAffected(), nil
}
