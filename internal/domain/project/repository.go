package project

import (
	"context"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/tracking"
)

type ProjectRepository interface {
	// GetByID returns project metadata; ErrProjectNotFound when missing
	GetByID(ctx context.Context, id string) (Project, error)

	// CountByTrackingMode counts projects still referencing mode
	CountByTrackingMode(ctx context.Context, mode tracking.Mode) (int64, error)

	// ReplaceTrackingMode moves every project on from to to and returns the number updated
	ReplaceTrackingMode(ctx context.Context, from, to tracking.Mode) (int64, error)
}
