package punch

import (
	"context"
	"time"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/tracking"
)

// PunchRepository defines data access for punch events.
// Time ranges are half-open: start inclusive, end exclusive.
type PunchRepository interface {
	// Create appends a new punch event
	Create(ctx context.Context, event Event) (Event, error)

	// ListByEmployeeInRange returns an employee's events with project metadata, ordered by timestamp
	ListByEmployeeInRange(ctx context.Context, employeeID string, start, end time.Time) ([]Event, error)

	// ListKindsForProjectDay returns the kinds punched for one project in one day, in punch order
	ListKindsForProjectDay(ctx context.Context, employeeID, projectID string, start, end time.Time) ([]tracking.Kind, error)

	// List returns events matching filter across employees
	List(ctx context.Context, filter EventFilter) ([]Event, error)

	// LockProjectDay serialises punch writes for one employee, project and day.
	// Must be called inside a transaction.
	LockProjectDay(ctx context.Context, employeeID, projectID string, day string) error
}
