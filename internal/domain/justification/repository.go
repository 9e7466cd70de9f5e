package justification

import (
	"context"
	"time"
)

// JustificationRepository defines data access for justifications.
// Date ranges are inclusive calendar dates.
type JustificationRepository interface {
	Create(ctx context.Context, j Justification) (Justification, error)
	GetByID(ctx context.Context, id string) (Justification, error)

	// GetByEmployeeAndDate returns nil, nil when the day has no justification
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Justification, error)

	Update(ctx context.Context, j Justification) error
	Delete(ctx context.Context, id string) error

	// ListByEmployeeInRange returns justifications ordered by date, then creation order
	ListByEmployeeInRange(ctx context.Context, employeeID string, from, to time.Time) ([]Justification, error)
}
