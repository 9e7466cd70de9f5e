package punch

import (
	"time"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/tracking"
)

// Event is a single recorded punch. Events are append-only.
type Event struct {
	ID         string
	EmployeeID string
	ProjectID  string
	Kind       tracking.Kind
	Timestamp  time.Time
	Latitude   *float64
	Longitude  *float64
	Notes      *string
	CreatedAt  time.Time

	// DTO
	ProjectName  *string // nil when the project no longer exists
	TrackingMode *tracking.Mode
}

// EventFilter narrows event listings for reports. Start is inclusive, End exclusive.
type EventFilter struct {
	EmployeeID *string
	ProjectID  *string
	Start      time.Time
	End        time.Time
}
