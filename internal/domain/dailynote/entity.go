package dailynote

import "time"

// Note is an employee's free text for one project on one local day.
// The store keeps at most one per employee, project and date.
type Note struct {
	ID         string
	EmployeeID string
	ProjectID  string
	Date       time.Time // calendar date, time of day is zero
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
