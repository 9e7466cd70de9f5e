package dailynote

import (
	"context"
	"time"
)

type DailyNoteRepository interface {
	// Get returns nil, nil when the day has no note
	Get(ctx context.Context, employeeID, projectID string, date time.Time) (*Note, error)

	// Upsert replaces the text of an existing note for the same day
	Upsert(ctx context.Context, n Note) (Note, error)
}
