package dailynote

import "context"

// DailyNoteService reads and writes the caller's note for a project day.
// An omitted date means today in the service location.
type DailyNoteService interface {
	Get(ctx context.Context, req GetDailyNoteRequest) (DailyNoteResponse, error)
	Save(ctx context.Context, req SaveDailyNoteRequest) (DailyNoteResponse, error)
}
