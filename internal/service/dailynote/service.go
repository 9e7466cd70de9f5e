package dailynote

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/dailynote"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/project"
	"github.com/google/uuid"
)

type DailyNoteServiceImpl struct {
	dailynote.DailyNoteRepository
	project.ProjectRepository
	location *time.Location
	now      func() time.Time
}

func NewDailyNoteService(
	noteRepo dailynote.DailyNoteRepository,
	projectRepo project.ProjectRepository,
	location *time.Location,
) dailynote.DailyNoteService {
	return newDailyNoteService(noteRepo, projectRepo, location, time.Now)
}

func newDailyNoteService(
	noteRepo dailynote.DailyNoteRepository,
	projectRepo project.ProjectRepository,
	location *time.Location,
	now func() time.Time,
) *DailyNoteServiceImpl {
	if location == nil {
		location = time.UTC
	}
	return &DailyNoteServiceImpl{
		DailyNoteRepository: noteRepo,
		ProjectRepository:   projectRepo,
		location:            location,
		now:                 now,
	}
}

func (s *DailyNoteServiceImpl) dayOrToday(date string) (attendance.DayKey, error) {
	if date == "" {
		return attendance.DayKeyOf(s.now(), s.location), nil
	}
	return attendance.ParseDayKey(date)
}

// Get implements dailynote.DailyNoteService. A day without a note reads as empty text.
func (s *DailyNoteServiceImpl) Get(ctx context.Context, req dailynote.GetDailyNoteRequest) (dailynote.DailyNoteResponse, error) {
	if err := req.Validate(); err != nil {
		return dailynote.DailyNoteResponse{}, err
	}

	day, err := s.dayOrToday(req.Date)
	if err != nil {
		return dailynote.DailyNoteResponse{}, err
	}

	note, err := s.DailyNoteRepository.Get(ctx, req.EmployeeID, req.ProjectID, day.Time())
	if err != nil {
		return dailynote.DailyNoteResponse{}, fmt.Errorf("failed to get daily note: %w", err)
	}
	if note == nil {
		return dailynote.DailyNoteResponse{ProjectID: req.ProjectID, Date: day.String()}, nil
	}

	return s.toResponse(*note), nil
}

// Save implements dailynote.DailyNoteService.
func (s *DailyNoteServiceImpl) Save(ctx context.Context, req dailynote.SaveDailyNoteRequest) (dailynote.DailyNoteResponse, error) {
	if err := req.Validate(); err != nil {
		return dailynote.DailyNoteResponse{}, err
	}

	day, err := s.dayOrToday(req.Date)
	if err != nil {
		return dailynote.DailyNoteResponse{}, err
	}

	if _, err := s.ProjectRepository.GetByID(ctx, req.ProjectID); err != nil {
		return dailynote.DailyNoteResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return dailynote.DailyNoteResponse{}, fmt.Errorf("failed to generate daily note id: %w", err)
	}

	saved, err := s.DailyNoteRepository.Upsert(ctx, dailynote.Note{
		ID:         id.String(),
		EmployeeID: req.EmployeeID,
		ProjectID:  req.ProjectID,
		Date:       day.Time(),
		Notes:      req.Notes,
	})
	if err != nil {
		return dailynote.DailyNoteResponse{}, fmt.Errorf("failed to save daily note: %w", err)
	}

	slog.Info("daily note saved", "employee_id", req.EmployeeID, "project_id", req.ProjectID, "date", day.String())

	return s.toResponse(saved), nil
}

func (s *DailyNoteServiceImpl) toResponse(n dailynote.Note) dailynote.DailyNoteResponse {
	updatedAt := n.UpdatedAt.In(s.location).Format(time.RFC3339)
	return dailynote.DailyNoteResponse{
		ProjectID: n.ProjectID,
		Date:      attendance.DayKeyFromDate(n.Date).String(),
		Notes:     n.Notes,
		UpdatedAt: &updatedAt,
	}
}
