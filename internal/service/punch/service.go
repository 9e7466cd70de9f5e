package punch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/tracking"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/pkg/metrics"
	"github.com/google/uuid"
)

type PunchServiceImpl struct {
	db database.Transactor
	punch.PunchRepository
	project.ProjectRepository
	registry    *tracking.Registry
	defaultMode tracking.Mode
	location    *time.Location
	metrics     *metrics.Metrics
	now         func() time.Time
}

func NewPunchService(
	db database.Transactor,
	punchRepo punch.PunchRepository,
	projectRepo project.ProjectRepository,
	registry *tracking.Registry,
	defaultMode tracking.Mode,
	location *time.Location,
	m *metrics.Metrics,
) punch.PunchService {
	return newPunchService(db, punchRepo, projectRepo, registry, defaultMode, location, m, time.Now)
}

func newPunchService(
	db database.Transactor,
	punchRepo punch.PunchRepository,
	projectRepo project.ProjectRepository,
	registry *tracking.Registry,
	defaultMode tracking.Mode,
	location *time.Location,
	m *metrics.Metrics,
	now func() time.Time,
) *PunchServiceImpl {
	if location == nil {
		location = time.UTC
	}
	if defaultMode == "" {
		defaultMode = tracking.ModeSimple
	}
	return &PunchServiceImpl{
		db:                db,
		PunchRepository:   punchRepo,
		ProjectRepository: projectRepo,
		registry:          registry,
		defaultMode:       defaultMode,
		location:          location,
		metrics:           m,
		now:               now,
	}
}

// resolvedFlow is the flow a project's punches follow.
type resolvedFlow struct {
	tracking.Flow
	fellBack bool
}

// resolveFlow picks the project's flow. Projects without a mode use the
// configured default; an unknown mode falls back to the legacy flow.
func (s *PunchServiceImpl) resolveFlow(p project.Project) (resolvedFlow, error) {
	mode := p.TrackingMode
	if mode == "" {
		mode = s.defaultMode
	}

	flow, err := s.registry.Lookup(mode)
	if err == nil {
		return resolvedFlow{Flow: flow}, nil
	}
	if !errors.Is(err, tracking.ErrUnknownMode) {
		return resolvedFlow{}, err
	}

	slog.Warn("Unknown tracking mode, using legacy flow",
		"project_id", p.ID,
		"tracking_mode", string(mode),
	)
	s.metrics.ModeFallbacks.Inc()

	flow, err = s.registry.Lookup(tracking.ModeLegacy)
	if err != nil {
		return resolvedFlow{}, fmt.Errorf("failed to load legacy flow: %w", err)
	}
	return resolvedFlow{Flow: flow, fellBack: true}, nil
}

func (s *PunchServiceImpl) dayOrToday(date string) (attendance.DayKey, error) {
	if date == "" {
		return attendance.DayKeyOf(s.now(), s.location), nil
	}
	return attendance.ParseDayKey(date)
}

// NextExpected implements punch.PunchService.
func (s *PunchServiceImpl) NextExpected(ctx context.Context, req punch.NextPunchRequest) (punch.NextPunchResponse, error) {
	if err := req.Validate(); err != nil {
		return punch.NextPunchResponse{}, err
	}

	day, err := s.dayOrToday(req.Date)
	if err != nil {
		return punch.NextPunchResponse{}, err
	}

	p, err := s.ProjectRepository.GetByID(ctx, req.ProjectID)
	if err != nil {
		return punch.NextPunchResponse{}, err
	}

	flow, err := s.resolveFlow(p)
	if err != nil {
		return punch.NextPunchResponse{}, err
	}

	start, end := day.Bounds(s.location)
	kinds, err := s.PunchRepository.ListKindsForProjectDay(ctx, req.EmployeeID, req.ProjectID, start, end)
	if err != nil {
		return punch.NextPunchResponse{}, fmt.Errorf("failed to list punches for project day: %w", err)
	}

	next := tracking.Resolve(flow.Steps, len(kinds))
	return s.toNextResponse(p.ID, day, flow, next), nil
}

// Punch implements punch.PunchService.
func (s *PunchServiceImpl) Punch(ctx context.Context, req punch.PunchRequest) (punch.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return punch.PunchResponse{}, err
	}

	now := s.now()
	day := attendance.DayKeyOf(now, s.location)

	var (
		created punch.Event
		p       project.Project
		flow    resolvedFlow
		after   tracking.Next
	)

	err := s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.ProjectRepository.GetByID(ctx, req.ProjectID)
		if err != nil {
			return err
		}
		if !p.IsActive {
			return project.ErrProjectInactive
		}

		flow, err = s.resolveFlow(p)
		if err != nil {
			return err
		}

		if err := s.PunchRepository.LockProjectDay(ctx, req.EmployeeID, req.ProjectID, day.String()); err != nil {
			return fmt.Errorf("failed to lock project day: %w", err)
		}

		start, end := day.Bounds(s.location)
		kinds, err := s.PunchRepository.ListKindsForProjectDay(ctx, req.EmployeeID, req.ProjectID, start, end)
		if err != nil {
			return fmt.Errorf("failed to list punches for project day: %w", err)
		}

		next := tracking.Resolve(flow.Steps, len(kinds))
		if next.Complete {
			s.metrics.PunchesRejected.WithLabelValues("flow_complete").Inc()
			return punch.ErrFlowComplete
		}
		if req.Kind != nil && tracking.Kind(*req.Kind) != next.Kind {
			s.metrics.PunchesRejected.WithLabelValues("unexpected_kind").Inc()
			return fmt.Errorf("%w: expected %s, got %s", punch.ErrUnexpectedKind, next.Kind, *req.Kind)
		}

		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate punch id: %w", err)
		}

		created, err = s.PunchRepository.Create(ctx, punch.Event{
			ID:         id.String(),
			EmployeeID: req.EmployeeID,
			ProjectID:  req.ProjectID,
			Kind:       next.Kind,
			Timestamp:  now.UTC(),
			Latitude:   req.Latitude,
			Longitude:  req.Longitude,
			Notes:      req.Notes,
		})
		if err != nil {
			return fmt.Errorf("failed to create punch event: %w", err)
		}

		after = tracking.Resolve(flow.Steps, len(kinds)+1)
		return nil
	})
	if err != nil {
		return punch.PunchResponse{}, err
	}

	s.metrics.PunchesRecorded.WithLabelValues(string(flow.Mode), string(created.Kind)).Inc()
	slog.Info("Punch recorded",
		"employee_id", created.EmployeeID,
		"project_id", created.ProjectID,
		"kind", string(created.Kind),
		"step", after.Step,
		"total_steps", after.Total,
	)

	created.ProjectName = &p.Name
	created.TrackingMode = &flow.Mode
	resp := s.toPunchResponse(created)
	nextResp := s.toNextResponse(p.ID, day, flow, after)
	resp.Next = &nextResp
	return resp, nil
}

// ListMyPunches implements punch.PunchService.
func (s *PunchServiceImpl) ListMyPunches(ctx context.Context, req punch.MyPunchesRequest) ([]punch.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	day, err := s.dayOrToday(req.Date)
	if err != nil {
		return nil, err
	}

	start, end := day.Bounds(s.location)
	events, err := s.PunchRepository.ListByEmployeeInRange(ctx, req.EmployeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list punches: %w", err)
	}

	out := make([]punch.PunchResponse, 0, len(events))
	for _, e := range events {
		out = append(out, s.toPunchResponse(e))
	}
	return out, nil
}

// List implements punch.PunchService.
func (s *PunchServiceImpl) List(ctx context.Context, req punch.ListPunchesRequest) ([]punch.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	first, err := attendance.ParseDayKey(req.StartDate)
	if err != nil {
		return nil, err
	}
	last, err := attendance.ParseDayKey(req.EndDate)
	if err != nil {
		return nil, err
	}
	_, end := last.Bounds(s.location)

	events, err := s.PunchRepository.List(ctx, punch.EventFilter{
		EmployeeID: req.EmployeeID,
		ProjectID:  req.ProjectID,
		Start:      first.Start(s.location),
		End:        end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list punches: %w", err)
	}

	out := make([]punch.PunchResponse, 0, len(events))
	for _, e := range slices.Backward(events) {
		out = append(out, s.toPunchResponse(e))
	}
	return out, nil
}

// ListTrackingModes implements punch.PunchService.
func (s *PunchServiceImpl) ListTrackingModes(ctx context.Context) []punch.TrackingModeResponse {
	flows := s.registry.Modes()
	out := make([]punch.TrackingModeResponse, 0, len(flows))
	for _, f := range flows {
		mode := punch.TrackingModeResponse{
			Mode:        string(f.Mode),
			Label:       f.Label,
			Description: f.Description,
			Steps:       make([]punch.TrackingStepDTO, 0, len(f.Steps)),
		}
		for _, k := range f.Steps {
			mode.Steps = append(mode.Steps, punch.TrackingStepDTO{
				Kind:  string(k),
				Label: s.label(f.Mode, k),
			})
		}
		out = append(out, mode)
	}
	return out
}

func (s *PunchServiceImpl) label(mode tracking.Mode, kind tracking.Kind) string {
	label, err := s.registry.Label(mode, kind)
	if err != nil {
		return string(kind)
	}
	return label
}

func (s *PunchServiceImpl) toNextResponse(projectID string, day attendance.DayKey, flow resolvedFlow, next tracking.Next) punch.NextPunchResponse {
	resp := punch.NextPunchResponse{
		ProjectID:    projectID,
		Date:         day.String(),
		TrackingMode: string(flow.Mode),
		ModeLabel:    flow.Label,
		Step:         next.Step,
		TotalSteps:   next.Total,
		Complete:     next.Complete,
		FellBack:     flow.fellBack,
	}
	if !next.Complete {
		kind := string(next.Kind)
		label := s.label(flow.Mode, next.Kind)
		resp.Kind = &kind
		resp.KindLabel = &label
	}
	return resp
}

func (s *PunchServiceImpl) toPunchResponse(e punch.Event) punch.PunchResponse {
	mode := tracking.ModeLegacy
	if e.TrackingMode != nil && s.registry.Has(*e.TrackingMode) {
		mode = *e.TrackingMode
	}

	name := attendance.UnknownProjectName
	if e.ProjectName != nil && *e.ProjectName != "" {
		name = *e.ProjectName
	}

	return punch.PunchResponse{
		ID:          e.ID,
		EmployeeID:  e.EmployeeID,
		ProjectID:   e.ProjectID,
		ProjectName: name,
		Kind:        string(e.Kind),
		KindLabel:   s.label(mode, e.Kind),
		Timestamp:   e.Timestamp.In(s.location).Format(time.RFC3339),
		Latitude:    e.Latitude,
		Longitude:   e.Longitude,
		Notes:       e.Notes,
	}
}
