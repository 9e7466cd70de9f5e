package dailynote

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/dailynote"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/tracking"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	employeeID = "0190a000-0000-7000-8000-0000000000e1"
	projectID  = "0190a000-0000-7000-8000-000000000001"
	missingID  = "0190a000-0000-7000-8000-0000000000ff"
)

var brt = time.FixedZone("BRT", -3*60*60)

// ===== fakes =====

type fakeNoteRepo struct {
	notes map[string]dailynote.Note
	err   error
}

func noteKey(employeeID, projectID string, date time.Time) string {
	return employeeID + "/" + projectID + "/" + date.Format("2006-01-02")
}

func (f *fakeNoteRepo) Get(ctx context.Context, employeeID, projectID string, date time.Time) (*dailynote.Note, error) {
	if f.err != nil {
		return nil, f.err
	}
	n, ok := f.notes[noteKey(employeeID, projectID, date)]
	if !ok {
		return nil, nil
	}
	return &n, nil
}

func (f *fakeNoteRepo) Upsert(ctx context.Context, n dailynote.Note) (dailynote.Note, error) {
	if f.err != nil {
		return dailynote.Note{}, f.err
	}
	key := noteKey(n.EmployeeID, n.ProjectID, n.Date)
	if existing, ok := f.notes[key]; ok {
		existing.Notes = n.Notes
		existing.UpdatedAt = existing.UpdatedAt.Add(time.Minute)
		f.notes[key] = existing
		return existing, nil
	}
	n.CreatedAt = time.Date(2024, 3, 4, 21, 0, 0, 0, time.UTC)
	n.UpdatedAt = n.CreatedAt
	f.notes[key] = n
	return n, nil
}

type fakeProjectRepo struct{}

func (fakeProjectRepo) GetByID(ctx context.Context, id string) (project.Project, error) {
	if id != projectID {
		return project.Project{}, project.ErrProjectNotFound
	}
	return project.Project{ID: id, Name: "Client site", TrackingMode: tracking.ModeSimple, IsActive: true}, nil
}

func (fakeProjectRepo) CountByTrackingMode(ctx context.Context, mode tracking.Mode) (int64, error) {
	return 0, nil
}

func (fakeProjectRepo) ReplaceTrackingMode(ctx context.Context, from, to tracking.Mode) (int64, error) {
	return 0, nil
}

func newTestService(repo *fakeNoteRepo) *DailyNoteServiceImpl {
	// 22:30 BRT on March 4 is already March 5 in UTC
	clock := time.Date(2024, 3, 4, 22, 30, 0, 0, brt)
	return newDailyNoteService(repo, fakeProjectRepo{}, brt, func() time.Time { return clock })
}

// ===== tests =====

func TestDailyNoteService_GetWithoutNote(t *testing.T) {
	svc := newTestService(&fakeNoteRepo{notes: map[string]dailynote.Note{}})

	got, err := svc.Get(context.Background(), dailynote.GetDailyNoteRequest{EmployeeID: employeeID, ProjectID: projectID})
	require.NoError(t, err)

	assert.Equal(t, "2024-03-04", got.Date)
	assert.Equal(t, projectID, got.ProjectID)
	assert.Empty(t, got.Notes)
	assert.Nil(t, got.UpdatedAt)
}

func TestDailyNoteService_SaveDefaultsToLocalToday(t *testing.T) {
	repo := &fakeNoteRepo{notes: map[string]dailynote.Note{}}
	svc := newTestService(repo)
	ctx := context.Background()

	saved, err := svc.Save(ctx, dailynote.SaveDailyNoteRequest{EmployeeID: employeeID, ProjectID: projectID, Notes: "Waited for the client"})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", saved.Date)
	assert.Equal(t, "Waited for the client", saved.Notes)
	require.NotNil(t, saved.UpdatedAt)
	assert.Equal(t, "2024-03-04T18:00:00-03:00", *saved.UpdatedAt)

	got, err := svc.Get(ctx, dailynote.GetDailyNoteRequest{EmployeeID: employeeID, ProjectID: projectID, Date: "2024-03-04"})
	require.NoError(t, err)
	assert.Equal(t, "Waited for the client", got.Notes)
}

func TestDailyNoteService_SaveReplacesExistingNote(t *testing.T) {
	repo := &fakeNoteRepo{notes: map[string]dailynote.Note{}}
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Save(ctx, dailynote.SaveDailyNoteRequest{EmployeeID: employeeID, ProjectID: projectID, Date: "2024-03-01", Notes: "first"})
	require.NoError(t, err)
	_, err = svc.Save(ctx, dailynote.SaveDailyNoteRequest{EmployeeID: employeeID, ProjectID: projectID, Date: "2024-03-01", Notes: ""})
	require.NoError(t, err)

	assert.Len(t, repo.notes, 1)
	got, err := svc.Get(ctx, dailynote.GetDailyNoteRequest{EmployeeID: employeeID, ProjectID: projectID, Date: "2024-03-01"})
	require.NoError(t, err)
	assert.Empty(t, got.Notes)
	require.NotNil(t, got.UpdatedAt)
}

func TestDailyNoteService_SaveUnknownProject(t *testing.T) {
	repo := &fakeNoteRepo{notes: map[string]dailynote.Note{}}
	svc := newTestService(repo)

	_, err := svc.Save(context.Background(), dailynote.SaveDailyNoteRequest{EmployeeID: employeeID, ProjectID: missingID, Notes: "x"})

	assert.ErrorIs(t, err, project.ErrProjectNotFound)
	assert.Empty(t, repo.notes)
}

func TestDailyNoteService_Validation(t *testing.T) {
	svc := newTestService(&fakeNoteRepo{notes: map[string]dailynote.Note{}})
	ctx := context.Background()

	cases := []struct {
		name  string
		req   dailynote.SaveDailyNoteRequest
		field string
	}{
		{"blank project", dailynote.SaveDailyNoteRequest{ProjectID: "   "}, "project_id"},
		{"malformed project", dailynote.SaveDailyNoteRequest{ProjectID: "abc"}, "project_id"},
		{"bad date", dailynote.SaveDailyNoteRequest{ProjectID: projectID, Date: "04/03/2024"}, "date"},
		{"notes too long", dailynote.SaveDailyNoteRequest{ProjectID: projectID, Notes: string(make([]rune, dailynote.MaxNotesLength+1))}, "notes"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			c.req.EmployeeID = employeeID
			_, err := svc.Save(ctx, c.req)

			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.Contains(t, verrs.ToMap(), c.field)
		})
	}

	_, err := svc.Get(ctx, dailynote.GetDailyNoteRequest{EmployeeID: employeeID})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "project_id is required", verrs.ToMap()["project_id"])
}

func TestDailyNoteService_RepositoryError(t *testing.T) {
	boom := errors.New("connection reset")
	svc := newTestService(&fakeNoteRepo{err: boom})

	_, err := svc.Get(context.Background(), dailynote.GetDailyNoteRequest{EmployeeID: employeeID, ProjectID: projectID})

	assert.ErrorIs(t, err, boom)
}
