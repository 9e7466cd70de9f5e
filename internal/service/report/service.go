package report

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/report"
	attendanceEngine "github.com/cmlabs-hris/punchclock-backend-go/internal/service/attendance"
	"golang.org/x/sync/errgroup"
)

const (
	// overviewConcurrency bounds the per-employee summaries computed at once.
	overviewConcurrency = 8

	unknownEmployeeName = "unknown"
)

type ReportServiceImpl struct {
	punch.PunchRepository
	employee.EmployeeRepository
	attendanceService attendance.AttendanceService
	location          *time.Location
	now               func() time.Time
}

func NewReportService(
	punchRepo punch.PunchRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceService attendance.AttendanceService,
	location *time.Location,
) report.ReportService {
	if location == nil {
		location = time.UTC
	}
	return &ReportServiceImpl{
		PunchRepository:    punchRepo,
		EmployeeRepository: employeeRepo,
		attendanceService:  attendanceService,
		location:           location,
		now:                time.Now,
	}
}

type rowKey struct {
	employeeID string
	projectID  string
}

type rowTotals struct {
	report.HoursReportRow
	hours float64
	days  map[attendance.DayKey]struct{}
}

// HoursReport implements report.ReportService.
func (s *ReportServiceImpl) HoursReport(ctx context.Context, req report.HoursReportRequest) (report.HoursReport, error) {
	if err := req.Validate(); err != nil {
		return report.HoursReport{}, err
	}

	first, err := attendance.ParseDayKey(req.StartDate)
	if err != nil {
		return report.HoursReport{}, err
	}
	last, err := attendance.ParseDayKey(req.EndDate)
	if err != nil {
		return report.HoursReport{}, err
	}

	start := first.Start(s.location)
	_, end := last.Bounds(s.location)

	events, err := s.PunchRepository.List(ctx, punch.EventFilter{
		EmployeeID: req.EmployeeID,
		ProjectID:  req.ProjectID,
		Start:      start,
		End:        end,
	})
	if err != nil {
		return report.HoursReport{}, fmt.Errorf("failed to list punch events: %w", err)
	}

	// employee -> day -> events
	buckets := make(map[string]map[attendance.DayKey][]punch.Event)
	for _, e := range events {
		day := attendance.DayKeyOf(e.Timestamp, s.location)
		if buckets[e.EmployeeID] == nil {
			buckets[e.EmployeeID] = make(map[attendance.DayKey][]punch.Event)
		}
		buckets[e.EmployeeID][day] = append(buckets[e.EmployeeID][day], e)
	}

	rows := make(map[rowKey]*rowTotals)
	for employeeID, days := range buckets {
		for day, dayEvents := range days {
			daily := attendanceEngine.ComputeDailyHours(dayEvents, day, s.location)
			for _, ph := range daily.Projects {
				key := rowKey{employeeID: employeeID, projectID: ph.ProjectID}
				row, ok := rows[key]
				if !ok {
					row = &rowTotals{
						HoursReportRow: report.HoursReportRow{
							EmployeeID:  employeeID,
							ProjectID:   ph.ProjectID,
							ProjectName: ph.ProjectName,
						},
						days: make(map[attendance.DayKey]struct{}),
					}
					rows[key] = row
				}

				row.hours += ph.Hours
				row.days[day] = struct{}{}
				row.Intervals += len(ph.Intervals)
				if ph.Unpaired != nil {
					row.UnpairedEvents++
				}
				for _, iv := range ph.Intervals {
					if iv.Suspect {
						row.SuspectIntervals++
					}
				}
			}
		}
	}

	names, err := s.employeeNames(ctx, buckets)
	if err != nil {
		return report.HoursReport{}, err
	}

	resp := report.HoursReport{
		StartDate:   first.String(),
		EndDate:     last.String(),
		GeneratedAt: s.now().In(s.location).Format(time.RFC3339),
		Rows:        make([]report.HoursReportRow, 0, len(rows)),
	}

	var total float64
	for _, row := range rows {
		row.Hours = attendanceEngine.RoundHours(row.hours)
		row.DaysWorked = len(row.days)
		row.EmployeeName = names[row.EmployeeID]
		total += row.hours
		resp.SuspectIntervals += row.SuspectIntervals
		resp.Rows = append(resp.Rows, row.HoursReportRow)
	}
	resp.TotalHours = attendanceEngine.RoundHours(total)

	slices.SortFunc(resp.Rows, func(a, b report.HoursReportRow) int {
		return cmp.Or(
			cmp.Compare(a.EmployeeName, b.EmployeeName),
			cmp.Compare(a.EmployeeID, b.EmployeeID),
			cmp.Compare(a.ProjectName, b.ProjectName),
			cmp.Compare(a.ProjectID, b.ProjectID),
		)
	})

	return resp, nil
}

func (s *ReportServiceImpl) employeeNames(ctx context.Context, buckets map[string]map[attendance.DayKey][]punch.Event) (map[string]string, error) {
	names := make(map[string]string, len(buckets))
	for employeeID := range buckets {
		emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				names[employeeID] = unknownEmployeeName
				continue
			}
			return nil, fmt.Errorf("failed to get employee: %w", err)
		}
		names[employeeID] = emp.FullName
	}
	return names, nil
}

// MonthlyOverview implements report.ReportService.
// Summaries run concurrently; the first failure cancels the rest.
func (s *ReportServiceImpl) MonthlyOverview(ctx context.Context, req report.OverviewRequest) (report.MonthlyOverview, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyOverview{}, err
	}

	month, err := attendance.ParseMonth(req.Month)
	if err != nil {
		return report.MonthlyOverview{}, err
	}

	employees, err := s.EmployeeRepository.ListActive(ctx)
	if err != nil {
		return report.MonthlyOverview{}, fmt.Errorf("failed to list employees: %w", err)
	}

	entries := make([]report.OverviewEntry, len(employees))
	unrounded := make([]float64, len(employees))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(overviewConcurrency)
	for i, emp := range employees {
		g.Go(func() error {
			summary, err := s.attendanceService.Summarize(gctx, attendance.SummaryRequest{
				EmployeeID: emp.ID,
				Month:      month.String(),
			})
			if err != nil {
				return fmt.Errorf("failed to summarize employee %s: %w", emp.ID, err)
			}

			unrounded[i] = summary.UnroundedTotalHours
			entries[i] = report.OverviewEntry{
				EmployeeID:         emp.ID,
				EmployeeName:       emp.FullName,
				TotalHours:         summary.TotalHours,
				WorkedDays:         summary.WorkedDays,
				BusinessDays:       summary.BusinessDays,
				Absences:           summary.Absences,
				JustificationCount: summary.JustificationCount,
				AverageHoursPerDay: summary.AverageHoursPerDay,
				SuspectIntervals:   summary.SuspectIntervals,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report.MonthlyOverview{}, err
	}

	resp := report.MonthlyOverview{
		Month:       month.String(),
		GeneratedAt: s.now().In(s.location).Format(time.RFC3339),
		Employees:   entries,
	}
	var total float64
	for i, e := range entries {
		total += unrounded[i]
		resp.TotalAbsences += e.Absences
	}
	resp.TotalHours = attendanceEngine.RoundHours(total)

	slog.Info("Monthly overview generated",
		"month", resp.Month,
		"employees", len(entries),
	)

	return resp, nil
}
