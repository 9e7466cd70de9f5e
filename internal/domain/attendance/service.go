package attendance

import "context"

// AttendanceService exposes the monthly summary and calendar views of an employee's punches
type AttendanceService interface {
	// Summarize reads one month of punches and justifications and aggregates them
	Summarize(ctx context.Context, req SummaryRequest) (MonthlySummaryResponse, error)

	// GetDayStatus classifies a single day for the calendar
	GetDayStatus(ctx context.Context, req DayStatusRequest) (DayStatusResponse, error)

	// GetCalendar classifies every day of a month
	GetCalendar(ctx context.Context, req CalendarRequest) (CalendarResponse, error)
}
