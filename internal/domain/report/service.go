package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	// HoursReport totals paired hours per employee and project over a date range
	HoursReport(ctx context.Context, req HoursReportRequest) (HoursReport, error)

	// MonthlyOverview summarizes one month for every active employee
	MonthlyOverview(ctx context.Context, req OverviewRequest) (MonthlyOverview, error)
}
