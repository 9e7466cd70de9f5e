package main

import (
	"encoding/json"
	"time"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/tracking"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/punchclock-backend-go/internal/service/attendance"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var (
	summaryEmployee string
	summaryMonth    string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the monthly attendance summary of one employee",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().StringVar(&summaryEmployee, "employee", "", "Employee ID (required)")
	summaryCmd.Flags().StringVar(&summaryMonth, "month", "", "Month as YYYY-MM (default: current month)")
	_ = summaryCmd.MarkFlagRequired("employee")
}

func runSummary(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, db, err := connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := attendanceService.NewAttendanceService(
		postgresql.NewTransactor(db),
		postgresql.NewPunchEventRepository(db),
		postgresql.NewJustificationRepository(db),
		postgresql.NewEmployeeRepository(db),
		tracking.Default(),
		cfg.Location(),
		metrics.New(prometheus.NewRegistry()),
	)

	summary, err := svc.Summarize(ctx, attendance.SummaryRequest{
		EmployeeID: summaryEmployee,
		Month:      monthOrCurrent(summaryMonth, time.Now(), cfg.Location()),
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}

// monthOrCurrent returns month, or the month containing now in loc when empty
func monthOrCurrent(month string, now time.Time, loc *time.Location) string {
	if month != "" {
		return month
	}
	return attendance.MonthOf(attendance.DayKeyOf(now, loc)).String()
}
