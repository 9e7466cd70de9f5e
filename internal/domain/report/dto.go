package report

import (
	"github.com/cmlabs-hris/punchclock-backend-go/internal/pkg/validator"
)

// MaxRangeDays caps the hours report range, inclusive of both ends.
const MaxRangeDays = 92

// ========================================
// HOURS REPORT
// ========================================

type HoursReportRequest struct {
	StartDate  string  `json:"start_date"` // YYYY-MM-DD
	EndDate    string  `json:"end_date"`   // YYYY-MM-DD, inclusive
	EmployeeID *string `json:"employee_id,omitempty"`
	ProjectID  *string `json:"project_id,omitempty"`
}

func (r *HoursReportRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startValid := validator.IsValidDate(r.StartDate)
	if !startValid {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endValid := validator.IsValidDate(r.EndDate)
	if !endValid {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startValid && endValid {
		if end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: ErrInvalidDateRange.Error(),
			})
		} else if int(end.Sub(start).Hours()/24)+1 > MaxRangeDays {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: ErrDateRangeTooLarge.Error(),
			})
		}
	}

	if r.EmployeeID != nil && !validator.IsValidUUID(*r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if r.ProjectID != nil && !validator.IsValidUUID(*r.ProjectID) {
		errs = append(errs, validator.ValidationError{
			Field:   "project_id",
			Message: "project_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HoursReport struct {
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	GeneratedAt string `json:"generated_at"`

	Rows []HoursReportRow `json:"rows"`

	TotalHours       float64 `json:"total_hours"`
	SuspectIntervals int     `json:"suspect_intervals"`
}

type HoursReportRow struct {
	EmployeeID       string  `json:"employee_id"`
	EmployeeName     string  `json:"employee_name"`
	ProjectID        string  `json:"project_id"`
	ProjectName      string  `json:"project_name"`
	Hours            float64 `json:"hours"`
	DaysWorked       int     `json:"days_worked"`
	Intervals        int     `json:"intervals"`
	UnpairedEvents   int     `json:"unpaired_events"`
	SuspectIntervals int     `json:"suspect_intervals"`
}

// ========================================
// MONTHLY OVERVIEW
// ========================================

type OverviewRequest struct {
	Month string `json:"month"` // YYYY-MM
}

func (r *OverviewRequest) Validate() error {
	if _, valid := validator.IsValidMonth(r.Month); !valid {
		return validator.ValidationErrors{{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		}}
	}
	return nil
}

type MonthlyOverview struct {
	Month       string `json:"month"`
	GeneratedAt string `json:"generated_at"`

	Employees []OverviewEntry `json:"employees"`

	TotalHours    float64 `json:"total_hours"`
	TotalAbsences int     `json:"total_absences"`
}

type OverviewEntry struct {
	EmployeeID         string  `json:"employee_id"`
	EmployeeName       string  `json:"employee_name"`
	TotalHours         float64 `json:"total_hours"`
	WorkedDays         int     `json:"worked_days"`
	BusinessDays       int     `json:"business_days"`
	Absences           int     `json:"absences"`
	JustificationCount int     `json:"justification_count"`
	AverageHoursPerDay float64 `json:"average_hours_per_day"`
	SuspectIntervals   int     `json:"suspect_intervals"`
}
