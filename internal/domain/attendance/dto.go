package attendance

import (
	"github.com/cmlabs-hris/punchclock-backend-go/internal/pkg/validator"
)

// ========================================
// SUMMARY DTOs
// ========================================

type SummaryRequest struct {
	EmployeeID string `json:"employee_id"`
	Month      string `json:"month"` // YYYY-MM
}

func (r *SummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if _, valid := validator.IsValidMonth(r.Month); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MonthlySummaryResponse struct {
	EmployeeID                 string                            `json:"employee_id"`
	EmployeeName               *string                           `json:"employee_name,omitempty"`
	Month                      string                            `json:"month"`
	TotalHours                 float64                           `json:"total_hours"`
	UnroundedTotalHours        float64                           `json:"-"` // for aggregating across employees
	WorkedDays                 int                               `json:"worked_days"`
	BusinessDays               int                               `json:"business_days"`
	Absences                   int                               `json:"absences"`
	JustificationCount         int                               `json:"justification_count"`
	JustificationsByType       map[string]int                    `json:"justifications_by_type"`
	AverageHoursPerDay         float64                           `json:"average_hours_per_day"`
	PerDayHours                map[string]float64                `json:"per_day_hours"`
	PerDayDetails              map[string][]ProjectHoursResponse `json:"per_day_details"`
	PerDayRawEvents            map[string][]RawEventResponse     `json:"per_day_raw_events"`
	Justifications             []JustificationEntry              `json:"justifications"`
	DuplicateJustificationDays []string                          `json:"duplicate_justification_days,omitempty"`
	SuspectIntervals           int                               `json:"suspect_intervals"`
}

type ProjectHoursResponse struct {
	ProjectID     string                 `json:"project_id"`
	ProjectName   string                 `json:"project_name"`
	Hours         float64                `json:"hours"`
	Intervals     []WorkIntervalResponse `json:"intervals"`
	UnpairedEvent *RawEventResponse      `json:"unpaired_event,omitempty"`
}

type WorkIntervalResponse struct {
	EntryKind string  `json:"entry_kind"`
	ExitKind  string  `json:"exit_kind"`
	Entry     string  `json:"entry"`
	Exit      string  `json:"exit"`
	Hours     float64 `json:"hours"`
	Suspect   bool    `json:"suspect,omitempty"`
}

type RawEventResponse struct {
	ID          string   `json:"id"`
	ProjectID   string   `json:"project_id"`
	ProjectName string   `json:"project_name"`
	Kind        string   `json:"kind"`
	KindLabel   string   `json:"kind_label"`
	Timestamp   string   `json:"timestamp"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
}

type JustificationEntry struct {
	ID        string  `json:"id"`
	Date      string  `json:"date"`
	Type      string  `json:"type"`
	TypeLabel string  `json:"type_label"`
	Notes     *string `json:"notes,omitempty"`
}

// ========================================
// CALENDAR DTOs
// ========================================

type DayStatusRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"` // YYYY-MM-DD
}

func (r *DayStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CalendarRequest struct {
	EmployeeID string `json:"employee_id"`
	Month      string `json:"month"` // YYYY-MM
}

func (r *CalendarRequest) Validate() error {
	req := SummaryRequest{EmployeeID: r.EmployeeID, Month: r.Month}
	return req.Validate()
}

type DayStatusResponse struct {
	Date               string  `json:"date"`
	Status             string  `json:"status"`
	JustificationType  *string `json:"justification_type,omitempty"`
	JustificationLabel *string `json:"justification_label,omitempty"`
}

type CalendarResponse struct {
	EmployeeID string              `json:"employee_id"`
	Month      string              `json:"month"`
	Today      string              `json:"today"`
	Days       []DayStatusResponse `json:"days"`
	WorkedDays []string            `json:"worked_days"`
}
