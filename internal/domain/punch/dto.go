package punch

import (
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/tracking"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/pkg/validator"
)

// ========================================
// PUNCH DTOs
// ========================================

type PunchRequest struct {
	EmployeeID string   `json:"-"` // from token claims
	ProjectID  string   `json:"project_id"`
	Kind       *string  `json:"kind,omitempty"` // optional; must match the next expected kind
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
}

func (r *PunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if !validator.IsValidUUID(r.ProjectID) {
		errs = append(errs, validator.ValidationError{
			Field:   "project_id",
			Message: "project_id must be a valid UUID",
		})
	}

	if r.Kind != nil && !tracking.Kind(*r.Kind).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind is not a known punch kind",
		})
	}

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude and longitude must be sent together",
		})
	}

	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.Notes != nil && len(*r.Notes) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PunchResponse struct {
	ID          string   `json:"id"`
	EmployeeID  string   `json:"employee_id"`
	ProjectID   string   `json:"project_id"`
	ProjectName string   `json:"project_name"`
	Kind        string   `json:"kind"`
	KindLabel   string   `json:"kind_label"`
	Timestamp   string   `json:"timestamp"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Notes       *string  `json:"notes,omitempty"`

	// Set on the punch submission response only
	Next *NextPunchResponse `json:"next,omitempty"`
}

// ========================================
// NEXT PUNCH DTOs
// ========================================

type NextPunchRequest struct {
	EmployeeID string `json:"-"`
	ProjectID  string `json:"project_id"`
	Date       string `json:"date"` // YYYY-MM-DD, defaults to today
}

func (r *NextPunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if !validator.IsValidUUID(r.ProjectID) {
		errs = append(errs, validator.ValidationError{
			Field:   "project_id",
			Message: "project_id must be a valid UUID",
		})
	}

	if r.Date != "" {
		if _, valid := validator.IsValidDate(r.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type NextPunchResponse struct {
	ProjectID    string  `json:"project_id"`
	Date         string  `json:"date"`
	TrackingMode string  `json:"tracking_mode"`
	ModeLabel    string  `json:"mode_label"`
	Kind         *string `json:"kind,omitempty"`
	KindLabel    *string `json:"kind_label,omitempty"`
	Step         int     `json:"step"`
	TotalSteps   int     `json:"total_steps"`
	Complete     bool    `json:"complete"`
	FellBack     bool    `json:"fell_back,omitempty"` // unknown mode resolved with the legacy flow
}

// ========================================
// LISTING DTOs
// ========================================

type MyPunchesRequest struct {
	EmployeeID string `json:"-"`
	Date       string `json:"date"` // YYYY-MM-DD, defaults to today
}

func (r *MyPunchesRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if r.Date != "" {
		if _, valid := validator.IsValidDate(r.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TrackingModeResponse struct {
	Mode        string            `json:"mode"`
	Label       string            `json:"label"`
	Description string            `json:"description"`
	Steps       []TrackingStepDTO `json:"steps"`
}

type TrackingStepDTO struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
}

// MaxListRangeDays caps the admin punch listing, inclusive of both ends.
const MaxListRangeDays = 92

// ListPunchesRequest filters the admin listing of raw punch records.
// Dates are local days, both inclusive.
type ListPunchesRequest struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	ProjectID  *string `json:"project_id,omitempty"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
}

func (r *ListPunchesRequest) Validate() error {
	var errs validator.ValidationErrors

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
		switch {
		case end.Before(start):
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		case int(end.Sub(start).Hours()/24)+1 > MaxListRangeDays:
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "date range must not exceed 92 days",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
