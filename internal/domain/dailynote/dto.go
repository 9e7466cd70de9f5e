package dailynote

import (
	"unicode/utf8"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/pkg/validator"
)

// ========================================
// DAILY NOTE DTOs
// ========================================

const MaxNotesLength = 2000

type GetDailyNoteRequest struct {
	EmployeeID string `json:"-"` // from token claims
	ProjectID  string `json:"project_id"`
	Date       string `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
}

func (r *GetDailyNoteRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateProjectID(r.ProjectID)...)
	errs = append(errs, validateDate(r.Date)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SaveDailyNoteRequest struct {
	EmployeeID string `json:"-"` // from token claims
	ProjectID  string `json:"project_id"`
	Date       string `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
	Notes      string `json:"notes"`
}

func (r *SaveDailyNoteRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateProjectID(r.ProjectID)...)
	errs = append(errs, validateDate(r.Date)...)

	if utf8.RuneCountInString(r.Notes) > MaxNotesLength {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes must be at most 2000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DailyNoteResponse struct {
	ProjectID string  `json:"project_id"`
	Date      string  `json:"date"`
	Notes     string  `json:"notes"`
	UpdatedAt *string `json:"updated_at,omitempty"`
}

func validateProjectID(id string) validator.ValidationErrors {
	if validator.IsEmpty(id) {
		return validator.ValidationErrors{{
			Field:   "project_id",
			Message: "project_id is required",
		}}
	}
	if !validator.IsValidUUID(id) {
		return validator.ValidationErrors{{
			Field:   "project_id",
			Message: "project_id must be a valid UUID",
		}}
	}
	return nil
}

func validateDate(date string) validator.ValidationErrors {
	if date == "" {
		return nil
	}
	if _, valid := validator.IsValidDate(date); !valid {
		return validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}
	return nil
}
