package justification

import (
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/pkg/validator"
)

// ========================================
// JUSTIFICATION DTOs
// ========================================

var allowedAttachmentExts = []string{".pdf", ".jpg", ".jpeg", ".png"}

const maxAttachmentSize = 10 << 20 // 10MB

type CreateJustificationRequest struct {
	EmployeeID string                `json:"employee_id"`
	Date       string                `json:"date"` // YYYY-MM-DD
	Type       string                `json:"type"`
	Notes      *string               `json:"notes,omitempty"`
	CreatedBy  *string               `json:"-"` // from token claims
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *CreateJustificationRequest) Validate() error {
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

	if !validator.IsInSlice(r.Type, ValidTypes()) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(ValidTypes(), ", "),
		})
	}

	errs = append(errs, validateNotes(r.Notes)...)
	errs = append(errs, validateAttachment(r.FileHeader)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateJustificationRequest struct {
	ID         string                `json:"-"`
	Type       *string               `json:"type,omitempty"`
	Notes      *string               `json:"notes,omitempty"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *UpdateJustificationRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}

	if r.Type != nil && !validator.IsInSlice(*r.Type, ValidTypes()) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(ValidTypes(), ", "),
		})
	}

	errs = append(errs, validateNotes(r.Notes)...)
	errs = append(errs, validateAttachment(r.FileHeader)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type JustificationFilter struct {
	EmployeeID string  `json:"employee_id"`
	Month      *string `json:"month,omitempty"` // YYYY-MM
	Year       *string `json:"year,omitempty"`  // YYYY, ignored when Month is set
}

func (f *JustificationFilter) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if f.Month != nil && *f.Month != "" {
		if _, valid := validator.IsValidMonth(*f.Month); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		}
	}

	if f.Year != nil && *f.Year != "" {
		if y, err := strconv.Atoi(*f.Year); err != nil || y < 1900 || y > 9999 {
			errs = append(errs, validator.ValidationError{
				Field:   "year",
				Message: "year must be a four digit year",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type JustificationResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	Date          string  `json:"date"`
	Type          string  `json:"type"`
	TypeLabel     string  `json:"type_label"`
	Notes         *string `json:"notes,omitempty"`
	AttachmentURL *string `json:"attachment_url,omitempty"`
	FileName      *string `json:"file_name,omitempty"`
	CreatedBy     *string `json:"created_by,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

func validateNotes(notes *string) validator.ValidationErrors {
	if notes != nil && len(*notes) > 1000 {
		return validator.ValidationErrors{{
			Field:   "notes",
			Message: "notes must not exceed 1000 characters",
		}}
	}
	return nil
}

func validateAttachment(header *multipart.FileHeader) validator.ValidationErrors {
	if header == nil {
		return nil
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !validator.IsInSlice(ext, allowedAttachmentExts) {
		return validator.ValidationErrors{{
			Field:   "file",
			Message: "invalid file type: only pdf, jpg, jpeg, png allowed",
		}}
	}

	if header.Size > maxAttachmentSize {
		return validator.ValidationErrors{{
			Field:   "file",
			Message: "attachment size must not exceed 10MB",
		}}
	}

	return nil
}
