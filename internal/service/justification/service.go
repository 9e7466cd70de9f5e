package justification

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/justification"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/service/file"
	"github.com/google/uuid"
)

type JustificationServiceImpl struct {
	db database.Transactor
	justification.JustificationRepository
	employee.EmployeeRepository
	fileService file.FileService
	location    *time.Location
	now         func() time.Time
}

func NewJustificationService(
	db database.Transactor,
	justificationRepo justification.JustificationRepository,
	employeeRepo employee.EmployeeRepository,
	fileService file.FileService,
	location *time.Location,
) justification.JustificationService {
	if location == nil {
		location = time.UTC
	}
	return &JustificationServiceImpl{
		db:                      db,
		JustificationRepository: justificationRepo,
		EmployeeRepository:      employeeRepo,
		fileService:             fileService,
		location:                location,
		now:                     time.Now,
	}
}

// Create implements justification.JustificationService.
func (s *JustificationServiceImpl) Create(ctx context.Context, req justification.CreateJustificationRequest) (justification.JustificationResponse, error) {
	if err := req.Validate(); err != nil {
		return justification.JustificationResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)

	var (
		created  justification.Justification
		uploaded *string
	)
	err := s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
			return err
		}

		existing, err := s.JustificationRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
		if err != nil {
			return fmt.Errorf("failed to check existing justification: %w", err)
		}
		if existing != nil {
			return justification.ErrJustificationExists
		}

		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate justification id: %w", err)
		}

		j := justification.Justification{
			ID:         id.String(),
			EmployeeID: req.EmployeeID,
			Date:       date,
			Type:       justification.Type(req.Type),
			Notes:      req.Notes,
			CreatedBy:  req.CreatedBy,
		}

		if req.File != nil && req.FileHeader != nil {
			path, err := s.fileService.UploadJustificationAttachment(ctx, req.EmployeeID, date, req.File, req.FileHeader.Filename)
			if err != nil {
				return err
			}
			fileName := req.FileHeader.Filename
			uploaded = &path
			j.AttachmentPath = &path
			j.FileName = &fileName
		}

		created, err = s.JustificationRepository.Create(ctx, j)
		if err != nil {
			return fmt.Errorf("failed to create justification: %w", err)
		}
		return nil
	})
	if err != nil {
		// the row never committed, so the stored file has no owner
		s.removeAttachment(ctx, uploaded)
		return justification.JustificationResponse{}, err
	}

	slog.Info("Justification created",
		"justification_id", created.ID,
		"employee_id", created.EmployeeID,
		"date", req.Date,
		"type", string(created.Type),
	)

	return s.toResponse(ctx, created), nil
}

// Update implements justification.JustificationService.
func (s *JustificationServiceImpl) Update(ctx context.Context, req justification.UpdateJustificationRequest) (justification.JustificationResponse, error) {
	if err := req.Validate(); err != nil {
		return justification.JustificationResponse{}, err
	}

	var (
		updated     justification.Justification
		uploaded    *string
		replacedOld *string
	)
	err := s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		j, err := s.JustificationRepository.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}

		if req.Type != nil {
			j.Type = justification.Type(*req.Type)
		}
		if req.Notes != nil {
			j.Notes = req.Notes
		}

		if req.File != nil && req.FileHeader != nil {
			path, err := s.fileService.UploadJustificationAttachment(ctx, j.EmployeeID, j.Date, req.File, req.FileHeader.Filename)
			if err != nil {
				return err
			}
			fileName := req.FileHeader.Filename
			uploaded = &path
			replacedOld = j.AttachmentPath
			j.AttachmentPath = &path
			j.FileName = &fileName
		}

		if err := s.JustificationRepository.Update(ctx, j); err != nil {
			return fmt.Errorf("failed to update justification: %w", err)
		}

		updated, err = s.JustificationRepository.GetByID(ctx, j.ID)
		return err
	})
	if err != nil {
		s.removeAttachment(ctx, uploaded)
		return justification.JustificationResponse{}, err
	}

	s.removeAttachment(ctx, replacedOld)

	return s.toResponse(ctx, updated), nil
}

// Delete implements justification.JustificationService.
func (s *JustificationServiceImpl) Delete(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return validator.ValidationErrors{{Field: "id", Message: "id must be a valid UUID"}}
	}

	j, err := s.JustificationRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.JustificationRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete justification: %w", err)
	}

	s.removeAttachment(ctx, j.AttachmentPath)
	return nil
}

// Get implements justification.JustificationService.
func (s *JustificationServiceImpl) Get(ctx context.Context, id string) (justification.JustificationResponse, error) {
	if !validator.IsValidUUID(id) {
		return justification.JustificationResponse{}, validator.ValidationErrors{{Field: "id", Message: "id must be a valid UUID"}}
	}

	j, err := s.JustificationRepository.GetByID(ctx, id)
	if err != nil {
		return justification.JustificationResponse{}, err
	}

	return s.toResponse(ctx, j), nil
}

// OpenAttachment implements justification.JustificationService.
func (s *JustificationServiceImpl) OpenAttachment(ctx context.Context, id string) (io.ReadCloser, string, error) {
	if !validator.IsValidUUID(id) {
		return nil, "", validator.ValidationErrors{{Field: "id", Message: "id must be a valid UUID"}}
	}

	j, err := s.JustificationRepository.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if j.AttachmentPath == nil {
		return nil, "", justification.ErrAttachmentNotFound
	}

	rc, err := s.fileService.OpenFile(ctx, *j.AttachmentPath)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", justification.ErrAttachmentNotFound, err)
	}

	name := filepath.Base(*j.AttachmentPath)
	if j.FileName != nil && *j.FileName != "" {
		name = *j.FileName
	}
	return rc, name, nil
}

// List implements justification.JustificationService.
// Month wins over year; with neither, the current year is listed.
func (s *JustificationServiceImpl) List(ctx context.Context, filter justification.JustificationFilter) ([]justification.JustificationResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	from, to := s.listRange(filter)
	records, err := s.JustificationRepository.ListByEmployeeInRange(ctx, filter.EmployeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list justifications: %w", err)
	}

	out := make([]justification.JustificationResponse, 0, len(records))
	for _, j := range records {
		out = append(out, s.toResponse(ctx, j))
	}
	return out, nil
}

func (s *JustificationServiceImpl) listRange(filter justification.JustificationFilter) (time.Time, time.Time) {
	if filter.Month != nil && *filter.Month != "" {
		if m, err := attendance.ParseMonth(*filter.Month); err == nil {
			return m.FirstDay().Time(), m.LastDay().Time()
		}
	}

	year := s.now().In(s.location).Year()
	if filter.Year != nil && *filter.Year != "" {
		if y, err := strconv.Atoi(*filter.Year); err == nil {
			year = y
		}
	}
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}

func (s *JustificationServiceImpl) removeAttachment(ctx context.Context, path *string) {
	if path == nil {
		return
	}
	if err := s.fileService.DeleteFile(ctx, *path); err != nil {
		slog.Warn("Failed to delete justification attachment", "path", *path, "error", err)
	}
}

func (s *JustificationServiceImpl) toResponse(ctx context.Context, j justification.Justification) justification.JustificationResponse {
	resp := justification.JustificationResponse{
		ID:         j.ID,
		EmployeeID: j.EmployeeID,
		Date:       attendance.DayKeyFromDate(j.Date).String(),
		Type:       string(j.Type),
		TypeLabel:  j.Type.Label(),
		Notes:      j.Notes,
		FileName:   j.FileName,
		CreatedBy:  j.CreatedBy,
		CreatedAt:  j.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  j.UpdatedAt.Format(time.RFC3339),
	}

	if j.AttachmentPath != nil {
		url, err := s.fileService.GetFileURL(ctx, *j.AttachmentPath, time.Hour)
		if err != nil {
			slog.Warn("Failed to build attachment URL", "path", *j.AttachmentPath, "error", err)
		} else {
			resp.AttachmentURL = &url
		}
	}

	return resp
}
