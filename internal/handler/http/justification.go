package http

import (
	"encoding/json"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/justification"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

// maxUploadMemory is kept in memory while parsing; larger parts spill to disk.
const maxUploadMemory = 10 << 20

type JustificationHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	DownloadAttachment(w http.ResponseWriter, r *http.Request)
}

type justificationHandlerImpl struct {
	justificationService justification.JustificationService
}

func NewJustificationHandler(justificationService justification.JustificationService) JustificationHandler {
	return &justificationHandlerImpl{
		justificationService: justificationService,
	}
}

// parseMultipartData decodes the JSON 'data' field into dst and returns the
// optional 'attachment' file. The caller closes the file when present.
func parseMultipartData(w http.ResponseWriter, r *http.Request, dst any) (multipart.File, *multipart.FileHeader, bool) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return nil, nil, false
	}

	dataJSON := r.FormValue("data")
	if dataJSON == "" {
		response.BadRequest(w, "Field 'data' is required", nil)
		return nil, nil, false
	}

	if err := json.Unmarshal([]byte(dataJSON), dst); err != nil {
		slog.Error("Failed to unmarshal JSON data", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return nil, nil, false
	}

	file, fileHeader, err := r.FormFile("attachment")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil, true
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return nil, nil, false
	}

	return file, fileHeader, true
}

// Create implements JustificationHandler.
func (h *justificationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	claims, err := jwt.ClaimsFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req justification.CreateJustificationRequest
	file, fileHeader, ok := parseMultipartData(w, r, &req)
	if !ok {
		return
	}
	if file != nil {
		defer file.Close()
		req.File = file
		req.FileHeader = fileHeader
	}

	if validator.IsValidUUID(claims.UserID) {
		req.CreatedBy = &claims.UserID
	}

	result, err := h.justificationService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Justification created", result)
}

// Update implements JustificationHandler.
func (h *justificationHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req justification.UpdateJustificationRequest
	file, fileHeader, ok := parseMultipartData(w, r, &req)
	if !ok {
		return
	}
	if file != nil {
		defer file.Close()
		req.File = file
		req.FileHeader = fileHeader
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.justificationService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Justification updated", result)
}

// Delete implements JustificationHandler.
func (h *justificationHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.justificationService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Justification deleted", nil)
}

// Get implements JustificationHandler.
func (h *justificationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.justificationService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements JustificationHandler.
func (h *justificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := justification.JustificationFilter{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Month:      optionalQuery(r, "month"),
		Year:       optionalQuery(r, "year"),
	}

	result, err := h.justificationService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	meta := &response.Meta{Count: len(result)}
	if filter.Month != nil {
		meta.Month = *filter.Month
	}
	response.SuccessWithMeta(w, result, meta)
}

// DownloadAttachment implements JustificationHandler.
func (h *justificationHandlerImpl) DownloadAttachment(w http.ResponseWriter, r *http.Request) {
	body, name, err := h.justificationService.OpenAttachment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer body.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	response.Attachment(w, name, contentType, body)
}
