package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/dailynote"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/handler/http/response"
)

type DailyNoteHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Save(w http.ResponseWriter, r *http.Request)
}

type dailyNoteHandlerImpl struct {
	dailyNoteService dailynote.DailyNoteService
}

func NewDailyNoteHandler(dailyNoteService dailynote.DailyNoteService) DailyNoteHandler {
	return &dailyNoteHandlerImpl{
		dailyNoteService: dailyNoteService,
	}
}

// Get implements DailyNoteHandler.
func (h *dailyNoteHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	employeeID, err := currentEmployeeID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	req := dailynote.GetDailyNoteRequest{
		EmployeeID: employeeID,
		ProjectID:  r.URL.Query().Get("project_id"),
		Date:       r.URL.Query().Get("date"),
	}

	result, err := h.dailyNoteService.Get(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Save implements DailyNoteHandler.
func (h *dailyNoteHandlerImpl) Save(w http.ResponseWriter, r *http.Request) {
	employeeID, err := currentEmployeeID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req dailynote.SaveDailyNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Save daily note decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	result, err := h.dailyNoteService.Save(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Daily note saved", result)
}
