package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/handler/http/response"
)

type PunchHandler interface {
	Punch(w http.ResponseWriter, r *http.Request)
	Next(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListTrackingModes(w http.ResponseWriter, r *http.Request)
}

type punchHandlerImpl struct {
	punchService punch.PunchService
}

func NewPunchHandler(punchService punch.PunchService) PunchHandler {
	return &punchHandlerImpl{
		punchService: punchService,
	}
}

// Punch implements PunchHandler.
func (h *punchHandlerImpl) Punch(w http.ResponseWriter, r *http.Request) {
	employeeID, err := currentEmployeeID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req punch.PunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Punch decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	result, err := h.punchService.Punch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punch recorded", result)
}

// Next implements PunchHandler.
func (h *punchHandlerImpl) Next(w http.ResponseWriter, r *http.Request) {
	employeeID, err := currentEmployeeID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	req := punch.NextPunchRequest{
		EmployeeID: employeeID,
		ProjectID:  r.URL.Query().Get("project_id"),
		Date:       r.URL.Query().Get("date"),
	}

	result, err := h.punchService.NextExpected(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListMine implements PunchHandler.
func (h *punchHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	employeeID, err := currentEmployeeID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	req := punch.MyPunchesRequest{
		EmployeeID: employeeID,
		Date:       r.URL.Query().Get("date"),
	}

	result, err := h.punchService.ListMyPunches(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{Count: len(result)})
}

// List implements PunchHandler.
func (h *punchHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	req := punch.ListPunchesRequest{
		EmployeeID: optionalQuery(r, "employee_id"),
		ProjectID:  optionalQuery(r, "project_id"),
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
	}

	result, err := h.punchService.List(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{Count: len(result)})
}

// ListTrackingModes implements PunchHandler.
func (h *punchHandlerImpl) ListTrackingModes(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.punchService.ListTrackingModes(r.Context()))
}
