package http

import (
	"net/http"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Summary(w http.ResponseWriter, r *http.Request)
	Calendar(w http.ResponseWriter, r *http.Request)
	DayStatus(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Summary implements AttendanceHandler.
func (h *attendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	employeeID, err := targetEmployeeID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.Summarize(r.Context(), attendance.SummaryRequest{
		EmployeeID: employeeID,
		Month:      r.URL.Query().Get("month"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Calendar implements AttendanceHandler.
func (h *attendanceHandlerImpl) Calendar(w http.ResponseWriter, r *http.Request) {
	employeeID, err := targetEmployeeID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetCalendar(r.Context(), attendance.CalendarRequest{
		EmployeeID: employeeID,
		Month:      r.URL.Query().Get("month"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DayStatus implements AttendanceHandler.
func (h *attendanceHandlerImpl) DayStatus(w http.ResponseWriter, r *http.Request) {
	employeeID, err := targetEmployeeID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetDayStatus(r.Context(), attendance.DayStatusRequest{
		EmployeeID: employeeID,
		Date:       r.URL.Query().Get("date"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
