package http

import (
	"net/http"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Hours(w http.ResponseWriter, r *http.Request)
	Overview(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// Hours implements ReportHandler.
func (h *reportHandlerImpl) Hours(w http.ResponseWriter, r *http.Request) {
	req := report.HoursReportRequest{
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
		EmployeeID: optionalQuery(r, "employee_id"),
		ProjectID:  optionalQuery(r, "project_id"),
	}

	result, err := h.reportService.HoursReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Overview implements ReportHandler.
func (h *reportHandlerImpl) Overview(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.MonthlyOverview(r.Context(), report.OverviewRequest{
		Month: r.URL.Query().Get("month"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{Count: len(result.Employees), Month: result.Month})
}
