package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler interface {
	PayrollWorkbook(w http.ResponseWriter, r *http.Request)
	LeavesWorkbook(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func reportPeriod(r *http.Request) report.Period {
	return report.Period{
		Month: getIntQueryParam(r, "month", 0),
		Year:  getIntQueryParam(r, "year", 0),
	}
}

// PayrollWorkbook handles GET /reports/payroll.xlsx
func (h *reportHandlerImpl) PayrollWorkbook(w http.ResponseWriter, r *http.Request) {
	wb, err := h.reportService.PayrollWorkbook(r.Context(), reportPeriod(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Attachment(w, xlsxContentType, wb.Filename, wb.Content)
}

// LeavesWorkbook handles GET /reports/leaves.xlsx
func (h *reportHandlerImpl) LeavesWorkbook(w http.ResponseWriter, r *http.Request) {
	wb, err := h.reportService.LeavesWorkbook(r.Context(), reportPeriod(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Attachment(w, xlsxContentType, wb.Filename, wb.Content)
}
