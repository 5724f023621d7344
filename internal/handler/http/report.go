package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SanorSmith/Tibba-sub001/internal/domain/report"
	"github.com/SanorSmith/Tibba-sub001/internal/handler/http/response"
)

type ReportHandler interface {
	BankTransferCSV(w http.ResponseWriter, r *http.Request)
	PayslipPDF(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.Service
}

func NewReportHandler(reportService report.Service) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

// BankTransferCSV implements ReportHandler.
func (h *ReportHandlerImpl) BankTransferCSV(w http.ResponseWriter, r *http.Request) {
	periodID := chi.URLParam(r, "id")
	if periodID == "" {
		response.BadRequest(w, "Period ID is required", nil)
		return
	}

	csvData, err := h.reportService.BankTransferCSV(r.Context(), periodID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="bank-transfer-%s.csv"`, periodID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(csvData)
}

// PayslipPDF implements ReportHandler.
func (h *ReportHandlerImpl) PayslipPDF(w http.ResponseWriter, r *http.Request) {
	periodID := chi.URLParam(r, "id")
	employeeID := chi.URLParam(r, "employeeID")
	if periodID == "" || employeeID == "" {
		response.BadRequest(w, "Period ID and Employee ID are required", nil)
		return
	}

	pdfData, err := h.reportService.PayslipPDF(r.Context(), periodID, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="payslip-%s-%s.pdf"`, periodID, employeeID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfData)
}
