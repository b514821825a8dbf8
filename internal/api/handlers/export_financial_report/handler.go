package export_financial_report

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-EventLedger/internal/api/handlers"
	"github.com/m04kA/SMC-EventLedger/internal/api/handlers/get_financial_report"
	financialReport "github.com/m04kA/SMC-EventLedger/internal/usecase/financial_report"
)

const (
	msgInvalidYear = "некорректный год отчета"

	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Handler struct {
	exporter FinancialReportExporter
	logger   Logger
}

func NewHandler(exporter FinancialReportExporter, logger Logger) *Handler {
	return &Handler{
		exporter: exporter,
		logger:   logger,
	}
}

// Handle GET /api/v1/reports/financial/export?year=2025
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	year, err := get_financial_report.ParseYear(r, time.Now().UTC())
	if err != nil {
		h.logger.Warn("GET /reports/financial/export - Invalid year: %v", err)
		handlers.RespondBadRequest(w, msgInvalidYear)
		return
	}

	data, err := h.exporter.Export(r.Context(), year)
	if err != nil {
		switch {
		case errors.Is(err, financialReport.ErrInvalidYear):
			h.logger.Warn("GET /reports/financial/export - Year out of range: year=%d", year)
			handlers.RespondBadRequest(w, msgInvalidYear)

		default:
			h.logger.Error("GET /reports/financial/export - Failed to export report: year=%d, error=%v", year, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reports/financial/export - Workbook exported: year=%d, bytes=%d", year, len(data))
	handlers.RespondFile(w, contentTypeXLSX, financialReport.FileName(year), data)
}
