package get_financial_report

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-EventLedger/internal/api/handlers"
	financialReport "github.com/m04kA/SMC-EventLedger/internal/usecase/financial_report"
)

const msgInvalidYear = "некорректный год отчета"

type Handler struct {
	useCase FinancialReportUseCase
	logger  Logger
}

func NewHandler(useCase FinancialReportUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/reports/financial?year=2025
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	year, err := ParseYear(r, time.Now().UTC())
	if err != nil {
		h.logger.Warn("GET /reports/financial - Invalid year: %v", err)
		handlers.RespondBadRequest(w, msgInvalidYear)
		return
	}

	report, err := h.useCase.Execute(r.Context(), year)
	if err != nil {
		switch {
		case errors.Is(err, financialReport.ErrInvalidYear):
			h.logger.Warn("GET /reports/financial - Year out of range: year=%d", year)
			handlers.RespondBadRequest(w, msgInvalidYear)

		default:
			h.logger.Error("GET /reports/financial - Failed to build report: year=%d, error=%v", year, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reports/financial - Report built: year=%d", year)
	handlers.RespondJSON(w, http.StatusOK, report)
}
