package export_ledger

import (
	"net/http"

	"github.com/m04kA/SMC-EventLedger/internal/api/handlers"
)

type Handler struct {
	exporter LedgerExporter
	logger   Logger
}

func NewHandler(exporter LedgerExporter, logger Logger) *Handler {
	return &Handler{
		exporter: exporter,
		logger:   logger,
	}
}

// Handle GET /api/v1/ledger/export
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ledger, err := h.exporter.Export(r.Context())
	if err != nil {
		h.logger.Error("GET /ledger/export - Failed to export ledger: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /ledger/export - Ledger exported: bookings=%d, payments=%d, expenses=%d",
		len(ledger.Bookings), len(ledger.Payments), len(ledger.Expenses))
	w.Header().Set("Content-Disposition", `attachment; filename="ledger.json"`)
	handlers.RespondJSON(w, http.StatusOK, ledger)
}
