package import_ledger

import (
	"net/http"

	"github.com/m04kA/SMC-EventLedger/internal/api/handlers"
	ledgerTransfer "github.com/m04kA/SMC-EventLedger/internal/usecase/ledger_transfer"
)

// Выгрузка журнала бывает заметно больше обычного запроса
const maxDumpBytes = 32 << 20

const msgInvalidDump = "некорректная выгрузка журнала, ожидается JSON объект с массивами bookings, payments, expenses"

type Handler struct {
	importer LedgerImporter
	logger   Logger
}

func NewHandler(importer LedgerImporter, logger Logger) *Handler {
	return &Handler{
		importer: importer,
		logger:   logger,
	}
}

// Handle POST /api/v1/ledger/import
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ledger, err := ledgerTransfer.Decode(http.MaxBytesReader(w, r.Body, maxDumpBytes))
	if err != nil {
		h.logger.Warn("POST /ledger/import - Invalid dump: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDump)
		return
	}

	result, err := h.importer.Import(r.Context(), ledger)
	if err != nil {
		h.logger.Error("POST /ledger/import - Failed to import ledger: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /ledger/import - Ledger imported: bookings=%d, payments=%d, expenses=%d",
		result.Bookings.Imported, result.Payments.Imported, result.Expenses.Imported)
	handlers.RespondJSON(w, http.StatusOK, result)
}
