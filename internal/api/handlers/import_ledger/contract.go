package import_ledger

import (
	"context"

	ledgerTransfer "github.com/m04kA/SMC-EventLedger/internal/usecase/ledger_transfer"
)

type LedgerImporter interface {
	Import(ctx context.Context, ledger *ledgerTransfer.Ledger) (*ledgerTransfer.ImportResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
