package export_ledger

import (
	"context"

	ledgerTransfer "github.com/m04kA/SMC-EventLedger/internal/usecase/ledger_transfer"
)

type LedgerExporter interface {
	Export(ctx context.Context) (*ledgerTransfer.Ledger, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
