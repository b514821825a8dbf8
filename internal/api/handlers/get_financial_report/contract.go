package get_financial_report

import (
	"context"

	financialReport "github.com/m04kA/SMC-EventLedger/internal/usecase/financial_report"
)

type FinancialReportUseCase interface {
	Execute(ctx context.Context, year int) (*financialReport.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
