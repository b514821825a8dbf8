package export_financial_report

import "context"

type FinancialReportExporter interface {
	Export(ctx context.Context, year int) ([]byte, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
