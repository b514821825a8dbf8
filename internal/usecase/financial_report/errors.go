package financial_report

import "errors"

var (
	// ErrInvalidYear возвращается при некорректном годе отчёта
	ErrInvalidYear = errors.New("financial_report: invalid year")

	// ErrExport возвращается, если не удалось сформировать xlsx файл
	ErrExport = errors.New("financial_report: failed to build workbook")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("financial_report: internal error")
)
