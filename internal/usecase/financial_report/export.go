package financial_report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Названия листов выгрузки
const (
	sheetSummary    = "Summary"
	sheetMonthly    = "Monthly"
	sheetByCategory = "Expenses by category"
)

// Встроенный формат Excel "#,##0.00"
const moneyNumFmt = 4

// Export строит отчёт за год и возвращает его как xlsx файл
func (uc *UseCase) Export(ctx context.Context, year int) ([]byte, error) {
	resp, err := uc.Execute(ctx, year)
	if err != nil {
		return nil, err
	}

	data, err := renderWorkbook(resp)
	if err != nil {
		uc.logger.Error("FinancialReport: failed to render workbook for year=%d: %v", year, err)
		return nil, fmt.Errorf("%w: %v", ErrExport, err)
	}

	uc.logger.Info("FinancialReport: exported year=%d, %d bytes", year, len(data))
	return data, nil
}

// FileName имя файла выгрузки
func FileName(year int) string {
	return fmt.Sprintf("financial-report-%d.xlsx", year)
}

func renderWorkbook(r *Response) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Лист по умолчанию становится сводкой
	if err := f.SetSheetName(f.GetSheetName(0), sheetSummary); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(sheetMonthly); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(sheetByCategory); err != nil {
		return nil, err
	}

	header, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: moneyNumFmt})
	if err != nil {
		return nil, err
	}

	summary := [][]interface{}{
		{"Financial report", r.Year},
		{"Total revenue", r.TotalRevenue.InexactFloat64()},
		{"Total expenses", r.TotalExpenses.InexactFloat64()},
		{"Net profit", r.NetProfit.InexactFloat64()},
		{"Pending receivables", r.PendingReceivables.InexactFloat64()},
		{"Bookings", r.BookingsCount},
	}
	if err := writeRows(f, sheetSummary, summary); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetSummary, "A1", "B1", header); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetSummary, "B2", "B5", money); err != nil {
		return nil, err
	}

	monthly := [][]interface{}{{"Month", "Revenue", "Expenses", "Profit"}}
	for _, m := range r.Monthly {
		monthly = append(monthly, []interface{}{
			m.Name,
			m.Revenue.InexactFloat64(),
			m.Expenses.InexactFloat64(),
			m.Profit.InexactFloat64(),
		})
	}
	if err := writeRows(f, sheetMonthly, monthly); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetMonthly, "A1", "D1", header); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetMonthly, "B2", fmt.Sprintf("D%d", len(monthly)), money); err != nil {
		return nil, err
	}

	byCategory := [][]interface{}{{"Category", "Amount"}}
	for _, row := range r.ExpensesByCategory {
		byCategory = append(byCategory, []interface{}{row.Key, row.Amount.InexactFloat64()})
	}
	if err := writeRows(f, sheetByCategory, byCategory); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetByCategory, "A1", "B1", header); err != nil {
		return nil, err
	}
	if len(byCategory) > 1 {
		if err := f.SetCellStyle(sheetByCategory, "B2", fmt.Sprintf("B%d", len(byCategory)), money); err != nil {
			return nil, err
		}
	}

	for _, sheet := range []string{sheetSummary, sheetMonthly, sheetByCategory} {
		if err := f.SetColWidth(sheet, "A", "A", 24); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
