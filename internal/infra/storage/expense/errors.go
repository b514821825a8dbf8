package expense

import "errors"

var (
	// ErrExpenseNotFound возвращается, когда расход не найден
	ErrExpenseNotFound = errors.New("expense.repository: expense not found")

	// ErrExpenseExists возвращается при вставке расхода с уже существующим ID
	ErrExpenseExists = errors.New("expense.repository: expense already exists")

	ErrBuildQuery = errors.New("expense.repository: failed to build query")
	ErrExecQuery  = errors.New("expense.repository: failed to execute query")
	ErrScanRow    = errors.New("expense.repository: failed to scan row")
	ErrGenerateID = errors.New("expense.repository: failed to generate id")
)
