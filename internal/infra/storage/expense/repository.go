package expense

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-EventLedger/internal/domain"
	"github.com/m04kA/SMC-EventLedger/internal/infra/storage/listquery"
	"github.com/m04kA/SMC-EventLedger/pkg/dbmetrics"
	"github.com/m04kA/SMC-EventLedger/pkg/sqlbuilder"
)

var columns = []string{
	"id",
	"description",
	"category",
	"amount",
	"spent_on",
	"payment_method",
	"notes",
	"created_at",
	"updated_at",
}

var listColumns = listquery.Columns{
	Search:    []string{"description", "category"},
	Date:      "spent_on",
	Amount:    "amount",
	CreatedAt: "created_at",
	ID:        "id",
}

// Repository репозиторий расходов
type Repository struct {
	db DBExecutor
	qb sqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория расходов
func NewRepository(db DBExecutor, dialect sqlbuilder.Dialect) *Repository {
	return &Repository{db: db, qb: sqlbuilder.New(dialect)}
}

// Create сохраняет расход
func (r *Repository) Create(ctx context.Context, expense *domain.Expense) (*domain.Expense, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if expense.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - %v", ErrGenerateID, err)
		}
		expense.ID = id.String()
	}

	// CreatedAt задаётся заранее только при импорте, чтобы сохранить исходный порядок
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now()
	}
	expense.CreatedAt = sqlbuilder.UTC(expense.CreatedAt)
	expense.UpdatedAt = expense.CreatedAt
	expense.SpentOn = sqlbuilder.UTC(expense.SpentOn)

	query, args, err := r.qb.Insert("expenses").
		Columns(columns...).
		Values(
			expense.ID,
			expense.Description,
			expense.Category,
			expense.Amount,
			expense.SpentOn,
			expense.PaymentMethod,
			expense.Notes,
			expense.CreatedAt,
			expense.UpdatedAt,
		).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if sqlbuilder.IsUniqueViolation(err) {
			return nil, ErrExpenseExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return expense, nil
}

// GetByID получает расход по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Select(columns...).
		From("expenses").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	expense, err := scanExpense(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrExpenseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan expense: %v", ErrScanRow, err)
	}

	return expense, nil
}

// List возвращает расходы по фильтру
func (r *Repository) List(ctx context.Context, filter domain.ExpenseFilter) ([]*domain.Expense, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.qb.Select(columns...).From("expenses")

	if filter.Category != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category": *filter.Category})
	}
	if filter.PaymentMethod != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"payment_method": *filter.PaymentMethod})
	}

	selectBuilder = listquery.Apply(selectBuilder, r.qb.Dialect(), filter.ListQuery, listColumns)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	expenses := make([]*domain.Expense, 0)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		expenses = append(expenses, expense)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return expenses, nil
}

// Update перезаписывает изменяемые поля расхода
func (r *Repository) Update(ctx context.Context, expense *domain.Expense) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	expense.UpdatedAt = sqlbuilder.UTC(time.Now())
	expense.SpentOn = sqlbuilder.UTC(expense.SpentOn)

	query, args, err := r.qb.Update("expenses").
		Set("description", expense.Description).
		Set("category", expense.Category).
		Set("amount", expense.Amount).
		Set("spent_on", expense.SpentOn).
		Set("payment_method", expense.PaymentMethod).
		Set("notes", expense.Notes).
		Set("updated_at", expense.UpdatedAt).
		Where(squirrel.Eq{"id": expense.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Update", query, args)
}

// Delete удаляет расход
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Delete("expenses").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Delete", query, args)
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrExpenseNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanExpense(row rowScanner) (*domain.Expense, error) {
	var (
		expense domain.Expense
		notes   sql.NullString
	)

	err := row.Scan(
		&expense.ID,
		&expense.Description,
		&expense.Category,
		&expense.Amount,
		&expense.SpentOn,
		&expense.PaymentMethod,
		&notes,
		&expense.CreatedAt,
		&expense.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if notes.Valid {
		expense.Notes = &notes.String
	}
	expense.SpentOn = expense.SpentOn.UTC()
	expense.CreatedAt = expense.CreatedAt.UTC()
	expense.UpdatedAt = expense.UpdatedAt.UTC()

	return &expense, nil
}
