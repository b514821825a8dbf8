package payment

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

var insertColumns = []string{
	"id",
	"booking_id",
	"amount",
	"method",
	"status",
	"paid_on",
	"transaction_ref",
	"notes",
	"created_at",
}

// Имя клиента подтягивается из бронирования
var selectColumns = []string{
	"p.id",
	"p.booking_id",
	"p.amount",
	"p.method",
	"p.status",
	"p.paid_on",
	"p.transaction_ref",
	"p.notes",
	"p.created_at",
	"COALESCE(b.client_name, '')",
}

var listColumns = listquery.Columns{
	Search:    []string{"b.client_name", "p.transaction_ref"},
	Date:      "p.paid_on",
	Amount:    "p.amount",
	CreatedAt: "p.created_at",
	ID:        "p.id",
}

// Repository репозиторий платежей
type Repository struct {
	db DBExecutor
	qb sqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor, dialect sqlbuilder.Dialect) *Repository {
	return &Repository{db: db, qb: sqlbuilder.New(dialect)}
}

// Create сохраняет платеж
// Существование бронирования проверяется на уровне usecase в той же транзакции
func (r *Repository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if payment.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - %v", ErrGenerateID, err)
		}
		payment.ID = id.String()
	}

	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now()
	}
	payment.CreatedAt = sqlbuilder.UTC(payment.CreatedAt)
	payment.PaidOn = sqlbuilder.UTC(payment.PaidOn)

	query, args, err := r.qb.Insert("payments").
		Columns(insertColumns...).
		Values(
			payment.ID,
			payment.BookingID,
			payment.Amount,
			payment.Method,
			payment.Status,
			payment.PaidOn,
			payment.TransactionRef,
			payment.Notes,
			payment.CreatedAt,
		).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if sqlbuilder.IsUniqueViolation(err) {
			return nil, ErrPaymentExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return payment, nil
}

// GetByID получает платеж по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.selectBuilder().
		Where(squirrel.Eq{"p.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	payment, err := scanPayment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan payment: %v", ErrScanRow, err)
	}

	return payment, nil
}

// List возвращает платежи по фильтру
func (r *Repository) List(ctx context.Context, filter domain.PaymentFilter) ([]*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.selectBuilder()

	if filter.BookingID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"p.booking_id": *filter.BookingID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"p.status": *filter.Status})
	}
	if filter.Method != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"p.method": *filter.Method})
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

	return scanPayments(rows)
}

// ListByBooking возвращает платежи бронирования в порядке добавления
func (r *Repository) ListByBooking(ctx context.Context, bookingID string) ([]*domain.Payment, error) {
	return r.List(ctx, domain.PaymentFilter{BookingID: &bookingID})
}

// CountByBooking возвращает количество платежей бронирования
func (r *Repository) CountByBooking(ctx context.Context, bookingID string) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Select("COUNT(*)").
		From("payments").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByBooking - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByBooking - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// Delete удаляет платеж
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Delete("payments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

// DeleteByBooking удаляет все платежи бронирования и возвращает их количество
func (r *Repository) DeleteByBooking(ctx context.Context, bookingID string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Delete("payments").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByBooking - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByBooking - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByBooking - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

func (r *Repository) selectBuilder() squirrel.SelectBuilder {
	return r.qb.Select(selectColumns...).
		From("payments p").
		LeftJoin("bookings b ON b.id = p.booking_id")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPayment(row rowScanner) (*domain.Payment, error) {
	var (
		payment domain.Payment
		notes   sql.NullString
	)

	err := row.Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.Amount,
		&payment.Method,
		&payment.Status,
		&payment.PaidOn,
		&payment.TransactionRef,
		&notes,
		&payment.CreatedAt,
		&payment.ClientName,
	)
	if err != nil {
		return nil, err
	}

	if notes.Valid {
		payment.Notes = &notes.String
	}
	payment.PaidOn = payment.PaidOn.UTC()
	payment.CreatedAt = payment.CreatedAt.UTC()

	return &payment, nil
}

func scanPayments(rows *sql.Rows) ([]*domain.Payment, error) {
	payments := make([]*domain.Payment, 0)

	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanPayments - scan row: %v", ErrScanRow, err)
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanPayments - rows error: %v", ErrScanRow, err)
	}

	return payments, nil
}
