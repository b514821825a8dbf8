package booking

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
	"client_name",
	"client_phone",
	"event_type",
	"start_at",
	"end_at",
	"location",
	"total_amount",
	"deposit_amount",
	"status",
	"notes",
	"created_at",
	"updated_at",
}

var listColumns = listquery.Columns{
	Search:    []string{"client_name", "location"},
	Date:      "start_at",
	Amount:    "total_amount",
	CreatedAt: "created_at",
	ID:        "id",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
	qb sqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor, dialect sqlbuilder.Dialect) *Repository {
	return &Repository{db: db, qb: sqlbuilder.New(dialect)}
}

// Create сохраняет новое бронирование
// Если ID не задан, генерируется UUIDv7 (упорядочен по времени создания).
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - %v", ErrGenerateID, err)
		}
		booking.ID = id.String()
	}

	// CreatedAt задаётся заранее только при импорте, чтобы сохранить исходный порядок
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}
	booking.CreatedAt = sqlbuilder.UTC(booking.CreatedAt)
	booking.UpdatedAt = booking.CreatedAt
	booking.StartAt = sqlbuilder.UTC(booking.StartAt)
	booking.EndAt = sqlbuilder.UTC(booking.EndAt)

	query, args, err := r.qb.Insert("bookings").
		Columns(columns...).
		Values(
			booking.ID,
			booking.ClientName,
			booking.ClientPhone,
			booking.EventType,
			booking.StartAt,
			booking.EndAt,
			booking.Location,
			booking.TotalAmount,
			booking.DepositAmount,
			booking.Status,
			booking.Notes,
			booking.CreatedAt,
			booking.UpdatedAt,
		).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if sqlbuilder.IsUniqueViolation(err) {
			return nil, ErrBookingExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// List возвращает бронирования по фильтру
// Без сортировки сохраняется порядок добавления
func (r *Repository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.qb.Select(columns...).From("bookings")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.EventType != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"event_type": *filter.EventType})
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

	return scanBookings(rows)
}

// ListOverlapping возвращает активные бронирования, пересекающиеся с [start, end)
// excludeID исключает само редактируемое бронирование (пустая строка - без исключения).
// Внутри транзакции на PostgreSQL строки блокируются (FOR UPDATE).
func (r *Repository) ListOverlapping(ctx context.Context, start, end time.Time, excludeID string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.qb.Select(columns...).
		From("bookings").
		Where(squirrel.Lt{"start_at": sqlbuilder.UTC(end)}).
		Where(squirrel.Gt{"end_at": sqlbuilder.UTC(start)}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		OrderBy("start_at ASC", "id ASC")

	if excludeID != "" {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) && r.qb.Dialect() == sqlbuilder.DialectPostgres {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Update перезаписывает изменяемые поля бронирования
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	booking.UpdatedAt = sqlbuilder.UTC(time.Now())
	booking.StartAt = sqlbuilder.UTC(booking.StartAt)
	booking.EndAt = sqlbuilder.UTC(booking.EndAt)

	query, args, err := r.qb.Update("bookings").
		Set("client_name", booking.ClientName).
		Set("client_phone", booking.ClientPhone).
		Set("event_type", booking.EventType).
		Set("start_at", booking.StartAt).
		Set("end_at", booking.EndAt).
		Set("location", booking.Location).
		Set("total_amount", booking.TotalAmount).
		Set("deposit_amount", booking.DepositAmount).
		Set("status", booking.Status).
		Set("notes", booking.Notes).
		Set("updated_at", booking.UpdatedAt).
		Where(squirrel.Eq{"id": booking.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Update", query, args)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Update("bookings").
		Set("status", status).
		Set("updated_at", sqlbuilder.UTC(time.Now())).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateStatus", query, args)
}

// Delete удаляет бронирование
// Удаление несуществующего ID возвращает ErrBookingNotFound и ничего не меняет
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Delete("bookings").
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
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking domain.Booking
		notes   sql.NullString
	)

	err := row.Scan(
		&booking.ID,
		&booking.ClientName,
		&booking.ClientPhone,
		&booking.EventType,
		&booking.StartAt,
		&booking.EndAt,
		&booking.Location,
		&booking.TotalAmount,
		&booking.DepositAmount,
		&booking.Status,
		&notes,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if notes.Valid {
		booking.Notes = &notes.String
	}
	booking.StartAt = booking.StartAt.UTC()
	booking.EndAt = booking.EndAt.UTC()
	booking.CreatedAt = booking.CreatedAt.UTC()
	booking.UpdatedAt = booking.UpdatedAt.UTC()

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
