package txmanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/m04kA/SMC-EventLedger/pkg/dbmetrics"
)

// MaxSerializableAttempts число попыток DoSerializable при конфликтах сериализации
const MaxSerializableAttempts = 3

// TxBeginner источник транзакций
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функции в транзакции, передавая её через контекст
type TransactionManager struct {
	db TxBeginner
	// serializable поддерживается не всеми драйверами (sqlite работает только с уровнем по умолчанию)
	serializable bool
}

// NewTransactionManager создает менеджер транзакций
// serializable=false заставляет DoSerializable использовать уровень изоляции по умолчанию
func NewTransactionManager(db TxBeginner, serializable bool) *TransactionManager {
	return &TransactionManager{db: db, serializable: serializable}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, nil, fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции
// При конфликте сериализации транзакция повторяется до MaxSerializableAttempts раз,
// поэтому fn не должна иметь побочных эффектов вне транзакции
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var opts *sql.TxOptions
	if m.serializable {
		opts = &sql.TxOptions{Isolation: sql.LevelSerializable}
	}

	var err error
	for attempt := 1; attempt <= MaxSerializableAttempts; attempt++ {
		var conflict bool
		conflict, err = m.runOnce(ctx, opts, fn)
		if !conflict || ctx.Err() != nil {
			return err
		}
	}
	return err
}

// DoReadOnly выполняет fn в транзакции только для чтения
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	var opts *sql.TxOptions
	if m.serializable {
		opts = &sql.TxOptions{ReadOnly: true}
	}
	return m.run(ctx, opts, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	_, err := m.runOnce(ctx, opts, fn)
	return err
}

// runOnce выполняет одну попытку транзакции
// conflict=true, если попытка прервана конфликтом сериализации и её можно повторить
func (m *TransactionManager) runOnce(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (conflict bool, err error) {
	// Вложенный вызов переиспользует уже открытую транзакцию, повторяет её внешний вызов
	if dbmetrics.IsInTransaction(ctx) {
		return false, fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return false, fmt.Errorf("txmanager: begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			conflict = tx.Conflicted() || dbmetrics.IsSerializationFailure(err)
		}
	}()

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return false, fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("txmanager: commit transaction: %w", err)
	}

	return false, nil
}
