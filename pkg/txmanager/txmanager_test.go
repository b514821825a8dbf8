package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EventLedger/pkg/dbmetrics"
)

var errBoom = errors.New("boom")

type fakeTx struct {
	dbmetrics.DBExecutor
	execErr    error
	commitErr  error
	committed  bool
	rolledBack bool
	conflict   bool
}

func (t *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	if dbmetrics.IsSerializationFailure(t.execErr) {
		t.conflict = true
	}
	return nil, t.execErr
}

func (t *fakeTx) Commit() error {
	t.committed = t.commitErr == nil
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

func (t *fakeTx) Conflicted() bool { return t.conflict }

// fakeDB выдает заранее подготовленные транзакции по порядку
type fakeDB struct {
	txs   []*fakeTx
	opts  []*sql.TxOptions
	begun int
}

func (d *fakeDB) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	if d.begun >= len(d.txs) {
		return nil, errBoom
	}
	tx := d.txs[d.begun]
	d.begun++
	d.opts = append(d.opts, opts)
	return tx, nil
}

func serializationFailure() error {
	return &pq.Error{Code: "40001", Message: "could not serialize access due to read/write dependencies"}
}

// exec выполняет запрос в транзакции из контекста и теряет исходную ошибку, как это делают use cases
func exec(ctx context.Context) error {
	tx, ok := dbmetrics.TxFromContext(ctx)
	if !ok {
		return errBoom
	}
	if _, err := tx.ExecContext(ctx, "INSERT"); err != nil {
		return fmt.Errorf("usecase: internal error: %v", err)
	}
	return nil
}

func TestDo_CommitsOnSuccess(t *testing.T) {
	tx := &fakeTx{}
	m := NewTransactionManager(&fakeDB{txs: []*fakeTx{tx}}, true)

	require.NoError(t, m.Do(context.Background(), exec))
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)
}

func TestDo_RollsBackOnError(t *testing.T) {
	tx := &fakeTx{execErr: errBoom}
	m := NewTransactionManager(&fakeDB{txs: []*fakeTx{tx}}, true)

	err := m.Do(context.Background(), exec)
	require.Error(t, err)
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
}

func TestDo_DoesNotRetryConflicts(t *testing.T) {
	db := &fakeDB{txs: []*fakeTx{{execErr: serializationFailure()}, {}}}
	m := NewTransactionManager(db, true)

	require.Error(t, m.Do(context.Background(), exec))
	assert.Equal(t, 1, db.begun)
}

func TestDoSerializable_RetriesConflict(t *testing.T) {
	last := &fakeTx{}
	db := &fakeDB{txs: []*fakeTx{
		{execErr: serializationFailure()},
		{commitErr: serializationFailure()},
		last,
	}}
	m := NewTransactionManager(db, true)

	require.NoError(t, m.DoSerializable(context.Background(), exec))
	assert.Equal(t, 3, db.begun)
	assert.True(t, last.committed)
	for _, opts := range db.opts {
		require.NotNil(t, opts)
		assert.Equal(t, sql.LevelSerializable, opts.Isolation)
	}
}

func TestDoSerializable_GivesUpAfterMaxAttempts(t *testing.T) {
	db := &fakeDB{}
	for i := 0; i < MaxSerializableAttempts+1; i++ {
		db.txs = append(db.txs, &fakeTx{execErr: serializationFailure()})
	}
	m := NewTransactionManager(db, true)

	err := m.DoSerializable(context.Background(), exec)
	require.Error(t, err)
	assert.Equal(t, MaxSerializableAttempts, db.begun)
}

func TestDoSerializable_OtherErrorsAreNotRetried(t *testing.T) {
	db := &fakeDB{txs: []*fakeTx{{execErr: errBoom}, {}}}
	m := NewTransactionManager(db, true)

	require.Error(t, m.DoSerializable(context.Background(), exec))
	assert.Equal(t, 1, db.begun)
}

func TestDoSerializable_DefaultIsolationWhenUnsupported(t *testing.T) {
	db := &fakeDB{txs: []*fakeTx{{}}}
	m := NewTransactionManager(db, false)

	require.NoError(t, m.DoSerializable(context.Background(), exec))
	require.Len(t, db.opts, 1)
	assert.Nil(t, db.opts[0])
}

func TestDo_NestedReusesTransaction(t *testing.T) {
	db := &fakeDB{txs: []*fakeTx{{}}}
	m := NewTransactionManager(db, true)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.DoSerializable(ctx, exec)
	})
	require.NoError(t, err)
	assert.Equal(t, 1, db.begun)
}
