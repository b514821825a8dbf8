// Package storagetest поднимает in-memory SQLite со схемой журнала для тестов
package storagetest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/m04kA/SMC-EventLedger/internal/infra/storage/schema"
	"github.com/m04kA/SMC-EventLedger/pkg/dbmetrics"
	"github.com/m04kA/SMC-EventLedger/pkg/sqlbuilder"
)

// NewSQLite открывает чистую in-memory базу с применённой схемой
// Одно соединение: каждое новое соединение к :memory: видит свою пустую базу
func NewSQLite(t *testing.T) *dbmetrics.DB {
	t.Helper()

	raw, err := sql.Open("sqlite", "file::memory:?_pragma=foreign_keys(1)&_time_format=sqlite")
	require.NoError(t, err)
	raw.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = raw.Close() })

	db := dbmetrics.Wrap(raw)
	require.NoError(t, schema.Apply(context.Background(), db, sqlbuilder.DialectSQLite))

	return db
}
