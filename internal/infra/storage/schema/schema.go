package schema

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-EventLedger/pkg/dbmetrics"
	"github.com/m04kA/SMC-EventLedger/pkg/sqlbuilder"
)

//go:embed postgres.sql
var postgresSchema string

//go:embed sqlite.sql
var sqliteSchema string

// Apply создает таблицы журнала, если их еще нет
// Безопасно вызывать при каждом старте
func Apply(ctx context.Context, db dbmetrics.DBExecutor, dialect sqlbuilder.Dialect) error {
	ddl := postgresSchema
	if dialect == sqlbuilder.DialectSQLite {
		ddl = sqliteSchema
	}

	for _, stmt := range strings.Split(ddl, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema: apply %s: %w", firstLine(stmt), err)
		}
	}

	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
