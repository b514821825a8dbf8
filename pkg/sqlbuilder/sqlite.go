package sqlbuilder

import (
	"database/sql/driver"
	"strings"

	"modernc.org/sqlite"
)

// SQLiteLowerFunc приведение строки к нижнему регистру по правилам Unicode
// Доступна во всех соединениях SQLite, открытых после загрузки пакета
const SQLiteLowerFunc = "unicode_lower"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(SQLiteLowerFunc, 1, unicodeLower)
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}
