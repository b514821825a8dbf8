package sqlbuilder

import (
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
)

// Dialect диалект SQL, определяет формат плейсхолдеров
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// Builder построитель запросов с плейсхолдерами нужного диалекта
type Builder struct {
	sb      squirrel.StatementBuilderType
	dialect Dialect
}

// New создает построитель запросов для диалекта
// Для postgres используются плейсхолдеры $1, $2..., для sqlite - ?
func New(dialect Dialect) Builder {
	var format squirrel.PlaceholderFormat = squirrel.Question
	if dialect == DialectPostgres {
		format = squirrel.Dollar
	}
	return Builder{
		sb:      squirrel.StatementBuilder.PlaceholderFormat(format),
		dialect: dialect,
	}
}

// Dialect возвращает диалект построителя
func (b Builder) Dialect() Dialect {
	return b.dialect
}

func (b Builder) Select(columns ...string) squirrel.SelectBuilder {
	return b.sb.Select(columns...)
}

func (b Builder) Insert(table string) squirrel.InsertBuilder {
	return b.sb.Insert(table)
}

func (b Builder) Update(table string) squirrel.UpdateBuilder {
	return b.sb.Update(table)
}

func (b Builder) Delete(table string) squirrel.DeleteBuilder {
	return b.sb.Delete(table)
}

// ContainsFold условие "хотя бы одна из колонок содержит подстроку" без учета регистра
// Встроенный LOWER в SQLite приводит только ASCII, поэтому для него используется unicode_lower
func ContainsFold(dialect Dialect, search string, columns ...string) squirrel.Sqlizer {
	pattern := "%" + escapeLike(strings.ToLower(search)) + "%"

	lower := "LOWER"
	if dialect == DialectSQLite {
		lower = SQLiteLowerFunc
	}

	or := make(squirrel.Or, 0, len(columns))
	for _, col := range columns {
		or = append(or, squirrel.Expr(fmt.Sprintf("%s(%s) LIKE ? ESCAPE '\\'", lower, col), pattern))
	}
	return or
}

// InRange условие полуоткрытого интервала [from, to) по колонке
// Любая из границ может отсутствовать
func InRange(column string, from, to *time.Time) squirrel.Sqlizer {
	and := squirrel.And{}
	if from != nil {
		and = append(and, squirrel.GtOrEq{column: UTC(*from)})
	}
	if to != nil {
		and = append(and, squirrel.Lt{column: UTC(*to)})
	}
	return and
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// UTC приводит время к UTC с микросекундной точностью, которую хранят обе СУБД
func UTC(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
