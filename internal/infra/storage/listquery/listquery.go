// Package listquery переводит domain.ListQuery в условия и сортировку SQL запроса
// Один и тот же код используется для бронирований, платежей и расходов
package listquery

import (
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-EventLedger/internal/domain"
	"github.com/m04kA/SMC-EventLedger/pkg/sqlbuilder"
)

// Columns колонки сущности, к которым применяется запрос
type Columns struct {
	Search    []string // колонки полнотекстового поиска
	Date      string   // колонка периода и сортировки по дате
	Amount    string   // колонка сортировки по сумме
	CreatedAt string
	ID        string
}

// Apply добавляет к выборке поиск, период и сортировку
func Apply(sb squirrel.SelectBuilder, dialect sqlbuilder.Dialect, q domain.ListQuery, cols Columns) squirrel.SelectBuilder {
	if search := strings.TrimSpace(q.Search); search != "" && len(cols.Search) > 0 {
		sb = sb.Where(sqlbuilder.ContainsFold(dialect, search, cols.Search...))
	}

	if !q.Period.IsUnbounded() {
		sb = sb.Where(sqlbuilder.InRange(cols.Date, q.Period.From, q.Period.To))
	}

	return sb.OrderBy(OrderBy(q.Sort, cols)...)
}

// OrderBy выражения сортировки
// Последним ключом всегда идет порядок вставки, чтобы результат был детерминирован
func OrderBy(sort domain.SortOrder, cols Columns) []string {
	insertion := []string{cols.CreatedAt + " ASC", cols.ID + " ASC"}

	switch sort {
	case domain.SortDate:
		return append([]string{cols.Date + " DESC"}, insertion...)
	case domain.SortDateAsc:
		return append([]string{cols.Date + " ASC"}, insertion...)
	case domain.SortAmountDesc:
		return append([]string{cols.Amount + " DESC"}, insertion...)
	case domain.SortAmountAsc:
		return append([]string{cols.Amount + " ASC"}, insertion...)
	default:
		return insertion
	}
}
