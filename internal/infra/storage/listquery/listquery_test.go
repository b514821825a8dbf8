package listquery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EventLedger/internal/domain"
	"github.com/m04kA/SMC-EventLedger/pkg/sqlbuilder"
)

var cols = Columns{
	Search:    []string{"description", "category"},
	Date:      "spent_on",
	Amount:    "amount",
	CreatedAt: "created_at",
	ID:        "id",
}

func TestApply_Postgres(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	sb := sqlbuilder.New(sqlbuilder.DialectPostgres).Select("id").From("expenses")
	sb = Apply(sb, sqlbuilder.DialectPostgres, domain.ListQuery{
		Search: "Speaker_",
		Period: domain.Period{From: &from, To: &to},
		Sort:   domain.SortAmountDesc,
	}, cols)

	query, args, err := sb.ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id FROM expenses WHERE (LOWER(description) LIKE $1 ESCAPE '\\' OR LOWER(category) LIKE $2 ESCAPE '\\') "+
			"AND (spent_on >= $3 AND spent_on < $4) ORDER BY amount DESC, created_at ASC, id ASC",
		query)
	require.Len(t, args, 4)
	assert.Equal(t, `%speaker\_%`, args[0])
	assert.Equal(t, from, args[2])
}

func TestApply_SQLiteFoldsUnicode(t *testing.T) {
	sb := sqlbuilder.New(sqlbuilder.DialectSQLite).Select("id").From("expenses")
	query, args, err := Apply(sb, sqlbuilder.DialectSQLite, domain.ListQuery{Search: "ZOË"}, cols).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id FROM expenses WHERE (unicode_lower(description) LIKE ? ESCAPE '\\' OR unicode_lower(category) LIKE ? ESCAPE '\\') "+
			"ORDER BY created_at ASC, id ASC",
		query)
	require.Len(t, args, 2)
	assert.Equal(t, "%zoë%", args[0])
}

func TestApply_DefaultKeepsInsertionOrder(t *testing.T) {
	sb := sqlbuilder.New(sqlbuilder.DialectSQLite).Select("id").From("expenses")
	query, args, err := Apply(sb, sqlbuilder.DialectSQLite, domain.ListQuery{}, cols).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT id FROM expenses ORDER BY created_at ASC, id ASC", query)
	assert.Empty(t, args)
}

func TestOrderBy(t *testing.T) {
	assert.Equal(t, []string{"spent_on DESC", "created_at ASC", "id ASC"}, OrderBy(domain.SortDate, cols))
	assert.Equal(t, []string{"spent_on ASC", "created_at ASC", "id ASC"}, OrderBy(domain.SortDateAsc, cols))
	assert.Equal(t, []string{"amount ASC", "created_at ASC", "id ASC"}, OrderBy(domain.SortAmountAsc, cols))
}
