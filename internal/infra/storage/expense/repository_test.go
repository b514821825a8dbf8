package expense

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EventLedger/internal/domain"
	"github.com/m04kA/SMC-EventLedger/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-EventLedger/pkg/ptr"
	"github.com/m04kA/SMC-EventLedger/pkg/sqlbuilder"
)

func expense(desc string, category domain.ExpenseCategory, amount string, spentOn time.Time) *domain.Expense {
	return &domain.Expense{
		Description:   desc,
		Category:      category,
		Amount:        decimal.RequireFromString(amount),
		SpentOn:       spentOn,
		PaymentMethod: domain.MethodCreditCard,
	}
}

func TestRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(storagetest.NewSQLite(t), sqlbuilder.DialectSQLite)

	created, err := repo.Create(ctx, expense("Subwoofer", domain.CategoryEquipment, "899.99",
		time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Subwoofer", got.Description)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("899.99")))

	got.Amount = decimal.RequireFromString("849.99")
	got.Notes = ptr.Ptr("refund applied")
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("849.99")))
	require.NotNil(t, got.Notes)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrExpenseNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), ErrExpenseNotFound)
	assert.ErrorIs(t, repo.Update(ctx, got), ErrExpenseNotFound)
}

func TestRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(storagetest.NewSQLite(t), sqlbuilder.DialectSQLite)
	day := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	for _, e := range []*domain.Expense{
		expense("Flight to Denver", domain.CategoryTravel, "320", day),
		expense("DJ software licence", domain.CategorySoftware, "99", day.AddDate(0, 0, 3)),
		expense("Hotel", domain.CategoryTravel, "180", day.AddDate(0, 1, 0)),
	} {
		_, err := repo.Create(ctx, e)
		require.NoError(t, err)
	}

	travel, err := repo.List(ctx, domain.ExpenseFilter{Category: ptr.Ptr(domain.CategoryTravel)})
	require.NoError(t, err)
	require.Len(t, travel, 2)
	assert.Equal(t, "Flight to Denver", travel[0].Description)

	// category is searchable too
	search, err := repo.List(ctx, domain.ExpenseFilter{ListQuery: domain.ListQuery{Search: "SOFT"}})
	require.NoError(t, err)
	require.Len(t, search, 1)

	byAmount, err := repo.List(ctx, domain.ExpenseFilter{ListQuery: domain.ListQuery{Sort: domain.SortAmountAsc}})
	require.NoError(t, err)
	require.Len(t, byAmount, 3)
	assert.Equal(t, "DJ software licence", byAmount[0].Description)
	assert.Equal(t, "Flight to Denver", byAmount[2].Description)

	newest, err := repo.List(ctx, domain.ExpenseFilter{ListQuery: domain.ListQuery{Sort: domain.SortDate}})
	require.NoError(t, err)
	assert.Equal(t, "Hotel", newest[0].Description)
}
