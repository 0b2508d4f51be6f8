package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/lthomson/pennywise/internal/database"
	"github.com/lthomson/pennywise/internal/database/repository"
	"github.com/lthomson/pennywise/internal/engine"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	migrations, err := filepath.Abs("../database/migrations")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(dbPath, migrations))

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestAdaptStoresLifeEventAdvice(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	db := openTestDB(t)

	repo := repository.NewInsightRepo(db)
	adv := NewAdvisor(engine.New(nil, zerolog.Nop()), repo, zerolog.Nop())

	budgets := engine.BudgetMap{
		{Category: "Rent", Limit: decimal.NewFromInt(1200)},
		{Category: "Food", Limit: decimal.NewFromInt(500)},
	}
	res := adv.Adapt(ctx, "job loss", "Lost my job last week", budgets, nil)
	require.Len(t, res.Adjustments, 2)
	require.NotEmpty(t, res.OverallAdvice)

	stored, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, repository.KindLifeEvent, stored[0].Type)
	require.Equal(t, res.OverallAdvice, stored[0].Content)
	require.False(t, stored[0].IsRead)
}

func TestInsightsStoredAndListed(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	db := openTestDB(t)

	repo := repository.NewInsightRepo(db)
	adv := NewAdvisor(engine.New(nil, zerolog.Nop()), repo, zerolog.Nop())

	txns := []engine.Transaction{
		{Date: time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC), Category: "Food", Amount: decimal.NewFromInt(320)},
	}
	budgets := engine.BudgetMap{{Category: "Food", Limit: decimal.NewFromInt(500)}}

	out := adv.Insights(ctx, txns, budgets)
	require.Len(t, out, 1)

	stored, err := adv.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, repository.KindSpending, stored[0].Type)
	require.Equal(t, out[0], stored[0].Content)
}

func TestMarkRead(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	db := openTestDB(t)

	repo := repository.NewInsightRepo(db)
	in, err := repo.Add(ctx, repository.KindSuggestion, "Consider a grocery list")
	require.NoError(t, err)

	require.NoError(t, repo.MarkRead(ctx, in.ID))

	stored, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.True(t, stored[0].IsRead)
}

func TestAnalyzeWithoutStoreStillSucceeds(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	adv := NewAdvisor(engine.New(nil, zerolog.Nop()), nil, zerolog.Nop())
	txns := []engine.Transaction{
		{Date: time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC), Category: "Food", Amount: decimal.NewFromInt(550)},
	}
	res := adv.Analyze(ctx, txns, decimal.NewFromInt(4000), nil, 3)
	require.Len(t, res.Recommendations, 1)
	require.Equal(t, "Food", res.Recommendations[0].Category)
}
