package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finance-tracker/planner/internal/application/adapter"
	"github.com/finance-tracker/planner/internal/domain/entity"
	"github.com/finance-tracker/planner/internal/domain/valueobject"
	"github.com/finance-tracker/planner/internal/integration/persistence/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.FinancialPlanModel{}))
	return db
}

func openTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func samplePlans() []*entity.FinancialPlan {
	end := valueobject.MustParseDate("2024-12-31")
	monthly := entity.RecurringMonthly
	note := "引き落とし"
	return []*entity.FinancialPlan{
		{
			ID:            "p-rent",
			Title:         "家賃",
			Description:   &note,
			Amount:        decimal.RequireFromString("80000"),
			Type:          entity.PlanTypeExpense,
			Category:      "住居費",
			StartDate:     valueobject.MustParseDate("2024-01-25"),
			EndDate:       &end,
			IsRecurring:   true,
			RecurringType: &monthly,
		},
		{
			ID:        "p-bonus",
			Title:     "賞与",
			Amount:    decimal.RequireFromString("350000.5"),
			Type:      entity.PlanTypeIncome,
			Category:  "賞与",
			StartDate: valueobject.MustParseDate("2024-06-10"),
			Completed: true,
		},
	}
}

func assertSamePlans(t *testing.T, want, got []*entity.FinancialPlan) {
	t.Helper()
	require.Len(t, got, len(want))

	byID := make(map[string]*entity.FinancialPlan, len(got))
	for _, p := range got {
		byID[p.ID] = p
	}
	for _, w := range want {
		g, ok := byID[w.ID]
		require.True(t, ok, "missing plan %s", w.ID)
		assert.True(t, w.Amount.Equal(g.Amount), "amount of %s: %s vs %s", w.ID, w.Amount, g.Amount)

		// Amounts compare by value; blank them for the structural check.
		wc, gc := w.Clone(), g.Clone()
		wc.Amount, gc.Amount = decimal.Zero, decimal.Zero
		assert.Equal(t, wc, gc)
	}
}

// exerciseRecordStore runs the contract every PlanRecordStore must satisfy.
func exerciseRecordStore(t *testing.T, store adapter.PlanRecordStore) {
	ctx := context.Background()

	empty, err := store.List(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)

	plans := samplePlans()
	require.NoError(t, store.Put(ctx, "alice", plans))

	got, err := store.List(ctx, "alice")
	require.NoError(t, err)
	assertSamePlans(t, plans, got)

	other, err := store.List(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, other)

	plans[0].Completed = true
	require.NoError(t, store.Put(ctx, "alice", plans[:1]))
	got, err = store.List(ctx, "alice")
	require.NoError(t, err)
	assertSamePlans(t, plans[:1], got)

	require.NoError(t, store.Put(ctx, "alice", nil))
	got, err = store.List(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPlanRepository(t *testing.T) {
	exerciseRecordStore(t, NewPlanRepository(openTestDB(t)))
}

func TestPlanRepository_SameIDInTwoScopes(t *testing.T) {
	ctx := context.Background()
	repo := NewPlanRepository(openTestDB(t))

	plans := samplePlans()
	require.NoError(t, repo.Put(ctx, "alice", plans))
	require.NoError(t, repo.Put(ctx, "bob", plans[:1]))
	require.NoError(t, repo.Put(ctx, "bob", nil))

	got, err := repo.List(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestPlanRepository_UpsertKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewPlanRepository(db)

	plans := samplePlans()
	require.NoError(t, repo.Put(ctx, "alice", plans))

	created := time.Date(2020, time.January, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, db.Model(&model.FinancialPlanModel{}).
		Where("scope = ? AND id = ?", "alice", plans[0].ID).
		UpdateColumns(map[string]any{"created_at": created, "updated_at": created}).Error)

	plans[0].Title = "renamed"
	require.NoError(t, repo.Put(ctx, "alice", plans))

	var row model.FinancialPlanModel
	require.NoError(t, db.Where("scope = ? AND id = ?", "alice", plans[0].ID).First(&row).Error)
	assert.Equal(t, "renamed", row.Title)
	assert.True(t, created.Equal(row.CreatedAt.UTC()), "created_at = %v, want %v", row.CreatedAt, created)
	assert.True(t, row.UpdatedAt.After(created), "updated_at = %v not refreshed", row.UpdatedAt)
}

func TestRedisPlanRepository(t *testing.T) {
	client, _ := openTestRedis(t)
	exerciseRecordStore(t, NewRedisPlanRepository(client, time.Hour))
}

func TestRedisPlanRepository_TTL(t *testing.T) {
	ctx := context.Background()
	client, mr := openTestRedis(t)
	repo := NewRedisPlanRepository(client, 0)

	require.NoError(t, repo.Put(ctx, "alice", samplePlans()))
	assert.Equal(t, DefaultPlanTTL, mr.TTL(planKeyPrefix+"alice"))

	mr.FastForward(DefaultPlanTTL + time.Second)
	got, err := repo.List(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisPlanRepository_Unavailable(t *testing.T) {
	client, mr := openTestRedis(t)
	repo := NewRedisPlanRepository(client, time.Hour)
	mr.Close()

	_, err := repo.List(context.Background(), "alice")
	assert.Error(t, err)
}

func TestMemoryPlanRepository(t *testing.T) {
	exerciseRecordStore(t, NewMemoryPlanRepository())
}

func TestMemoryPlanRepository_CopiesRecords(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPlanRepository()
	plans := samplePlans()
	require.NoError(t, repo.Put(ctx, "alice", plans))

	plans[0].Title = "changed"
	got, err := repo.List(ctx, "alice")
	require.NoError(t, err)
	got[1].Title = "changed too"

	again, err := repo.List(ctx, "alice")
	require.NoError(t, err)
	for _, p := range again {
		assert.NotContains(t, p.Title, "changed")
	}
}

func TestMemoryPlanRepository_HonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryPlanRepository().List(ctx, "alice")
	assert.ErrorIs(t, err, context.Canceled)
}
