package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/planner/internal/application/adapter"
	"github.com/finance-tracker/planner/internal/domain/projection"
)

func sampleSummary() projection.Summary {
	return projection.Summary{
		PlannedIncome:    decimal.NewFromInt(1000),
		PlannedExpense:   decimal.RequireFromString("400.25"),
		ProjectedBalance: decimal.RequireFromString("5599.75"),
	}
}

func exerciseSummaryCache(t *testing.T, c adapter.SummaryCache) {
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "alice", "june")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "alice", "june", generation(t, c, "alice"), sampleSummary()))
	require.NoError(t, c.Set(ctx, "bob", "june", generation(t, c, "bob"), sampleSummary()))

	got, ok, err := c.Get(ctx, "alice", "june")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.PlannedExpense.Equal(decimal.RequireFromString("400.25")))
	assert.True(t, got.ProjectedBalance.Equal(decimal.RequireFromString("5599.75")))

	require.NoError(t, c.Invalidate(ctx, "alice"))

	_, ok, err = c.Get(ctx, "alice", "june")
	require.NoError(t, err)
	assert.False(t, ok, "alice's summary survived invalidation")

	_, ok, err = c.Get(ctx, "bob", "june")
	require.NoError(t, err)
	assert.True(t, ok, "invalidation leaked into another scope")

	// A summary computed before an invalidation must not be served after it.
	before := generation(t, c, "alice")
	require.NoError(t, c.Invalidate(ctx, "alice"))
	require.NoError(t, c.Set(ctx, "alice", "june", before, sampleSummary()))

	_, ok, err = c.Get(ctx, "alice", "june")
	require.NoError(t, err)
	assert.False(t, ok, "summary of an older generation was served")

	require.NoError(t, c.Set(ctx, "alice", "june", generation(t, c, "alice"), sampleSummary()))
	_, ok, err = c.Get(ctx, "alice", "june")
	require.NoError(t, err)
	assert.True(t, ok)
}

func generation(t *testing.T, c adapter.SummaryCache, scope string) int64 {
	t.Helper()
	gen, err := c.Generation(context.Background(), scope)
	require.NoError(t, err)
	return gen
}

func TestRedisSummaryCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	exerciseSummaryCache(t, NewRedisSummaryCache(client, time.Minute))
}

func TestRedisSummaryCache_Expires(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	c := NewRedisSummaryCache(client, time.Minute)
	require.NoError(t, c.Set(ctx, "alice", "june", 0, sampleSummary()))
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, "alice", "june")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemorySummaryCache(t *testing.T) {
	exerciseSummaryCache(t, NewMemorySummaryCache(10, time.Minute))
}

func TestMemorySummaryCache_EvictsAndExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	c := newMemorySummaryCache(2, time.Minute, func() time.Time { return now })

	require.NoError(t, c.Set(ctx, "s", "a", 0, sampleSummary()))
	require.NoError(t, c.Set(ctx, "s", "b", 0, sampleSummary()))
	_, _, _ = c.Get(ctx, "s", "a")
	require.NoError(t, c.Set(ctx, "s", "c", 0, sampleSummary()))

	_, ok, _ := c.Get(ctx, "s", "b")
	assert.False(t, ok, "least recently used entry should be evicted")
	_, ok, _ = c.Get(ctx, "s", "a")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok, _ = c.Get(ctx, "s", "a")
	assert.False(t, ok, "expired entry served")
}
