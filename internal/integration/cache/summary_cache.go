// Package cache implements summary caches for the planner.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/planner/internal/application/adapter"
	"github.com/finance-tracker/planner/internal/domain/projection"
)

const (
	summaryKeyPrefix     = "planner:summary:"
	summaryVersionPrefix = "planner:summary-version:"

	// DefaultSummaryTTL bounds how long a summary may be served.
	DefaultSummaryTTL = 10 * time.Minute
)

type summaryPayload struct {
	PlannedIncome    decimal.Decimal `json:"plannedIncome"`
	PlannedExpense   decimal.Decimal `json:"plannedExpense"`
	ProjectedBalance decimal.Decimal `json:"projectedBalance"`
}

// redisSummaryCache stores summaries under a per-scope version number.
// Invalidation bumps the version, orphaning every older entry until its TTL runs out.
type redisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSummaryCache creates a summary cache backed by Redis.
func NewRedisSummaryCache(client *redis.Client, ttl time.Duration) adapter.SummaryCache {
	if ttl <= 0 {
		ttl = DefaultSummaryTTL
	}
	return &redisSummaryCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached summary for key.
func (c *redisSummaryCache) Get(ctx context.Context, scope, key string) (projection.Summary, bool, error) {
	entryKey, err := c.entryKey(ctx, scope, key)
	if err != nil {
		return projection.Summary{}, false, err
	}

	raw, err := c.client.Get(ctx, entryKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return projection.Summary{}, false, nil
		}
		return projection.Summary{}, false, err
	}

	var payload summaryPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return projection.Summary{}, false, fmt.Errorf("failed to decode cached summary: %w", err)
	}

	return projection.Summary{
		PlannedIncome:    payload.PlannedIncome,
		PlannedExpense:   payload.PlannedExpense,
		ProjectedBalance: payload.ProjectedBalance,
	}, true, nil
}

// Set stores a summary under its generation. A stale generation lands on a
// key that Get no longer reads.
func (c *redisSummaryCache) Set(ctx context.Context, scope, key string, generation int64, summary projection.Summary) error {
	entryKey := summaryEntryKey(scope, generation, key)

	raw, err := json.Marshal(summaryPayload{
		PlannedIncome:    summary.PlannedIncome,
		PlannedExpense:   summary.PlannedExpense,
		ProjectedBalance: summary.ProjectedBalance,
	})
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}

	return c.client.Set(ctx, entryKey, raw, c.ttl).Err()
}

// Invalidate bumps the scope version.
func (c *redisSummaryCache) Invalidate(ctx context.Context, scope string) error {
	return c.client.Incr(ctx, summaryVersionPrefix+scope).Err()
}

// Generation returns the scope version.
func (c *redisSummaryCache) Generation(ctx context.Context, scope string) (int64, error) {
	version, err := c.client.Get(ctx, summaryVersionPrefix+scope).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, err
	}
	return version, nil
}

func (c *redisSummaryCache) entryKey(ctx context.Context, scope, key string) (string, error) {
	version, err := c.Generation(ctx, scope)
	if err != nil {
		return "", err
	}
	return summaryEntryKey(scope, version, key), nil
}

func summaryEntryKey(scope string, version int64, key string) string {
	return fmt.Sprintf("%s%s:%d:%s", summaryKeyPrefix, scope, version, key)
}
