package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/planner/internal/application/adapter"
	"github.com/finance-tracker/planner/internal/domain/entity"
	"github.com/finance-tracker/planner/internal/integration/persistence/model"
)

const (
	planKeyPrefix = "planner:plans:"

	// DefaultPlanTTL keeps an idle scope for a week.
	DefaultPlanTTL = 7 * 24 * time.Hour
)

// redisPlanRepository keeps the plans of a scope as one JSON document with a
// sliding TTL.
type redisPlanRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPlanRepository creates a plan store backed by Redis. A ttl of zero
// selects DefaultPlanTTL.
func NewRedisPlanRepository(client *redis.Client, ttl time.Duration) adapter.PlanRecordStore {
	if ttl <= 0 {
		ttl = DefaultPlanTTL
	}
	return &redisPlanRepository{
		client: client,
		ttl:    ttl,
	}
}

// List retrieves every plan of the scope. A missing key is an empty scope.
func (r *redisPlanRepository) List(ctx context.Context, scope string) ([]*entity.FinancialPlan, error) {
	raw, err := r.client.Get(ctx, planKeyPrefix+scope).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []*entity.FinancialPlan{}, nil
		}
		return nil, err
	}

	var docs []model.PlanDocument
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode plans of scope %s: %w", scope, err)
	}

	plans := make([]*entity.FinancialPlan, len(docs))
	for i := range docs {
		plans[i] = docs[i].ToEntity()
	}
	return plans, nil
}

// Put stores the plans of the scope and refreshes its TTL.
func (r *redisPlanRepository) Put(ctx context.Context, scope string, plans []*entity.FinancialPlan) error {
	docs := make([]*model.PlanDocument, 0, len(plans))
	for _, p := range plans {
		docs = append(docs, model.PlanDocumentFromEntity(p))
	}

	raw, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("failed to encode plans of scope %s: %w", scope, err)
	}

	return r.client.Set(ctx, planKeyPrefix+scope, raw, r.ttl).Err()
}
