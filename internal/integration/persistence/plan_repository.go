// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finance-tracker/planner/internal/application/adapter"
	"github.com/finance-tracker/planner/internal/domain/entity"
	"github.com/finance-tracker/planner/internal/integration/persistence/model"
)

// upsertColumns are rewritten when a plan row already exists. created_at keeps
// the time of the first insert.
var upsertColumns = []string{
	"title", "description", "amount", "type", "category",
	"start_date", "end_date", "is_recurring", "recurring_type",
	"account_id", "completed", "color", "updated_at",
}

// planRepository implements the adapter.PlanRecordStore interface over gorm.
type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new plan repository instance.
func NewPlanRepository(db *gorm.DB) adapter.PlanRecordStore {
	return &planRepository{
		db: db,
	}
}

// List retrieves every plan of the scope.
func (r *planRepository) List(ctx context.Context, scope string) ([]*entity.FinancialPlan, error) {
	var planModels []model.FinancialPlanModel
	result := r.db.WithContext(ctx).
		Where("scope = ?", scope).
		Order("start_date ASC, id ASC").
		Find(&planModels)
	if result.Error != nil {
		return nil, result.Error
	}

	plans := make([]*entity.FinancialPlan, len(planModels))
	for i, pm := range planModels {
		plans[i] = pm.ToEntity()
	}
	return plans, nil
}

// Put replaces the plans of the scope in a single transaction. Rows missing
// from plans are deleted, the rest are upserted.
func (r *planRepository) Put(ctx context.Context, scope string, plans []*entity.FinancialPlan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := make([]string, 0, len(plans))
		planModels := make([]*model.FinancialPlanModel, 0, len(plans))
		for _, p := range plans {
			ids = append(ids, p.ID)
			planModels = append(planModels, model.FinancialPlanFromEntity(scope, p))
		}

		stale := tx.Where("scope = ?", scope)
		if len(ids) > 0 {
			stale = stale.Where("id NOT IN ?", ids)
		}
		if err := stale.Delete(&model.FinancialPlanModel{}).Error; err != nil {
			return err
		}

		if len(planModels) == 0 {
			return nil
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "scope"}, {Name: "id"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).Create(&planModels).Error
	})
}
