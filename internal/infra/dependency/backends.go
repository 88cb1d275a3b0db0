package dependency

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finance-tracker/planner/config"
	"github.com/finance-tracker/planner/internal/application/adapter"
	"github.com/finance-tracker/planner/internal/infra/db"
	"github.com/finance-tracker/planner/internal/infra/redisclient"
	"github.com/finance-tracker/planner/internal/integration/events"
	"github.com/finance-tracker/planner/internal/integration/persistence/model"
)

// Backends are the external connections the planner runs against. Nil
// fields are not configured.
type Backends struct {
	DB          *gorm.DB
	DBHealth    func() bool
	Redis       *redis.Client
	RedisHealth func() bool
	Events      adapter.PlanChangeNotifier
	Clock       adapter.Clock

	closers []func() error
}

// Close releases every connection opened by OpenBackends.
func (b *Backends) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	b.closers = nil
	return errors.Join(errs...)
}

// OpenBackends connects the stores required by cfg. The backend selected by
// PLAN_STORE_BACKEND must be reachable; Redis (for the summary cache) and the
// event broker are optional and only logged when unavailable.
func OpenBackends(cfg *config.Config) (*Backends, error) {
	b := &Backends{}

	if cfg.Planner.StoreBackend == config.BackendDatabase {
		database, err := db.NewConnection(&cfg.Database)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, database.Close)

		if err := database.AutoMigrate(&model.FinancialPlanModel{}); err != nil {
			_ = b.Close()
			return nil, err
		}
		slog.Info("Database migrations completed successfully")

		b.DB = database.DB()
		b.DBHealth = database.HealthCheck
	}

	client, err := redisclient.NewClient(&cfg.Redis)
	switch {
	case err == nil:
		b.Redis = client
		b.RedisHealth = redisclient.HealthChecker(client)
		b.closers = append(b.closers, client.Close)
	case cfg.Planner.StoreBackend == config.BackendRedis:
		_ = b.Close()
		return nil, err
	default:
		slog.Warn("Redis connection failed, using in-process summary cache", "error", err)
	}

	if cfg.Events.Enabled {
		publisher, err := events.NewPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange)
		if err != nil {
			slog.Warn("Event publisher unavailable, plan changes will not be published", "error", err)
		} else {
			b.Events = publisher
			b.closers = append(b.closers, publisher.Close)
		}
	}

	return b, nil
}

func validateBackends(cfg *config.Config, b *Backends) error {
	switch cfg.Planner.StoreBackend {
	case config.BackendDatabase:
		if b.DB == nil {
			return fmt.Errorf("plan store backend %q requires a database connection", cfg.Planner.StoreBackend)
		}
	case config.BackendRedis:
		if b.Redis == nil {
			return fmt.Errorf("plan store backend %q requires a redis connection", cfg.Planner.StoreBackend)
		}
	case config.BackendMemory:
	default:
		return fmt.Errorf("unknown plan store backend %q", cfg.Planner.StoreBackend)
	}
	return nil
}
