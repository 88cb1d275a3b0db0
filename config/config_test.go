package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Planner.StoreBackend != BackendDatabase {
		t.Errorf("StoreBackend = %q, want %q", cfg.Planner.StoreBackend, BackendDatabase)
	}
	if cfg.Planner.StoreTTL != 7*24*time.Hour {
		t.Errorf("StoreTTL = %v", cfg.Planner.StoreTTL)
	}
	if cfg.Planner.UpcomingDays != 7 {
		t.Errorf("UpcomingDays = %d", cfg.Planner.UpcomingDays)
	}
	if cfg.Planner.MaxWindowDays != 1827 {
		t.Errorf("MaxWindowDays = %d", cfg.Planner.MaxWindowDays)
	}
	if cfg.Planner.FilterMode != "legacy" {
		t.Errorf("FilterMode = %q", cfg.Planner.FilterMode)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PLAN_STORE_BACKEND", BackendRedis)
	t.Setenv("PLAN_STORE_TIMEOUT", "250ms")
	t.Setenv("PLANNER_UPCOMING_DAYS", "14")
	t.Setenv("PLANNER_MAX_WINDOW_DAYS", "366")
	t.Setenv("EVENTS_ENABLED", "true")
	t.Setenv("MUTATION_RATE_LIMIT", "not-a-number")

	cfg := Load()

	if cfg.Planner.StoreBackend != BackendRedis {
		t.Errorf("StoreBackend = %q", cfg.Planner.StoreBackend)
	}
	if cfg.Planner.StoreTimeout != 250*time.Millisecond {
		t.Errorf("StoreTimeout = %v", cfg.Planner.StoreTimeout)
	}
	if cfg.Planner.UpcomingDays != 14 {
		t.Errorf("UpcomingDays = %d", cfg.Planner.UpcomingDays)
	}
	if cfg.Planner.MaxWindowDays != 366 {
		t.Errorf("MaxWindowDays = %d", cfg.Planner.MaxWindowDays)
	}
	if !cfg.Events.Enabled {
		t.Error("Events.Enabled = false")
	}
	if cfg.Server.MutationRateLimit != 60 {
		t.Errorf("MutationRateLimit = %d, want default on parse failure", cfg.Server.MutationRateLimit)
	}
}
