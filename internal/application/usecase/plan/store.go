// Package plan contains financial plan use cases.
package plan

import (
	"context"
	"errors"
	"hash/fnv"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/planner/internal/application/adapter"
	"github.com/finance-tracker/planner/internal/domain/entity"
	domainerror "github.com/finance-tracker/planner/internal/domain/error"
)

// DefaultStoreTimeout bounds every call to the backing record store.
const DefaultStoreTimeout = 5 * time.Second

// Store is the plan collection of a single scope. It validates writes, assigns
// ids and hands out copies only. Create one per request. Mutations of a scope
// are serialized across the stores of one factory, since each rewrites the
// whole scope.
type Store struct {
	records  adapter.PlanRecordStore
	scope    string
	mu       sync.Locker
	timeout  time.Duration
	notifier adapter.PlanChangeNotifier
	newID    func() string
	now      func() time.Time
	logger   *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithTimeout sets the deadline applied to each backing store call.
func WithTimeout(d time.Duration) StoreOption {
	return func(s *Store) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithNotifier sets the notifier told about committed mutations.
func WithNotifier(n adapter.PlanChangeNotifier) StoreOption {
	return func(s *Store) {
		s.notifier = n
	}
}

// WithIDGenerator replaces the uuid id generator.
func WithIDGenerator(f func() string) StoreOption {
	return func(s *Store) {
		s.newID = f
	}
}

// WithClock sets the time source used to stamp change notifications.
func WithClock(c adapter.Clock) StoreOption {
	return func(s *Store) {
		s.now = c.Now
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = l
	}
}

// NewStore creates a Store for scope backed by records.
func NewStore(records adapter.PlanRecordStore, scope string, opts ...StoreOption) *Store {
	s := &Store{
		records: records,
		scope:   scope,
		timeout: DefaultStoreTimeout,
		newID:   func() string { return uuid.New().String() },
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.mu == nil {
		s.mu = &sync.Mutex{}
	}
	return s
}

// Scope returns the scope key of the store.
func (s *Store) Scope() string {
	return s.scope
}

// Create validates draft, stores it under a fresh id and returns a copy of
// the stored record.
func (s *Store) Create(ctx context.Context, draft entity.PlanDraft) (*entity.FinancialPlan, error) {
	plan, err := s.create(ctx, draft)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, adapter.PlanCreated, plan.ID, plan)
	return plan.Clone(), nil
}

func (s *Store) create(ctx context.Context, draft entity.PlanDraft) (*entity.FinancialPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plans, err := s.list(ctx)
	if err != nil {
		return nil, err
	}

	plan := entity.NewFinancialPlan(s.freshID(plans), draft)
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	if err := s.put(ctx, append(plans, plan)); err != nil {
		return nil, err
	}
	return plan, nil
}

// Update merges patch into the plan with the given id, re-validates the
// result and stores it.
func (s *Store) Update(ctx context.Context, id string, patch entity.PlanPatch) (*entity.FinancialPlan, error) {
	updated, err := s.update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	if !patch.IsEmpty() {
		s.notify(ctx, adapter.PlanUpdated, id, updated)
	}
	return updated.Clone(), nil
}

func (s *Store) update(ctx context.Context, id string, patch entity.PlanPatch) (*entity.FinancialPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plans, err := s.list(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(plans, id)
	if i < 0 {
		return nil, domainerror.NewPlanNotFoundError(id)
	}

	updated := plans[i].Clone()
	patch.Apply(updated)
	if err := updated.Validate(); err != nil {
		return nil, err
	}

	if patch.IsEmpty() {
		return updated, nil
	}

	plans[i] = updated
	if err := s.put(ctx, plans); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the plan with the given id. It reports false, without an
// error, when no such plan exists.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.delete(ctx, id)
	if err != nil || !deleted {
		return false, err
	}

	s.notify(ctx, adapter.PlanDeleted, id, nil)
	return true, nil
}

func (s *Store) delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plans, err := s.list(ctx)
	if err != nil {
		return false, err
	}

	i := indexOf(plans, id)
	if i < 0 {
		return false, nil
	}

	if err := s.put(ctx, slices.Delete(plans, i, i+1)); err != nil {
		return false, err
	}
	return true, nil
}

// GetAll returns copies of every plan of the scope in no particular order.
func (s *Store) GetAll(ctx context.Context) ([]*entity.FinancialPlan, error) {
	plans, err := s.list(ctx)
	if err != nil {
		return nil, err
	}
	return entity.ClonePlans(plans), nil
}

// Get returns a copy of the plan with the given id.
func (s *Store) Get(ctx context.Context, id string) (*entity.FinancialPlan, error) {
	plans, err := s.list(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(plans, id)
	if i < 0 {
		return nil, domainerror.NewPlanNotFoundError(id)
	}
	return plans[i].Clone(), nil
}

func (s *Store) list(ctx context.Context) ([]*entity.FinancialPlan, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	plans, err := s.records.List(ctx, s.scope)
	if err != nil {
		return nil, s.storageError("list", err)
	}
	return entity.ClonePlans(plans), nil
}

func (s *Store) put(ctx context.Context, plans []*entity.FinancialPlan) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.records.Put(ctx, s.scope, plans); err != nil {
		return s.storageError("put", err)
	}
	return nil
}

func (s *Store) storageError(operation string, err error) error {
	var planErr *domainerror.PlanError
	if errors.As(err, &planErr) {
		return err
	}
	s.logger.Error("plan storage call failed", "operation", operation, "scope", s.scope, "error", err)
	return domainerror.NewStorageUnavailableError(err)
}

func (s *Store) notify(ctx context.Context, kind adapter.PlanChangeKind, id string, plan *entity.FinancialPlan) {
	if s.notifier == nil {
		return
	}
	change := adapter.PlanChange{
		Kind:       kind,
		Scope:      s.scope,
		PlanID:     id,
		Plan:       plan.Clone(),
		OccurredAt: s.now().UTC(),
	}
	if err := s.notifier.PlanChanged(ctx, change); err != nil {
		s.logger.Warn("plan change notification failed", "kind", string(kind), "scope", s.scope, "plan_id", id, "error", err)
	}
}

func (s *Store) freshID(plans []*entity.FinancialPlan) string {
	for {
		id := s.newID()
		if indexOf(plans, id) < 0 {
			return id
		}
	}
}

func indexOf(plans []*entity.FinancialPlan, id string) int {
	return slices.IndexFunc(plans, func(p *entity.FinancialPlan) bool {
		return p.ID == id
	})
}

// StoreFactory opens the Store of a scope.
type StoreFactory func(scope string) *Store

// NewStoreFactory returns a factory building stores over records with the
// given options. Stores of the same scope share a mutation lock.
func NewStoreFactory(records adapter.PlanRecordStore, opts ...StoreOption) StoreFactory {
	locks := &scopeLocks{}
	return func(scope string) *Store {
		s := NewStore(records, scope, opts...)
		s.mu = locks.forScope(scope)
		return s
	}
}

// scopeLocksSize is the number of lock stripes. Scopes hashing to the same
// stripe also serialize against each other.
const scopeLocksSize = 64

type scopeLocks struct {
	stripes [scopeLocksSize]sync.Mutex
}

func (l *scopeLocks) forScope(scope string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(scope))
	return &l.stripes[h.Sum32()%scopeLocksSize]
}
