package entitlement

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ViniMartins/VitrineApp/app/models"
	"gorm.io/gorm"
)

type fakeStore struct {
	mu    sync.Mutex
	subs  map[uint]*models.Subscription
	plans map[uint]*models.Plan
	err   error
	gets  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		subs:  make(map[uint]*models.Subscription),
		plans: make(map[uint]*models.Plan),
	}
}

func (s *fakeStore) GetSubscriptionWithPlan(userID uint) (*models.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	if s.err != nil {
		return nil, s.err
	}
	sub, ok := s.subs[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	// Populate the join the way the real query would.
	cp := *sub
	if cp.PlanID != nil {
		if plan, ok := s.plans[*cp.PlanID]; ok {
			cp.Plan = plan
		}
	}
	return &cp, nil
}

func (s *fakeStore) GetPlanByID(id uint) (*models.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if plan, ok := s.plans[id]; ok {
		return plan, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// fakeReconciler simulates a successful reconciliation by linking the
// subscription to a plan in the store, like the real write-back would.
type fakeReconciler struct {
	mu     sync.Mutex
	calls  int
	err    error
	planID uint
	store  *fakeStore
}

func (r *fakeReconciler) Reconcile(ctx context.Context, sub *models.Subscription) error {
	r.mu.Lock()
	r.calls++
	err := r.err
	r.mu.Unlock()
	if err != nil {
		return err
	}
	// Hold the call open so overlapping resolves actually overlap.
	time.Sleep(20 * time.Millisecond)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored := r.store.subs[sub.UserID]
	pid := r.planID
	stored.PlanID = &pid
	stored.IsActive = true
	return nil
}

func (r *fakeReconciler) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func TestResolve_NoSubscriptionRow(t *testing.T) {
	r := NewResolver(newFakeStore(), nil)

	got := r.Resolve(context.Background(), 1, false)
	if got.HasPlan || got.HasActivePlan || got.PlanName != "" {
		t.Fatalf("missing row must resolve to the zero result, got %+v", got)
	}
	if r.LastError() != nil {
		t.Fatalf("missing row is not an error, got %v", r.LastError())
	}
}

func TestResolve_FreePlanIsNotActive(t *testing.T) {
	store := newFakeStore()
	planID := uint(1)
	store.plans[1] = &models.Plan{ID: 1, Name: models.PlanNameFree}
	store.subs[1] = &models.Subscription{ID: 10, UserID: 1, PlanID: &planID}

	r := NewResolver(store, nil)

	got := r.Resolve(context.Background(), 1, false)
	if !got.HasPlan {
		t.Fatalf("linked plan must set HasPlan")
	}
	if got.HasActivePlan {
		t.Fatalf("the free tier never counts as an active plan")
	}
}

func TestResolve_PaidPlanIsActive(t *testing.T) {
	store := newFakeStore()
	planID := uint(2)
	store.plans[2] = &models.Plan{ID: 2, Name: "Profissional"}
	store.subs[1] = &models.Subscription{ID: 10, UserID: 1, PlanID: &planID, IsActive: true}

	r := NewResolver(store, nil)

	got := r.Resolve(context.Background(), 1, false)
	if !got.HasPlan || !got.HasActivePlan || got.PlanName != "Profissional" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestResolve_SelfHealLinksPlan(t *testing.T) {
	store := newFakeStore()
	store.plans[2] = &models.Plan{ID: 2, Name: "Profissional"}
	store.subs[1] = &models.Subscription{ID: 10, UserID: 1, StripeSubscriptionID: "sub_1"}
	rec := &fakeReconciler{store: store, planID: 2}

	r := NewResolver(store, rec)

	got := r.Resolve(context.Background(), 1, false)
	if rec.callCount() != 1 {
		t.Fatalf("expected exactly one reconciliation, got %d", rec.callCount())
	}
	if !got.HasActivePlan || got.PlanName != "Profissional" {
		t.Fatalf("self-heal must surface the linked plan, got %+v", got)
	}
}

func TestResolve_SelfHealSkippedWithBypass(t *testing.T) {
	store := newFakeStore()
	store.subs[1] = &models.Subscription{
		ID: 10, UserID: 1, StripeSubscriptionID: "sub_1", BypassReconciliation: true,
	}
	rec := &fakeReconciler{store: store, planID: 2}

	r := NewResolver(store, rec)

	got := r.Resolve(context.Background(), 1, false)
	if rec.callCount() != 0 {
		t.Fatalf("bypass flag must suppress reconciliation, got %d calls", rec.callCount())
	}
	if got.HasPlan {
		t.Fatalf("nothing was linked, result must stay empty: %+v", got)
	}
}

func TestResolve_SelfHealFailureKeepsEmptyResult(t *testing.T) {
	store := newFakeStore()
	store.subs[1] = &models.Subscription{ID: 10, UserID: 1, StripeSubscriptionID: "sub_1"}
	rec := &fakeReconciler{store: store, err: errors.New("stripe down")}

	r := NewResolver(store, rec)

	got := r.Resolve(context.Background(), 1, false)
	if got.HasPlan || got.HasActivePlan {
		t.Fatalf("failed reconciliation must not grant anything, got %+v", got)
	}
	if r.LastError() != nil {
		t.Fatalf("reconciliation failure is swallowed, got %v", r.LastError())
	}
}

func TestResolve_ConcurrentCallsReconcileOnce(t *testing.T) {
	store := newFakeStore()
	store.plans[2] = &models.Plan{ID: 2, Name: "Profissional"}
	store.subs[1] = &models.Subscription{ID: 10, UserID: 1, StripeSubscriptionID: "sub_1"}
	rec := &fakeReconciler{store: store, planID: 2}

	r := NewResolver(store, rec)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Resolve(context.Background(), 1, false)
		}()
	}
	wg.Wait()

	// Sequential repeats never re-reconcile: the plan is linked now.
	r.Resolve(context.Background(), 1, false)
	if rec.callCount() > 1 {
		t.Fatalf("concurrent resolves must share one reconciliation, got %d", rec.callCount())
	}
}

func TestResolve_StoreErrorFailsClosed(t *testing.T) {
	store := newFakeStore()
	store.err = errors.New("connection refused")

	r := NewResolver(store, nil)

	got := r.Resolve(context.Background(), 1, false)
	if got.HasPlan || got.HasActivePlan {
		t.Fatalf("store errors must never grant entitlement, got %+v", got)
	}
	if r.LastError() == nil {
		t.Fatalf("the error must be observable via LastError")
	}
}

func TestResolve_ZeroUserIDResetsState(t *testing.T) {
	store := newFakeStore()
	planID := uint(2)
	store.plans[2] = &models.Plan{ID: 2, Name: "Profissional"}
	store.subs[1] = &models.Subscription{ID: 10, UserID: 1, PlanID: &planID}

	r := NewResolver(store, nil)
	r.Resolve(context.Background(), 1, false)
	if !r.Cached().HasPlan {
		t.Fatalf("expected cached result after resolve")
	}

	got := r.Resolve(context.Background(), 0, false)
	if got.HasPlan {
		t.Fatalf("zero user id must return the zero result")
	}
	if r.Cached().HasPlan {
		t.Fatalf("zero user id must reset the cache")
	}
	if r.Loading() {
		t.Fatalf("reset must clear the loading flag")
	}
}

func TestResolve_DanglingPlanID(t *testing.T) {
	store := newFakeStore()
	planID := uint(99) // catalog row missing
	store.subs[1] = &models.Subscription{ID: 10, UserID: 1, PlanID: &planID}

	r := NewResolver(store, nil)

	got := r.Resolve(context.Background(), 1, false)
	if !got.HasPlan {
		t.Fatalf("plan linkage exists, HasPlan must hold")
	}
	if got.HasActivePlan || got.PlanName != "" {
		t.Fatalf("a dangling plan id must not grant active entitlement: %+v", got)
	}
}

func TestResolve_CachedResultCommitted(t *testing.T) {
	store := newFakeStore()
	planID := uint(2)
	store.plans[2] = &models.Plan{ID: 2, Name: "Profissional"}
	store.subs[7] = &models.Subscription{ID: 11, UserID: 7, PlanID: &planID}

	r := NewResolver(store, nil)
	want := r.Resolve(context.Background(), 7, true)

	if r.Cached() != want {
		t.Fatalf("cached state %+v does not match returned result %+v", r.Cached(), want)
	}
	if r.Loading() {
		t.Fatalf("loading must clear after the resolve commits")
	}
}
