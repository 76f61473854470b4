package entitlement

import (
	"context"
	"log"
	"strconv"
	"sync"

	"github.com/ViniMartins/VitrineApp/app/models"
	"golang.org/x/sync/singleflight"
)

// Resolver resolves entitlement for a user session. It caches the last
// resolved identity and result, and distinguishes three kinds of calls:
//
//   - identity change: a different user than last time
//   - explicit: a forced refresh requested by the caller
//   - routine: same identity re-resolving (e.g. token renewal)
//
// Only the first two toggle the observable Loading flag; routine calls
// resolve silently so the UI shell does not flicker. Overlapping calls are
// serialized by a generation counter: a completion whose generation is
// stale does not overwrite the cached state.
type Resolver struct {
	store      Store
	reconciler Reconciler
	group      singleflight.Group

	mu         sync.Mutex
	lastUserID uint
	gen        uint64
	loading    bool
	cached     Result
	lastErr    error
}

// NewResolver creates a resolver. reconciler may be nil, which disables the
// self-heal path entirely.
func NewResolver(store Store, reconciler Reconciler) *Resolver {
	return &Resolver{store: store, reconciler: reconciler}
}

// Loading reports whether a visible (identity-change or explicit) resolve
// is in flight.
func (r *Resolver) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

// Cached returns the last committed result.
func (r *Resolver) Cached() Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cached
}

// LastError returns the non-fatal error recorded by the last resolve, if
// any. Errors are reported here instead of failing the resolve.
func (r *Resolver) LastError() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

// Resolve computes the entitlement result for userID. userID == 0 means no
// effective identity: the cached state resets and the zero result returns
// immediately with no I/O.
func (r *Resolver) Resolve(ctx context.Context, userID uint, explicit bool) Result {
	r.mu.Lock()
	if userID == 0 {
		r.lastUserID = 0
		r.cached = Result{}
		r.lastErr = nil
		r.loading = false
		r.gen++ // in-flight resolves for the previous identity become stale
		r.mu.Unlock()
		return Result{}
	}

	identityChange := userID != r.lastUserID
	if identityChange || explicit {
		r.loading = true
	}
	r.lastUserID = userID
	r.gen++
	myGen := r.gen
	r.mu.Unlock()

	result, err := r.fetch(ctx, userID)
	if err != nil {
		// Fail closed: errors never grant entitlement.
		log.Printf("entitlement: resolve failed for user %d: %v", userID, err)
		result = Result{}
	}

	r.mu.Lock()
	if myGen == r.gen {
		r.cached = result
		r.lastErr = err
		r.loading = false
	}
	r.mu.Unlock()

	return result
}

// fetch loads the subscription, runs the self-heal at most once, and
// derives the result.
func (r *Resolver) fetch(ctx context.Context, userID uint) (Result, error) {
	sub, err := r.store.GetSubscriptionWithPlan(userID)
	if err != nil {
		if isNotFound(err) {
			return Result{}, nil
		}
		return Result{}, err
	}

	if sub.NeedsReconciliation() && r.reconciler != nil {
		r.selfHeal(ctx, userID, sub)

		healed, err := r.store.GetSubscriptionWithPlan(userID)
		if err == nil && healed.PlanID != nil {
			sub = healed
		}
		// Re-fetch still empty or failed: keep the original (empty) result.
	}

	return r.resultFor(sub)
}

// selfHeal runs the reconciler once, deduplicating concurrent attempts for
// the same user through a shared singleflight call. Failures are swallowed;
// the caller keeps the stale result.
func (r *Resolver) selfHeal(ctx context.Context, userID uint, sub *models.Subscription) {
	key := strconv.FormatUint(uint64(userID), 10)
	_, err, _ := r.group.Do(key, func() (interface{}, error) {
		return nil, r.reconciler.Reconcile(ctx, sub)
	})
	if err != nil {
		log.Printf("entitlement: reconciliation failed for user %d: %v", userID, err)
	}
}

// resultFor derives the entitlement booleans from a subscription row. When
// the join did not populate the plan despite a present plan id, a direct
// plan lookup closes the denormalization gap.
func (r *Resolver) resultFor(sub *models.Subscription) (Result, error) {
	if sub.PlanID == nil {
		return Result{}, nil
	}

	planName := ""
	if sub.Plan != nil {
		planName = sub.Plan.Name
	}
	if planName == "" {
		plan, err := r.store.GetPlanByID(*sub.PlanID)
		if err != nil {
			if isNotFound(err) {
				// Dangling plan id: plan linkage exists but the catalog row
				// is gone. HasPlan stays true, active entitlement does not.
				return Result{HasPlan: true}, nil
			}
			return Result{}, err
		}
		planName = plan.Name
	}

	return Result{
		HasPlan:       true,
		HasActivePlan: planName != models.PlanNameFree,
		PlanName:      planName,
	}, nil
}
