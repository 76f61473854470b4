// Package billing talks to the external billing system of record (Stripe)
// and re-synchronizes local subscription rows against it.
package billing

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/ViniMartins/VitrineApp/app/models"
	"github.com/ViniMartins/VitrineApp/app/repository"
	"gorm.io/gorm"
)

// ProviderSubscription is the provider-agnostic shape of a fetched
// subscription used during reconciliation.
type ProviderSubscription struct {
	ID         string
	Status     string
	PriceID    string
	CustomerID string
}

// SubscriptionFetcher retrieves the current subscription state from the
// billing provider. Implemented by the Stripe client; faked in tests.
type SubscriptionFetcher interface {
	FetchSubscription(ctx context.Context, subscriptionID string) (*ProviderSubscription, error)
}

// Reconciler refreshes a stale local subscription record from the billing
// provider and maps the provider price back to a catalog plan.
type Reconciler struct {
	fetcher SubscriptionFetcher
	plans   repository.PlanRepository
	subs    repository.SubscriptionRepository
}

// NewReconciler creates a reconciler from its collaborators.
func NewReconciler(fetcher SubscriptionFetcher, plans repository.PlanRepository, subs repository.SubscriptionRepository) *Reconciler {
	return &Reconciler{fetcher: fetcher, plans: plans, subs: subs}
}

// Reconcile fetches the provider subscription referenced by the local row
// and writes back plan linkage and active flag. Idempotent; safe to call on
// every self-heal attempt.
func (r *Reconciler) Reconcile(ctx context.Context, sub *models.Subscription) error {
	if sub == nil || sub.StripeSubscriptionID == "" {
		return errors.New("subscription has no billing reference to reconcile against")
	}

	ps, err := r.fetcher.FetchSubscription(ctx, sub.StripeSubscriptionID)
	if err != nil {
		return fmt.Errorf("fetch subscription %s: %w", sub.StripeSubscriptionID, err)
	}

	active := IsEntitlingStatus(ps.Status)

	var planID *uint
	if ps.PriceID != "" {
		plan, err := r.plans.GetByStripePriceID(ps.PriceID)
		switch {
		case err == nil:
			planID = &plan.ID
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Unmapped price: keep the plan unlinked, still record activity.
			log.Printf("billing: no plan mapped to stripe price %s (subscription %s)", ps.PriceID, ps.ID)
		default:
			return err
		}
	}

	return r.subs.SetPlan(sub.ID, planID, active)
}
