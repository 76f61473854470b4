package billing

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v82"
	stripesub "github.com/stripe/stripe-go/v82/subscription"

	"github.com/ViniMartins/VitrineApp/internal/pkg/env"
)

// StripeClient wraps the Stripe SDK behind the SubscriptionFetcher
// interface used by the reconciler.
type StripeClient struct{}

// NewStripeClientFromEnv configures the global Stripe key from the
// environment and returns a client.
func NewStripeClientFromEnv() *StripeClient {
	stripe.Key = env.GetRequiredEnv("STRIPE_SECRET_KEY")
	return &StripeClient{}
}

// FetchSubscription retrieves one subscription from Stripe and flattens it
// into the provider-agnostic shape.
func (c *StripeClient) FetchSubscription(ctx context.Context, subscriptionID string) (*ProviderSubscription, error) {
	params := &stripe.SubscriptionParams{}
	params.Context = ctx

	sub, err := stripesub.Get(subscriptionID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe subscription retrieve: %w", err)
	}

	ps := &ProviderSubscription{
		ID:     sub.ID,
		Status: string(sub.Status),
	}
	if sub.Customer != nil {
		ps.CustomerID = sub.Customer.ID
	}
	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		ps.PriceID = sub.Items.Data[0].Price.ID
	}
	return ps, nil
}
