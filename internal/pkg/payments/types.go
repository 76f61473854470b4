// Package payments verifies inbound payment-provider webhooks. A dozen
// providers are supported, grouped by authentication scheme rather than
// handled one by one; the scheme dispatch is exhaustive over the
// ProviderCredentials union on the order bump.
package payments

import "fmt"

// Normalized purchase event outcomes.
const (
	StatusApproved = "approved"
	StatusRefunded = "refunded"
	StatusOther    = "other"
)

// VerifiedPurchase is the provider-agnostic result of a webhook that passed
// authenticity checks. The caller persists it as a Purchase and asks the
// ledger for a code.
type VerifiedPurchase struct {
	Provider      string
	ProductID     string
	BuyerEmail    string
	BuyerName     string
	TransactionID string
	PriceCents    int64
	Status        string
}

// Rejection reasons, kept machine-readable for webhook responses and logs.
const (
	ReasonUnknownProvider    = "unknown_provider"
	ReasonMissingCredentials = "missing_credentials"
	ReasonBadSignature       = "bad_signature"
	ReasonBadPayload         = "bad_payload"
	ReasonProductMismatch    = "product_mismatch"
)

// RejectedError reports a webhook that failed verification. It must never
// lead to a Purchase or AccessCode being created.
type RejectedError struct {
	Reason string
	Detail string
}

func (e *RejectedError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("webhook rejected: %s", e.Reason)
	}
	return fmt.Sprintf("webhook rejected: %s (%s)", e.Reason, e.Detail)
}

func reject(reason, detail string) *RejectedError {
	return &RejectedError{Reason: reason, Detail: detail}
}

// Webhook is one inbound delivery. Header keys are expected lower-cased.
type Webhook struct {
	RawBody []byte
	Headers map[string]string
	Query   map[string]string
}

// Header returns a header value by its lower-cased name.
func (w Webhook) Header(name string) string {
	if w.Headers == nil {
		return ""
	}
	return w.Headers[name]
}
