package payments

import (
	"crypto/subtle"
	"log"

	"github.com/ViniMartins/VitrineApp/app/models"
)

// Verify authenticates one webhook delivery against the credentials stored
// on the order bump and normalizes its payload. A returned *RejectedError
// is terminal for this delivery: nothing may be persisted from it. The
// external sender retries on its own schedule; idempotency across retries
// comes from the purchase store's transaction-id uniqueness, not from here.
func Verify(provider string, wh Webhook, creds models.ProviderCredentials) (*VerifiedPurchase, error) {
	prof, ok := profiles[provider]
	if !ok {
		return nil, reject(ReasonUnknownProvider, provider)
	}

	payload, err := decodeBody(wh.RawBody)
	if err != nil {
		return nil, reject(ReasonBadPayload, "body is not valid JSON")
	}

	if err := authenticate(provider, prof, wh, payload, creds); err != nil {
		return nil, err
	}

	purchase, err := parsePurchase(provider, prof, payload)
	if err != nil {
		return nil, err
	}

	// Product-only providers authenticate through this match alone; for
	// everyone else it is a second gate on top of the token check.
	if expected := expectedProductID(creds); expected != "" && purchase.ProductID != expected {
		return nil, reject(ReasonProductMismatch, purchase.ProductID)
	}

	return purchase, nil
}

// authenticate applies the scheme matching the credentials variant. The
// switch is exhaustive over the ProviderCredentials union.
func authenticate(provider string, prof profile, wh Webhook, payload map[string]interface{}, creds models.ProviderCredentials) error {
	switch c := creds.(type) {
	case models.TokenPairCredentials:
		if c.SignatureToken == "" {
			return reject(ReasonMissingCredentials, provider)
		}
		if !tokensEqual(prof.extractToken(wh, payload), c.SignatureToken) {
			return reject(ReasonBadSignature, provider)
		}
		return nil

	case models.WebhookTokenCredentials:
		if c.Token == "" {
			return reject(ReasonMissingCredentials, provider)
		}
		if !tokensEqual(prof.extractToken(wh, payload), c.Token) {
			return reject(ReasonBadSignature, provider)
		}
		return nil

	case models.PostbackKeyCredentials:
		if c.Key == "" {
			return reject(ReasonMissingCredentials, provider)
		}
		if !tokensEqual(prof.extractToken(wh, payload), c.Key) {
			return reject(ReasonBadSignature, provider)
		}
		return nil

	case models.ProductOnlyCredentials:
		// Accepted risk of this integration: authenticity rests on the
		// product-id match performed after parsing.
		log.Printf("payments: %s webhook accepted without token verification", provider)
		return nil

	default:
		return reject(ReasonMissingCredentials, provider)
	}
}

// parsePurchase normalizes the provider payload. Transaction id, product id
// and buyer email are mandatory; everything else degrades to empty/zero.
func parsePurchase(provider string, prof profile, payload map[string]interface{}) (*VerifiedPurchase, error) {
	transactionID := digFirst(payload, prof.fields.transaction)
	productID := digFirst(payload, prof.fields.product)
	email := digFirst(payload, prof.fields.email)
	if transactionID == "" || productID == "" || email == "" {
		return nil, reject(ReasonBadPayload, "missing transaction, product or buyer email")
	}

	return &VerifiedPurchase{
		Provider:      provider,
		ProductID:     productID,
		BuyerEmail:    email,
		BuyerName:     digFirst(payload, prof.fields.name),
		TransactionID: transactionID,
		PriceCents:    parsePriceCents(digFirst(payload, prof.fields.price)),
		Status:        prof.normalizeStatus(digFirst(payload, prof.fields.status)),
	}, nil
}

func expectedProductID(creds models.ProviderCredentials) string {
	if c, ok := creds.(models.ProductOnlyCredentials); ok {
		return c.ProductID
	}
	return ""
}

// tokensEqual compares tokens in constant time.
func tokensEqual(got, want string) bool {
	if got == "" || want == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
