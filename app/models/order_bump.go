package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Payment providers an order bump can be sold through.
const (
	ProviderHotmart    = "hotmart"
	ProviderBraip      = "braip"
	ProviderEduzz      = "eduzz"
	ProviderMonetizze  = "monetizze"
	ProviderKiwify     = "kiwify"
	ProviderCakto      = "cakto"
	ProviderPerfectPay = "perfectpay"
	ProviderTicto      = "ticto"
	ProviderLastlink   = "lastlink"
	ProviderPepper     = "pepper"
	ProviderKirvano    = "kirvano"
	ProviderHubla      = "hubla"
)

// AllProviders lists every supported payment provider.
var AllProviders = []string{
	ProviderHotmart, ProviderBraip, ProviderEduzz, ProviderMonetizze,
	ProviderKiwify, ProviderCakto, ProviderPerfectPay, ProviderTicto,
	ProviderLastlink, ProviderPepper, ProviderKirvano, ProviderHubla,
}

// IsKnownProvider reports whether the given provider name is supported.
func IsKnownProvider(provider string) bool {
	for _, p := range AllProviders {
		if p == provider {
			return true
		}
	}
	return false
}

// ProviderCredentials is the tagged union of per-provider webhook
// credentials. Exactly one variant applies per provider, so the verifier's
// dispatch is exhaustive over these types.
type ProviderCredentials interface {
	providerCredentials()
}

// TokenPairCredentials carries a client id/secret pair plus a static
// per-account signature token sent with every webhook (hotmart, braip).
type TokenPairCredentials struct {
	ClientID       string
	ClientSecret   string
	SignatureToken string
}

// WebhookTokenCredentials carries a single shared webhook secret compared
// against a bearer/body/query token (kiwify, cakto, perfectpay, ticto,
// lastlink, pepper, kirvano).
type WebhookTokenCredentials struct {
	Token string
}

// PostbackKeyCredentials carries a postback key compared against a body or
// query field (eduzz, monetizze).
type PostbackKeyCredentials struct {
	Key string
}

// ProductOnlyCredentials carries no secret at all; authenticity rests on the
// product id match alone (hubla). Weakest scheme, accepted per integration.
type ProductOnlyCredentials struct {
	ProductID string
}

func (TokenPairCredentials) providerCredentials()    {}
func (WebhookTokenCredentials) providerCredentials() {}
func (PostbackKeyCredentials) providerCredentials()  {}
func (ProductOnlyCredentials) providerCredentials()  {}

// OrderBump is a paid add-on belonging to one tenant app. The credential
// columns are mutually exclusive by provider and surface through
// Credentials() as a tagged union.
type OrderBump struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	AppID             uint           `gorm:"not null;index" json:"app_id"`
	Title             string         `gorm:"type:varchar(150);not null" json:"title" validate:"required,min=1,max=150"`
	Provider          string         `gorm:"type:varchar(20);not null;index" json:"provider"`
	ProviderProductID string         `gorm:"type:varchar(191);not null;default:''" json:"provider_product_id"`
	ClientID          string         `gorm:"type:varchar(191);default:''" json:"-"`
	ClientSecret      string         `gorm:"type:text" json:"-"`
	SignatureToken    string         `gorm:"type:text" json:"-"`
	WebhookToken      string         `gorm:"type:text" json:"-"`
	PostbackKey       string         `gorm:"type:text" json:"-"`
	PriceCents        int64          `gorm:"not null;default:0" json:"price_cents"`
	RedeemCount       int64          `gorm:"default:0" json:"redeem_count"`
	IsActive          bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// Credentials returns the credential variant for this bump's provider.
func (b *OrderBump) Credentials() (ProviderCredentials, error) {
	switch b.Provider {
	case ProviderHotmart, ProviderBraip:
		return TokenPairCredentials{
			ClientID:       b.ClientID,
			ClientSecret:   b.ClientSecret,
			SignatureToken: b.SignatureToken,
		}, nil
	case ProviderKiwify, ProviderCakto, ProviderPerfectPay, ProviderTicto,
		ProviderLastlink, ProviderPepper, ProviderKirvano:
		return WebhookTokenCredentials{Token: b.WebhookToken}, nil
	case ProviderEduzz, ProviderMonetizze:
		return PostbackKeyCredentials{Key: b.PostbackKey}, nil
	case ProviderHubla:
		return ProductOnlyCredentials{ProductID: b.ProviderProductID}, nil
	default:
		return nil, fmt.Errorf("unknown payment provider %q", b.Provider)
	}
}
