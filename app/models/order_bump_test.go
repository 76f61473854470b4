package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsKnownProvider(t *testing.T) {
	for _, p := range AllProviders {
		assert.True(t, IsKnownProvider(p), "provider %s must be known", p)
	}
	assert.False(t, IsKnownProvider("paypal"))
	assert.False(t, IsKnownProvider(""))
	assert.False(t, IsKnownProvider("Hotmart"))
}

func TestOrderBumpCredentials_TokenPair(t *testing.T) {
	for _, provider := range []string{ProviderHotmart, ProviderBraip} {
		bump := &OrderBump{
			Provider:       provider,
			ClientID:       "cid",
			ClientSecret:   "secret",
			SignatureToken: "sig",
		}

		creds, err := bump.Credentials()
		require.NoError(t, err)

		pair, ok := creds.(TokenPairCredentials)
		require.True(t, ok, "%s must yield token pair credentials", provider)
		assert.Equal(t, "cid", pair.ClientID)
		assert.Equal(t, "sig", pair.SignatureToken)
	}
}

func TestOrderBumpCredentials_WebhookToken(t *testing.T) {
	singleToken := []string{
		ProviderKiwify, ProviderCakto, ProviderPerfectPay, ProviderTicto,
		ProviderLastlink, ProviderPepper, ProviderKirvano,
	}
	for _, provider := range singleToken {
		bump := &OrderBump{Provider: provider, WebhookToken: "tok"}

		creds, err := bump.Credentials()
		require.NoError(t, err)

		wt, ok := creds.(WebhookTokenCredentials)
		require.True(t, ok, "%s must yield webhook token credentials", provider)
		assert.Equal(t, "tok", wt.Token)
	}
}

func TestOrderBumpCredentials_PostbackKey(t *testing.T) {
	for _, provider := range []string{ProviderEduzz, ProviderMonetizze} {
		bump := &OrderBump{Provider: provider, PostbackKey: "key"}

		creds, err := bump.Credentials()
		require.NoError(t, err)

		pk, ok := creds.(PostbackKeyCredentials)
		require.True(t, ok, "%s must yield postback key credentials", provider)
		assert.Equal(t, "key", pk.Key)
	}
}

func TestOrderBumpCredentials_ProductOnly(t *testing.T) {
	bump := &OrderBump{Provider: ProviderHubla, ProviderProductID: "grp-1"}

	creds, err := bump.Credentials()
	require.NoError(t, err)

	po, ok := creds.(ProductOnlyCredentials)
	require.True(t, ok)
	assert.Equal(t, "grp-1", po.ProductID)
}

func TestOrderBumpCredentials_UnknownProvider(t *testing.T) {
	bump := &OrderBump{Provider: "paypal"}

	_, err := bump.Credentials()
	assert.Error(t, err)
}
