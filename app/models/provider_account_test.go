package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProviderAccountTokenExpired(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	expired := ProviderAccount{ExpiresAt: &past}
	assert.True(t, expired.TokenExpired())

	valid := ProviderAccount{ExpiresAt: &future}
	assert.False(t, valid.TokenExpired())

	noExpiry := ProviderAccount{}
	assert.False(t, noExpiry.TokenExpired())
}
