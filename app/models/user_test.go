package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserHashesPassword(t *testing.T) {
	user, err := CreateUser("Tester", "tester@example.com", "supersecret")
	require.NoError(t, err)

	assert.NotEqual(t, "supersecret", user.Password)
	assert.True(t, user.CheckPassword("supersecret"))
	assert.False(t, user.CheckPassword("wrong"))
	assert.Equal(t, STATUS_INACTIVE, user.Status)
}

func TestActivationTokenLifecycle(t *testing.T) {
	user := &User{}
	require.NoError(t, user.GenerateActivationToken())

	assert.NotEmpty(t, user.ActivationToken)
	assert.NotNil(t, user.ActivationSentAt)
	assert.True(t, user.IsActivationTokenValid(user.ActivationToken))
	assert.False(t, user.IsActivationTokenValid("other-token"))

	// Expired after the 24h window.
	expired := time.Now().Add(-25 * time.Hour)
	user.ActivationSentAt = &expired
	assert.False(t, user.IsActivationTokenValid(user.ActivationToken))
}

func TestUserRoleAndStatusHelpers(t *testing.T) {
	admin := &User{Role: ROLE_ADMIN, Status: STATUS_ACTIVE}
	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.IsActive())

	user := &User{Role: ROLE_USER, Status: STATUS_INACTIVE}
	assert.False(t, user.IsAdmin())
	assert.False(t, user.IsActive())
}
