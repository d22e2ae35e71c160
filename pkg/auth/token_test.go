package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samsalem6/hospital-records/internal/config"
)

func testAuthConfig(ttl time.Duration) config.AuthConfig {
	return config.AuthConfig{
		SessionSecret: "test-secret",
		SessionTTL:    ttl,
		Issuer:        "hospital-records-test",
	}
}

func TestGenerateAndValidate(t *testing.T) {
	mgr := NewManager(testAuthConfig(time.Hour))

	token, expiresAt, err := mgr.Generate("admin", "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := mgr.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "hospital-records-test", claims.Issuer)
}

func TestValidate_Expired(t *testing.T) {
	mgr := NewManager(testAuthConfig(-time.Hour))

	token, _, err := mgr.Generate("admin", "admin")
	require.NoError(t, err)

	_, err = mgr.Validate(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidate_WrongSecret(t *testing.T) {
	mgr := NewManager(testAuthConfig(time.Hour))
	token, _, err := mgr.Generate("admin", "admin")
	require.NoError(t, err)

	other := NewManager(config.AuthConfig{SessionSecret: "other-secret", SessionTTL: time.Hour})
	_, err = other.Validate(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidate_Garbage(t *testing.T) {
	mgr := NewManager(testAuthConfig(time.Hour))

	_, err := mgr.Validate("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
