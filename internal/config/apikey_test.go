package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAPIKeyConfig_Defaults(t *testing.T) {
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("API_KEY_PEPPER", "")

	cfg, err := NewAPIKeyConfig()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Empty(t, cfg.Pepper)
}

func TestNewAPIKeyConfig_InvalidCost(t *testing.T) {
	t.Setenv("BCRYPT_COST", "not-a-number")
	_, err := NewAPIKeyConfig()
	assert.Error(t, err)

	t.Setenv("BCRYPT_COST", "20")
	_, err = NewAPIKeyConfig()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestAPIKey_HashAndVerify(t *testing.T) {
	cfg := &APIKeyConfig{BcryptCost: 10}

	hash, err := cfg.HashKey("dk_live_0123456789")
	require.NoError(t, err)
	assert.NotEqual(t, "dk_live_0123456789", hash)

	assert.True(t, cfg.VerifyKey("dk_live_0123456789", hash))
	assert.False(t, cfg.VerifyKey("dk_live_wrong", hash))
}

func TestAPIKey_PepperChangesVerification(t *testing.T) {
	peppered := &APIKeyConfig{BcryptCost: 10, Pepper: "orthogonal-secret"}

	hash, err := peppered.HashKey("dk_live_0123456789")
	require.NoError(t, err)

	assert.True(t, peppered.VerifyKey("dk_live_0123456789", hash))

	plain := &APIKeyConfig{BcryptCost: 10}
	assert.False(t, plain.VerifyKey("dk_live_0123456789", hash),
		"a hash minted with a pepper must not verify without it")
}
