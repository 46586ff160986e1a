package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("JWT_SECRET_KEY", "")
	t.Setenv("SALT_ROUND", "")
	t.Setenv("PAYMENT_BASE_URL", "")

	LoadConfig()

	assert.Equal(t, "3000", AppConfig.Port)
	assert.Equal(t, "defaultSecret", AppConfig.JWTKey)
	assert.Equal(t, 10, AppConfig.SaltRound)
	assert.Equal(t, "https://api.sandbox.midtrans.com", AppConfig.PaymentBaseURL)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_SECRET_KEY", "supersecret")
	t.Setenv("SALT_ROUND", "12")

	LoadConfig()

	assert.Equal(t, "8080", AppConfig.Port)
	assert.Equal(t, "supersecret", AppConfig.JWTKey)
	assert.Equal(t, 12, AppConfig.SaltRound)
}

func TestLoadConfigBadIntFallsBack(t *testing.T) {
	t.Setenv("SALT_ROUND", "not-a-number")

	LoadConfig()

	assert.Equal(t, 10, AppConfig.SaltRound)
}
