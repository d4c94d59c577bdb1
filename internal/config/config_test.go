package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(envAppEnv, "")
	t.Setenv(envDevStubEnabled, "")
	t.Setenv(envJWKSURL, "")
	t.Setenv(envRateLimitWindowMs, "")
	t.Setenv(envRateLimitMax, "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvProduction, cfg.AppEnv)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.Auth.DevStubEnabled)
	assert.Empty(t, cfg.Auth.JWKSURL)
	assert.Equal(t, defaultRateLimitMax, cfg.RateLimit.Max)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window())
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
}

func TestLoadDevStubRejectedInProduction(t *testing.T) {
	t.Setenv(envAppEnv, "production")
	t.Setenv(envDevStubEnabled, "true")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), envDevStubEnabled)
}

func TestLoadDevStubAllowedInDevelopment(t *testing.T) {
	t.Setenv(envAppEnv, "Development")
	t.Setenv(envDevStubEnabled, "true")
	t.Setenv(envJWKSURL, "https://issuer.example.com/.well-known/jwks.json")
	t.Setenv(envIssuer, " https://issuer.example.com/ ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.IsProduction())
	assert.True(t, cfg.Auth.DevStubEnabled)
	assert.Equal(t, "https://issuer.example.com/", cfg.Auth.Issuer)
}

func TestValidateRejectsNonPositiveRateLimit(t *testing.T) {
	base := func() *Config {
		return &Config{
			AppEnv:    EnvProduction,
			Server:    ServerConfig{Port: "8080"},
			Auth:      AuthConfig{JWKSFetchRate: 1, JWKSFetchBurst: 1},
			RateLimit: RateLimitConfig{WindowMs: 1000, Max: 2},
		}
	}

	cfg := base()
	require.NoError(t, cfg.Validate())

	cfg = base()
	cfg.RateLimit.WindowMs = 0
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.RateLimit.Max = -1
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Auth.JWKSURL = "not-a-url"
	assert.Error(t, cfg.Validate())
}

func TestUnknownAppEnvCountsAsProduction(t *testing.T) {
	cfg := &Config{AppEnv: "staging"}
	assert.True(t, cfg.IsProduction())
}

func TestDurationEnvAcceptsSeconds(t *testing.T) {
	t.Setenv(envJWKSTimeout, "3")
	assert.Equal(t, 3*time.Second, getDurationEnv(envJWKSTimeout, time.Second))

	t.Setenv(envJWKSTimeout, "250ms")
	assert.Equal(t, 250*time.Millisecond, getDurationEnv(envJWKSTimeout, time.Second))

	t.Setenv(envJWKSTimeout, "soon")
	assert.Equal(t, time.Second, getDurationEnv(envJWKSTimeout, time.Second))
}

func TestTrustedProxies(t *testing.T) {
	t.Setenv(envAppEnv, "")
	t.Setenv(envDevStubEnabled, "")
	t.Setenv(envTrustedProxies, "10.0.0.0/8, 192.168.1.0/24")

	cfg, err := Load()
	require.NoError(t, err)
	require.Len(t, cfg.Server.TrustedProxyRanges(), 2)
	assert.Equal(t, "10.0.0.0/8", cfg.Server.TrustedProxyRanges()[0].String())

	t.Setenv(envTrustedProxies, "10.0.0.1")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), envTrustedProxies)
}
