package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	envPort                  = "PORT"
	envAppEnv                = "APP_ENV"
	envServerReadTimeout     = "SERVER_READ_TIMEOUT"
	envServerWriteTimeout    = "SERVER_WRITE_TIMEOUT"
	envServerShutdownTimeout = "SERVER_SHUTDOWN_TIMEOUT"
	envBodyLimit             = "BODY_LIMIT"
	envCORSAllowedOrigins    = "CORS_ALLOWED_ORIGINS"
	envTrustedProxies        = "TRUSTED_PROXY_CIDRS"
	envDevStubEnabled        = "AUTH_DEV_STUB_ENABLED"
	envJWKSURL               = "AUTH_JWKS_URL"
	envIssuer                = "AUTH_ISSUER"
	envAudience              = "AUTH_AUDIENCE"
	envJWKSTimeout           = "AUTH_JWKS_TIMEOUT"
	envJWKSFetchRate         = "AUTH_JWKS_FETCH_RATE"
	envJWKSFetchBurst        = "AUTH_JWKS_FETCH_BURST"
	envRateLimitWindowMs     = "RATE_LIMIT_WINDOW_MS"
	envRateLimitMax          = "RATE_LIMIT_MAX"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
	EnvTest        = "test"
)

const (
	defaultServerPort         = "8080"
	defaultAppEnv             = EnvProduction
	defaultServerReadTimeout  = 10 * time.Second
	defaultServerWriteTimeout = 10 * time.Second
	defaultServerShutdown     = 10 * time.Second
	defaultBodyLimit          = "1M"
	defaultCORSAllowedOrigins = "*"
	defaultJWKSTimeout        = 5 * time.Second
	defaultJWKSFetchRate      = 1.0
	defaultJWKSFetchBurst     = 5
	defaultRateLimitWindowMs  = 60000
	defaultRateLimitMax       = 100

	errPortRequiredFmt         = "PORT must be set"
	errDevStubInProductionFmt  = "AUTH_DEV_STUB_ENABLED cannot be enabled when APP_ENV=%s"
	errRateLimitWindowFmt      = "RATE_LIMIT_WINDOW_MS must be a positive integer, got %d"
	errRateLimitMaxFmt         = "RATE_LIMIT_MAX must be a positive integer, got %d"
	errJWKSURLInvalidFmt       = "AUTH_JWKS_URL must be an absolute http(s) URL, got %q"
	errJWKSFetchRateFmt        = "AUTH_JWKS_FETCH_RATE and AUTH_JWKS_FETCH_BURST must be positive"
	errTrustedProxyFmt         = "TRUSTED_PROXY_CIDRS entry %q is not a CIDR: %w"
	errInvalidConfigurationFmt = "invalid configuration: %w"
)

type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	AppEnv    string
}

type ServerConfig struct {
	Port               string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	ShutdownTimeout    time.Duration
	BodyLimit          string
	CORSAllowedOrigins []string
	// TrustedProxies lists CIDRs whose X-Forwarded-For is believed. Empty
	// means the socket peer address is the client address.
	TrustedProxies     []string
}

// TrustedProxyRanges parses TrustedProxies. Invalid entries are skipped;
// Validate reports them.
func (c ServerConfig) TrustedProxyRanges() []*net.IPNet {
	ranges := make([]*net.IPNet, 0, len(c.TrustedProxies))
	for _, cidr := range c.TrustedProxies {
		if _, ipNet, err := net.ParseCIDR(cidr); err == nil {
			ranges = append(ranges, ipNet)
		}
	}
	return ranges
}

// AuthConfig holds everything the authenticator is constructed with.
// DevStubEnabled is the only switch for the trusted-header bypass.
type AuthConfig struct {
	DevStubEnabled bool
	JWKSURL        string
	Issuer         string
	Audience       string
	JWKSTimeout    time.Duration
	JWKSFetchRate  float64
	JWKSFetchBurst int
}

type RateLimitConfig struct {
	WindowMs int
	Max      int
}

// Window returns the configured window as a duration.
func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowMs) * time.Millisecond
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv: strings.ToLower(getEnv(envAppEnv, defaultAppEnv)),
		Server: ServerConfig{
			Port:               getEnv(envPort, defaultServerPort),
			ReadTimeout:        getDurationEnv(envServerReadTimeout, defaultServerReadTimeout),
			WriteTimeout:       getDurationEnv(envServerWriteTimeout, defaultServerWriteTimeout),
			ShutdownTimeout:    getDurationEnv(envServerShutdownTimeout, defaultServerShutdown),
			BodyLimit:          getEnv(envBodyLimit, defaultBodyLimit),
			CORSAllowedOrigins: splitList(getEnv(envCORSAllowedOrigins, defaultCORSAllowedOrigins)),
			TrustedProxies:     splitList(os.Getenv(envTrustedProxies)),
		},
		Auth: AuthConfig{
			DevStubEnabled: getBoolEnv(envDevStubEnabled, false),
			JWKSURL:        strings.TrimSpace(os.Getenv(envJWKSURL)),
			Issuer:         strings.TrimSpace(os.Getenv(envIssuer)),
			Audience:       strings.TrimSpace(os.Getenv(envAudience)),
			JWKSTimeout:    getDurationEnv(envJWKSTimeout, defaultJWKSTimeout),
			JWKSFetchRate:  getFloatEnv(envJWKSFetchRate, defaultJWKSFetchRate),
			JWKSFetchBurst: getIntEnv(envJWKSFetchBurst, defaultJWKSFetchBurst),
		},
		RateLimit: RateLimitConfig{
			WindowMs: getIntEnv(envRateLimitWindowMs, defaultRateLimitWindowMs),
			Max:      getIntEnv(envRateLimitMax, defaultRateLimitMax),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf(errInvalidConfigurationFmt, err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf(errPortRequiredFmt)
	}

	for _, cidr := range c.Server.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			return fmt.Errorf(errTrustedProxyFmt, cidr, err)
		}
	}

	if c.Auth.DevStubEnabled && c.IsProduction() {
		return fmt.Errorf(errDevStubInProductionFmt, c.AppEnv)
	}

	if c.RateLimit.WindowMs <= 0 {
		return fmt.Errorf(errRateLimitWindowFmt, c.RateLimit.WindowMs)
	}

	if c.RateLimit.Max <= 0 {
		return fmt.Errorf(errRateLimitMaxFmt, c.RateLimit.Max)
	}

	if c.Auth.JWKSURL != "" && !isHTTPURL(c.Auth.JWKSURL) {
		return fmt.Errorf(errJWKSURLInvalidFmt, c.Auth.JWKSURL)
	}

	if c.Auth.JWKSFetchRate <= 0 || c.Auth.JWKSFetchBurst <= 0 {
		return fmt.Errorf(errJWKSFetchRateFmt)
	}

	return nil
}

// IsProduction reports whether the runtime mode is production. Unknown
// modes count as production.
func (c *Config) IsProduction() bool {
	switch c.AppEnv {
	case EnvDevelopment, EnvTest:
		return false
	default:
		return true
	}
}

func isHTTPURL(raw string) bool {
	lower := strings.ToLower(raw)
	return (strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")) && len(raw) > len("https://")
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intVal
		}
		warn(messages.invalidValue(key, value))
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return f
		}
		warn(messages.invalidValue(key, value))
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
		warn(messages.invalidValue(key, value))
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
		warn(messages.invalidValue(key, value))
	}
	return defaultValue
}

func warn(msg string) {
	fmt.Fprintln(os.Stderr, msg)
}
