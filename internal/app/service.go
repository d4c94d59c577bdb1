package app

import (
	"context"
	"errors"
	"log"
	stdhttp "net/http"

	"wms-api/internal/auth"
	"wms-api/internal/config"
	"wms-api/internal/http"
	"wms-api/internal/http/middleware"
	"wms-api/internal/warehouse"
	"wms-api/pkg/metrics"

	"golang.org/x/time/rate"
)

const serverAddrPrefix = ":"

// Service is the wired API server.
type Service struct {
	config *config.Config
	server *http.Server
}

// NewService wires every dependency from cfg.
func NewService(cfg *config.Config) *Service {
	if cfg.Auth.JWKSURL == "" {
		log.Println("Warning: AUTH_JWKS_URL is not set; bearer tokens will be rejected with AUTH_CONFIG_ERROR")
	}
	if cfg.Auth.DevStubEnabled {
		log.Printf("Warning: dev auth stub enabled (APP_ENV=%s); X-Tenant-ID/X-User-ID headers are trusted", cfg.AppEnv)
	}

	keys := auth.NewRemoteKeySet(cfg.Auth.JWKSURL, cfg.Auth.JWKSTimeout,
		auth.WithFetchLimit(rate.Limit(cfg.Auth.JWKSFetchRate), cfg.Auth.JWKSFetchBurst))

	server := http.NewServer(&http.ServerDependencies{
		Config: cfg,
		Authenticator: auth.NewAuthenticator(keys, auth.Options{
			DevStubEnabled: cfg.Auth.DevStubEnabled,
			Issuer:         cfg.Auth.Issuer,
			Audience:       cfg.Auth.Audience,
		}),
		RateLimiter: middleware.NewRateLimiter(cfg.RateLimit.Window(), cfg.RateLimit.Max),
		Metrics:     metrics.New(),
		Generator:   warehouse.NewGenerator(),
	})

	return &Service{
		config: cfg,
		server: server,
	}
}

// Start blocks until the server stops. A graceful shutdown is not an error.
func (s *Service) Start() error {
	log.Printf("Starting HTTP server on port %s", s.config.Server.Port)
	if err := s.server.Start(serverAddrPrefix + s.config.Server.Port); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Service) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the router, mainly for tests.
func (s *Service) Handler() stdhttp.Handler {
	return s.server.Handler()
}
