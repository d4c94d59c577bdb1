package http

import (
	"context"
	"net"
	stdhttp "net/http"

	"wms-api/internal/auth"
	"wms-api/internal/config"
	"wms-api/internal/http/handler"
	"wms-api/internal/http/middleware"
	"wms-api/internal/http/response"
	"wms-api/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

const (
	jsonKeyStatus = "status"
	statusOK      = "ok"

	requestLogFormat = `{"time":"${time_rfc3339_nano}","id":"${id}","remote_ip":"${remote_ip}",` +
		`"method":"${method}","uri":"${uri}","status":${status},"latency_human":"${latency_human}"}` + "\n"
)

type ServerDependencies struct {
	Config        *config.Config
	Authenticator *auth.Authenticator
	RateLimiter   *middleware.RateLimiter
	Metrics       *metrics.Metrics
	Generator     handler.WarehouseGenerator
}

type Server struct {
	echo *echo.Echo
	deps *ServerDependencies
}

func NewServer(deps *ServerDependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = CustomHTTPErrorHandler
	e.Validator = NewRequestValidator()
	e.IPExtractor = clientIPExtractor(deps.Config.Server.TrustedProxyRanges())

	e.Server.ReadTimeout = deps.Config.Server.ReadTimeout
	e.Server.WriteTimeout = deps.Config.Server.WriteTimeout

	// Request ID first, so all logs and envelopes carry it.
	e.Use(middleware.RequestID())
	e.Use(echomiddleware.LoggerWithConfig(echomiddleware.LoggerConfig{Format: requestLogFormat}))
	e.Use(deps.Metrics.Middleware())
	e.Use(echomiddleware.RecoverWithConfig(echomiddleware.RecoverConfig{DisablePrintStack: deps.Config.IsProduction()}))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: deps.Config.Server.CORSAllowedOrigins,
		AllowHeaders: []string{
			echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderXRequestID,
			"X-Tenant-ID", "X-User-ID", "X-Roles", "X-Permissions",
		},
		ExposeHeaders: []string{echo.HeaderXRequestID, "RateLimit-Limit", "RateLimit-Remaining", "RateLimit-Reset", "Retry-After"},
	}))
	e.Use(echomiddleware.BodyLimit(deps.Config.Server.BodyLimit))
	e.Use(deps.RateLimiter.Middleware())

	e.GET("/health", healthCheck)

	api := e.Group("/api")
	api.Use(deps.Authenticator.Middleware())

	registerRoutes(api.Group("/v1"), routeHandlers{
		session:   handler.NewSessionHandler(),
		warehouse: handler.NewWarehouseHandler(deps.Generator),
		admin:     handler.NewAdminHandler(deps.Metrics),
	})

	return &Server{
		echo: e,
		deps: deps,
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() stdhttp.Handler {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// clientIPExtractor uses the socket peer unless trusted proxy ranges are
// configured, in which case X-Forwarded-For is walked past those ranges only.
func clientIPExtractor(trusted []*net.IPNet) echo.IPExtractor {
	if len(trusted) == 0 {
		return echo.ExtractIPDirect()
	}

	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, ipRange := range trusted {
		opts = append(opts, echo.TrustIPRange(ipRange))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}

func healthCheck(c echo.Context) error {
	return response.Success(c, stdhttp.StatusOK, map[string]string{
		jsonKeyStatus: statusOK,
	})
}
