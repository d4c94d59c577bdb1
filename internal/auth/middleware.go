package auth

import (
	"context"
	"net/http"
	"strings"

	apperrors "wms-api/pkg/errors"

	"github.com/labstack/echo/v4"
)

type Options struct {
	// DevStubEnabled lets X-Tenant-ID / X-User-ID headers stand in for a
	// bearer token. Never set in production.
	DevStubEnabled bool
	Issuer         string
	Audience       string
}

// Authenticator resolves the caller of every request and binds the result
// to the RequestContext.
type Authenticator struct {
	verifier       *TokenVerifier
	devStubEnabled bool
}

func NewAuthenticator(keys KeySource, opts Options) *Authenticator {
	return &Authenticator{
		verifier:       NewTokenVerifier(keys, opts.Issuer, opts.Audience),
		devStubEnabled: opts.DevStubEnabled,
	}
}

// Authenticate tries the dev stub when enabled and falls back to the bearer
// token when the stub headers are incomplete.
func (a *Authenticator) Authenticate(ctx context.Context, h http.Header) (Identity, error) {
	if a.devStubEnabled {
		if id, ok := DevStubIdentity(h); ok {
			return id, nil
		}
	}

	token := extractBearerToken(h.Get(headerAuthorization))
	if token == "" {
		return Identity{}, apperrors.Unauthorized(msgMissingAuthorization)
	}

	return a.verifier.Verify(ctx, token)
}

func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rc, ok := FromContext(c)
			if !ok {
				return apperrors.InternalServer(msgContextMissing, nil)
			}

			id, err := a.Authenticate(c.Request().Context(), c.Request().Header)
			if err != nil {
				return err
			}

			if err := rc.Bind(id); err != nil {
				return err
			}

			return next(c)
		}
	}
}

// extractBearerToken returns everything after the scheme, so a malformed
// credential still reaches the verifier.
func extractBearerToken(authHeader string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(authHeader), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return ""
	}

	return strings.TrimSpace(token)
}
