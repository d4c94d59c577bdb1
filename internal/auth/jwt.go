package auth

import (
	"context"
	"errors"
	"fmt"

	apperrors "wms-api/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
)

var allowedSigningMethods = []string{
	jwt.SigningMethodRS256.Alg(), jwt.SigningMethodRS384.Alg(), jwt.SigningMethodRS512.Alg(),
	jwt.SigningMethodPS256.Alg(), jwt.SigningMethodPS384.Alg(), jwt.SigningMethodPS512.Alg(),
	jwt.SigningMethodES256.Alg(), jwt.SigningMethodES384.Alg(), jwt.SigningMethodES512.Alg(),
}

const headerKeyID = "kid"

// TokenVerifier checks bearer tokens against a KeySource. Issuer and audience
// are only enforced when set.
type TokenVerifier struct {
	keys   KeySource
	parser *jwt.Parser
}

func NewTokenVerifier(keys KeySource, issuer, audience string) *TokenVerifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods(allowedSigningMethods),
		jwt.WithJSONNumber(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}

	return &TokenVerifier{
		keys:   keys,
		parser: jwt.NewParser(opts...),
	}
}

// Verify returns the caller identity carried by tokenString. Failures are
// *apperrors.AppError: AUTH_CONFIG_ERROR when no key source is configured,
// INVALID_TOKEN otherwise.
func (v *TokenVerifier) Verify(ctx context.Context, tokenString string) (Identity, error) {
	if v.keys == nil || !v.keys.Configured() {
		return Identity{}, apperrors.AuthConfig(msgKeySourceUnconfigured)
	}

	claims := jwt.MapClaims{}
	_, err := v.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		kid, _ := token.Header[headerKeyID].(string)
		return v.keys.Key(ctx, kid)
	})
	if err != nil {
		if errors.Is(err, ErrKeySourceUnconfigured) {
			return Identity{}, apperrors.AuthConfig(msgKeySourceUnconfigured)
		}
		return Identity{}, apperrors.InvalidToken(msgInvalidOrExpiredToken, err)
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return Identity{}, apperrors.InvalidToken(msgMissingSubject, err)
	}

	tenantID, ok := tenantFromClaims(claims)
	if !ok {
		return Identity{}, apperrors.InvalidToken(msgMissingTenant, fmt.Errorf("subject %q", subject))
	}

	return Identity{
		UserID:      subject,
		TenantID:    tenantID,
		Roles:       rolesFromClaims(claims),
		Permissions: permissionsFromClaims(claims),
	}, nil
}
