package auth

import (
	"slices"
	"strings"

	apperrors "wms-api/pkg/errors"

	"github.com/labstack/echo/v4"
)

// Identity is what an authentication strategy resolves for a caller.
type Identity struct {
	UserID      string
	TenantID    string
	Roles       []string
	Permissions []string
}

// RequestContext is the per-request authentication state. It starts
// unauthenticated and is bound to an Identity exactly once.
type RequestContext struct {
	RequestID   string   `json:"requestId"`
	UserID      string   `json:"userId,omitempty"`
	TenantID    string   `json:"tenantId,omitempty"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`

	bound bool
}

func NewRequestContext(requestID string) *RequestContext {
	return &RequestContext{
		RequestID:   requestID,
		Roles:       []string{},
		Permissions: []string{},
	}
}

// Bind populates the context from id. Any later call fails.
func (rc *RequestContext) Bind(id Identity) error {
	if rc.bound {
		return apperrors.InternalServer(msgContextAlreadyBound, nil)
	}

	rc.UserID = id.UserID
	rc.TenantID = id.TenantID
	rc.Roles = nonNil(id.Roles)
	rc.Permissions = nonNil(id.Permissions)
	rc.bound = true

	return nil
}

func (rc *RequestContext) Authenticated() bool {
	return rc != nil && rc.bound && rc.UserID != "" && rc.TenantID != ""
}

// HasAnyRole matches case-insensitively. An empty allowed list always matches.
func (rc *RequestContext) HasAnyRole(allowed ...string) bool {
	if len(allowed) == 0 {
		return true
	}
	if !rc.Authenticated() {
		return false
	}

	for _, want := range allowed {
		for _, have := range rc.Roles {
			if strings.EqualFold(want, have) {
				return true
			}
		}
	}
	return false
}

// MissingPermissions returns the required permissions the caller lacks,
// in the order they were required.
func (rc *RequestContext) MissingPermissions(required ...string) []string {
	var missing []string
	for _, p := range required {
		if !rc.Authenticated() || !slices.Contains(rc.Permissions, p) {
			missing = append(missing, p)
		}
	}
	return missing
}

// Attach stores rc on the echo context.
func Attach(c echo.Context, rc *RequestContext) {
	c.Set(ContextKeyRequestContext, rc)
}

func FromContext(c echo.Context) (*RequestContext, bool) {
	rc, ok := c.Get(ContextKeyRequestContext).(*RequestContext)
	return rc, ok && rc != nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
