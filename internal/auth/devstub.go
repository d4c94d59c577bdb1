package auth

import (
	"net/http"
	"strings"
)

// DevStubIdentity builds an identity from trusted headers. It reports false
// unless both the tenant and user headers are non-empty. The result depends
// on the headers alone.
func DevStubIdentity(h http.Header) (Identity, bool) {
	tenantID := strings.TrimSpace(h.Get(headerTenantID))
	userID := strings.TrimSpace(h.Get(headerUserID))
	if tenantID == "" || userID == "" {
		return Identity{}, false
	}

	return Identity{
		UserID:      userID,
		TenantID:    tenantID,
		Roles:       listClaim(h.Get(headerRoles)).Normalize(true),
		Permissions: listClaim(h.Get(headerPermissions)).Normalize(false),
	}, true
}
