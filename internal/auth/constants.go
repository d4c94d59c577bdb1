package auth

const (
	ContextKeyRequestContext = "request_context"

	headerAuthorization = "Authorization"
	headerTenantID      = "X-Tenant-ID"
	headerUserID        = "X-User-ID"
	headerRoles         = "X-Roles"
	headerPermissions   = "X-Permissions"

	bearerScheme = "bearer"

	claimRoles       = "roles"
	claimRole        = "role"
	claimPermissions = "permissions"

	listSeparator = ","
)

// tenantClaimAliases is ordered by priority.
var tenantClaimAliases = []string{"tenant_id", "tenantId", "org_id", "orgId"}

const (
	msgMissingAuthorization   = "Missing bearer token"
	msgInvalidOrExpiredToken  = "Invalid or expired token"
	msgMissingSubject         = "Token is missing subject"
	msgMissingTenant          = "Token is missing tenant"
	msgKeySourceUnconfigured  = "Authentication key source is not configured"
	msgInsufficientRole       = "Insufficient role"
	msgInsufficientPermission = "Insufficient permissions"
	msgContextAlreadyBound    = "request context already authenticated"
	msgContextMissing         = "request context not initialized"

	errUnexpectedStatusFmt = "jwks fetch: unexpected status %d"
	errFetchFmt            = "jwks fetch: %w"
	errParseFmt            = "jwks parse: %w"
	errKeyExportFmt        = "jwks key %q: %w"
	errKeyNotFoundFmt      = "%w: kid %q"
)
