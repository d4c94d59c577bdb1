package auth

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTenantFromClaims(t *testing.T) {
	tests := []struct {
		name   string
		claims map[string]any
		want   string
		ok     bool
	}{
		{"tenant_id", map[string]any{"tenant_id": "T1"}, "T1", true},
		{"tenantId", map[string]any{"tenantId": "T2"}, "T2", true},
		{"org_id", map[string]any{"org_id": "T3"}, "T3", true},
		{"orgId", map[string]any{"orgId": "T4"}, "T4", true},
		{"priority order", map[string]any{"orgId": "T4", "org_id": "T3", "tenantId": "T2"}, "T2", true},
		{"null skipped", map[string]any{"tenant_id": nil, "org_id": "T3"}, "T3", true},
		{"verbatim string", map[string]any{"tenant_id": " Acme "}, " Acme ", true},
		{"json number", map[string]any{"tenant_id": json.Number("42")}, "42", true},
		{"float number", map[string]any{"org_id": float64(7)}, "7", true},
		{"empty string", map[string]any{"tenant_id": ""}, "", false},
		{"object", map[string]any{"tenant_id": map[string]any{"id": "x"}}, "", false},
		{"missing", map[string]any{"sub": "u"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tenantFromClaims(tt.claims)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRolesFromClaims(t *testing.T) {
	tests := []struct {
		name   string
		claims map[string]any
		want   []string
	}{
		{"array", map[string]any{"roles": []any{"SuperAdmin", "Auditor"}}, []string{"superadmin", "auditor"}},
		{"comma string", map[string]any{"roles": " Picker, RECEIVER ,,picker"}, []string{"picker", "receiver"}},
		{"singular role", map[string]any{"role": "StoreManager"}, []string{"storemanager"}},
		{"roles wins over role", map[string]any{"roles": []any{"auditor"}, "role": "picker"}, []string{"auditor"}},
		{"blank roles string is empty", map[string]any{"roles": "  ", "role": "picker"}, []string{}},
		{"empty roles string is empty", map[string]any{"roles": "", "role": "picker"}, []string{}},
		{"null roles falls back", map[string]any{"roles": nil, "role": "picker"}, []string{"picker"}},
		{"non string role", map[string]any{"role": 5}, []string{}},
		{"nothing", map[string]any{}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rolesFromClaims(tt.claims)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPermissionsFromClaims(t *testing.T) {
	tests := []struct {
		name   string
		claims map[string]any
		want   []string
	}{
		{"array keeps case", map[string]any{"permissions": []any{"Inbound:Write", "trace:read"}}, []string{"Inbound:Write", "trace:read"}},
		{"comma string", map[string]any{"permissions": "inventory:read, inventory:adjust"}, []string{"inventory:read", "inventory:adjust"}},
		{"singular ignored", map[string]any{"permission": "rma:write"}, []string{}},
		{"wrong type", map[string]any{"permissions": true}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, permissionsFromClaims(tt.claims))
		})
	}
}

func TestDevStubIdentity(t *testing.T) {
	h := http.Header{}
	h.Set("x-tenant-id", " T1 ")
	h.Set("x-user-id", "U1")
	h.Set("x-roles", "SuperAdmin, Auditor")
	h.Set("x-permissions", "Trace:Read,,inbound:write")

	id, ok := DevStubIdentity(h)
	assert.True(t, ok)
	assert.Equal(t, "T1", id.TenantID)
	assert.Equal(t, "U1", id.UserID)
	assert.Equal(t, []string{"superadmin", "auditor"}, id.Roles)
	assert.Equal(t, []string{"Trace:Read", "inbound:write"}, id.Permissions)

	again, ok := DevStubIdentity(h.Clone())
	assert.True(t, ok)
	assert.Equal(t, id, again)
}

func TestDevStubIdentityRequiresTenantAndUser(t *testing.T) {
	h := http.Header{}
	h.Set("x-tenant-id", "T1")
	h.Set("x-user-id", "   ")

	_, ok := DevStubIdentity(h)
	assert.False(t, ok)

	h = http.Header{}
	h.Set("x-user-id", "U1")
	_, ok = DevStubIdentity(h)
	assert.False(t, ok)
}

func TestDevStubIdentityDefaultsToEmptySets(t *testing.T) {
	h := http.Header{}
	h.Set("x-tenant-id", "T1")
	h.Set("x-user-id", "U1")

	id, ok := DevStubIdentity(h)
	assert.True(t, ok)
	assert.Equal(t, []string{}, id.Roles)
	assert.Equal(t, []string{}, id.Permissions)
}
