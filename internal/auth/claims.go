package auth

import (
	"encoding/json"
	"strconv"
	"strings"
)

type claimShape int

const (
	shapeAbsent claimShape = iota
	shapeList
	shapeDelimited
	shapeSingle
)

// ClaimValue is a role or permission claim after its shape has been decided.
// Tokens from different issuers carry these as a JSON array, a comma
// separated string, or a singular field.
type ClaimValue struct {
	shape claimShape
	items []string
}

// listClaim classifies a multi-valued claim: an array or a comma separated string.
func listClaim(v any) ClaimValue {
	switch t := v.(type) {
	case []any:
		items := make([]string, 0, len(t))
		for _, elem := range t {
			if s, ok := scalarString(elem); ok {
				items = append(items, s)
			}
		}
		return ClaimValue{shape: shapeList, items: items}
	case []string:
		return ClaimValue{shape: shapeList, items: t}
	case string:
		return ClaimValue{shape: shapeDelimited, items: strings.Split(t, listSeparator)}
	default:
		return ClaimValue{}
	}
}

// singleClaim classifies a singular string claim.
func singleClaim(v any) ClaimValue {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return ClaimValue{}
	}
	return ClaimValue{shape: shapeSingle, items: []string{s}}
}

// Normalize trims every entry, drops empties and duplicates, and lower-cases
// when fold is set. The result is never nil.
func (v ClaimValue) Normalize(fold bool) []string {
	out := make([]string, 0, len(v.items))
	if v.shape == shapeAbsent {
		return out
	}

	seen := make(map[string]struct{}, len(v.items))
	for _, item := range v.items {
		item = strings.TrimSpace(item)
		if fold {
			item = strings.ToLower(item)
		}
		if item == "" {
			continue
		}
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

func rolesFromClaims(claims map[string]any) []string {
	v := listClaim(claims[claimRoles])
	if v.shape == shapeAbsent {
		v = singleClaim(claims[claimRole])
	}
	return v.Normalize(true)
}

func permissionsFromClaims(claims map[string]any) []string {
	return listClaim(claims[claimPermissions]).Normalize(false)
}

// tenantFromClaims returns the first non-null tenant alias. Strings are
// returned verbatim and numbers in plain decimal form. Any other value, or an
// empty string, resolves to no tenant.
func tenantFromClaims(claims map[string]any) (string, bool) {
	for _, alias := range tenantClaimAliases {
		raw, ok := claims[alias]
		if !ok || raw == nil {
			continue
		}
		s, ok := scalarString(raw)
		if !ok || s == "" {
			return "", false
		}
		return s, true
	}
	return "", false
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return strconv.FormatInt(i, 10), true
		}
		if f, err := t.Float64(); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64), true
		}
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	default:
		return "", false
	}
}
