package logger

import (
	"regexp"
	"strings"
)

// Sensitive field patterns to filter from logs
var (
	bearerPattern     = regexp.MustCompile(`(?i)(bearer)\s+[A-Za-z0-9\-_.~+/]+=*`)
	jwtPattern        = regexp.MustCompile(`eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]*`)
	tokenPattern      = regexp.MustCompile(`(?i)(token|jwt)[\s:=]+[^\s]+`)
	authHeaderPattern = regexp.MustCompile(`(?i)(authorization)[\s:=]+[^\s]+`)
	secretPattern     = regexp.MustCompile(`(?i)(secret|private[_-]?key)[\s:=]+[^\s]+`)
)

const redactedPlaceholder = "[REDACTED]"

// SanitizeLogMessage removes credentials from log messages
func SanitizeLogMessage(message string) string {
	message = bearerPattern.ReplaceAllString(message, "${1} "+redactedPlaceholder)
	message = jwtPattern.ReplaceAllString(message, redactedPlaceholder)
	message = tokenPattern.ReplaceAllString(message, "${1}="+redactedPlaceholder)
	message = authHeaderPattern.ReplaceAllString(message, "${1}="+redactedPlaceholder)
	message = secretPattern.ReplaceAllString(message, "${1}="+redactedPlaceholder)

	return message
}

// SanitizeMap redacts values whose keys look like credentials
func SanitizeMap(data map[string]any) map[string]any {
	sensitiveKeys := []string{
		"authorization", "token", "jwt", "bearer",
		"secret", "private_key", "private-key",
	}

	sanitized := make(map[string]any, len(data))
	for k, v := range data {
		lowerKey := strings.ToLower(k)
		isSensitive := false

		for _, sensitiveKey := range sensitiveKeys {
			if strings.Contains(lowerKey, sensitiveKey) {
				isSensitive = true
				break
			}
		}

		if isSensitive {
			sanitized[k] = redactedPlaceholder
		} else {
			sanitized[k] = v
		}
	}

	return sanitized
}
