package pure_utils

import (
	"strings"
)

// RedactionMarker replaces the value of any sensitive key before storage.
const RedactionMarker = "***REDACTED***"

// Case-insensitive substrings. access_token and refresh_token are already
// covered by token, kept so the list matches the grant storage column names.
var sensitiveKeySubstrings = []string{
	"password",
	"token",
	"access_token",
	"refresh_token",
	"secret",
	"api_key",
}

func IsSensitiveKey(key string) bool {
	lowered := strings.ToLower(key)
	for _, substring := range sensitiveKeySubstrings {
		if strings.Contains(lowered, substring) {
			return true
		}
	}
	return false
}

// RedactSensitiveKeys returns a copy of doc where every value under a
// sensitive key is replaced by the redaction marker. Nested maps and arrays
// are walked, all other keys and values are preserved as-is. A nil doc stays
// nil.
func RedactSensitiveKeys(doc map[string]any) map[string]any {
	if doc == nil {
		return nil
	}
	out := make(map[string]any, len(doc))
	for key, value := range doc {
		if IsSensitiveKey(key) {
			out[key] = RedactionMarker
			continue
		}
		out[key] = redactValue(value)
	}
	return out
}

func redactValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return RedactSensitiveKeys(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = redactValue(item)
		}
		return out
	default:
		return value
	}
}
