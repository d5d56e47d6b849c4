package doctor

import "strings"

// SecretKeyPatterns contains substrings that indicate a key likely contains
// sensitive data, such as the apiKey of a hosted search provider. Keys are
// matched case-insensitively.
var SecretKeyPatterns = []string{
	"TOKEN",
	"KEY",
	"SECRET",
	"PASSWORD",
	"AUTH",
	"CREDENTIAL",
	"PRIVATE",
}

// TokenPrefixes contains known API token prefixes that indicate sensitive values
// regardless of key name.
var TokenPrefixes = []string{
	"ghp_",  // GitHub personal access token
	"gho_",  // GitHub OAuth token
	"ghs_",  // GitHub server-to-server token
	"sk-",   // secret keys
	"AKIA",  // AWS access key prefix
	"xoxb-", // Slack bot token
}

// MaskOptions returns a copy of a free-form options map, such as search
// provider options, with sensitive values redacted. Nested maps and lists
// are walked.
func MaskOptions(opts map[string]any) map[string]any {
	if opts == nil {
		return nil
	}
	masked := make(map[string]any, len(opts))
	for k, v := range opts {
		masked[k] = maskAny(v, ShouldMask(k))
	}
	return masked
}

func maskAny(v any, sensitive bool) any {
	switch t := v.(type) {
	case string:
		if sensitive || ContainsTokenPrefix(t) {
			return MaskValue(t)
		}
		return t
	case map[string]any:
		return MaskOptions(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = maskAny(e, sensitive)
		}
		return out
	default:
		if sensitive && v != nil {
			return MaskValue("")
		}
		return v
	}
}

// MaskValue masks a potentially sensitive string value.
// Values with 4 or fewer characters are fully masked as "********".
// Longer values show the last 4 characters: "****xxxx".
func MaskValue(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}

// ShouldMask returns true if the key name suggests it contains sensitive data.
// Matching is case-insensitive.
func ShouldMask(key string) bool {
	upper := strings.ToUpper(key)
	for _, pattern := range SecretKeyPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}

// ContainsTokenPrefix returns true if the value starts with a known token prefix.
func ContainsTokenPrefix(value string) bool {
	for _, prefix := range TokenPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}
