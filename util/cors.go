package util

import "strings"

// MakeAllowedOriginValidator builds an origin check from a list of allowed origins.
// "*" allows everything, entries may omit the scheme, and a single "*" inside an
// entry matches any run of characters, as in "https://*.example.com".
func MakeAllowedOriginValidator(allowedOrigins []string) func(origin string) bool {
	allowed := make([]string, 0, len(allowedOrigins))
	for _, o := range allowedOrigins {
		o = strings.TrimSpace(o)
		if o == "*" {
			return func(string) bool { return true }
		}
		if o != "" {
			allowed = append(allowed, o)
		}
	}

	return func(origin string) bool {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			return false
		}
		originHost := strings.TrimPrefix(strings.TrimPrefix(origin, "https://"), "http://")

		for _, a := range allowed {
			if a == origin || a == originHost {
				return true
			}
			if prefix, suffix, ok := strings.Cut(a, "*"); ok &&
				len(origin) >= len(prefix)+len(suffix) &&
				strings.HasPrefix(origin, prefix) && strings.HasSuffix(origin, suffix) {
				return true
			}
		}
		return false
	}
}
