// Package theme resolves a user's UI theme from their stored preference.
package theme

import "cofoundry-backend/internal/utilities"

const (
	Dark  = "dark"
	Light = "light"
)

// ValidPreferences are the values a client may store. Empty means "never
// chosen" and resolves to the default.
var ValidPreferences = []string{Dark, Light}

// IsValidPreference reports whether a stored value is one a client may set.
func IsValidPreference(s string) bool {
	return utilities.Contains(ValidPreferences, s)
}

// Resolve maps a stored preference to the effective theme. The default is
// dark; only an explicitly stored "light" yields light. Unknown or empty
// values fall back to dark.
func Resolve(stored string) string {
	if stored == Light {
		return Light
	}
	return Dark
}
