package billing

import "strings"

// IsEntitlingStatus reports whether a provider subscription status keeps
// the subscriber entitled. past_due stays entitled until the provider
// finally cancels, matching the dunning grace period.
func IsEntitlingStatus(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "active", "trialing", "past_due":
		return true
	default:
		return false
	}
}
