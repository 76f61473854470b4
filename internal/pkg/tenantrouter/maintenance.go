package tenantrouter

import "strings"

// MaintenancePath is the substitute page served while maintenance mode is
// active.
const MaintenancePath = "/maintenance"

// exemptPrefixes are request prefixes that keep working during maintenance:
// operators must still reach the admin area, users the login/logout flow,
// and payment providers their webhook endpoints.
var exemptPrefixes = []string{
	"/admin",
	"/login",
	"/logout",
	"/maintenance",
	"/api/health",
	"/docs",
	"/webhooks",
	"/assets",
}

// IsMaintenanceExempt reports whether a path bypasses the maintenance gate.
func IsMaintenanceExempt(path string) bool {
	p := normalizePath(path)
	for _, prefix := range exemptPrefixes {
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}
	return false
}

// ApplyMaintenanceGate substitutes the maintenance page for any
// non-exempt decision while maintenance mode is active. It runs after
// resolution, so the decision itself never depends on the flag.
func ApplyMaintenanceGate(decision RouteDecision, path string, maintenanceActive bool) RouteDecision {
	if !maintenanceActive {
		return decision
	}
	if IsMaintenanceExempt(path) {
		return decision
	}
	return Redirect(MaintenancePath)
}
