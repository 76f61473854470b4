// Package tenantrouter maps an inbound (host, path) pair to the tenant app
// that should serve it. Custom-domain mappings take strict precedence over
// slug lookup; maintenance mode can substitute the decision afterwards.
package tenantrouter

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/ViniMartins/VitrineApp/app/models"
	"github.com/ViniMartins/VitrineApp/app/repository"
	"github.com/ViniMartins/VitrineApp/internal/pkg/cache"
	"gorm.io/gorm"
)

// Decision kinds.
const (
	KindServeApp = "serve_app"
	KindRedirect = "redirect"
	KindNotFound = "not_found"
)

// PricingPath is where a bare root request without custom-domain context
// lands: the marketing subscription page.
const PricingPath = "/pricing"

// RouteDecision is the tagged outcome of one resolution.
type RouteDecision struct {
	Kind   string `json:"kind"`
	AppID  uint   `json:"app_id,omitempty"`
	Target string `json:"target,omitempty"`
}

// ServeApp builds a serve decision.
func ServeApp(appID uint) RouteDecision {
	return RouteDecision{Kind: KindServeApp, AppID: appID}
}

// Redirect builds a redirect decision.
func Redirect(target string) RouteDecision {
	return RouteDecision{Kind: KindRedirect, Target: target}
}

// NotFound is the terminal miss decision.
func NotFound() RouteDecision {
	return RouteDecision{Kind: KindNotFound}
}

// How long a host-to-domain lookup may be served from Redis. Routing is
// read-only, so a brief staleness window after a domain status change is
// acceptable.
const domainCacheTTL = 30 * time.Second

// Resolver performs read-only tenant resolution. It holds no per-request
// state; every call is independent.
type Resolver struct {
	domains   repository.DomainRepository
	apps      repository.TenantAppRepository
	skipCache bool
}

// NewResolver creates a resolver from its repositories.
func NewResolver(domains repository.DomainRepository, apps repository.TenantAppRepository) *Resolver {
	return &Resolver{domains: domains, apps: apps}
}

// NewResolverWithoutCache creates a resolver that always hits the store;
// used by tests and by the admin preview endpoint.
func NewResolverWithoutCache(domains repository.DomainRepository, apps repository.TenantAppRepository) *Resolver {
	return &Resolver{domains: domains, apps: apps, skipCache: true}
}

// Resolve applies the precedence order: routable custom domain + longest
// mapping prefix, then tenant slug from the final path segment, then the
// pricing redirect for a bare root.
func (r *Resolver) Resolve(ctx context.Context, host, path string) RouteDecision {
	_ = ctx
	host = normalizeHost(host)
	path = normalizePath(path)

	if host != "" {
		if decision, ok := r.resolveCustomDomain(host, path); ok {
			return decision
		}
	}

	slug := finalSegment(path)
	if slug != "" {
		if app, err := r.apps.GetBySlug(slug); err == nil {
			return ServeApp(app.ID)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("tenantrouter: slug lookup failed for %q: %v", slug, err)
			return NotFound()
		}
		return NotFound()
	}

	// Bare root with no custom-domain context: marketing page.
	return Redirect(PricingPath)
}

// resolveCustomDomain returns (decision, true) when the host owns the
// request. Unverified domains fall through to slug resolution.
func (r *Resolver) resolveCustomDomain(host, path string) (RouteDecision, bool) {
	domain, err := r.lookupDomain(host)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("tenantrouter: domain lookup failed for %q: %v", host, err)
		}
		return RouteDecision{}, false
	}
	if !domain.IsRoutable() {
		return RouteDecision{}, false
	}

	mappings, err := r.domains.ListMappings(domain.ID)
	if err != nil {
		log.Printf("tenantrouter: mapping lookup failed for %q: %v", host, err)
		return RouteDecision{}, false
	}

	if appID, ok := bestMapping(mappings, path); ok {
		return ServeApp(appID), true
	}

	// A routable domain with a default app serves it for any path.
	if domain.AppID != nil {
		return ServeApp(*domain.AppID), true
	}

	return RouteDecision{}, false
}

// lookupDomain reads the host-to-domain association, memoized briefly in
// Redis to keep hot hostnames off the database.
func (r *Resolver) lookupDomain(host string) (*models.CustomDomain, error) {
	if r.skipCache {
		return r.domains.GetByHost(host)
	}

	cacheKey := "route:domain:" + host
	if idStr, err := cache.Get(cacheKey); err == nil && idStr != "" {
		if idStr == "miss" {
			return nil, gorm.ErrRecordNotFound
		}
		if id, err := strconv.ParseUint(idStr, 10, 64); err == nil {
			if domain, err := r.domains.GetByID(uint(id)); err == nil {
				return domain, nil
			}
		}
	}

	domain, err := r.domains.GetByHost(host)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = cache.Set(cacheKey, "miss", domainCacheTTL)
		}
		return nil, err
	}
	_ = cache.Set(cacheKey, strconv.FormatUint(uint64(domain.ID), 10), domainCacheTTL)
	return domain, nil
}

// bestMapping picks the mapping whose path is the longest prefix of the
// request path. An empty or "/" mapping matches the root.
func bestMapping(mappings []models.DomainMapping, path string) (uint, bool) {
	bestLen := -1
	var bestApp uint
	for _, m := range mappings {
		mp := normalizePath(m.Path)
		if !pathHasPrefix(path, mp) {
			continue
		}
		if len(mp) > bestLen {
			bestLen = len(mp)
			bestApp = m.AppID
		}
	}
	return bestApp, bestLen >= 0
}

// pathHasPrefix reports whether request path p falls under mapping path mp
// on segment boundaries.
func pathHasPrefix(p, mp string) bool {
	if mp == "/" {
		return true
	}
	if p == mp {
		return true
	}
	return strings.HasPrefix(p, mp+"/")
}

func normalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	// Strip a port if present.
	if i := strings.LastIndex(host, ":"); i > -1 && !strings.Contains(host[i:], "]") {
		host = host[:i]
	}
	return host
}

// normalizePath lower-bounds every path at "/" and strips trailing slashes
// so "" and "/" mean the same thing.
func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if path != "/" {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}

// finalSegment returns the last path segment, or "" for the root.
func finalSegment(path string) string {
	path = normalizePath(path)
	if path == "/" {
		return ""
	}
	parts := strings.Split(strings.Trim(path, "/"), "/")
	return parts[len(parts)-1]
}
