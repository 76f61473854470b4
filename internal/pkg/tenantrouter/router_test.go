package tenantrouter

import (
	"context"
	"testing"

	"github.com/ViniMartins/VitrineApp/app/models"
	"gorm.io/gorm"
)

type fakeDomainRepo struct {
	byHost   map[string]*models.CustomDomain
	mappings map[uint][]models.DomainMapping
}

func (r *fakeDomainRepo) GetByHost(host string) (*models.CustomDomain, error) {
	if d, ok := r.byHost[host]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeDomainRepo) GetByID(id uint) (*models.CustomDomain, error) {
	for _, d := range r.byHost {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeDomainRepo) ListByUser(userID uint) ([]models.CustomDomain, error) { return nil, nil }
func (r *fakeDomainRepo) List(offset, limit int) ([]models.CustomDomain, error) { return nil, nil }
func (r *fakeDomainRepo) Save(domain *models.CustomDomain) error                { return nil }

func (r *fakeDomainRepo) ListMappings(customDomainID uint) ([]models.DomainMapping, error) {
	return r.mappings[customDomainID], nil
}

func (r *fakeDomainRepo) SaveMapping(mapping *models.DomainMapping) error { return nil }
func (r *fakeDomainRepo) DeleteMapping(id uint) error                     { return nil }

type fakeAppRepo struct {
	bySlug map[string]*models.TenantApp
}

func (r *fakeAppRepo) Create(app *models.TenantApp) error { return nil }

func (r *fakeAppRepo) GetByID(id uint) (*models.TenantApp, error) {
	for _, a := range r.bySlug {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAppRepo) GetBySlug(slug string) (*models.TenantApp, error) {
	if a, ok := r.bySlug[slug]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAppRepo) GetByUserID(userID uint) ([]models.TenantApp, error) { return nil, nil }
func (r *fakeAppRepo) Update(app *models.TenantApp) error                  { return nil }
func (r *fakeAppRepo) Count() (int64, error)                               { return 0, nil }

func newTestResolver() *Resolver {
	appID2 := uint(2)
	domains := &fakeDomainRepo{
		byHost: map[string]*models.CustomDomain{
			"clinic.example":  {ID: 1, Domain: "clinic.example", Status: models.DomainStatusActive, AppID: &appID2},
			"pending.example": {ID: 2, Domain: "pending.example", Status: models.DomainStatusPending},
			"bare.example":    {ID: 3, Domain: "bare.example", Status: models.DomainStatusVerified},
		},
		mappings: map[uint][]models.DomainMapping{
			1: {
				{ID: 1, CustomDomainID: 1, Path: "/", AppID: 2},
				{ID: 2, CustomDomainID: 1, Path: "/booking", AppID: 3},
				{ID: 3, CustomDomainID: 1, Path: "/booking/vip", AppID: 4},
			},
		},
	}
	apps := &fakeAppRepo{
		bySlug: map[string]*models.TenantApp{
			"my-ebook": {ID: 9, Slug: "my-ebook", IsPublished: true},
			"booking":  {ID: 77, Slug: "booking", IsPublished: true},
		},
	}
	return NewResolverWithoutCache(domains, apps)
}

func TestResolve_CustomDomainRootMapping(t *testing.T) {
	r := newTestResolver()

	got := r.Resolve(context.Background(), "clinic.example", "/")
	if got.Kind != KindServeApp || got.AppID != 2 {
		t.Fatalf("expected app 2 for domain root, got %+v", got)
	}
}

func TestResolve_LongestPrefixWins(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		path string
		want uint
	}{
		{path: "/booking", want: 3},
		{path: "/booking/", want: 3},
		{path: "/booking/slots", want: 3},
		{path: "/booking/vip", want: 4},
		{path: "/booking/vip/today", want: 4},
		{path: "/bookings", want: 2}, // not a segment match for /booking
		{path: "/anything/else", want: 2},
	}

	for _, tt := range tests {
		got := r.Resolve(context.Background(), "clinic.example", tt.path)
		if got.Kind != KindServeApp || got.AppID != tt.want {
			t.Fatalf("Resolve(clinic.example, %q) = %+v, want app %d", tt.path, got, tt.want)
		}
	}
}

func TestResolve_CustomDomainBeatsSlug(t *testing.T) {
	r := newTestResolver()

	// The final segment "booking" is also a published slug (app 77); the
	// routable domain must win.
	got := r.Resolve(context.Background(), "clinic.example", "/booking")
	if got.AppID != 3 {
		t.Fatalf("domain mapping must take precedence over slug, got %+v", got)
	}
}

func TestResolve_UnroutableDomainFallsThroughToSlug(t *testing.T) {
	r := newTestResolver()

	got := r.Resolve(context.Background(), "pending.example", "/my-ebook")
	if got.Kind != KindServeApp || got.AppID != 9 {
		t.Fatalf("pending domain must fall through to slug lookup, got %+v", got)
	}
}

func TestResolve_VerifiedDomainWithoutMappingsOrDefault(t *testing.T) {
	r := newTestResolver()

	// Routable but no mappings and no default app: falls through to slug.
	got := r.Resolve(context.Background(), "bare.example", "/my-ebook")
	if got.Kind != KindServeApp || got.AppID != 9 {
		t.Fatalf("expected slug fallback, got %+v", got)
	}
}

func TestResolve_SlugFromFinalSegment(t *testing.T) {
	r := newTestResolver()

	got := r.Resolve(context.Background(), "platform.example", "/a/b/my-ebook")
	if got.Kind != KindServeApp || got.AppID != 9 {
		t.Fatalf("expected final segment slug resolution, got %+v", got)
	}
}

func TestResolve_UnknownSlugIsNotFound(t *testing.T) {
	r := newTestResolver()

	got := r.Resolve(context.Background(), "platform.example", "/no-such-app")
	if got.Kind != KindNotFound {
		t.Fatalf("expected not found, got %+v", got)
	}
}

func TestResolve_BareRootRedirectsToPricing(t *testing.T) {
	r := newTestResolver()

	got := r.Resolve(context.Background(), "platform.example", "/")
	if got.Kind != KindRedirect || got.Target != PricingPath {
		t.Fatalf("expected pricing redirect, got %+v", got)
	}
}

func TestResolve_HostNormalization(t *testing.T) {
	r := newTestResolver()

	got := r.Resolve(context.Background(), "CLINIC.example:8443", "/")
	if got.Kind != KindServeApp || got.AppID != 2 {
		t.Fatalf("host with port and mixed case must resolve, got %+v", got)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: "/"},
		{in: "/", want: "/"},
		{in: "/a/", want: "/a"},
		{in: "a/b", want: "/a/b"},
		{in: "/a/b///", want: "/a/b"},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.in); got != tt.want {
			t.Fatalf("normalizePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFinalSegment(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "/", want: ""},
		{in: "", want: ""},
		{in: "/my-ebook", want: "my-ebook"},
		{in: "/a/b/my-ebook", want: "my-ebook"},
		{in: "/my-ebook/", want: "my-ebook"},
	}

	for _, tt := range tests {
		if got := finalSegment(tt.in); got != tt.want {
			t.Fatalf("finalSegment(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsMaintenanceExempt(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "/admin", want: true},
		{path: "/admin/login", want: true},
		{path: "/login", want: true},
		{path: "/logout", want: true},
		{path: "/maintenance", want: true},
		{path: "/api/health", want: true},
		{path: "/docs/api/v1", want: true},
		{path: "/webhooks/hotmart/1", want: true},
		{path: "/assets/css/app.css", want: true},
		{path: "/app", want: false},
		{path: "/administrator", want: false}, // prefix match is per segment
		{path: "/", want: false},
		{path: "/a/my-ebook", want: false},
	}

	for _, tt := range tests {
		if got := IsMaintenanceExempt(tt.path); got != tt.want {
			t.Fatalf("IsMaintenanceExempt(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestApplyMaintenanceGate(t *testing.T) {
	serve := ServeApp(9)

	if got := ApplyMaintenanceGate(serve, "/a/my-ebook", false); got != serve {
		t.Fatalf("inactive maintenance must pass the decision through")
	}
	if got := ApplyMaintenanceGate(serve, "/admin/users", true); got != serve {
		t.Fatalf("exempt path must pass through during maintenance")
	}
	got := ApplyMaintenanceGate(serve, "/a/my-ebook", true)
	if got.Kind != KindRedirect || got.Target != MaintenancePath {
		t.Fatalf("non-exempt path must redirect to maintenance, got %+v", got)
	}
}
