package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/ViniMartins/VitrineApp/app/models"
	"github.com/ViniMartins/VitrineApp/app/repository"
	"github.com/ViniMartins/VitrineApp/internal/pkg/metrics/counter"
	"github.com/ViniMartins/VitrineApp/internal/pkg/tenantrouter"
	"github.com/ViniMartins/VitrineApp/internal/pkg/usercontext"
)

// HandleTenantRequest is the catch-all for unmatched routes. It resolves
// the host and path to a published app, a redirect, or a 404.
func HandleTenantRequest(c *fiber.Ctx) error {
	decision := routeResolver.Resolve(c.Context(), c.Hostname(), c.Path())
	decision = tenantrouter.ApplyMaintenanceGate(decision, c.Path(), models.IsMaintenanceMode())

	switch decision.Kind {
	case tenantrouter.KindRedirect:
		return c.Redirect(decision.Target, fiber.StatusFound)
	case tenantrouter.KindServeApp:
		return serveApp(c, decision.AppID)
	default:
		return HandleNotFound(c)
	}
}

// HandleAppBySlug serves /a/:slug directly, bypassing domain resolution.
func HandleAppBySlug(c *fiber.Ctx) error {
	app, err := repository.GetGlobalRepositories().TenantApp.GetBySlug(c.Params("slug"))
	if err != nil {
		return HandleNotFound(c)
	}
	if models.IsMaintenanceMode() && !tenantrouter.IsMaintenanceExempt(c.Path()) {
		return c.Redirect(tenantrouter.MaintenancePath, fiber.StatusFound)
	}
	return renderApp(c, app)
}

func serveApp(c *fiber.Ctx, appID uint) error {
	app, err := repository.GetGlobalRepositories().TenantApp.GetByID(appID)
	if err != nil || !app.IsPublished {
		return HandleNotFound(c)
	}
	return renderApp(c, app)
}

func renderApp(c *fiber.Ctx, app *models.TenantApp) error {
	if err := counter.AddAppView(app.ID); err != nil {
		log.Printf("[App] counting view for app %d: %v", app.ID, err)
	}
	return c.Render("app/show", fiber.Map{
		"Title": app.Name,
		"App":   app,
	}, "layouts/app")
}

func HandleNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).Render("not_found", fiber.Map{
		"Title": "Not found",
	}, "layouts/main")
}

// HandlePricing lists the plan catalog. Also the landing target for
// root requests on unmapped hosts.
func HandlePricing(c *fiber.Ctx) error {
	plans, err := repository.GetGlobalRepositories().Plan.ListActive()
	if err != nil {
		log.Printf("[Pricing] loading plans: %v", err)
	}
	uc := usercontext.GetUserContext(c)

	return c.Render("pricing", fiber.Map{
		"Title":         "Pricing",
		"Plans":         plans,
		"Flash":         flash.Get(c),
		"IsLoggedIn":    uc.IsLoggedIn,
		"HasActivePlan": uc.HasActivePlan,
	}, "layouts/main")
}

// HandleMaintenancePage renders the downtime notice.
func HandleMaintenancePage(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).Render("maintenance", fiber.Map{
		"Title": "Under maintenance",
	}, "layouts/main")
}

// HandleHome resolves the platform root like any other tenant request.
func HandleHome(c *fiber.Ctx) error {
	return HandleTenantRequest(c)
}
