package router

import (
	"github.com/ViniMartins/VitrineApp/app/controllers"
	"github.com/gofiber/fiber/v2"
)

type Router interface {
	InstallRouter(app *fiber.App)
}

func InstallRouter(app *fiber.App) {
	// Install HttpRouter first to initialize session store, oauth providers,
	// and the global UserContext middleware. Then register API routes which
	// depend on that middleware.
	setup(app, NewHttpRouter(), NewApiRouter())

	// Tenant resolution catches everything unmatched: custom domains, path
	// mappings, slug fallback, pricing redirect. Registered last so it can
	// never shadow a real route.
	app.Get("/", controllers.HandleHome)
	app.Get("/*", controllers.HandleTenantRequest)
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
