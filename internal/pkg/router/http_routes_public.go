package router

import (
	"github.com/ViniMartins/VitrineApp/app/controllers"
	"github.com/ViniMartins/VitrineApp/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Static pages
	app.Get("/pricing", loggedInMiddleware, controllers.HandlePricing)
	app.Get("/maintenance", controllers.HandleMaintenancePage)

	// Auth
	app.Get("/login", controllers.HandleAuthLogin)
	app.Post("/login", controllers.HandleAuthLogin)
	app.Get("/register", controllers.HandleAuthRegister)
	app.Post("/register", controllers.HandleAuthRegister)
	app.Get("/activate/:token", controllers.HandleAuthActivate)
	app.Get("/admin/login", controllers.HandleAuthLogin)
	app.Post("/admin/login", controllers.HandleAuthLogin)
	app.Post("/logout", middleware.RequireAuth, controllers.HandleAuthLogout)
	app.Get("/account/inactive", middleware.RequireAuth, controllers.HandleAccountInactive)

	// Social OAuth
	app.Get("/auth/:provider", controllers.HandleOAuthBegin)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)

	// Access code redemption (browser flow)
	app.Get("/redeem", controllers.HandleRedeemPage)
	app.Post("/redeem", controllers.HandleRedeemPage)

	// Payment provider webhooks (no session, verified per provider scheme
	// in the controller)
	app.Post("/webhooks/:provider/:bumpID", controllers.HandleProviderWebhook)

	// Published app by slug
	app.Get("/a/:slug", controllers.HandleAppBySlug)
}
