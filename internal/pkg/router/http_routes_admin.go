package router

import (
	"github.com/ViniMartins/VitrineApp/app/controllers"
	"github.com/ViniMartins/VitrineApp/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

func (h HttpRouter) registerAdminRoutes(app *fiber.App) {
	// Guard chain in order: session presence and account status first,
	// then role or qualifying plan. Later stages never run once one fails.
	adminGroup := app.Group("/admin", middleware.RequireActiveAccount, middleware.RequireAdminAccess)
	adminGroup.Get("/", controllers.HandleAdminDashboard)

	// User management and manual plan overrides (admin role only)
	adminGroup.Get("/users", middleware.RequireAdmin, controllers.HandleAdminUsers)
	adminGroup.Get("/users/edit/:id", middleware.RequireAdmin, controllers.HandleAdminUserEdit)
	adminGroup.Post("/users/update-plan/:id", middleware.RequireAdmin, controllers.HandleAdminUserUpdatePlan)

	// Custom domains are a plan feature
	adminGroup.Get("/domains", middleware.RequireActivePlan, controllers.HandleAdminDomains)
	adminGroup.Post("/domains", middleware.RequireActivePlan, controllers.HandleAdminDomainCreate)
	adminGroup.Post("/domains/verify/:id", middleware.RequireActivePlan, controllers.HandleAdminDomainVerify)
	adminGroup.Post("/domains/activate/:id", middleware.RequireActivePlan, controllers.HandleAdminDomainActivate)
	adminGroup.Post("/domains/mappings/:id", middleware.RequireActivePlan, controllers.HandleAdminDomainMappingCreate)

	// Trusted access code issuance (admin role only)
	adminGroup.Get("/codes", middleware.RequireAdmin, controllers.HandleAdminCodes)
	adminGroup.Post("/codes", middleware.RequireAdmin, controllers.HandleAdminCodesIssue)

	// Global settings, including the maintenance switch (admin role only)
	adminGroup.Get("/settings", middleware.RequireAdmin, controllers.HandleAdminSettings)
	adminGroup.Post("/settings", middleware.RequireAdmin, controllers.HandleAdminSettingsUpdate)
}
