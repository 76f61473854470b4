package middleware

import (
	"github.com/ViniMartins/VitrineApp/app/models"
	"github.com/ViniMartins/VitrineApp/internal/pkg/tenantrouter"
	"github.com/gofiber/fiber/v2"
)

// Maintenance substitutes the maintenance page for every non-exempt route
// while the global maintenance flag is set. Runs before tenant resolution
// so even resolvable apps are replaced.
func Maintenance(c *fiber.Ctx) error {
	if !models.IsMaintenanceMode() {
		return c.Next()
	}
	if tenantrouter.IsMaintenanceExempt(c.Path()) {
		return c.Next()
	}
	return c.Status(fiber.StatusServiceUnavailable).Render("maintenance", fiber.Map{
		"Title": models.GetAppSettings().SiteTitle,
	}, "layouts/main")
}
