package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ViniMartins/VitrineApp/internal/pkg/middleware"
	"github.com/ViniMartins/VitrineApp/internal/pkg/usercontext"
)

// HandleAPIEntitlement reports the caller's resolved plan entitlement.
// Passing refresh=1 bypasses the session cache and re-resolves, which may
// trigger a reconciliation round-trip to the billing provider.
func HandleAPIEntitlement(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)

	refresh := c.Query("refresh") == "1"
	if refresh {
		middleware.ClearPlanCache(c)
	}

	result := entResolver.Resolve(c.Context(), uc.UserID, refresh)

	return c.JSON(result)
}
