package router

import (
	"github.com/ViniMartins/VitrineApp/app/controllers"
	"github.com/ViniMartins/VitrineApp/internal/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())

	api.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "ok",
		})
	})

	v1 := api.Group("/v1")

	// Entitlement resolution for the logged-in user
	v1.Get("/entitlement", middleware.RequireAPISessionAuth, controllers.HandleAPIEntitlement)

	// Access code redemption
	v1.Post("/codes/redeem", controllers.HandleAPIRedeemCode)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
