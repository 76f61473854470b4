package router

import (
	"github.com/ViniMartins/VitrineApp/app/controllers"
	"github.com/ViniMartins/VitrineApp/internal/pkg/middleware"
	"github.com/ViniMartins/VitrineApp/internal/pkg/oauth"
	"github.com/ViniMartins/VitrineApp/internal/pkg/session"

	"github.com/gofiber/fiber/v2"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// init oauth providers
	oauth.Setup()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContext)

	// Maintenance gate sits behind UserContext so exempt admin routes
	// still see who is logged in
	app.Use(middleware.Maintenance)

	// Wire controller services and the admin controller
	controllers.InitializeControllers()
	controllers.InitializeAdminController()

	h.registerPublicRoutes(app)
	h.registerAdminRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func loggedInMiddleware(c *fiber.Ctx) error {
	// UserContext already populated everything handlers read via
	// usercontext.GetUserContext(c)
	return c.Next()
}
