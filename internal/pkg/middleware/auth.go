package middleware

import (
	"github.com/ViniMartins/VitrineApp/internal/pkg/usercontext"
	"github.com/gofiber/fiber/v2"
)

// The route guard is an ordered chain: authentication presence, then
// account status, then role/plan checks. Each stage redirects to its own
// destination and later stages never run once one fails.

// RequireAuth ensures a logged-in web session; redirects to /login if missing.
func RequireAuth(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	return c.Next()
}

// RequireActiveAccount ensures the account is neither inactive nor disabled.
func RequireActiveAccount(c *fiber.Ctx) error {
	ctx := usercontext.GetUserContext(c)
	if !ctx.IsLoggedIn {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	if !ctx.AccountActive {
		return c.Redirect("/account/inactive", fiber.StatusSeeOther)
	}
	return c.Next()
}

// RequireAdminAccess admits the admin role or a qualifying active plan;
// everyone else lands on the admin login page.
func RequireAdminAccess(c *fiber.Ctx) error {
	ctx := usercontext.GetUserContext(c)
	if !ctx.IsLoggedIn {
		return c.Redirect("/admin/login", fiber.StatusSeeOther)
	}
	if !ctx.IsAdmin && !ctx.HasActivePlan {
		return c.Redirect("/admin/login", fiber.StatusSeeOther)
	}
	return c.Next()
}

// RequireAdmin admits only the admin role.
func RequireAdmin(c *fiber.Ctx) error {
	ctx := usercontext.GetUserContext(c)
	if !ctx.IsLoggedIn {
		return c.Redirect("/admin/login", fiber.StatusSeeOther)
	}
	if !ctx.IsAdmin {
		return c.Redirect("/admin/login", fiber.StatusSeeOther)
	}
	return c.Next()
}

// RequireActivePlan gates plan features; free-tier users are sent to
// pricing instead of an error page. The admin role qualifies without a plan.
func RequireActivePlan(c *fiber.Ctx) error {
	ctx := usercontext.GetUserContext(c)
	if !ctx.IsLoggedIn {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	if !ctx.HasActivePlan && !ctx.IsAdmin {
		return c.Redirect("/pricing", fiber.StatusSeeOther)
	}
	return c.Next()
}

// RequireAPISessionAuth ensures a logged-in session for API routes and returns JSON 401 instead of redirect.
func RequireAPISessionAuth(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "login required",
		})
	}
	return c.Next()
}
