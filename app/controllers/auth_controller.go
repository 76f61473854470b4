package controllers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/ViniMartins/VitrineApp/app/models"
	"github.com/ViniMartins/VitrineApp/app/repository"
	"github.com/ViniMartins/VitrineApp/internal/pkg/usercontext"
)

func HandleAuthLogin(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return c.Render("auth/login", fiber.Map{
			"Title": "Login",
			"Flash": flash.Get(c),
		}, "layouts/main")
	}

	fm := fiber.Map{
		"type": "error",
	}

	// notice: in production you should not inform the user
	// with detailed messages about login failures
	user, err := repository.GetGlobalRepositories().User.GetByEmail(c.FormValue("email"))
	if err != nil {
		fm["message"] = "There is a problem with the login process"

		return flash.WithError(c, fm).Redirect("/login")
	}

	if !user.CheckPassword(c.FormValue("password")) {
		fm["message"] = "There is a problem with the login process"

		return flash.WithError(c, fm).Redirect("/login")
	}

	if err := establishSession(c, user); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/login")
	}

	touchLastLogin(user)

	fm = fiber.Map{
		"type":    "success",
		"message": "Welcome back!",
	}

	return flash.WithSuccess(c, fm).Redirect("/")
}

func HandleAuthRegister(c *fiber.Ctx) error {
	settings := models.GetAppSettings()

	if c.Method() != fiber.MethodPost {
		return c.Render("auth/register", fiber.Map{
			"Title":               "Register",
			"Flash":               flash.Get(c),
			"RegistrationEnabled": settings.RegistrationEnabled,
		}, "layouts/main")
	}

	if !settings.RegistrationEnabled {
		fm := fiber.Map{
			"type":    "error",
			"message": "Registration is currently disabled",
		}

		return flash.WithError(c, fm).Redirect("/register")
	}

	user, err := models.CreateUser(c.FormValue("name"), c.FormValue("email"), c.FormValue("password"))
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": fmt.Sprintf("something went wrong: %s", err),
		}

		return flash.WithError(c, fm).Redirect("/register")
	}

	if err := user.GenerateActivationToken(); err != nil {
		log.Printf("[Auth] generating activation token: %v", err)
	}

	if err := repository.GetGlobalRepositories().User.Create(user); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": fmt.Sprintf("something went wrong: %s", err),
		}

		return flash.WithError(c, fm).Redirect("/register")
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Account created. Check your inbox for the activation link.",
	}

	return flash.WithSuccess(c, fm).Redirect("/login")
}

// HandleAuthActivate consumes the activation token mailed at registration.
func HandleAuthActivate(c *fiber.Ctx) error {
	token := c.Params("token")

	fm := fiber.Map{
		"type": "error",
	}

	repos := repository.GetGlobalRepositories()
	user, err := repos.User.GetByActivationToken(token)
	if err != nil {
		fm["message"] = "Invalid activation link"

		return flash.WithError(c, fm).Redirect("/login")
	}

	if !user.IsActivationTokenValid(token) {
		fm["message"] = "The activation link has expired"

		return flash.WithError(c, fm).Redirect("/login")
	}

	user.Status = models.STATUS_ACTIVE
	user.ActivationToken = ""
	if err := repos.User.Update(user); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/login")
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Your account is active. You can log in now.",
	}

	return flash.WithSuccess(c, fm).Redirect("/login")
}

func HandleAuthLogout(c *fiber.Ctx) error {
	destroySession(c)
	c.Locals(usercontext.KeyFromProtected, false)

	fm := fiber.Map{
		"type":    "success",
		"message": "You are logged out. See you soon.",
	}

	return flash.WithSuccess(c, fm).Redirect("/login")
}

// HandleAccountInactive is shown when auth succeeded but the account
// has not been activated yet.
func HandleAccountInactive(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)

	return c.Render("auth/inactive", fiber.Map{
		"Title":    "Account inactive",
		"Username": uc.Username,
	}, "layouts/main")
}
