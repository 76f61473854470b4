package controllers

import (
	"github.com/ViniMartins/VitrineApp/app/repository"
	"github.com/gofiber/fiber/v2"
)

// Global admin controller instance
var adminController *AdminController

// InitializeAdminController initializes the global admin controller with repositories
func InitializeAdminController() {
	repos := repository.GetGlobalRepositories()
	adminController = NewAdminController(repos)
}

// GetAdminController returns the global admin controller instance
func GetAdminController() *AdminController {
	if adminController == nil {
		InitializeAdminController()
	}
	return adminController
}

// Adapter functions to maintain compatibility with existing router

// HandleAdminDashboard - Adapter for admin dashboard
func HandleAdminDashboard(c *fiber.Ctx) error {
	return GetAdminController().HandleDashboard(c)
}

// HandleAdminUsers - Adapter for user management
func HandleAdminUsers(c *fiber.Ctx) error {
	return GetAdminController().HandleUsers(c)
}

// HandleAdminUserEdit - Adapter for user edit
func HandleAdminUserEdit(c *fiber.Ctx) error {
	return GetAdminController().HandleUserEdit(c)
}

// HandleAdminUserUpdatePlan - Adapter for the manual plan override
func HandleAdminUserUpdatePlan(c *fiber.Ctx) error {
	return GetAdminController().HandleUserUpdatePlan(c)
}

// HandleAdminDomains - Adapter for the domain list
func HandleAdminDomains(c *fiber.Ctx) error {
	return GetAdminController().HandleDomains(c)
}

// HandleAdminDomainCreate - Adapter for domain registration
func HandleAdminDomainCreate(c *fiber.Ctx) error {
	return GetAdminController().HandleDomainCreate(c)
}

// HandleAdminDomainVerify - Adapter for DNS verification
func HandleAdminDomainVerify(c *fiber.Ctx) error {
	return GetAdminController().HandleDomainVerify(c)
}

// HandleAdminDomainActivate - Adapter for domain activation
func HandleAdminDomainActivate(c *fiber.Ctx) error {
	return GetAdminController().HandleDomainActivate(c)
}

// HandleAdminDomainMappingCreate - Adapter for path mapping creation
func HandleAdminDomainMappingCreate(c *fiber.Ctx) error {
	return GetAdminController().HandleDomainMappingCreate(c)
}

// HandleAdminCodes - Adapter for the code issuance page
func HandleAdminCodes(c *fiber.Ctx) error {
	return GetAdminController().HandleCodes(c)
}

// HandleAdminCodesIssue - Adapter for manual code issuance
func HandleAdminCodesIssue(c *fiber.Ctx) error {
	return GetAdminController().HandleCodesIssue(c)
}

// HandleAdminSettings - Adapter for settings page
func HandleAdminSettings(c *fiber.Ctx) error {
	return GetAdminController().HandleSettings(c)
}

// HandleAdminSettingsUpdate - Adapter for settings update
func HandleAdminSettingsUpdate(c *fiber.Ctx) error {
	return GetAdminController().HandleSettingsUpdate(c)
}
