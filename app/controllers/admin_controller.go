package controllers

import (
	"fmt"
	"log"
	"net"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/ViniMartins/VitrineApp/app/models"
	"github.com/ViniMartins/VitrineApp/app/repository"
)

// AdminController bundles the management handlers behind /admin.
type AdminController struct {
	repos *repository.Repositories
}

func NewAdminController(repos *repository.Repositories) *AdminController {
	return &AdminController{
		repos: repos,
	}
}

// HandleDashboard renders the admin dashboard with clean repository usage
func (ac *AdminController) HandleDashboard(c *fiber.Ctx) error {
	totalUsers, err := ac.repos.User.Count()
	if err != nil {
		return ac.handleError(c, "Failed to get user count", err)
	}

	totalApps, err := ac.repos.TenantApp.Count()
	if err != nil {
		return ac.handleError(c, "Failed to get app count", err)
	}

	totalPurchases, err := ac.repos.Purchase.Count()
	if err != nil {
		return ac.handleError(c, "Failed to get purchase count", err)
	}

	totalCodes, err := ac.repos.AccessCode.Count()
	if err != nil {
		return ac.handleError(c, "Failed to get code count", err)
	}

	usedCodes, err := ac.repos.AccessCode.CountUsed()
	if err != nil {
		return ac.handleError(c, "Failed to get used code count", err)
	}

	recentUsers, err := ac.repos.User.List(0, 5)
	if err != nil {
		return ac.handleError(c, "Failed to get recent users", err)
	}

	return c.Render("admin/dashboard", fiber.Map{
		"Title":          "Admin Dashboard",
		"TotalUsers":     totalUsers,
		"TotalApps":      totalApps,
		"TotalPurchases": totalPurchases,
		"TotalCodes":     totalCodes,
		"UsedCodes":      usedCodes,
		"RecentUsers":    recentUsers,
		"Flash":          flash.Get(c),
	}, "layouts/admin")
}

// HandleUsers renders the user management page
func (ac *AdminController) HandleUsers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	perPage := 20
	offset := (page - 1) * perPage

	totalUsers, err := ac.repos.User.Count()
	if err != nil {
		return ac.handleError(c, "Failed to get user count", err)
	}

	users, err := ac.repos.User.List(offset, perPage)
	if err != nil {
		return ac.handleError(c, "Failed to get users", err)
	}

	totalPages := int(totalUsers) / perPage
	if int(totalUsers)%perPage > 0 {
		totalPages++
	}

	return c.Render("admin/users", fiber.Map{
		"Title":      "Users",
		"Users":      users,
		"Page":       page,
		"TotalPages": totalPages,
		"Flash":      flash.Get(c),
	}, "layouts/admin")
}

// HandleUserEdit shows one user with their subscription state
func (ac *AdminController) HandleUserEdit(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Redirect("/admin/users")
	}

	user, err := ac.repos.User.GetByID(uint(id))
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "User not found"}
		return flash.WithError(c, fm).Redirect("/admin/users")
	}

	sub, err := ac.repos.Subscription.GetByUserIDWithPlan(user.ID)
	if err != nil {
		sub = nil
	}

	plans, err := ac.repos.Plan.ListActive()
	if err != nil {
		return ac.handleError(c, "Failed to load plans", err)
	}

	return c.Render("admin/user_edit", fiber.Map{
		"Title":        "Edit user",
		"User":         user,
		"Subscription": sub,
		"Plans":        plans,
		"Flash":        flash.Get(c),
	}, "layouts/admin")
}

// HandleUserUpdatePlan applies a manual plan override. Setting an override
// also sets bypass_reconciliation so the self-heal path never undoes it.
func (ac *AdminController) HandleUserUpdatePlan(c *fiber.Ctx) error {
	userID := c.Params("id")
	id, err := strconv.ParseUint(userID, 10, 32)
	if err != nil {
		return c.Redirect("/admin/users")
	}

	user, err := ac.repos.User.GetByID(uint(id))
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "User not found"}
		return flash.WithError(c, fm).Redirect("/admin/users")
	}

	sub, err := ac.repos.Subscription.GetByUserID(user.ID)
	if err != nil {
		sub = &models.Subscription{UserID: user.ID}
	}

	planValue := strings.TrimSpace(c.FormValue("plan_id"))
	if planValue == "" {
		// Clearing the override hands control back to reconciliation.
		sub.PlanID = nil
		sub.IsActive = false
		sub.BypassReconciliation = false
	} else {
		planID, err := strconv.ParseUint(planValue, 10, 32)
		if err != nil {
			fm := fiber.Map{"type": "error", "message": "Invalid plan"}
			return flash.WithError(c, fm).Redirect("/admin/users/edit/" + userID)
		}
		plan, err := ac.repos.Plan.GetByID(uint(planID))
		if err != nil {
			fm := fiber.Map{"type": "error", "message": "Invalid plan"}
			return flash.WithError(c, fm).Redirect("/admin/users/edit/" + userID)
		}
		pid := plan.ID
		sub.PlanID = &pid
		sub.IsActive = true
		sub.BypassReconciliation = true
	}

	if err := ac.repos.Subscription.Save(sub); err != nil {
		fm := fiber.Map{"type": "error", "message": "Saving the plan failed"}
		return flash.WithError(c, fm).Redirect("/admin/users/edit/" + userID)
	}

	fm := fiber.Map{"type": "success", "message": "Plan updated"}
	return flash.WithSuccess(c, fm).Redirect("/admin/users/edit/" + userID)
}

// HandleDomains lists custom domains with their mapped apps
func (ac *AdminController) HandleDomains(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	perPage := 20
	offset := (page - 1) * perPage

	domains, err := ac.repos.Domain.List(offset, perPage)
	if err != nil {
		return ac.handleError(c, "Failed to load domains", err)
	}

	return c.Render("admin/domains", fiber.Map{
		"Title":   "Custom domains",
		"Domains": domains,
		"Page":    page,
		"Flash":   flash.Get(c),
	}, "layouts/admin")
}

// HandleDomainCreate registers a new pending domain with a fresh
// verification token.
func (ac *AdminController) HandleDomainCreate(c *fiber.Ctx) error {
	domain := &models.CustomDomain{
		Domain: strings.ToLower(strings.TrimSpace(c.FormValue("domain"))),
		Status: models.DomainStatusPending,
	}

	if appValue := c.FormValue("app_id"); appValue != "" {
		appID, err := strconv.ParseUint(appValue, 10, 32)
		if err == nil {
			id := uint(appID)
			domain.AppID = &id
		}
	}

	if err := domain.GenerateVerifyToken(); err != nil {
		return ac.handleError(c, "Failed to generate verification token", err)
	}

	if err := ac.repos.Domain.Save(domain); err != nil {
		fm := fiber.Map{"type": "error", "message": fmt.Sprintf("Saving domain failed: %s", err)}
		return flash.WithError(c, fm).Redirect("/admin/domains")
	}

	fm := fiber.Map{
		"type":    "success",
		"message": fmt.Sprintf("Add a TXT record _vitrine-verify.%s with value %s", domain.Domain, domain.VerifyToken),
	}
	return flash.WithSuccess(c, fm).Redirect("/admin/domains")
}

// HandleDomainVerify checks the DNS TXT record against the stored token.
func (ac *AdminController) HandleDomainVerify(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Redirect("/admin/domains")
	}

	domain, err := ac.repos.Domain.GetByID(uint(id))
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "Domain not found"}
		return flash.WithError(c, fm).Redirect("/admin/domains")
	}

	domain.Status = models.DomainStatusVerifying
	_ = ac.repos.Domain.Save(domain)

	if verifyDomainTXT(domain) {
		domain.Status = models.DomainStatusVerified
	} else {
		domain.Status = models.DomainStatusFailed
	}

	if err := ac.repos.Domain.Save(domain); err != nil {
		return ac.handleError(c, "Failed to update domain", err)
	}

	if domain.Status == models.DomainStatusVerified {
		fm := fiber.Map{"type": "success", "message": "Domain verified"}
		return flash.WithSuccess(c, fm).Redirect("/admin/domains")
	}
	fm := fiber.Map{"type": "error", "message": "TXT record not found or wrong value"}
	return flash.WithError(c, fm).Redirect("/admin/domains")
}

// HandleDomainActivate switches a verified domain live.
func (ac *AdminController) HandleDomainActivate(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Redirect("/admin/domains")
	}

	domain, err := ac.repos.Domain.GetByID(uint(id))
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "Domain not found"}
		return flash.WithError(c, fm).Redirect("/admin/domains")
	}

	if domain.Status != models.DomainStatusVerified {
		fm := fiber.Map{"type": "error", "message": "Only verified domains can be activated"}
		return flash.WithError(c, fm).Redirect("/admin/domains")
	}

	domain.Status = models.DomainStatusActive
	if err := ac.repos.Domain.Save(domain); err != nil {
		return ac.handleError(c, "Failed to update domain", err)
	}

	fm := fiber.Map{"type": "success", "message": "Domain is live"}
	return flash.WithSuccess(c, fm).Redirect("/admin/domains")
}

// HandleDomainMappingCreate attaches a path prefix on a domain to an app.
func (ac *AdminController) HandleDomainMappingCreate(c *fiber.Ctx) error {
	domainID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Redirect("/admin/domains")
	}

	appID, err := strconv.ParseUint(c.FormValue("app_id"), 10, 32)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "Invalid app"}
		return flash.WithError(c, fm).Redirect("/admin/domains")
	}

	path := c.FormValue("path")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	mapping := &models.DomainMapping{
		CustomDomainID: uint(domainID),
		Path:           path,
		AppID:          uint(appID),
	}
	if err := ac.repos.Domain.SaveMapping(mapping); err != nil {
		fm := fiber.Map{"type": "error", "message": fmt.Sprintf("Saving mapping failed: %s", err)}
		return flash.WithError(c, fm).Redirect("/admin/domains")
	}

	fm := fiber.Map{"type": "success", "message": "Mapping saved"}
	return flash.WithSuccess(c, fm).Redirect("/admin/domains")
}

// HandleCodesIssue mints an access code by hand, outside any webhook.
func (ac *AdminController) HandleCodesIssue(c *fiber.Ctx) error {
	bumpID, err := strconv.ParseUint(c.FormValue("order_bump_id"), 10, 32)
	buyerEmail := strings.TrimSpace(c.FormValue("buyer_email"))
	if err != nil || buyerEmail == "" {
		if c.Is("json") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing_fields"})
		}
		fm := fiber.Map{"type": "error", "message": "Order bump and buyer email are required"}
		return flash.WithError(c, fm).Redirect("/admin/codes")
	}

	code, err := codeLedger.Generate(c.Context(), uint(bumpID), buyerEmail)
	if err != nil {
		log.Printf("[Admin] issuing code for bump %d: %v", bumpID, err)
		if c.Is("json") {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "issue_failed"})
		}
		fm := fiber.Map{"type": "error", "message": fmt.Sprintf("Issuing code failed: %s", err)}
		return flash.WithError(c, fm).Redirect("/admin/codes")
	}

	if c.Is("json") {
		return c.JSON(fiber.Map{"access_code": code})
	}
	fm := fiber.Map{"type": "success", "message": fmt.Sprintf("Issued code %s", code)}
	return flash.WithSuccess(c, fm).Redirect("/admin/codes")
}

// HandleCodes renders the manual issuance form with ledger stats.
func (ac *AdminController) HandleCodes(c *fiber.Ctx) error {
	total, err := ac.repos.AccessCode.Count()
	if err != nil {
		return ac.handleError(c, "Failed to get code count", err)
	}
	used, err := ac.repos.AccessCode.CountUsed()
	if err != nil {
		return ac.handleError(c, "Failed to get used code count", err)
	}

	return c.Render("admin/codes", fiber.Map{
		"Title":      "Access codes",
		"TotalCodes": total,
		"UsedCodes":  used,
		"Flash":      flash.Get(c),
	}, "layouts/admin")
}

// HandleSettings shows the global settings form
func (ac *AdminController) HandleSettings(c *fiber.Ctx) error {
	settings, err := ac.repos.Setting.Get()
	if err != nil {
		return ac.handleError(c, "Loading settings failed", err)
	}

	return c.Render("admin/settings", fiber.Map{
		"Title":    "Settings",
		"Settings": settings,
		"Flash":    flash.Get(c),
	}, "layouts/admin")
}

// HandleSettingsUpdate persists the settings form, including the
// maintenance switch.
func (ac *AdminController) HandleSettingsUpdate(c *fiber.Ctx) error {
	current, err := ac.repos.Setting.Get()
	if err != nil {
		return ac.handleError(c, "Loading settings failed", err)
	}

	newSettings := &models.AppSettings{
		SiteTitle:           c.FormValue("site_title", current.SiteTitle),
		SiteDescription:     c.FormValue("site_description", current.SiteDescription),
		MaintenanceMode:     c.FormValue("maintenance_mode") == "on",
		RegistrationEnabled: c.FormValue("registration_enabled") == "on",
	}

	if err := ac.repos.Setting.Save(newSettings); err != nil {
		fm := fiber.Map{"type": "error", "message": fmt.Sprintf("Saving settings failed: %s", err)}
		return flash.WithError(c, fm).Redirect("/admin/settings")
	}

	fm := fiber.Map{"type": "success", "message": "Settings saved"}
	return flash.WithSuccess(c, fm).Redirect("/admin/settings")
}

func (ac *AdminController) handleError(c *fiber.Ctx, message string, err error) error {
	log.Printf("[Admin] %s: %v", message, err)
	fm := fiber.Map{"type": "error", "message": message}
	return flash.WithError(c, fm).Redirect("/admin")
}

// verifyDomainTXT looks up the verification TXT record for a domain.
func verifyDomainTXT(domain *models.CustomDomain) bool {
	records, err := net.LookupTXT("_vitrine-verify." + domain.Domain)
	if err != nil {
		return false
	}
	for _, r := range records {
		if strings.TrimSpace(r) == domain.VerifyToken {
			return true
		}
	}
	return false
}
