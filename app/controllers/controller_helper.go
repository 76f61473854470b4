package controllers

import (
	"time"

	"github.com/ViniMartins/VitrineApp/app/models"
	"github.com/ViniMartins/VitrineApp/app/repository"
	"github.com/ViniMartins/VitrineApp/internal/pkg/accesscode"
	"github.com/ViniMartins/VitrineApp/internal/pkg/billing"
	"github.com/ViniMartins/VitrineApp/internal/pkg/entitlement"
	"github.com/ViniMartins/VitrineApp/internal/pkg/middleware"
	"github.com/ViniMartins/VitrineApp/internal/pkg/session"
	"github.com/ViniMartins/VitrineApp/internal/pkg/tenantrouter"
	"github.com/gofiber/fiber/v2"
)

// Shared service singletons, wired once at router install.
var (
	codeLedger     *accesscode.Ledger
	entResolver    *entitlement.Resolver
	routeResolver  *tenantrouter.Resolver
	billingReconci *billing.Reconciler
)

// InitializeControllers wires the controller-level services from the global
// repository factory. Called once during router installation.
func InitializeControllers() {
	repos := repository.GetGlobalRepositories()

	codeLedger = accesscode.NewLedger(repos.AccessCode, repos.OrderBump)
	routeResolver = tenantrouter.NewResolver(repos.Domain, repos.TenantApp)

	billingReconci = billing.NewReconciler(billing.NewStripeClientFromEnv(), repos.Plan, repos.Subscription)
	entResolver = entitlement.NewResolver(
		entitlement.NewStore(repos.Subscription, repos.Plan),
		billingReconci,
	)
	middleware.SetEntitlementResolver(entResolver)
}

// SetServicesForTest swaps the controller services; used by handler tests.
func SetServicesForTest(ledger *accesscode.Ledger, resolver *entitlement.Resolver, router *tenantrouter.Resolver) {
	if ledger != nil {
		codeLedger = ledger
	}
	if resolver != nil {
		entResolver = resolver
	}
	if router != nil {
		routeResolver = router
	}
}

// establishSession writes the logged-in user into the request session.
func establishSession(c *fiber.Ctx, user *models.User) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return err
	}
	sess.Set(middleware.SessionKeyUserID, user.ID)
	sess.Set(middleware.SessionKeyUserName, user.Name)
	sess.Set(middleware.SessionKeyIsAdmin, user.IsAdmin())
	sess.Set(middleware.SessionKeyAccountStatus, user.Status)
	return sess.Save()
}

// destroySession drops the whole session on logout.
func destroySession(c *fiber.Ctx) {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return
	}
	_ = sess.Destroy()
}

// touchLastLogin records a successful login without failing the request.
func touchLastLogin(user *models.User) {
	now := time.Now()
	user.LastLoginAt = &now
	_ = repository.GetGlobalRepositories().User.Update(user)
}
