package middleware

import (
	"strings"

	"github.com/ViniMartins/VitrineApp/app/repository"
	"github.com/ViniMartins/VitrineApp/internal/pkg/entitlement"
	"github.com/ViniMartins/VitrineApp/internal/pkg/session"
	"github.com/ViniMartins/VitrineApp/internal/pkg/usercontext"
	"github.com/gofiber/fiber/v2"
)

var resolver *entitlement.Resolver

// SetEntitlementResolver injects the shared resolver used to derive plan
// state for logged-in requests. Must be called during router install.
func SetEntitlementResolver(r *entitlement.Resolver) {
	resolver = r
}

// Session keys owned by this middleware.
const (
	SessionKeyUserID        = "user_id"
	SessionKeyUserName      = "user_name"
	SessionKeyIsAdmin       = "is_admin"
	SessionKeyAccountStatus = "account_status"
	SessionKeyPlanName      = "plan_name"
	SessionKeyActivePlan    = "has_active_plan"
)

// UserContext sets up the complete user context for every request. Plan
// state is session-first: the resolver only runs when the session has no
// cached plan yet (or after an explicit refresh cleared it).
func UserContext(c *fiber.Ctx) error {
	// Goth keeps its own fiber session store on /auth/*; don't collide.
	if strings.HasPrefix(c.Path(), "/auth/") {
		return c.Next()
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		setAnonymous(c)
		return c.Next()
	}

	userID, ok := sess.Get(SessionKeyUserID).(uint)
	if !ok || userID == 0 {
		setAnonymous(c)
		return c.Next()
	}

	username, _ := sess.Get(SessionKeyUserName).(string)
	isAdmin, _ := sess.Get(SessionKeyIsAdmin).(bool)
	status, _ := sess.Get(SessionKeyAccountStatus).(string)
	if status == "" {
		// Session predates the status cache; fall back to the store once.
		if user, err := repository.GetGlobalRepositories().User.GetByID(userID); err == nil {
			status = user.Status
			sess.Set(SessionKeyAccountStatus, status)
			_ = sess.Save()
		}
	}

	planName, _ := sess.Get(SessionKeyPlanName).(string)
	hasActivePlan, hasCachedPlan := sess.Get(SessionKeyActivePlan).(bool)
	if !hasCachedPlan && resolver != nil {
		result := resolver.Resolve(c.Context(), userID, false)
		planName = result.PlanName
		hasActivePlan = result.HasActivePlan
		sess.Set(SessionKeyPlanName, planName)
		sess.Set(SessionKeyActivePlan, hasActivePlan)
		_ = sess.Save()
	}

	usercontext.SetUserContext(c, usercontext.UserContext{
		UserID:        userID,
		Username:      username,
		IsLoggedIn:    true,
		IsAdmin:       isAdmin,
		AccountActive: status == "active",
		PlanName:      planName,
		HasActivePlan: hasActivePlan,
	})
	c.Locals(usercontext.KeyFromProtected, true)
	c.Locals(usercontext.KeyIsAdmin, isAdmin)

	return c.Next()
}

// ClearPlanCache drops the session's cached plan so the next request
// re-resolves; called after reconciliation or an admin plan change.
func ClearPlanCache(c *fiber.Ctx) {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return
	}
	sess.Delete(SessionKeyPlanName)
	sess.Delete(SessionKeyActivePlan)
	_ = sess.Save()
}

func setAnonymous(c *fiber.Ctx) {
	usercontext.SetUserContext(c, usercontext.UserContext{
		IsLoggedIn: false,
		IsAdmin:    false,
	})
	c.Locals(usercontext.KeyFromProtected, false)
	c.Locals(usercontext.KeyIsAdmin, false)
}
