package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ViniMartins/VitrineApp/app/models"
	"github.com/ViniMartins/VitrineApp/app/repository"
	"github.com/ViniMartins/VitrineApp/internal/pkg/payments"
)

// HandleProviderWebhook receives a payment notification for one order bump,
// verifies it with the provider's scheme, and issues an access code. The
// code is returned only after both the purchase and the code are persisted,
// so a crash can never leave a paid buyer without a redeemable code.
func HandleProviderWebhook(c *fiber.Ctx) error {
	provider := strings.ToLower(c.Params("provider"))
	if !models.IsKnownProvider(provider) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": payments.ReasonUnknownProvider,
		})
	}

	bumpID, err := c.ParamsInt("bumpID")
	if err != nil || bumpID <= 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "unknown_order_bump",
		})
	}

	repos := repository.GetGlobalRepositories()
	bump, err := repos.OrderBump.GetActiveByID(uint(bumpID))
	if err != nil || bump.Provider != provider {
		// A provider mismatch is indistinguishable from a missing bump
		// on purpose; the URL carries no secret.
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "unknown_order_bump",
		})
	}

	creds, err := bump.Credentials()
	if err != nil {
		log.Printf("[Webhook] bump %d has no usable credentials: %v", bump.ID, err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": payments.ReasonMissingCredentials,
		})
	}

	verified, err := payments.Verify(provider, webhookFromRequest(c), creds)
	if err != nil {
		var rej *payments.RejectedError
		if errors.As(err, &rej) {
			log.Printf("[Webhook] %s bump %d rejected: %v", provider, bump.ID, rej)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": rej.Reason,
			})
		}
		log.Printf("[Webhook] %s bump %d verification error: %v", provider, bump.ID, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": payments.ReasonBadPayload,
		})
	}

	switch verified.Status {
	case payments.StatusApproved:
		return handleApprovedPurchase(c, bump, verified)
	case payments.StatusRefunded:
		return handleRefundedPurchase(c, verified)
	default:
		// Unrecognized event types are acknowledged so providers stop
		// retrying them.
		return c.JSON(fiber.Map{"status": "ignored"})
	}
}

func handleApprovedPurchase(c *fiber.Ctx, bump *models.OrderBump, verified *payments.VerifiedPurchase) error {
	repos := repository.GetGlobalRepositories()

	purchase := &models.Purchase{
		UUID:          uuid.NewString(),
		OrderBumpID:   bump.ID,
		Provider:      verified.Provider,
		TransactionID: verified.TransactionID,
		BuyerEmail:    verified.BuyerEmail,
		BuyerName:     verified.BuyerName,
		PriceCents:    verified.PriceCents,
		Status:        models.PurchaseStatusApproved,
	}

	created, stored, err := repos.Purchase.CreateIfNotExists(purchase)
	if err != nil {
		log.Printf("[Webhook] persisting purchase %s/%s: %v", verified.Provider, verified.TransactionID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "persistence_failed",
		})
	}

	if !created {
		// Redelivery: hand back the code minted the first time.
		existing, err := repos.AccessCode.GetByPurchaseID(stored.ID)
		if err != nil {
			log.Printf("[Webhook] redelivered purchase %d has no code: %v", stored.ID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "persistence_failed",
			})
		}
		return c.JSON(fiber.Map{
			"status":      "already_processed",
			"access_code": existing.Code,
		})
	}

	code, err := codeLedger.GenerateForPurchase(c.Context(), stored)
	if err != nil {
		log.Printf("[Webhook] issuing code for purchase %d: %v", stored.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "persistence_failed",
		})
	}

	return c.JSON(fiber.Map{
		"status":      "ok",
		"access_code": code,
	})
}

func handleRefundedPurchase(c *fiber.Ctx, verified *payments.VerifiedPurchase) error {
	repos := repository.GetGlobalRepositories()

	purchase, err := repos.Purchase.GetByProviderTransaction(verified.Provider, verified.TransactionID)
	if err != nil {
		// A refund for a purchase we never saw is acknowledged; there is
		// nothing to revoke.
		return c.JSON(fiber.Map{"status": "ignored"})
	}

	if err := repos.Purchase.UpdateStatus(purchase.ID, models.PurchaseStatusRefunded); err != nil {
		log.Printf("[Webhook] marking purchase %d refunded: %v", purchase.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "persistence_failed",
		})
	}

	return c.JSON(fiber.Map{"status": "refund_recorded"})
}

// webhookFromRequest flattens the Fiber request into the transport-neutral
// shape the verifiers consume. Header keys are lower-cased once here, and
// form-encoded bodies (eduzz, monetizze postbacks) are re-encoded as JSON
// so the verifiers only ever parse one format.
func webhookFromRequest(c *fiber.Ctx) payments.Webhook {
	headers := make(map[string]string)
	c.Request().Header.VisitAll(func(key, value []byte) {
		headers[strings.ToLower(string(key))] = string(value)
	})

	query := make(map[string]string)
	c.Request().URI().QueryArgs().VisitAll(func(key, value []byte) {
		query[string(key)] = string(value)
	})

	body := c.Body()
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationForm) {
		form := make(map[string]string)
		c.Request().PostArgs().VisitAll(func(key, value []byte) {
			form[string(key)] = string(value)
		})
		if encoded, err := json.Marshal(form); err == nil {
			body = encoded
		}
	}

	return payments.Webhook{
		RawBody: body,
		Headers: headers,
		Query:   query,
	}
}
