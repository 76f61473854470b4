package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/ViniMartins/VitrineApp/internal/pkg/accesscode"
	"github.com/ViniMartins/VitrineApp/internal/pkg/metrics/counter"
)

type redeemRequest struct {
	Code string `json:"code" form:"code"`
}

// countRedeem bumps the Redis redemption counter. The counter is advisory,
// so a cache failure does not fail the redemption.
func countRedeem(orderBumpID uint) {
	if err := counter.AddRedeem(orderBumpID); err != nil {
		log.Printf("[Redeem] counting redemption for bump %d: %v", orderBumpID, err)
	}
}

// HandleAPIRedeemCode consumes a code over the JSON API. Redemption is
// atomic; two concurrent calls with the same code can never both succeed.
func HandleAPIRedeemCode(c *fiber.Ctx) error {
	var req redeemRequest
	if err := c.BodyParser(&req); err != nil || req.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing_code",
		})
	}

	result, err := codeLedger.Redeem(c.Context(), req.Code)
	if err != nil {
		switch {
		case errors.Is(err, accesscode.ErrCodeNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "code_not_found",
			})
		case errors.Is(err, accesscode.ErrCodeAlreadyUsed):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "code_already_used",
			})
		default:
			log.Printf("[Redeem] redeeming code: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "redeem_failed",
			})
		}
	}

	countRedeem(result.OrderBumpID)

	return c.JSON(fiber.Map{
		"status":        "redeemed",
		"order_bump_id": result.OrderBumpID,
		"buyer_email":   result.BuyerEmail,
	})
}

// HandleRedeemPage renders the code entry form and, on POST, redeems the
// submitted code with flash feedback.
func HandleRedeemPage(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return c.Render("redeem", fiber.Map{
			"Title": "Redeem your code",
			"Flash": flash.Get(c),
		}, "layouts/main")
	}

	code := c.FormValue("code")
	if code == "" {
		fm := fiber.Map{
			"type":    "error",
			"message": "Enter the code from your purchase confirmation",
		}
		return flash.WithError(c, fm).Redirect("/redeem")
	}

	result, err := codeLedger.Redeem(c.Context(), code)
	if err != nil {
		fm := fiber.Map{"type": "error"}
		switch {
		case errors.Is(err, accesscode.ErrCodeNotFound):
			fm["message"] = "We don't recognize that code"
		case errors.Is(err, accesscode.ErrCodeAlreadyUsed):
			fm["message"] = "That code has already been used"
		default:
			log.Printf("[Redeem] redeeming code: %v", err)
			fm["message"] = "Something went wrong, try again"
		}
		return flash.WithError(c, fm).Redirect("/redeem")
	}

	countRedeem(result.OrderBumpID)

	return c.Render("redeem_success", fiber.Map{
		"Title":       "Code redeemed",
		"OrderBumpID": result.OrderBumpID,
		"BuyerEmail":  result.BuyerEmail,
	}, "layouts/main")
}
