// Package accesscode turns verified purchases into single-use unlock codes
// and redeems them exactly once.
package accesscode

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ViniMartins/VitrineApp/app/models"
	"github.com/ViniMartins/VitrineApp/app/repository"
)

// Re-exported redemption outcomes so callers don't need to know about the
// storage layer.
var (
	ErrCodeNotFound    = repository.ErrCodeNotFound
	ErrCodeAlreadyUsed = repository.ErrCodeAlreadyUsed
	ErrBumpNotSellable = errors.New("order bump not found or inactive")
)

// How often code generation retries on a unique-index collision before
// giving up. At 36^8 codes a single retry is already unlikely.
const maxGenerateAttempts = 5

// RedeemResult identifies what a successful redemption unlocked.
type RedeemResult struct {
	OrderBumpID uint   `json:"order_bump_id"`
	BuyerEmail  string `json:"buyer_email"`
}

// Ledger issues and redeems access codes.
type Ledger struct {
	codes repository.AccessCodeRepository
	bumps repository.OrderBumpRepository
}

// NewLedger creates a ledger from its repositories.
func NewLedger(codes repository.AccessCodeRepository, bumps repository.OrderBumpRepository) *Ledger {
	return &Ledger{codes: codes, bumps: bumps}
}

// Generate validates the order bump and persists a fresh unused code for
// the buyer. Earlier unused codes for the same buyer/bump stay valid;
// duplicates are tolerated, not merged.
func (l *Ledger) Generate(ctx context.Context, orderBumpID uint, buyerEmail string) (string, error) {
	return l.generate(ctx, orderBumpID, buyerEmail, nil)
}

// GenerateForPurchase issues a code linked to a verified purchase record.
func (l *Ledger) GenerateForPurchase(ctx context.Context, purchase *models.Purchase) (string, error) {
	return l.generate(ctx, purchase.OrderBumpID, purchase.BuyerEmail, &purchase.ID)
}

func (l *Ledger) generate(ctx context.Context, orderBumpID uint, buyerEmail string, purchaseID *uint) (string, error) {
	_ = ctx
	email := strings.ToLower(strings.TrimSpace(buyerEmail))
	if email == "" {
		return "", errors.New("buyer email is required")
	}

	if _, err := l.bumps.GetActiveByID(orderBumpID); err != nil {
		return "", ErrBumpNotSellable
	}

	var lastErr error
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		code, err := GenerateCode(CodeLength)
		if err != nil {
			return "", err
		}

		record := &models.AccessCode{
			Code:        code,
			OrderBumpID: orderBumpID,
			BuyerEmail:  email,
			PurchaseID:  purchaseID,
		}
		if err := l.codes.Create(record); err != nil {
			// Unique collision on the code column: roll again.
			lastErr = err
			continue
		}
		return code, nil
	}
	return "", fmt.Errorf("could not generate a unique code: %w", lastErr)
}

// Redeem marks a code used. Exactly one of two concurrent calls on the same
// unused code succeeds; the other gets ErrCodeAlreadyUsed. Unknown codes
// yield ErrCodeNotFound.
func (l *Ledger) Redeem(ctx context.Context, code string) (*RedeemResult, error) {
	_ = ctx
	normalized := NormalizeCode(code)
	if normalized == "" {
		return nil, ErrCodeNotFound
	}

	redeemed, err := l.codes.Redeem(normalized)
	if err != nil {
		return nil, err
	}

	return &RedeemResult{
		OrderBumpID: redeemed.OrderBumpID,
		BuyerEmail:  redeemed.BuyerEmail,
	}, nil
}
