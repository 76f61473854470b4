package accesscode

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ViniMartins/VitrineApp/app/models"
	"github.com/ViniMartins/VitrineApp/app/repository"
)

type fakeCodeRepo struct {
	byCode     map[string]*models.AccessCode
	nextID     uint
	failsLeft  int
	createErrs int
}

func newFakeCodeRepo() *fakeCodeRepo {
	return &fakeCodeRepo{byCode: make(map[string]*models.AccessCode)}
}

func (r *fakeCodeRepo) Create(code *models.AccessCode) error {
	if r.failsLeft > 0 {
		r.failsLeft--
		r.createErrs++
		return errors.New("duplicate key")
	}
	if _, exists := r.byCode[code.Code]; exists {
		return errors.New("duplicate key")
	}
	r.nextID++
	code.ID = r.nextID
	r.byCode[code.Code] = code
	return nil
}

func (r *fakeCodeRepo) GetByCode(code string) (*models.AccessCode, error) {
	if c, ok := r.byCode[code]; ok {
		return c, nil
	}
	return nil, repository.ErrCodeNotFound
}

func (r *fakeCodeRepo) GetByPurchaseID(purchaseID uint) (*models.AccessCode, error) {
	for _, c := range r.byCode {
		if c.PurchaseID != nil && *c.PurchaseID == purchaseID {
			return c, nil
		}
	}
	return nil, repository.ErrCodeNotFound
}

func (r *fakeCodeRepo) Redeem(code string) (*models.AccessCode, error) {
	c, ok := r.byCode[code]
	if !ok {
		return nil, repository.ErrCodeNotFound
	}
	if c.IsUsed {
		return nil, repository.ErrCodeAlreadyUsed
	}
	now := time.Now()
	c.IsUsed = true
	c.UsedAt = &now
	return c, nil
}

func (r *fakeCodeRepo) ListByBuyer(buyerEmail string) ([]models.AccessCode, error) {
	var out []models.AccessCode
	for _, c := range r.byCode {
		if c.BuyerEmail == buyerEmail {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCodeRepo) Count() (int64, error) {
	return int64(len(r.byCode)), nil
}

func (r *fakeCodeRepo) CountUsed() (int64, error) {
	var n int64
	for _, c := range r.byCode {
		if c.IsUsed {
			n++
		}
	}
	return n, nil
}

type fakeBumpRepo struct {
	bumps map[uint]*models.OrderBump
}

func newFakeBumpRepo(bumps ...*models.OrderBump) *fakeBumpRepo {
	r := &fakeBumpRepo{bumps: make(map[uint]*models.OrderBump)}
	for _, b := range bumps {
		r.bumps[b.ID] = b
	}
	return r
}

func (r *fakeBumpRepo) Create(bump *models.OrderBump) error {
	r.bumps[bump.ID] = bump
	return nil
}

func (r *fakeBumpRepo) GetByID(id uint) (*models.OrderBump, error) {
	if b, ok := r.bumps[id]; ok {
		return b, nil
	}
	return nil, errors.New("not found")
}

func (r *fakeBumpRepo) GetActiveByID(id uint) (*models.OrderBump, error) {
	b, ok := r.bumps[id]
	if !ok || !b.IsActive {
		return nil, errors.New("not found")
	}
	return b, nil
}

func (r *fakeBumpRepo) ListByApp(appID uint) ([]models.OrderBump, error) {
	return nil, nil
}

func (r *fakeBumpRepo) Update(bump *models.OrderBump) error {
	r.bumps[bump.ID] = bump
	return nil
}

func newTestLedger(t *testing.T) (*Ledger, *fakeCodeRepo) {
	t.Helper()
	codes := newFakeCodeRepo()
	bumps := newFakeBumpRepo(
		&models.OrderBump{ID: 1, Provider: models.ProviderHotmart, IsActive: true},
		&models.OrderBump{ID: 2, Provider: models.ProviderEduzz, IsActive: false},
	)
	return NewLedger(codes, bumps), codes
}

func TestLedgerGenerate_PersistsUnusedCode(t *testing.T) {
	ledger, codes := newTestLedger(t)

	code, err := ledger.Generate(context.Background(), 1, "Buyer@Example.COM")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(code) != CodeLength {
		t.Fatalf("expected code of length %d, got %q", CodeLength, code)
	}

	stored, err := codes.GetByCode(code)
	if err != nil {
		t.Fatalf("code was not persisted: %v", err)
	}
	if stored.IsUsed {
		t.Fatalf("freshly issued code must be unused")
	}
	if stored.BuyerEmail != "buyer@example.com" {
		t.Fatalf("expected lowercased buyer email, got %q", stored.BuyerEmail)
	}
}

func TestLedgerGenerate_InactiveBump(t *testing.T) {
	ledger, _ := newTestLedger(t)

	if _, err := ledger.Generate(context.Background(), 2, "buyer@example.com"); !errors.Is(err, ErrBumpNotSellable) {
		t.Fatalf("expected ErrBumpNotSellable, got %v", err)
	}
	if _, err := ledger.Generate(context.Background(), 99, "buyer@example.com"); !errors.Is(err, ErrBumpNotSellable) {
		t.Fatalf("expected ErrBumpNotSellable for unknown bump, got %v", err)
	}
}

func TestLedgerGenerate_MissingEmail(t *testing.T) {
	ledger, _ := newTestLedger(t)

	if _, err := ledger.Generate(context.Background(), 1, "   "); err == nil {
		t.Fatalf("expected error for empty buyer email")
	}
}

func TestLedgerGenerate_RetriesOnCollision(t *testing.T) {
	ledger, codes := newTestLedger(t)
	codes.failsLeft = 2

	code, err := ledger.Generate(context.Background(), 1, "buyer@example.com")
	if err != nil {
		t.Fatalf("unexpected error after collisions: %v", err)
	}
	if codes.createErrs != 2 {
		t.Fatalf("expected 2 collision retries, got %d", codes.createErrs)
	}
	if _, err := codes.GetByCode(code); err != nil {
		t.Fatalf("final code was not persisted: %v", err)
	}
}

func TestLedgerGenerate_GivesUpAfterMaxAttempts(t *testing.T) {
	ledger, codes := newTestLedger(t)
	codes.failsLeft = maxGenerateAttempts

	if _, err := ledger.Generate(context.Background(), 1, "buyer@example.com"); err == nil {
		t.Fatalf("expected error when every attempt collides")
	}
}

func TestLedgerGenerateForPurchase_LinksPurchase(t *testing.T) {
	ledger, codes := newTestLedger(t)

	purchase := &models.Purchase{ID: 42, OrderBumpID: 1, BuyerEmail: "buyer@example.com"}
	code, err := ledger.GenerateForPurchase(context.Background(), purchase)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := codes.GetByPurchaseID(42)
	if err != nil {
		t.Fatalf("code not linked to purchase: %v", err)
	}
	if stored.Code != code {
		t.Fatalf("linked code %q does not match issued code %q", stored.Code, code)
	}
}

func TestLedgerRedeem_SucceedsOnce(t *testing.T) {
	ledger, _ := newTestLedger(t)

	code, err := ledger.Generate(context.Background(), 1, "buyer@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := ledger.Redeem(context.Background(), code)
	if err != nil {
		t.Fatalf("first redemption must succeed: %v", err)
	}
	if result.OrderBumpID != 1 || result.BuyerEmail != "buyer@example.com" {
		t.Fatalf("unexpected redeem result: %+v", result)
	}

	if _, err := ledger.Redeem(context.Background(), code); !errors.Is(err, ErrCodeAlreadyUsed) {
		t.Fatalf("second redemption must fail with ErrCodeAlreadyUsed, got %v", err)
	}
}

func TestLedgerRedeem_NormalizesInput(t *testing.T) {
	ledger, _ := newTestLedger(t)

	code, err := ledger.Generate(context.Background(), 1, "buyer@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mangled := "  " + strings.ToLower(code) + " "
	if _, err := ledger.Redeem(context.Background(), mangled); err != nil {
		t.Fatalf("redemption of lowercased padded input must succeed: %v", err)
	}
}

func TestLedgerRedeem_UnknownCode(t *testing.T) {
	ledger, _ := newTestLedger(t)

	if _, err := ledger.Redeem(context.Background(), "ZZZZZZZZ"); !errors.Is(err, ErrCodeNotFound) {
		t.Fatalf("expected ErrCodeNotFound, got %v", err)
	}
	if _, err := ledger.Redeem(context.Background(), "   "); !errors.Is(err, ErrCodeNotFound) {
		t.Fatalf("expected ErrCodeNotFound for blank input, got %v", err)
	}
}
