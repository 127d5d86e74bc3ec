package service

import (
	"errors"
	"testing"

	"github.com/vitrine-shop/vitrine/internal/models"
	"github.com/vitrine-shop/vitrine/internal/repository"

	"gorm.io/gorm"
)

func newCartService(db *gorm.DB) *CartService {
	return NewCartService(db, repository.NewCartRepository(db), repository.NewProductVariantRepository(db))
}

func TestGetCartCreatesEmptyCart(t *testing.T) {
	db := setupTestDB(t)
	svc := newCartService(db)
	user := seedUser(t, db, "cart@example.com", "")

	cart, err := svc.GetCart(user.ID)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if cart == nil || cart.UserID != user.ID {
		t.Fatalf("expected cart for user %d, got %+v", user.ID, cart)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(cart.Items))
	}
	if cart.TotalPrice.String() != "0.00" {
		t.Fatalf("expected zero total, got %s", cart.TotalPrice.String())
	}
}

func TestAddItemMergesSameVariant(t *testing.T) {
	db := setupTestDB(t)
	svc := newCartService(db)
	user := seedUser(t, db, "merge@example.com", "")
	product := seedProduct(t, db, "Lamp", "lamp", "250.00", false, 0)
	variant := seedVariant(t, db, product.ID, "black", "")

	if _, err := svc.AddItem(user.ID, variant.ID, 2); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	cart, err := svc.AddItem(user.ID, variant.ID, 3)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	if len(cart.Items) != 1 {
		t.Fatalf("expected single merged item, got %d", len(cart.Items))
	}
	item := cart.Items[0]
	if item.Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", item.Quantity)
	}
	if item.Price.String() != "1250.00" {
		t.Fatalf("expected line total 1250.00, got %s", item.Price.String())
	}
	if cart.TotalPrice.String() != "1250.00" {
		t.Fatalf("expected cart total 1250.00, got %s", cart.TotalPrice.String())
	}
}

func TestAddItemSnapshotsSalePrice(t *testing.T) {
	db := setupTestDB(t)
	svc := newCartService(db)
	user := seedUser(t, db, "sale@example.com", "")
	product := seedProduct(t, db, "Chair", "chair", "1000.00", true, 20)
	variant := seedVariant(t, db, product.ID, "oak", "")

	cart, err := svc.AddItem(user.ID, variant.ID, 2)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if cart.Items[0].Price.String() != "1600.00" {
		t.Fatalf("expected discounted line total 1600.00, got %s", cart.Items[0].Price.String())
	}
}

func TestAddItemQuantityValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newCartService(db)
	user := seedUser(t, db, "qty@example.com", "")
	product := seedProduct(t, db, "Desk", "desk", "400.00", false, 0)
	variant := seedVariant(t, db, product.ID, "white", "")

	for _, quantity := range []int{0, -1} {
		if _, err := svc.AddItem(user.ID, variant.ID, quantity); !errors.Is(err, ErrQuantityInvalid) {
			t.Fatalf("quantity=%d: expected ErrQuantityInvalid, got %v", quantity, err)
		}
	}
}

func TestAddItemUnknownVariant(t *testing.T) {
	db := setupTestDB(t)
	svc := newCartService(db)
	user := seedUser(t, db, "missing@example.com", "")

	if _, err := svc.AddItem(user.ID, 9999, 1); !errors.Is(err, ErrVariantNotFound) {
		t.Fatalf("expected ErrVariantNotFound, got %v", err)
	}
}

func TestAddItemInactiveVariant(t *testing.T) {
	db := setupTestDB(t)
	svc := newCartService(db)
	user := seedUser(t, db, "inactive@example.com", "")
	product := seedProduct(t, db, "Sofa", "sofa", "900.00", false, 0)
	variant := seedVariant(t, db, product.ID, "grey", "")

	if err := db.Model(&models.ProductVariant{}).Where("id = ?", variant.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate variant failed: %v", err)
	}

	if _, err := svc.AddItem(user.ID, variant.ID, 1); !errors.Is(err, ErrVariantNotFound) {
		t.Fatalf("expected ErrVariantNotFound for inactive variant, got %v", err)
	}
}

func TestUpdateItemQuantityRecomputesTotals(t *testing.T) {
	db := setupTestDB(t)
	svc := newCartService(db)
	user := seedUser(t, db, "update@example.com", "")
	product := seedProduct(t, db, "Table", "table", "300.00", false, 0)
	variantA := seedVariant(t, db, product.ID, "walnut", "")
	variantB := seedVariant(t, db, product.ID, "pine", "200.00")

	if _, err := svc.AddItem(user.ID, variantA.ID, 1); err != nil {
		t.Fatalf("add A failed: %v", err)
	}
	cart, err := svc.AddItem(user.ID, variantB.ID, 1)
	if err != nil {
		t.Fatalf("add B failed: %v", err)
	}

	var itemA *models.CartItem
	for i := range cart.Items {
		if cart.Items[i].VariantID == variantA.ID {
			itemA = &cart.Items[i]
		}
	}
	if itemA == nil {
		t.Fatalf("item for variant A not found")
	}

	updated, err := svc.UpdateItemQuantity(user.ID, itemA.ID, 4)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	// 300*4 + 200*1
	if updated.TotalPrice.String() != "1400.00" {
		t.Fatalf("expected total 1400.00, got %s", updated.TotalPrice.String())
	}
}

func TestUpdateItemRejectsForeignCart(t *testing.T) {
	db := setupTestDB(t)
	svc := newCartService(db)
	owner := seedUser(t, db, "owner@example.com", "")
	intruder := seedUser(t, db, "intruder@example.com", "")
	product := seedProduct(t, db, "Shelf", "shelf", "150.00", false, 0)
	variant := seedVariant(t, db, product.ID, "white", "")

	cart, err := svc.AddItem(owner.ID, variant.ID, 1)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	itemID := cart.Items[0].ID

	if _, err := svc.UpdateItemQuantity(intruder.ID, itemID, 5); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}
	if _, err := svc.RemoveItem(intruder.ID, itemID); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound on remove, got %v", err)
	}
}

func TestRemoveItemRecomputesTotal(t *testing.T) {
	db := setupTestDB(t)
	svc := newCartService(db)
	user := seedUser(t, db, "remove@example.com", "")
	product := seedProduct(t, db, "Rug", "rug", "120.00", false, 0)
	variantA := seedVariant(t, db, product.ID, "red", "")
	variantB := seedVariant(t, db, product.ID, "blue", "")

	if _, err := svc.AddItem(user.ID, variantA.ID, 1); err != nil {
		t.Fatalf("add A failed: %v", err)
	}
	cart, err := svc.AddItem(user.ID, variantB.ID, 2)
	if err != nil {
		t.Fatalf("add B failed: %v", err)
	}

	var itemB uint
	for _, item := range cart.Items {
		if item.VariantID == variantB.ID {
			itemB = item.ID
		}
	}

	updated, err := svc.RemoveItem(user.ID, itemB)
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(updated.Items) != 1 {
		t.Fatalf("expected 1 item left, got %d", len(updated.Items))
	}
	if updated.TotalPrice.String() != "120.00" {
		t.Fatalf("expected total 120.00, got %s", updated.TotalPrice.String())
	}
}

func TestClearCart(t *testing.T) {
	db := setupTestDB(t)
	svc := newCartService(db)
	user := seedUser(t, db, "clear@example.com", "")
	product := seedProduct(t, db, "Vase", "vase", "60.00", false, 0)
	variant := seedVariant(t, db, product.ID, "green", "")

	if _, err := svc.AddItem(user.ID, variant.ID, 3); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.Clear(user.ID); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	cart, err := svc.GetCart(user.ID)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(cart.Items))
	}
	if cart.TotalPrice.String() != "0.00" {
		t.Fatalf("expected zero total, got %s", cart.TotalPrice.String())
	}
}
