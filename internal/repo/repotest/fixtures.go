package repotest

import (
	"testing"

	"github.com/angelmondragon/voltmart-backend/pkg/db/models"
	"github.com/angelmondragon/voltmart-backend/pkg/enums"
	"github.com/angelmondragon/voltmart-backend/pkg/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeedStore inserts an active store with the given coordinates (nil for none).
func SeedStore(t testing.TB, conn *gorm.DB, slug string, lat, lng *float64) *models.Store {
	t.Helper()
	store := &models.Store{
		Name:               "Store " + slug,
		Slug:               slug,
		Address:            "1 Test Street",
		Latitude:           lat,
		Longitude:          lng,
		DeliveryETAMinutes: 45,
		IsActive:           true,
	}
	if err := conn.Create(store).Error; err != nil {
		t.Fatalf("seed store: %v", err)
	}
	return store
}

// SeedProduct inserts a product in the given category.
func SeedProduct(t testing.TB, conn *gorm.DB, slug, brand string, category enums.ProductCategory) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:     "Product " + slug,
		Slug:     slug,
		Brand:    brand,
		Category: category,
		Specs:    types.Specs{},
	}
	if err := conn.Omit("Offers").Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

// SeedOffer lists product at store for price with the given stock.
func SeedOffer(t testing.TB, conn *gorm.DB, productID, storeID int64, price string, stock int) *models.Offer {
	t.Helper()
	offer := &models.Offer{
		ProductID: productID,
		StoreID:   storeID,
		Price:     decimal.RequireFromString(price),
		Stock:     stock,
		IsActive:  true,
	}
	if err := conn.Omit("Product", "Store").Create(offer).Error; err != nil {
		t.Fatalf("seed offer: %v", err)
	}
	return offer
}
