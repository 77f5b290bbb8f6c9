package products

import (
	"time"

	"github.com/angelmondragon/voltmart-backend/pkg/db/models"
	"github.com/angelmondragon/voltmart-backend/pkg/enums"
	"github.com/angelmondragon/voltmart-backend/pkg/pagination"
	"github.com/angelmondragon/voltmart-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// ProductSummary is one row of the browse listing.
type ProductSummary struct {
	ID          int64                 `json:"id"`
	Name        string                `json:"name"`
	Slug        string                `json:"slug"`
	Brand       string                `json:"brand"`
	Category    enums.ProductCategory `json:"category"`
	ImageURL    *string               `json:"image_url,omitempty"`
	LowestPrice decimal.Decimal       `json:"lowest_price"`
	OfferCount  int                   `json:"offer_count"`
}

// ProductListResult is a page of summaries.
type ProductListResult struct {
	Products   []ProductSummary `json:"products"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

// ProductListFilters describe the supported browse filters.
type ProductListFilters struct {
	Category *enums.ProductCategory
	Brand    string
	Query    string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// ListProductsInput captures filters plus the page being requested.
type ListProductsInput struct {
	Filters    ProductListFilters
	Pagination pagination.Params
}

// ProductDTO is the full product with its purchasable offers.
type ProductDTO struct {
	ID          int64                 `json:"id"`
	Name        string                `json:"name"`
	Slug        string                `json:"slug"`
	Brand       string                `json:"brand"`
	Category    enums.ProductCategory `json:"category"`
	Description *string               `json:"description,omitempty"`
	ImageURL    *string               `json:"image_url,omitempty"`
	Specs       types.Specs           `json:"specs"`
	Offers      []OfferDTO            `json:"offers"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// OfferDTO is a store's listing as shown on the product page.
type OfferDTO struct {
	ID                 int64           `json:"id"`
	ProductID          int64           `json:"product_id"`
	StoreID            int64           `json:"store_id"`
	StoreName          string          `json:"store_name,omitempty"`
	Price              decimal.Decimal `json:"price"`
	Stock              int             `json:"stock"`
	DeliveryETAMinutes int             `json:"delivery_eta_minutes"`
	IsActive           bool            `json:"is_active"`
}

// OfferView is everything the cart and checkout need about an offer.
// Available is false when the offer or its store is inactive.
type OfferView struct {
	OfferID     int64
	ProductID   int64
	ProductName string
	ImageURL    *string
	StoreID     int64
	StoreName   string
	Price       decimal.Decimal
	Stock       int
	Available   bool
}

// CreateProductInput holds the admin payload for a new product.
type CreateProductInput struct {
	Name        string
	Slug        string
	Brand       string
	Category    enums.ProductCategory
	Description *string
	ImageURL    *string
	Specs       map[string]string
}

// UpdateProductInput captures mutable product fields; nil means unchanged.
type UpdateProductInput struct {
	Name        *string
	Brand       *string
	Category    *enums.ProductCategory
	Description *string
	ImageURL    *string
	Specs       map[string]string
}

// CreateOfferInput lists a product at a store.
type CreateOfferInput struct {
	ProductID          int64
	StoreID            int64
	Price              decimal.Decimal
	Stock              int
	DeliveryETAMinutes *int
	IsActive           *bool
}

// UpdateOfferInput adjusts price, stock or availability.
type UpdateOfferInput struct {
	Price              *decimal.Decimal
	Stock              *int
	DeliveryETAMinutes *int
	IsActive           *bool
}

func productFromModel(m *models.Product, offers []OfferDTO) *ProductDTO {
	if offers == nil {
		offers = []OfferDTO{}
	}
	specs := m.Specs
	if specs == nil {
		specs = types.Specs{}
	}
	return &ProductDTO{
		ID:          m.ID,
		Name:        m.Name,
		Slug:        m.Slug,
		Brand:       m.Brand,
		Category:    m.Category,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		Specs:       specs,
		Offers:      offers,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func offerFromModel(m *models.Offer, storeName string, storeETA int) OfferDTO {
	eta := storeETA
	if m.DeliveryETAMinutes != nil {
		eta = *m.DeliveryETAMinutes
	}
	return OfferDTO{
		ID:                 m.ID,
		ProductID:          m.ProductID,
		StoreID:            m.StoreID,
		StoreName:          storeName,
		Price:              m.Price,
		Stock:              m.Stock,
		DeliveryETAMinutes: eta,
		IsActive:           m.IsActive,
	}
}
