package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/voltmart-backend/pkg/db"
	"github.com/angelmondragon/voltmart-backend/pkg/db/models"
	"github.com/angelmondragon/voltmart-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/voltmart-backend/pkg/errors"
	"github.com/angelmondragon/voltmart-backend/pkg/pagination"
	"github.com/angelmondragon/voltmart-backend/pkg/slug"
	"github.com/angelmondragon/voltmart-backend/pkg/types"
	"gorm.io/gorm"
)

type catalogRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, product *models.Product) error
	FindOfferByID(ctx context.Context, id int64) (*models.Offer, error)
	CreateOffer(ctx context.Context, offer *models.Offer) error
	UpdateOffer(ctx context.Context, offer *models.Offer) error
	ListActiveOffers(ctx context.Context, productID int64) ([]OfferDTO, error)
	FindOfferViews(ctx context.Context, tx *gorm.DB, ids []int64) ([]OfferView, error)
	ListProductSummaries(ctx context.Context, query productListQuery) (*ProductListResult, error)
}

type storeLookup interface {
	FindByID(ctx context.Context, id int64) (*models.Store, error)
}

// Service exposes the browsable catalog and its admin management.
type Service interface {
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
	GetProduct(ctx context.Context, id int64) (*ProductDTO, error)
	GetOffer(ctx context.Context, id int64) (*OfferView, error)
	GetOffers(ctx context.Context, ids []int64) (map[int64]OfferView, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, id int64, input UpdateProductInput) (*ProductDTO, error)
	CreateOffer(ctx context.Context, input CreateOfferInput) (*OfferDTO, error)
	UpdateOffer(ctx context.Context, id int64, input UpdateOfferInput) (*OfferDTO, error)
}

type service struct {
	repo   catalogRepository
	stores storeLookup
}

// NewService builds the catalog service.
func NewService(repo catalogRepository, stores storeLookup) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if stores == nil {
		return nil, fmt.Errorf("store lookup required")
	}
	return &service{repo: repo, stores: stores}, nil
}

func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	filters := input.Filters
	if filters.Category != nil && !filters.Category.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid category %q", *filters.Category)
	}
	if filters.MinPrice != nil && filters.MinPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "min_price must be non-negative")
	}
	if filters.MaxPrice != nil && filters.MaxPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "max_price must be non-negative")
	}
	if filters.MinPrice != nil && filters.MaxPrice != nil && filters.MinPrice.GreaterThan(*filters.MaxPrice) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "min_price cannot exceed max_price")
	}

	if _, err := pagination.ParseCursor(input.Pagination.Cursor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	result, err := s.repo.ListProductSummaries(ctx, productListQuery{
		Pagination: input.Pagination,
		Filters:    filters,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return result, nil
}

func (s *service) GetProduct(ctx context.Context, id int64) (*ProductDTO, error) {
	product, err := s.loadProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	offers, err := s.repo.ListActiveOffers(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list offers")
	}
	return productFromModel(product, offers), nil
}

func (s *service) GetOffer(ctx context.Context, id int64) (*OfferView, error) {
	views, err := s.repo.FindOfferViews(ctx, nil, []int64{id})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load offer")
	}
	if len(views) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "offer not found")
	}
	return &views[0], nil
}

func (s *service) GetOffers(ctx context.Context, ids []int64) (map[int64]OfferView, error) {
	views, err := s.repo.FindOfferViews(ctx, nil, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load offers")
	}
	out := make(map[int64]OfferView, len(views))
	for _, view := range views {
		out[view.OfferID] = view
	}
	return out, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	name := strings.TrimSpace(input.Name)
	brand := strings.TrimSpace(input.Brand)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if brand == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product brand is required")
	}
	if !input.Category.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid category %q", input.Category)
	}

	productSlug := slug.Make(input.Slug)
	if productSlug == "" {
		productSlug = slug.Make(brand + " " + name)
	}
	if productSlug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product slug could not be derived from name")
	}

	product := &models.Product{
		Name:        name,
		Slug:        productSlug,
		Brand:       brand,
		Category:    input.Category,
		Description: trimmedOrNil(input.Description),
		ImageURL:    trimmedOrNil(input.ImageURL),
		Specs:       types.Specs(input.Specs),
	}
	if product.Specs == nil {
		product.Specs = types.Specs{}
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product slug already exists").
				WithDetails(map[string]any{"slug": productSlug})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return productFromModel(product, nil), nil
}

func (s *service) UpdateProduct(ctx context.Context, id int64, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.loadProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
		if product.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name cannot be empty")
		}
	}
	if input.Brand != nil {
		product.Brand = strings.TrimSpace(*input.Brand)
		if product.Brand == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product brand cannot be empty")
		}
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid category %q", *input.Category)
		}
		product.Category = *input.Category
	}
	if input.Description != nil {
		product.Description = trimmedOrNil(input.Description)
	}
	if input.ImageURL != nil {
		product.ImageURL = trimmedOrNil(input.ImageURL)
	}
	if input.Specs != nil {
		product.Specs = types.Specs(input.Specs)
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	offers, err := s.repo.ListActiveOffers(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list offers")
	}
	return productFromModel(product, offers), nil
}

func (s *service) CreateOffer(ctx context.Context, input CreateOfferInput) (*OfferDTO, error) {
	if _, err := s.loadProduct(ctx, input.ProductID); err != nil {
		return nil, err
	}
	store, err := s.stores.FindByID(ctx, input.StoreID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}

	offer := &models.Offer{
		ProductID:          input.ProductID,
		StoreID:            input.StoreID,
		Price:              input.Price,
		Stock:              input.Stock,
		DeliveryETAMinutes: input.DeliveryETAMinutes,
		IsActive:           true,
	}
	if input.IsActive != nil {
		offer.IsActive = *input.IsActive
	}
	if err := validateOffer(offer); err != nil {
		return nil, err
	}

	if err := s.repo.CreateOffer(ctx, offer); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "store already offers this product").
				WithDetails(map[string]any{"product_id": input.ProductID, "store_id": input.StoreID})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create offer")
	}
	dto := offerFromModel(offer, store.Name, store.DeliveryETAMinutes)
	return &dto, nil
}

func (s *service) UpdateOffer(ctx context.Context, id int64, input UpdateOfferInput) (*OfferDTO, error) {
	offer, err := s.repo.FindOfferByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "offer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load offer")
	}

	if input.Price != nil {
		offer.Price = *input.Price
	}
	if input.Stock != nil {
		offer.Stock = *input.Stock
	}
	if input.DeliveryETAMinutes != nil {
		offer.DeliveryETAMinutes = input.DeliveryETAMinutes
	}
	if input.IsActive != nil {
		offer.IsActive = *input.IsActive
	}
	if err := validateOffer(offer); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateOffer(ctx, offer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update offer")
	}

	storeName, storeETA := "", 0
	if store, err := s.stores.FindByID(ctx, offer.StoreID); err == nil {
		storeName, storeETA = store.Name, store.DeliveryETAMinutes
	}
	dto := offerFromModel(offer, storeName, storeETA)
	return &dto, nil
}

func (s *service) loadProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func validateOffer(offer *models.Offer) error {
	if !offer.Price.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be greater than zero")
	}
	if !offer.Price.Equal(offer.Price.Round(2)) {
		return pkgerrors.New(pkgerrors.CodeValidation, "price supports at most two decimal places")
	}
	if offer.Stock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}
	if offer.DeliveryETAMinutes != nil && *offer.DeliveryETAMinutes <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "delivery_eta_minutes must be positive")
	}
	return nil
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// ParseCategory validates a raw category filter value.
func ParseCategory(raw string) (*enums.ProductCategory, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	category, err := enums.ParseProductCategory(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
	}
	return &category, nil
}
