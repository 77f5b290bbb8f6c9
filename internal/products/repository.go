package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/voltmart-backend/internal/repo"
	"github.com/angelmondragon/voltmart-backend/pkg/db/models"
	"github.com/angelmondragon/voltmart-backend/pkg/enums"
	"github.com/angelmondragon/voltmart-backend/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrInsufficientStock is returned when a stock decrement would go negative.
var ErrInsufficientStock = errors.New("insufficient stock")

// Repository handles catalog persistence: products and the offers stores make for them.
type Repository struct {
	repo.Base
}

// NewRepository binds a GORM DB to catalog operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// FindByID loads a product by id.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.DB(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct persists a new product.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) error {
	if product == nil {
		return fmt.Errorf("product is required")
	}
	return r.DB(ctx).Omit("Offers").Create(product).Error
}

// UpdateProduct saves the provided product.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) error {
	if product == nil {
		return fmt.Errorf("product is required")
	}
	return r.DB(ctx).Omit("Offers").Save(product).Error
}

// FindOfferByID loads an offer by id.
func (r *Repository) FindOfferByID(ctx context.Context, id int64) (*models.Offer, error) {
	var offer models.Offer
	if err := r.DB(ctx).Where("id = ?", id).First(&offer).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}

// CreateOffer persists a new offer.
func (r *Repository) CreateOffer(ctx context.Context, offer *models.Offer) error {
	if offer == nil {
		return fmt.Errorf("offer is required")
	}
	return r.DB(ctx).Omit("Product", "Store").Create(offer).Error
}

// UpdateOffer saves the provided offer.
func (r *Repository) UpdateOffer(ctx context.Context, offer *models.Offer) error {
	if offer == nil {
		return fmt.Errorf("offer is required")
	}
	return r.DB(ctx).Omit("Product", "Store").Save(offer).Error
}

type offerRecord struct {
	ID                 int64
	ProductID          int64
	StoreID            int64
	StoreName          string
	StoreETA           int
	Price              decimal.Decimal
	Stock              int
	DeliveryETAMinutes sql.NullInt64
	IsActive           bool
}

func (r offerRecord) toDTO() OfferDTO {
	eta := r.StoreETA
	if r.DeliveryETAMinutes.Valid {
		eta = int(r.DeliveryETAMinutes.Int64)
	}
	return OfferDTO{
		ID:                 r.ID,
		ProductID:          r.ProductID,
		StoreID:            r.StoreID,
		StoreName:          r.StoreName,
		Price:              r.Price,
		Stock:              r.Stock,
		DeliveryETAMinutes: eta,
		IsActive:           r.IsActive,
	}
}

// ListActiveOffers returns the purchasable offers for a product, cheapest first.
func (r *Repository) ListActiveOffers(ctx context.Context, productID int64) ([]OfferDTO, error) {
	var records []offerRecord
	err := r.DB(ctx).
		Table("offers o").
		Select("o.id, o.product_id, o.store_id, s.name AS store_name, s.delivery_eta_minutes AS store_eta, o.price, o.stock, o.delivery_eta_minutes, o.is_active").
		Joins("JOIN stores s ON s.id = o.store_id").
		Where("o.product_id = ?", productID).
		Where("o.is_active = ? AND s.is_active = ?", true, true).
		Order("o.price ASC").
		Order("o.id ASC").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}
	out := make([]OfferDTO, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.toDTO())
	}
	return out, nil
}

type offerViewRecord struct {
	OfferID     int64
	ProductID   int64
	ProductName string
	ImageURL    sql.NullString
	StoreID     int64
	StoreName   string
	Price       decimal.Decimal
	Stock       int
	OfferActive bool
	StoreActive bool
}

func (r offerViewRecord) toView() OfferView {
	var image *string
	if r.ImageURL.Valid {
		v := r.ImageURL.String
		image = &v
	}
	return OfferView{
		OfferID:     r.OfferID,
		ProductID:   r.ProductID,
		ProductName: r.ProductName,
		ImageURL:    image,
		StoreID:     r.StoreID,
		StoreName:   r.StoreName,
		Price:       r.Price,
		Stock:       r.Stock,
		Available:   r.OfferActive && r.StoreActive,
	}
}

// FindOfferViews loads the offers in ids joined with product and store data.
// tx may be nil; unknown ids are skipped.
func (r *Repository) FindOfferViews(ctx context.Context, tx *gorm.DB, ids []int64) ([]OfferView, error) {
	if len(ids) == 0 {
		return []OfferView{}, nil
	}
	var records []offerViewRecord
	err := r.Conn(ctx, tx).
		Table("offers o").
		Select(strings.Join([]string{
			"o.id AS offer_id",
			"o.product_id",
			"p.name AS product_name",
			"p.image_url",
			"o.store_id",
			"s.name AS store_name",
			"o.price",
			"o.stock",
			"o.is_active AS offer_active",
			"s.is_active AS store_active",
		}, ", ")).
		Joins("JOIN products p ON p.id = o.product_id").
		Joins("JOIN stores s ON s.id = o.store_id").
		Where("o.id IN ?", ids).
		Order("o.id ASC").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}
	out := make([]OfferView, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.toView())
	}
	return out, nil
}

// DecrementStockWithTx removes qty units from an offer, failing with
// ErrInsufficientStock when fewer than qty remain.
func (r *Repository) DecrementStockWithTx(tx *gorm.DB, offerID int64, qty int) error {
	if tx == nil {
		return fmt.Errorf("transaction required")
	}
	if qty <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	res := tx.Model(&models.Offer{}).
		Where("id = ? AND stock >= ?", offerID, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// IncrementStockWithTx returns qty units to an offer.
func (r *Repository) IncrementStockWithTx(tx *gorm.DB, offerID int64, qty int) error {
	if tx == nil {
		return fmt.Errorf("transaction required")
	}
	if qty <= 0 {
		return nil
	}
	return tx.Model(&models.Offer{}).
		Where("id = ?", offerID).
		Update("stock", gorm.Expr("stock + ?", qty)).Error
}

type productListQuery struct {
	Pagination pagination.Params
	Filters    ProductListFilters
}

type productSummaryRecord struct {
	ID          int64
	Name        string
	Slug        string
	Brand       string
	Category    string
	ImageURL    sql.NullString
	LowestPrice decimal.Decimal
	OfferCount  int
}

func (r productSummaryRecord) toSummary() ProductSummary {
	var image *string
	if r.ImageURL.Valid {
		v := r.ImageURL.String
		image = &v
	}
	return ProductSummary{
		ID:          r.ID,
		Name:        r.Name,
		Slug:        r.Slug,
		Brand:       r.Brand,
		Category:    enums.ProductCategory(r.Category),
		ImageURL:    image,
		LowestPrice: r.LowestPrice,
		OfferCount:  r.OfferCount,
	}
}

// ListProductSummaries returns products that have at least one purchasable
// offer, newest first, with their lowest price across stores.
func (r *Repository) ListProductSummaries(ctx context.Context, query productListQuery) (*ProductListResult, error) {
	pageSize := pagination.NormalizeLimit(query.Pagination.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(query.Pagination.Limit)

	cursor, err := pagination.ParseCursor(query.Pagination.Cursor)
	if err != nil {
		return nil, err
	}

	qb := r.DB(ctx).
		Table("products p").
		Select(strings.Join([]string{
			"p.id",
			"p.name",
			"p.slug",
			"p.brand",
			"p.category",
			"p.image_url",
			"MIN(o.price) AS lowest_price",
			"COUNT(o.id) AS offer_count",
		}, ", ")).
		Joins("JOIN offers o ON o.product_id = p.id AND o.is_active = ?", true).
		Joins("JOIN stores s ON s.id = o.store_id AND s.is_active = ?", true)

	filter := query.Filters
	if filter.Category != nil {
		qb = qb.Where("p.category = ?", *filter.Category)
	}
	if brand := strings.TrimSpace(filter.Brand); brand != "" {
		qb = qb.Where("LOWER(p.brand) = ?", strings.ToLower(brand))
	}
	if search := strings.TrimSpace(filter.Query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where("(LOWER(p.name) LIKE ? OR LOWER(p.brand) LIKE ?)", pattern, pattern)
	}
	if cursor != nil {
		qb = qb.Where("p.id < ?", cursor.ID)
	}

	qb = qb.Group("p.id, p.name, p.slug, p.brand, p.category, p.image_url")
	if filter.MinPrice != nil {
		qb = qb.Having("MIN(o.price) >= ?", filter.MinPrice.InexactFloat64())
	}
	if filter.MaxPrice != nil {
		qb = qb.Having("MIN(o.price) <= ?", filter.MaxPrice.InexactFloat64())
	}

	qb = qb.Order("p.id DESC").Limit(limitWithBuffer)

	var records []productSummaryRecord
	if err := qb.Scan(&records).Error; err != nil {
		return nil, err
	}

	resultRows := records
	nextCursor := ""
	if len(records) > pageSize {
		resultRows = records[:pageSize]
		last := resultRows[len(resultRows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{ID: last.ID})
	}

	summaries := make([]ProductSummary, 0, len(resultRows))
	for _, record := range resultRows {
		summaries = append(summaries, record.toSummary())
	}

	return &ProductListResult{
		Products:   summaries,
		NextCursor: nextCursor,
	}, nil
}
