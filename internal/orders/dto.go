package orders

import (
	"time"

	"github.com/angelmondragon/voltmart-backend/pkg/db/models"
	"github.com/angelmondragon/voltmart-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// OrderSummary is one row of the admin order list.
type OrderSummary struct {
	ID            int64             `json:"id"`
	OrderNumber   string            `json:"order_number"`
	Status        enums.OrderStatus `json:"status"`
	CustomerName  string            `json:"customer_name"`
	CustomerPhone string            `json:"customer_phone"`
	ItemCount     int               `json:"item_count"`
	Currency      string            `json:"currency"`
	GrandTotal    decimal.Decimal   `json:"grand_total"`
	PlacedAt      time.Time         `json:"placed_at"`
}

// OrderList is a page of summaries.
type OrderList struct {
	Orders     []OrderSummary `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// LineItemDTO is a purchased offer snapshot.
type LineItemDTO struct {
	OfferID     int64           `json:"offer_id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	StoreID     int64           `json:"store_id"`
	StoreName   string          `json:"store_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// StoreFeeDTO is the delivery fee charged for one store.
type StoreFeeDTO struct {
	StoreID        int64           `json:"store_id"`
	StoreName      string          `json:"store_name"`
	DistanceKm     float64         `json:"distance_km"`
	DistanceSource string          `json:"distance_source"`
	Fee            decimal.Decimal `json:"fee"`
}

// OrderDTO is the full order view.
type OrderDTO struct {
	ID              int64             `json:"id"`
	OrderNumber     string            `json:"order_number"`
	Status          enums.OrderStatus `json:"status"`
	CustomerName    string            `json:"customer_name"`
	CustomerPhone   string            `json:"customer_phone"`
	CustomerEmail   *string           `json:"customer_email,omitempty"`
	DeliveryAddress string            `json:"delivery_address"`
	DeliveryLat     *float64          `json:"delivery_lat,omitempty"`
	DeliveryLng     *float64          `json:"delivery_lng,omitempty"`
	Currency        string            `json:"currency"`
	ItemCount       int               `json:"item_count"`
	Subtotal        decimal.Decimal   `json:"subtotal"`
	StoreFees       []StoreFeeDTO     `json:"store_fees"`
	TransitFee      decimal.Decimal   `json:"transit_fee"`
	DeliveryTotal   decimal.Decimal   `json:"delivery_total"`
	GrandTotal      decimal.Decimal   `json:"grand_total"`
	LineItems       []LineItemDTO     `json:"line_items"`
	PlacedAt        time.Time         `json:"placed_at"`
	CanceledAt      *time.Time        `json:"canceled_at,omitempty"`
	DeliveredAt     *time.Time        `json:"delivered_at,omitempty"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// FromModel maps a persisted order, with its preloaded children, to the API view.
func FromModel(m *models.Order) *OrderDTO {
	items := make([]LineItemDTO, 0, len(m.LineItems))
	for _, item := range m.LineItems {
		items = append(items, LineItemDTO{
			OfferID:     item.OfferID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			StoreID:     item.StoreID,
			StoreName:   item.StoreName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal,
		})
	}
	fees := make([]StoreFeeDTO, 0, len(m.StoreFees))
	for _, fee := range m.StoreFees {
		fees = append(fees, StoreFeeDTO{
			StoreID:        fee.StoreID,
			StoreName:      fee.StoreName,
			DistanceKm:     fee.DistanceKm,
			DistanceSource: fee.DistanceSource,
			Fee:            fee.Fee,
		})
	}
	return &OrderDTO{
		ID:              m.ID,
		OrderNumber:     m.OrderNumber,
		Status:          m.Status,
		CustomerName:    m.CustomerName,
		CustomerPhone:   m.CustomerPhone,
		CustomerEmail:   m.CustomerEmail,
		DeliveryAddress: m.DeliveryAddress,
		DeliveryLat:     m.DeliveryLat,
		DeliveryLng:     m.DeliveryLng,
		Currency:        m.Currency,
		ItemCount:       m.ItemCount,
		Subtotal:        m.Subtotal,
		StoreFees:       fees,
		TransitFee:      m.TransitFee,
		DeliveryTotal:   m.DeliveryTotal,
		GrandTotal:      m.GrandTotal,
		LineItems:       items,
		PlacedAt:        m.PlacedAt,
		CanceledAt:      m.CanceledAt,
		DeliveredAt:     m.DeliveredAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
