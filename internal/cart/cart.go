package cart

import (
	"time"

	"github.com/angelmondragon/voltmart-backend/internal/delivery"
	"github.com/shopspring/decimal"
)

// Line is one offer held in a cart. The same product offered by two stores
// occupies two lines.
type Line struct {
	OfferID     int64           `json:"offer_id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	ImageURL    *string         `json:"image_url,omitempty"`
	StoreID     int64           `json:"store_id"`
	StoreName   string          `json:"store_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

// LineTotal is unit price times quantity.
func (l Line) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the session-scoped line list. It is loaded per request and handed
// to the delivery calculator explicitly.
type Cart struct {
	SessionID string    `json:"session_id"`
	Lines     []Line    `json:"lines"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New returns an empty cart for the session.
func New(sessionID string) *Cart {
	return &Cart{SessionID: sessionID, Lines: []Line{}}
}

// AddItem increments the quantity of an existing offer line or appends a new
// one. A non-positive quantity counts as 1. Display fields of an existing line
// are refreshed from line.
func (c *Cart) AddItem(line Line) {
	qty := line.Quantity
	if qty <= 0 {
		qty = 1
	}
	if i := c.index(line.OfferID); i >= 0 {
		existing := c.Lines[i]
		line.Quantity = existing.Quantity + qty
		c.Lines[i] = line
		return
	}
	line.Quantity = qty
	c.Lines = append(c.Lines, line)
}

// SetQuantity sets the line's quantity, removing it when n <= 0. It reports
// whether the offer was in the cart.
func (c *Cart) SetQuantity(offerID int64, n int) bool {
	i := c.index(offerID)
	if i < 0 {
		return false
	}
	if n <= 0 {
		c.removeAt(i)
		return true
	}
	c.Lines[i].Quantity = n
	return true
}

// Remove drops the offer's line. It reports whether anything was removed.
func (c *Cart) Remove(offerID int64) bool {
	i := c.index(offerID)
	if i < 0 {
		return false
	}
	c.removeAt(i)
	return true
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = []Line{}
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Line returns the line for offerID.
func (c *Cart) Line(offerID int64) (Line, bool) {
	if i := c.index(offerID); i >= 0 {
		return c.Lines[i], true
	}
	return Line{}, false
}

// Subtotal sums unit price times quantity over all lines.
func (c *Cart) Subtotal() decimal.Decimal {
	return delivery.Subtotal(c.LineItems())
}

// ItemCount is the total number of units in the cart.
func (c *Cart) ItemCount() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

// LineItems projects the cart into calculator input, preserving line order.
func (c *Cart) LineItems() []delivery.LineItem {
	items := make([]delivery.LineItem, 0, len(c.Lines))
	for _, line := range c.Lines {
		items = append(items, delivery.LineItem{
			OfferID:   line.OfferID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			StoreID:   line.StoreID,
			StoreName: line.StoreName,
		})
	}
	return items
}

// OfferIDs lists the offers in line order.
func (c *Cart) OfferIDs() []int64 {
	ids := make([]int64, 0, len(c.Lines))
	for _, line := range c.Lines {
		ids = append(ids, line.OfferID)
	}
	return ids
}

// StoreIDs lists the distinct stores in first-seen order.
func (c *Cart) StoreIDs() []int64 {
	seen := make(map[int64]struct{}, len(c.Lines))
	ids := make([]int64, 0, len(c.Lines))
	for _, line := range c.Lines {
		if _, ok := seen[line.StoreID]; ok {
			continue
		}
		seen[line.StoreID] = struct{}{}
		ids = append(ids, line.StoreID)
	}
	return ids
}

func (c *Cart) index(offerID int64) int {
	for i, line := range c.Lines {
		if line.OfferID == offerID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(i int) {
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
}
