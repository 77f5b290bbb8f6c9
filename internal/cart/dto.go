package cart

import (
	"github.com/angelmondragon/voltmart-backend/internal/delivery"
	"github.com/shopspring/decimal"
)

// QuoteLine is a cart line priced at the offer's current price.
type QuoteLine struct {
	Line
	LineTotal decimal.Decimal `json:"line_total"`
	Available bool            `json:"available"`
	InStock   bool            `json:"in_stock"`
}

// Quote is the priced view of a cart: items, delivery and the grand total.
type Quote struct {
	SessionID   string             `json:"session_id"`
	Currency    string             `json:"currency"`
	Lines       []QuoteLine        `json:"lines"`
	ItemCount   int                `json:"item_count"`
	Subtotal    decimal.Decimal    `json:"subtotal"`
	Delivery    delivery.Breakdown `json:"delivery"`
	GrandTotal  decimal.Decimal    `json:"grand_total"`
	UserLocated bool               `json:"user_located"`
}

// View is the cart as returned by the cart endpoints.
type View struct {
	SessionID string          `json:"session_id"`
	Lines     []ViewLine      `json:"lines"`
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// ViewLine adds the line total to a stored line.
type ViewLine struct {
	Line
	LineTotal decimal.Decimal `json:"line_total"`
}

// ViewOf renders a cart for the API.
func ViewOf(c *Cart) View {
	lines := make([]ViewLine, 0, len(c.Lines))
	for _, line := range c.Lines {
		lines = append(lines, ViewLine{Line: line, LineTotal: line.LineTotal()})
	}
	return View{
		SessionID: c.SessionID,
		Lines:     lines,
		ItemCount: c.ItemCount(),
		Subtotal:  c.Subtotal(),
	}
}
