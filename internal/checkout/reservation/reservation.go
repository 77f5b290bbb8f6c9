// Package reservation takes stock for checkout lines inside the order transaction.
package reservation

import (
	"errors"
	"fmt"

	"github.com/angelmondragon/voltmart-backend/internal/products"
	"gorm.io/gorm"
)

const (
	ReasonInsufficientStock = "insufficient stock"
	ReasonInvalidQuantity   = "invalid quantity"
)

type stockDecrementer interface {
	DecrementStockWithTx(tx *gorm.DB, offerID int64, qty int) error
}

// Request asks for qty units of an offer.
type Request struct {
	OfferID int64
	Qty     int
}

// Result reports whether a request was reserved and, if not, why.
type Result struct {
	OfferID  int64
	Reserved bool
	Reason   string
}

// Reserve decrements stock for each request in order. Requests that cannot be
// satisfied are reported in the results; only driver failures return an error.
// Callers roll back the transaction when any result is not reserved.
func Reserve(tx *gorm.DB, stock stockDecrementer, requests []Request) ([]Result, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction required")
	}
	results := make([]Result, 0, len(requests))
	for _, req := range requests {
		res := Result{OfferID: req.OfferID}
		if req.Qty <= 0 {
			res.Reason = ReasonInvalidQuantity
			results = append(results, res)
			continue
		}
		err := stock.DecrementStockWithTx(tx, req.OfferID, req.Qty)
		switch {
		case err == nil:
			res.Reserved = true
		case errors.Is(err, products.ErrInsufficientStock):
			res.Reason = ReasonInsufficientStock
		default:
			return nil, fmt.Errorf("reserve offer %d: %w", req.OfferID, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// Failed returns the results that were not reserved.
func Failed(results []Result) []Result {
	var out []Result
	for _, res := range results {
		if !res.Reserved {
			out = append(out, res)
		}
	}
	return out
}
