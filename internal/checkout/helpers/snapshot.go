package helpers

import (
	"github.com/angelmondragon/voltmart-backend/internal/delivery"
	"github.com/angelmondragon/voltmart-backend/internal/products"
	"github.com/angelmondragon/voltmart-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// LineItemFromOffer snapshots an offer at its checkout-time price.
func LineItemFromOffer(offer products.OfferView, quantity int) models.OrderLineItem {
	return models.OrderLineItem{
		OfferID:     offer.OfferID,
		ProductID:   offer.ProductID,
		StoreID:     offer.StoreID,
		ProductName: offer.ProductName,
		StoreName:   offer.StoreName,
		UnitPrice:   offer.Price,
		Quantity:    quantity,
		LineTotal:   offer.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// CalculatorItems projects order line items into delivery calculator input.
func CalculatorItems(items []models.OrderLineItem) []delivery.LineItem {
	out := make([]delivery.LineItem, 0, len(items))
	for _, item := range items {
		out = append(out, delivery.LineItem{
			OfferID:   item.OfferID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			StoreID:   item.StoreID,
			StoreName: item.StoreName,
		})
	}
	return out
}

// StoreFeesFromBreakdown keeps the breakdown's store order in Position.
func StoreFeesFromBreakdown(breakdown delivery.Breakdown) []models.OrderStoreFee {
	out := make([]models.OrderStoreFee, 0, len(breakdown.PerStoreFees))
	for i, fee := range breakdown.PerStoreFees {
		out = append(out, models.OrderStoreFee{
			StoreID:        fee.StoreID,
			StoreName:      fee.StoreName,
			DistanceKm:     fee.DistanceKm,
			DistanceSource: string(fee.DistanceSource),
			Fee:            fee.Fee,
			Position:       i,
		})
	}
	return out
}

// UnitCount sums the quantities of items.
func UnitCount(items []models.OrderLineItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}
