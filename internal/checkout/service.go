package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/voltmart-backend/internal/cart"
	"github.com/angelmondragon/voltmart-backend/internal/checkout/helpers"
	"github.com/angelmondragon/voltmart-backend/internal/checkout/reservation"
	"github.com/angelmondragon/voltmart-backend/internal/delivery"
	"github.com/angelmondragon/voltmart-backend/internal/orders"
	"github.com/angelmondragon/voltmart-backend/internal/products"
	"github.com/angelmondragon/voltmart-backend/pkg/db/models"
	"github.com/angelmondragon/voltmart-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/voltmart-backend/pkg/errors"
	"github.com/angelmondragon/voltmart-backend/pkg/geo"
	"github.com/angelmondragon/voltmart-backend/pkg/logger"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type offerRepository interface {
	FindOfferViews(ctx context.Context, tx *gorm.DB, ids []int64) ([]products.OfferView, error)
	DecrementStockWithTx(tx *gorm.DB, offerID int64, qty int) error
}

type locationLoader interface {
	Locations(ctx context.Context, ids []int64) (map[int64]delivery.StoreLocation, error)
}

type orderRecorder interface {
	ObserveOrderPlaced(grandTotal float64)
}

// Service turns a session cart into a placed order.
type Service interface {
	PlaceOrder(ctx context.Context, sessionID string, input PlaceOrderInput) (*orders.OrderDTO, error)
}

// PlaceOrderInput captures the customer data submitted at checkout.
type PlaceOrderInput struct {
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   *string
	DeliveryAddress string
	Location        *geo.Point
}

// Deps groups the collaborators checkout needs.
type Deps struct {
	Tx         txRunner
	Sessions   cart.SessionStore
	Offers     offerRepository
	Locations  locationLoader
	Orders     orders.Repository
	Calculator *delivery.Calculator
	Metrics    orderRecorder
	Logger     *logger.Logger
	Currency   string
}

type service struct {
	tx         txRunner
	sessions   cart.SessionStore
	offers     offerRepository
	locations  locationLoader
	orders     orders.Repository
	calculator *delivery.Calculator
	metrics    orderRecorder
	logg       *logger.Logger
	currency   string
	now        func() time.Time
}

// NewService validates deps and builds the checkout service.
func NewService(deps Deps) (Service, error) {
	switch {
	case deps.Tx == nil:
		return nil, fmt.Errorf("transaction runner required")
	case deps.Sessions == nil:
		return nil, fmt.Errorf("session store required")
	case deps.Offers == nil:
		return nil, fmt.Errorf("offer repository required")
	case deps.Locations == nil:
		return nil, fmt.Errorf("location loader required")
	case deps.Orders == nil:
		return nil, fmt.Errorf("order repository required")
	case deps.Calculator == nil:
		return nil, fmt.Errorf("delivery calculator required")
	}
	logg := deps.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	currency := strings.TrimSpace(deps.Currency)
	if currency == "" {
		currency = string(enums.CurrencyINR)
	}
	return &service{
		tx:         deps.Tx,
		sessions:   deps.Sessions,
		offers:     deps.Offers,
		locations:  deps.Locations,
		orders:     deps.Orders,
		calculator: deps.Calculator,
		metrics:    deps.Metrics,
		logg:       logg,
		currency:   currency,
		now:        time.Now,
	}, nil
}

// PlaceOrder reloads every cart offer inside one transaction, reserves stock
// and persists the order with its line items and per-store delivery fees.
// Prices at checkout time win over the prices the cart was built with.
func (s *service) PlaceOrder(ctx context.Context, sessionID string, input PlaceOrderInput) (*orders.OrderDTO, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart session is required")
	}
	customer, err := helpers.NormalizeCustomer(helpers.Customer{
		Name:     input.CustomerName,
		Phone:    input.CustomerPhone,
		Email:    input.CustomerEmail,
		Address:  input.DeliveryAddress,
		Location: input.Location,
	})
	if err != nil {
		return nil, err
	}

	sessionCart, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if sessionCart.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	locations, err := s.locations.Locations(ctx, sessionCart.StoreIDs())
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	var order *models.Order
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		views, err := s.offers.FindOfferViews(ctx, tx, sessionCart.OfferIDs())
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load offers")
		}
		byID := make(map[int64]products.OfferView, len(views))
		for _, view := range views {
			byID[view.OfferID] = view
		}

		items := make([]models.OrderLineItem, 0, len(sessionCart.Lines))
		requests := make([]reservation.Request, 0, len(sessionCart.Lines))
		var unavailable []int64
		for _, line := range sessionCart.Lines {
			view, ok := byID[line.OfferID]
			if !ok || !view.Available {
				unavailable = append(unavailable, line.OfferID)
				continue
			}
			items = append(items, helpers.LineItemFromOffer(view, line.Quantity))
			requests = append(requests, reservation.Request{OfferID: line.OfferID, Qty: line.Quantity})
		}
		if len(unavailable) > 0 {
			return pkgerrors.New(pkgerrors.CodeConflict, "some cart items are no longer available").
				WithDetails(map[string]any{"offer_ids": unavailable})
		}

		results, err := reservation.Reserve(tx, s.offers, requests)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reserve stock")
		}
		if failed := reservation.Failed(results); len(failed) > 0 {
			ids := make([]int64, 0, len(failed))
			for _, res := range failed {
				ids = append(ids, res.OfferID)
			}
			return pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock").
				WithDetails(map[string]any{"offer_ids": ids})
		}

		calcItems := helpers.CalculatorItems(items)
		breakdown := s.calculator.ComputeBreakdown(calcItems, customer.Location, locations)

		order = &models.Order{
			OrderNumber:     helpers.NewOrderNumber(now),
			Status:          enums.OrderStatusPlaced,
			CustomerName:    customer.Name,
			CustomerPhone:   customer.Phone,
			CustomerEmail:   customer.Email,
			DeliveryAddress: customer.Address,
			Currency:        s.currency,
			ItemCount:       helpers.UnitCount(items),
			Subtotal:        delivery.Subtotal(calcItems),
			TransitFee:      breakdown.TransitFee,
			DeliveryTotal:   breakdown.TotalDelivery,
			GrandTotal:      delivery.GrandTotal(calcItems, breakdown),
			PlacedAt:        now,
			LineItems:       items,
			StoreFees:       helpers.StoreFeesFromBreakdown(breakdown),
		}
		if customer.Location != nil {
			lat, lng := customer.Location.Lat, customer.Location.Lng
			order.DeliveryLat, order.DeliveryLng = &lat, &lng
		}

		if err := s.orders.WithTx(tx).Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logCtx := s.logg.WithOrderNumber(s.logg.WithSessionID(ctx, sessionID), order.OrderNumber)
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		s.logg.Warn(s.logg.WithField(logCtx, "error", err.Error()), "checkout.cart_clear_failed")
	}

	if s.metrics != nil {
		s.metrics.ObserveOrderPlaced(order.GrandTotal.InexactFloat64())
	}
	s.logg.Info(s.logg.WithFields(logCtx, map[string]any{
		"grand_total": order.GrandTotal.StringFixed(2),
		"stores":      len(order.StoreFees),
		"items":       order.ItemCount,
	}), "checkout.order_placed")

	return orders.FromModel(order), nil
}
