package cart

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/voltmart-backend/internal/delivery"
	"github.com/angelmondragon/voltmart-backend/internal/products"
	pkgerrors "github.com/angelmondragon/voltmart-backend/pkg/errors"
	"github.com/angelmondragon/voltmart-backend/pkg/geo"
	"github.com/shopspring/decimal"
)

type offerLoader interface {
	GetOffer(ctx context.Context, id int64) (*products.OfferView, error)
	GetOffers(ctx context.Context, ids []int64) (map[int64]products.OfferView, error)
}

type locationLoader interface {
	Locations(ctx context.Context, ids []int64) (map[int64]delivery.StoreLocation, error)
}

type feeRecorder interface {
	ObserveStoreFee(source string, fee float64)
}

// Service manages session carts and prices them for delivery.
type Service interface {
	Get(ctx context.Context, sessionID string) (*Cart, error)
	AddItem(ctx context.Context, sessionID string, offerID int64, quantity int) (*Cart, error)
	SetQuantity(ctx context.Context, sessionID string, offerID int64, quantity int) (*Cart, error)
	Remove(ctx context.Context, sessionID string, offerID int64) (*Cart, error)
	Clear(ctx context.Context, sessionID string) error
	Quote(ctx context.Context, sessionID string, user *geo.Point) (*Quote, error)
}

// Option configures optional service collaborators.
type Option func(*service)

// WithFeeRecorder records every per-store fee computed for a quote.
func WithFeeRecorder(rec feeRecorder) Option {
	return func(s *service) {
		if rec != nil {
			s.fees = rec
		}
	}
}

// WithCurrency sets the currency code reported on quotes.
func WithCurrency(code string) Option {
	return func(s *service) {
		if code = strings.TrimSpace(code); code != "" {
			s.currency = code
		}
	}
}

type service struct {
	sessions   SessionStore
	offers     offerLoader
	locations  locationLoader
	calculator *delivery.Calculator
	fees       feeRecorder
	currency   string
}

// NewService wires the cart service.
func NewService(sessions SessionStore, offers offerLoader, locations locationLoader, calculator *delivery.Calculator, opts ...Option) (Service, error) {
	if sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	if offers == nil {
		return nil, fmt.Errorf("offer loader required")
	}
	if locations == nil {
		return nil, fmt.Errorf("location loader required")
	}
	if calculator == nil {
		return nil, fmt.Errorf("delivery calculator required")
	}
	s := &service{
		sessions:   sessions,
		offers:     offers,
		locations:  locations,
		calculator: calculator,
		currency:   "INR",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*Cart, error) {
	return s.load(ctx, sessionID)
}

func (s *service) AddItem(ctx context.Context, sessionID string, offerID int64, quantity int) (*Cart, error) {
	if quantity <= 0 {
		quantity = 1
	}
	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	offer, err := s.purchasableOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}

	wanted := quantity
	if existing, ok := cart.Line(offerID); ok {
		wanted += existing.Quantity
	}
	if err := checkStock(offer, wanted); err != nil {
		return nil, err
	}

	line := lineFromOffer(offer)
	line.Quantity = quantity
	cart.AddItem(line)
	return s.save(ctx, cart)
}

func (s *service) SetQuantity(ctx context.Context, sessionID string, offerID int64, quantity int) (*Cart, error) {
	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if _, ok := cart.Line(offerID); !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "offer not in cart")
	}
	if quantity > 0 {
		offer, err := s.purchasableOffer(ctx, offerID)
		if err != nil {
			return nil, err
		}
		if err := checkStock(offer, quantity); err != nil {
			return nil, err
		}
	}
	cart.SetQuantity(offerID, quantity)
	return s.save(ctx, cart)
}

func (s *service) Remove(ctx context.Context, sessionID string, offerID int64) (*Cart, error) {
	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !cart.Remove(offerID) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "offer not in cart")
	}
	return s.save(ctx, cart)
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart session is required")
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

// Quote reprices the cart against current offers and computes delivery.
// Lines whose offer is gone or unavailable are reported but excluded from totals.
func (s *service) Quote(ctx context.Context, sessionID string, user *geo.Point) (*Quote, error) {
	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	offers, err := s.offers.GetOffers(ctx, cart.OfferIDs())
	if err != nil {
		return nil, err
	}

	priced := New(cart.SessionID)
	lines := make([]QuoteLine, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		offer, ok := offers[line.OfferID]
		if !ok || !offer.Available {
			lines = append(lines, QuoteLine{Line: line, LineTotal: decimal.Zero, Available: false})
			continue
		}
		current := lineFromOffer(&offer)
		current.Quantity = line.Quantity
		priced.AddItem(current)
		lines = append(lines, QuoteLine{
			Line:      current,
			LineTotal: current.LineTotal(),
			Available: true,
			InStock:   offer.Stock >= line.Quantity,
		})
	}

	locations, err := s.locations.Locations(ctx, priced.StoreIDs())
	if err != nil {
		return nil, err
	}

	items := priced.LineItems()
	breakdown := s.calculator.ComputeBreakdown(items, user, locations)
	if s.fees != nil {
		for _, fee := range breakdown.PerStoreFees {
			s.fees.ObserveStoreFee(string(fee.DistanceSource), fee.Fee.InexactFloat64())
		}
	}

	return &Quote{
		SessionID:   cart.SessionID,
		Currency:    s.currency,
		Lines:       lines,
		ItemCount:   priced.ItemCount(),
		Subtotal:    delivery.Subtotal(items),
		Delivery:    breakdown,
		GrandTotal:  delivery.GrandTotal(items, breakdown),
		UserLocated: user != nil,
	}, nil
}

func (s *service) load(ctx context.Context, sessionID string) (*Cart, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart session is required")
	}
	cart, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return cart, nil
}

func (s *service) save(ctx context.Context, cart *Cart) (*Cart, error) {
	if err := s.sessions.Save(ctx, cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return cart, nil
}

func (s *service) purchasableOffer(ctx context.Context, offerID int64) (*products.OfferView, error) {
	offer, err := s.offers.GetOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if !offer.Available {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "offer is not available").
			WithDetails(map[string]any{"offer_id": offerID})
	}
	return offer, nil
}

func checkStock(offer *products.OfferView, wanted int) error {
	if wanted > offer.Stock {
		return pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock").
			WithDetails(map[string]any{"offer_id": offer.OfferID, "requested": wanted, "available": offer.Stock})
	}
	return nil
}

func lineFromOffer(offer *products.OfferView) Line {
	return Line{
		OfferID:     offer.OfferID,
		ProductID:   offer.ProductID,
		ProductName: offer.ProductName,
		ImageURL:    offer.ImageURL,
		StoreID:     offer.StoreID,
		StoreName:   offer.StoreName,
		UnitPrice:   offer.Price,
	}
}
