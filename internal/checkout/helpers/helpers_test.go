package helpers

import (
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/angelmondragon/voltmart-backend/internal/delivery"
	"github.com/angelmondragon/voltmart-backend/internal/products"
	"github.com/angelmondragon/voltmart-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/voltmart-backend/pkg/errors"
	"github.com/angelmondragon/voltmart-backend/pkg/geo"
	"github.com/shopspring/decimal"
)

func TestNormalizeCustomer(t *testing.T) {
	email := "  asha@example.com "
	out, err := NormalizeCustomer(Customer{
		Name:     " Asha ",
		Phone:    " +91 98000 00000 ",
		Email:    &email,
		Address:  " 12 MG Road ",
		Location: &geo.Point{Lat: 12.97, Lng: 77.59},
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if out.Name != "Asha" || out.Address != "12 MG Road" || *out.Email != "asha@example.com" {
		t.Fatalf("unexpected customer %+v", out)
	}

	blank := "  "
	out, err = NormalizeCustomer(Customer{Name: "a", Phone: "b", Address: "c", Email: &blank})
	if err != nil || out.Email != nil {
		t.Fatalf("expected blank email dropped, got %+v %v", out, err)
	}
}

func TestNormalizeCustomerRejects(t *testing.T) {
	bad := "not-an-email"
	cases := map[string]Customer{
		"missing name":    {Phone: "1", Address: "x"},
		"missing phone":   {Name: "a", Address: "x"},
		"missing address": {Name: "a", Phone: "1"},
		"bad email":       {Name: "a", Phone: "1", Address: "x", Email: &bad},
		"lat range":       {Name: "a", Phone: "1", Address: "x", Location: &geo.Point{Lat: 95, Lng: 0}},
		"nan":             {Name: "a", Phone: "1", Address: "x", Location: &geo.Point{Lat: math.NaN(), Lng: 0}},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := NormalizeCustomer(in); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestNewOrderNumberFormat(t *testing.T) {
	now := time.Date(2026, 3, 1, 23, 30, 0, 0, time.FixedZone("IST", 5*3600+1800))
	got := NewOrderNumber(now)
	if !regexp.MustCompile(`^VM-20260301-[0-9A-F]{8}$`).MatchString(got) {
		t.Fatalf("unexpected order number %q", got)
	}
	if NewOrderNumber(now) == got {
		t.Fatal("expected distinct order numbers")
	}
}

func TestSnapshotHelpers(t *testing.T) {
	offer := products.OfferView{OfferID: 3, ProductID: 4, ProductName: "Buds", StoreID: 5, StoreName: "North", Price: decimal.RequireFromString("1499.50")}
	item := LineItemFromOffer(offer, 2)
	if !item.LineTotal.Equal(decimal.NewFromInt(2999)) || item.StoreName != "North" {
		t.Fatalf("unexpected line item %+v", item)
	}

	items := []models.OrderLineItem{item, LineItemFromOffer(offer, 1)}
	if UnitCount(items) != 3 {
		t.Fatalf("expected 3 units, got %d", UnitCount(items))
	}
	calcItems := CalculatorItems(items[:1])
	if len(calcItems) != 1 || calcItems[0].StoreID != 5 || calcItems[0].Quantity != 2 {
		t.Fatalf("unexpected calculator items %+v", calcItems)
	}

	fees := StoreFeesFromBreakdown(delivery.Breakdown{PerStoreFees: []delivery.StoreFee{
		{StoreID: 9, DistanceSource: delivery.DistanceSourceDefault, Fee: decimal.NewFromInt(114)},
		{StoreID: 5, DistanceSource: delivery.DistanceSourceLive, Fee: decimal.NewFromInt(50)},
	}})
	if len(fees) != 2 || fees[0].Position != 0 || fees[1].Position != 1 || fees[1].DistanceSource != "live" {
		t.Fatalf("unexpected fees %+v", fees)
	}
}
