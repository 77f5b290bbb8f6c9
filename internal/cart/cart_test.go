package cart

import (
	"testing"

	"github.com/shopspring/decimal"
)

func line(offerID, storeID int64, price string) Line {
	return Line{
		OfferID:   offerID,
		StoreID:   storeID,
		StoreName: "store",
		UnitPrice: decimal.RequireFromString(price),
	}
}

func TestAddItemAppendsThenIncrements(t *testing.T) {
	c := New("s1")
	c.AddItem(line(1, 10, "100"))
	c.AddItem(line(2, 20, "50"))
	c.AddItem(line(1, 10, "100"))

	if len(c.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(c.Lines))
	}
	if c.Lines[0].Quantity != 2 || c.Lines[1].Quantity != 1 {
		t.Fatalf("unexpected quantities %+v", c.Lines)
	}

	explicit := line(2, 20, "50")
	explicit.Quantity = 3
	c.AddItem(explicit)
	if got, _ := c.Line(2); got.Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", got.Quantity)
	}
}

func TestAddItemRefreshesDisplayFields(t *testing.T) {
	c := New("s1")
	c.AddItem(line(1, 10, "100"))
	updated := line(1, 10, "90")
	updated.ProductName = "Renamed"
	c.AddItem(updated)

	got, _ := c.Line(1)
	if got.ProductName != "Renamed" || !got.UnitPrice.Equal(decimal.NewFromInt(90)) || got.Quantity != 2 {
		t.Fatalf("unexpected line %+v", got)
	}
}

func TestSetQuantity(t *testing.T) {
	c := New("s1")
	c.AddItem(line(1, 10, "100"))
	c.AddItem(line(2, 10, "100"))

	if !c.SetQuantity(1, 5) {
		t.Fatal("expected offer 1 to be found")
	}
	if got, _ := c.Line(1); got.Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", got.Quantity)
	}
	if !c.SetQuantity(1, 0) {
		t.Fatal("expected offer 1 to be found")
	}
	if _, ok := c.Line(1); ok {
		t.Fatal("expected line removed at zero quantity")
	}
	if !c.SetQuantity(2, -3) || !c.IsEmpty() {
		t.Fatalf("expected negative quantity to remove, lines=%+v", c.Lines)
	}
	if c.SetQuantity(99, 1) {
		t.Fatal("expected unknown offer to report false")
	}
}

func TestRemoveAndClear(t *testing.T) {
	c := New("s1")
	c.AddItem(line(1, 10, "100"))
	c.AddItem(line(2, 10, "100"))

	if !c.Remove(1) || c.Remove(1) {
		t.Fatal("expected remove to succeed once")
	}
	c.Clear()
	if !c.IsEmpty() || c.Lines == nil {
		t.Fatalf("expected empty non-nil lines, got %#v", c.Lines)
	}
}

func TestSubtotalAndItemCount(t *testing.T) {
	c := New("s1")
	a := line(1, 10, "1299.50")
	a.Quantity = 2
	c.AddItem(a)
	c.AddItem(line(2, 20, "99.99"))

	want := decimal.RequireFromString("2698.99")
	if !c.Subtotal().Equal(want) {
		t.Fatalf("expected subtotal %s, got %s", want, c.Subtotal())
	}
	if c.ItemCount() != 3 {
		t.Fatalf("expected 3 units, got %d", c.ItemCount())
	}
	if !New("empty").Subtotal().IsZero() {
		t.Fatal("expected zero subtotal for empty cart")
	}
}

func TestStoreIDsFirstSeenOrder(t *testing.T) {
	c := New("s1")
	c.AddItem(line(1, 30, "1"))
	c.AddItem(line(2, 10, "1"))
	c.AddItem(line(3, 30, "1"))
	c.AddItem(line(4, 20, "1"))

	got := c.StoreIDs()
	want := []int64{30, 10, 20}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestLineItemsProjection(t *testing.T) {
	c := New("s1")
	c.AddItem(line(7, 3, "250"))
	items := c.LineItems()
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	item := items[0]
	if item.OfferID != 7 || item.StoreID != 3 || item.Quantity != 1 || !item.UnitPrice.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("unexpected item %+v", item)
	}
}
