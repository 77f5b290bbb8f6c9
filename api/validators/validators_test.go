package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/angelmondragon/voltmart-backend/pkg/errors"
	"github.com/go-chi/chi/v5"
)

type addItemBody struct {
	OfferID  int64 `json:"offer_id" validate:"required,gt=0"`
	Quantity int   `json:"quantity" validate:"omitempty,min=1,max=99"`
}

func TestDecodeJSONBodyValidates(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"quantity":500}`))
	var body addItemBody
	err := DecodeJSONBody(r, &body)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok || details["offer_id"] != "is required" || details["quantity"] != "must be at most 99" {
		t.Fatalf("unexpected details %+v", typed.Details())
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"offer_id":1,"price":"1"}`))
	var body addItemBody
	if err := DecodeJSONBody(r, &body); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

type contactBody struct {
	Phone string `json:"phone" validate:"required,phone"`
}

func TestDecodeJSONBodyPhone(t *testing.T) {
	cases := map[string]bool{
		`{"phone":"+91 98000 00000"}`: true,
		`{"phone":"080 4123-4567"}`:   true,
		`{"phone":"call me"}`:         false,
		`{"phone":"12"}`:              false,
	}
	for payload, ok := range cases {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
		var body contactBody
		err := DecodeJSONBody(r, &body)
		if ok && err != nil {
			t.Fatalf("%s: unexpected error %v", payload, err)
		}
		if !ok && !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
			t.Fatalf("%s: expected validation error, got %v", payload, err)
		}
	}
}

func TestDecodeJSONBodyRejectsEmptyAndTrailing(t *testing.T) {
	for _, payload := range []string{"", `{"offer_id":1}{"offer_id":2}`, `{"offer_id":"one"}`} {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
		var body addItemBody
		if err := DecodeJSONBody(r, &body); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
			t.Fatalf("%q: expected validation error, got %v", payload, err)
		}
	}
}

func TestDecodeJSONBodyAccepts(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"offer_id":3,"quantity":2}`))
	var body addItemBody
	if err := DecodeJSONBody(r, &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.OfferID != 3 || body.Quantity != 2 {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestParseQueryFloat(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?lat=12.97&lng=abc", nil)
	lat, err := ParseQueryFloat(r, "lat")
	if err != nil || lat == nil || *lat != 12.97 {
		t.Fatalf("unexpected lat %v %v", lat, err)
	}
	if _, err := ParseQueryFloat(r, "lng"); err == nil {
		t.Fatal("expected error for non-numeric lng")
	}
	if missing, err := ParseQueryFloat(r, "zoom"); err != nil || missing != nil {
		t.Fatalf("expected nil for missing param, got %v %v", missing, err)
	}
}

func TestParsePathID(t *testing.T) {
	cases := map[string]bool{"42": true, "0": false, "-3": false, "abc": false}
	for raw, ok := range cases {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("storeId", raw)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

		id, err := ParsePathID(r, "storeId")
		if ok && (err != nil || id != 42) {
			t.Fatalf("%s: unexpected %d %v", raw, id, err)
		}
		if !ok && err == nil {
			t.Fatalf("%s: expected error", raw)
		}
	}
}

func TestSanitizeString(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{in: "  pixel   9  pro ", max: 100, want: "pixel 9 pro"},
		{in: "air\x00pods\tmax", max: 100, want: "airpods max"},
		{in: "कैमरा लेंस", max: 5, want: "कैमरा"},
		{in: "", max: 10, want: ""},
	}
	for _, tc := range cases {
		if got := SanitizeString(tc.in, tc.max); got != tc.want {
			t.Fatalf("SanitizeString(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}
