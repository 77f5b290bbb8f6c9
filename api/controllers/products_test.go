package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	productsvc "github.com/angelmondragon/voltmart-backend/internal/products"
	"github.com/angelmondragon/voltmart-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/voltmart-backend/pkg/errors"
	"github.com/angelmondragon/voltmart-backend/pkg/logger"
)

type stubProductService struct {
	listResult  *productsvc.ProductListResult
	product     *productsvc.ProductDTO
	offer       *productsvc.OfferDTO
	err         error
	lastList    productsvc.ListProductsInput
	lastID      int64
	lastCreate  productsvc.CreateProductInput
	lastUpdate  productsvc.UpdateProductInput
	lastOffer   productsvc.CreateOfferInput
	lastOfferUp productsvc.UpdateOfferInput
	calls       int
}

func (s *stubProductService) ListProducts(ctx context.Context, input productsvc.ListProductsInput) (*productsvc.ProductListResult, error) {
	s.calls++
	s.lastList = input
	return s.listResult, s.err
}

func (s *stubProductService) GetProduct(ctx context.Context, id int64) (*productsvc.ProductDTO, error) {
	s.calls++
	s.lastID = id
	return s.product, s.err
}

func (s *stubProductService) GetOffer(ctx context.Context, id int64) (*productsvc.OfferView, error) {
	return nil, s.err
}

func (s *stubProductService) GetOffers(ctx context.Context, ids []int64) (map[int64]productsvc.OfferView, error) {
	return nil, s.err
}

func (s *stubProductService) CreateProduct(ctx context.Context, input productsvc.CreateProductInput) (*productsvc.ProductDTO, error) {
	s.calls++
	s.lastCreate = input
	return s.product, s.err
}

func (s *stubProductService) UpdateProduct(ctx context.Context, id int64, input productsvc.UpdateProductInput) (*productsvc.ProductDTO, error) {
	s.calls++
	s.lastID = id
	s.lastUpdate = input
	return s.product, s.err
}

func (s *stubProductService) CreateOffer(ctx context.Context, input productsvc.CreateOfferInput) (*productsvc.OfferDTO, error) {
	s.calls++
	s.lastOffer = input
	return s.offer, s.err
}

func (s *stubProductService) UpdateOffer(ctx context.Context, id int64, input productsvc.UpdateOfferInput) (*productsvc.OfferDTO, error) {
	s.calls++
	s.lastID = id
	s.lastOfferUp = input
	return s.offer, s.err
}

func TestProductListParsesFilters(t *testing.T) {
	svc := &stubProductService{listResult: &productsvc.ProductListResult{NextCursor: "abc"}}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?category=phones&brand=%20Acme%20&q=pixel&min_price=100&max_price=999.50&limit=10&cursor=xyz", nil)
	rec := httptest.NewRecorder()

	ProductList(svc, logger.Nop()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	filters := svc.lastList.Filters
	if filters.Category == nil || *filters.Category != enums.ProductCategoryPhones {
		t.Fatalf("unexpected category %v", filters.Category)
	}
	if filters.Brand != "Acme" || filters.Query != "pixel" {
		t.Fatalf("unexpected text filters %+v", filters)
	}
	if filters.MinPrice == nil || !filters.MinPrice.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("unexpected min price %v", filters.MinPrice)
	}
	if filters.MaxPrice == nil || !filters.MaxPrice.Equal(decimal.RequireFromString("999.5")) {
		t.Fatalf("unexpected max price %v", filters.MaxPrice)
	}
	if svc.lastList.Pagination.Limit != 10 || svc.lastList.Pagination.Cursor != "xyz" {
		t.Fatalf("unexpected pagination %+v", svc.lastList.Pagination)
	}
}

func TestProductListRejectsBadQuery(t *testing.T) {
	cases := []string{
		"/api/v1/products?category=toasters",
		"/api/v1/products?min_price=cheap",
		"/api/v1/products?limit=0",
		"/api/v1/products?limit=1000",
	}
	for _, target := range cases {
		svc := &stubProductService{}
		rec := httptest.NewRecorder()
		ProductList(svc, logger.Nop()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 got %d", target, rec.Code)
		}
		if svc.calls != 0 {
			t.Fatalf("%s: service should not be called", target)
		}
	}
}

func TestProductDetailNotFound(t *testing.T) {
	svc := &stubProductService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/products/42", nil), "productId", "42")
	rec := httptest.NewRecorder()

	ProductDetail(svc, logger.Nop()).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
	if svc.lastID != 42 {
		t.Fatalf("expected id 42 got %d", svc.lastID)
	}
}

func TestProductDetailRejectsBadID(t *testing.T) {
	svc := &stubProductService{}
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/products/abc", nil), "productId", "abc")
	rec := httptest.NewRecorder()

	ProductDetail(svc, logger.Nop()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if svc.calls != 0 {
		t.Fatal("service should not be called")
	}
}

func TestAdminProductCreate(t *testing.T) {
	svc := &stubProductService{product: &productsvc.ProductDTO{ID: 7, Name: "Pixel 9"}}
	body := `{"name":"Pixel 9","brand":"Google","category":"phones","specs":{"ram":"12GB"}}`
	rec := httptest.NewRecorder()

	AdminProductCreate(svc, logger.Nop()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/v1/products", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastCreate.Category != enums.ProductCategoryPhones || svc.lastCreate.Specs["ram"] != "12GB" {
		t.Fatalf("unexpected input %+v", svc.lastCreate)
	}
}

func TestAdminProductCreateRequiresFields(t *testing.T) {
	svc := &stubProductService{}
	rec := httptest.NewRecorder()

	AdminProductCreate(svc, logger.Nop()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/v1/products", strings.NewReader(`{"name":"Pixel 9"}`)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if svc.calls != 0 {
		t.Fatal("service should not be called")
	}
}

func TestAdminProductUpdateParsesCategory(t *testing.T) {
	svc := &stubProductService{product: &productsvc.ProductDTO{ID: 3}}
	req := withURLParam(httptest.NewRequest(http.MethodPatch, "/api/admin/v1/products/3", strings.NewReader(`{"category":"audio"}`)), "productId", "3")
	rec := httptest.NewRecorder()

	AdminProductUpdate(svc, logger.Nop()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastUpdate.Category == nil || *svc.lastUpdate.Category != enums.ProductCategoryAudio {
		t.Fatalf("unexpected category %v", svc.lastUpdate.Category)
	}
	if svc.lastUpdate.Name != nil {
		t.Fatal("name should be untouched")
	}
}

func TestAdminOfferCreateAcceptsDecimalString(t *testing.T) {
	svc := &stubProductService{offer: &productsvc.OfferDTO{ID: 11, Price: decimal.RequireFromString("1999.99")}}
	body := `{"product_id":3,"store_id":2,"price":"1999.99","stock":5}`
	rec := httptest.NewRecorder()

	AdminOfferCreate(svc, logger.Nop()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/v1/offers", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if !svc.lastOffer.Price.Equal(decimal.RequireFromString("1999.99")) || svc.lastOffer.Stock != 5 {
		t.Fatalf("unexpected offer input %+v", svc.lastOffer)
	}
	var envelope struct {
		Data struct {
			Price string `json:"price"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.Price != "1999.99" {
		t.Fatalf("expected price string got %q", envelope.Data.Price)
	}
}

func TestAdminOfferUpdatePropagatesConflict(t *testing.T) {
	svc := &stubProductService{err: pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")}
	req := withURLParam(httptest.NewRequest(http.MethodPatch, "/api/admin/v1/offers/5", strings.NewReader(`{"price":"-1"}`)), "offerId", "5")
	rec := httptest.NewRecorder()

	AdminOfferUpdate(svc, logger.Nop()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if svc.lastID != 5 || svc.lastOfferUp.Price == nil || !svc.lastOfferUp.Price.Equal(decimal.NewFromInt(-1)) {
		t.Fatalf("unexpected update input %+v", svc.lastOfferUp)
	}
}
