package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/voltmart-backend/api/responses"
	"github.com/angelmondragon/voltmart-backend/api/validators"
	productsvc "github.com/angelmondragon/voltmart-backend/internal/products"
	pkgerrors "github.com/angelmondragon/voltmart-backend/pkg/errors"
	"github.com/angelmondragon/voltmart-backend/pkg/logger"
	"github.com/angelmondragon/voltmart-backend/pkg/pagination"
)

const maxSearchLength = 100

type createProductRequest struct {
	Name        string            `json:"name" validate:"required,max=200"`
	Slug        string            `json:"slug" validate:"omitempty,max=200"`
	Brand       string            `json:"brand" validate:"required,max=80"`
	Category    string            `json:"category" validate:"required"`
	Description *string           `json:"description" validate:"omitempty,max=5000"`
	ImageURL    *string           `json:"image_url" validate:"omitempty,url"`
	Specs       map[string]string `json:"specs"`
}

type updateProductRequest struct {
	Name        *string           `json:"name" validate:"omitempty,max=200"`
	Brand       *string           `json:"brand" validate:"omitempty,max=80"`
	Category    *string           `json:"category"`
	Description *string           `json:"description" validate:"omitempty,max=5000"`
	ImageURL    *string           `json:"image_url" validate:"omitempty,url"`
	Specs       map[string]string `json:"specs"`
}

type createOfferRequest struct {
	ProductID          int64           `json:"product_id" validate:"required,gt=0"`
	StoreID            int64           `json:"store_id" validate:"required,gt=0"`
	Price              decimal.Decimal `json:"price"`
	Stock              int             `json:"stock" validate:"gte=0"`
	DeliveryETAMinutes *int            `json:"delivery_eta_minutes" validate:"omitempty,gt=0"`
	IsActive           *bool           `json:"is_active"`
}

type updateOfferRequest struct {
	Price              *decimal.Decimal `json:"price"`
	Stock              *int             `json:"stock" validate:"omitempty,gte=0"`
	DeliveryETAMinutes *int             `json:"delivery_eta_minutes" validate:"omitempty,gt=0"`
	IsActive           *bool            `json:"is_active"`
}

// ProductList browses the catalog with optional filters and cursor paging.
func ProductList(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		input, err := parseProductListQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListProducts(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func parseProductListQuery(r *http.Request) (productsvc.ListProductsInput, error) {
	q := r.URL.Query()

	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return productsvc.ListProductsInput{}, err
	}
	category, err := productsvc.ParseCategory(q.Get("category"))
	if err != nil {
		return productsvc.ListProductsInput{}, err
	}
	minPrice, err := parseQueryDecimal(q.Get("min_price"), "min_price")
	if err != nil {
		return productsvc.ListProductsInput{}, err
	}
	maxPrice, err := parseQueryDecimal(q.Get("max_price"), "max_price")
	if err != nil {
		return productsvc.ListProductsInput{}, err
	}

	return productsvc.ListProductsInput{
		Filters: productsvc.ProductListFilters{
			Category: category,
			Brand:    validators.SanitizeString(q.Get("brand"), maxSearchLength),
			Query:    validators.SanitizeString(q.Get("q"), maxSearchLength),
			MinPrice: minPrice,
			MaxPrice: maxPrice,
		},
		Pagination: pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(q.Get("cursor")),
		},
	}, nil
}

func parseQueryDecimal(raw, field string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a decimal").WithDetails(map[string]any{"field": field})
	}
	return &value, nil
}

// ProductDetail returns a product with its offers, cheapest first.
func ProductDetail(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParsePathID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// AdminProductCreate adds a product to the catalog.
func AdminProductCreate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		category, err := productsvc.ParseCategory(payload.Category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), productsvc.CreateProductInput{
			Name:        payload.Name,
			Slug:        payload.Slug,
			Brand:       payload.Brand,
			Category:    *category,
			Description: payload.Description,
			ImageURL:    payload.ImageURL,
			Specs:       payload.Specs,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// AdminProductUpdate patches the supplied product fields.
func AdminProductUpdate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParsePathID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := productsvc.UpdateProductInput{
			Name:        payload.Name,
			Brand:       payload.Brand,
			Description: payload.Description,
			ImageURL:    payload.ImageURL,
			Specs:       payload.Specs,
		}
		if payload.Category != nil {
			category, err := productsvc.ParseCategory(*payload.Category)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.Category = category
		}

		product, err := svc.UpdateProduct(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// AdminOfferCreate lists a product at a store.
func AdminOfferCreate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload createOfferRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		offer, err := svc.CreateOffer(r.Context(), productsvc.CreateOfferInput{
			ProductID:          payload.ProductID,
			StoreID:            payload.StoreID,
			Price:              payload.Price,
			Stock:              payload.Stock,
			DeliveryETAMinutes: payload.DeliveryETAMinutes,
			IsActive:           payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, offer)
	}
}

// AdminOfferUpdate adjusts an offer's price, stock or availability.
func AdminOfferUpdate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParsePathID(r, "offerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateOfferRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		offer, err := svc.UpdateOffer(r.Context(), id, productsvc.UpdateOfferInput{
			Price:              payload.Price,
			Stock:              payload.Stock,
			DeliveryETAMinutes: payload.DeliveryETAMinutes,
			IsActive:           payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, offer)
	}
}
