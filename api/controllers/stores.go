package controllers

import (
	"net/http"

	"github.com/angelmondragon/voltmart-backend/api/responses"
	"github.com/angelmondragon/voltmart-backend/api/validators"
	"github.com/angelmondragon/voltmart-backend/internal/stores"
	pkgerrors "github.com/angelmondragon/voltmart-backend/pkg/errors"
	"github.com/angelmondragon/voltmart-backend/pkg/logger"
)

type storeCreateRequest struct {
	Name               string   `json:"name" validate:"required,max=120"`
	Slug               string   `json:"slug" validate:"omitempty,max=120"`
	Address            string   `json:"address" validate:"required,max=500"`
	Phone              *string  `json:"phone" validate:"omitempty,phone"`
	PlaceID            *string  `json:"place_id" validate:"omitempty,max=255"`
	Latitude           *float64 `json:"latitude"`
	Longitude          *float64 `json:"longitude"`
	FallbackDistanceKm *float64 `json:"fallback_distance_km" validate:"omitempty,gte=0"`
	DeliveryETAMinutes *int     `json:"delivery_eta_minutes" validate:"omitempty,gt=0"`
	IsActive           *bool    `json:"is_active"`
}

type storeUpdateRequest struct {
	Name               *string  `json:"name" validate:"omitempty,max=120"`
	Address            *string  `json:"address" validate:"omitempty,max=500"`
	Phone              *string  `json:"phone" validate:"omitempty,phone"`
	PlaceID            *string  `json:"place_id" validate:"omitempty,max=255"`
	Latitude           *float64 `json:"latitude"`
	Longitude          *float64 `json:"longitude"`
	FallbackDistanceKm *float64 `json:"fallback_distance_km" validate:"omitempty,gte=0"`
	DeliveryETAMinutes *int     `json:"delivery_eta_minutes" validate:"omitempty,gt=0"`
	IsActive           *bool    `json:"is_active"`
}

// StoreList returns every active store.
func StoreList(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// StoreDetail returns one store.
func StoreDetail(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		id, err := validators.ParsePathID(r, "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, store)
	}
}

// AdminStoreCreate registers a new store.
func AdminStoreCreate(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		var payload storeCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.Create(r.Context(), stores.CreateStoreInput{
			Name:               payload.Name,
			Slug:               payload.Slug,
			Address:            payload.Address,
			Phone:              payload.Phone,
			PlaceID:            payload.PlaceID,
			Latitude:           payload.Latitude,
			Longitude:          payload.Longitude,
			FallbackDistanceKm: payload.FallbackDistanceKm,
			DeliveryETAMinutes: payload.DeliveryETAMinutes,
			IsActive:           payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, store)
	}
}

// AdminStoreUpdate patches the supplied store fields.
func AdminStoreUpdate(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		id, err := validators.ParsePathID(r, "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload storeUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.Update(r.Context(), id, stores.UpdateStoreInput{
			Name:               payload.Name,
			Address:            payload.Address,
			Phone:              payload.Phone,
			PlaceID:            payload.PlaceID,
			Latitude:           payload.Latitude,
			Longitude:          payload.Longitude,
			FallbackDistanceKm: payload.FallbackDistanceKm,
			DeliveryETAMinutes: payload.DeliveryETAMinutes,
			IsActive:           payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, store)
	}
}
