package stores

import (
	"time"

	"github.com/angelmondragon/voltmart-backend/internal/delivery"
	"github.com/angelmondragon/voltmart-backend/pkg/db/models"
	"github.com/angelmondragon/voltmart-backend/pkg/geo"
)

// StoreDTO exposes store data in API responses.
type StoreDTO struct {
	ID                 int64      `json:"id"`
	Name               string     `json:"name"`
	Slug               string     `json:"slug"`
	Address            string     `json:"address"`
	Phone              *string    `json:"phone,omitempty"`
	Location           *geo.Point `json:"location,omitempty"`
	FallbackDistanceKm *float64   `json:"fallback_distance_km,omitempty"`
	DeliveryETAMinutes int        `json:"delivery_eta_minutes"`
	IsActive           bool       `json:"is_active"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// CreateStoreInput holds creation-time data for a new store.
type CreateStoreInput struct {
	Name               string
	Slug               string
	Address            string
	Phone              *string
	PlaceID            *string
	Latitude           *float64
	Longitude          *float64
	FallbackDistanceKm *float64
	DeliveryETAMinutes *int
	IsActive           *bool
}

// UpdateStoreInput captures the mutable store fields; nil means unchanged.
type UpdateStoreInput struct {
	Name               *string
	Address            *string
	Phone              *string
	PlaceID            *string
	Latitude           *float64
	Longitude          *float64
	FallbackDistanceKm *float64
	DeliveryETAMinutes *int
	IsActive           *bool
}

// FromModel maps the persisted store into a DTO.
func FromModel(m *models.Store) *StoreDTO {
	if m == nil {
		return nil
	}
	dto := &StoreDTO{
		ID:                 m.ID,
		Name:               m.Name,
		Slug:               m.Slug,
		Address:            m.Address,
		Phone:              m.Phone,
		FallbackDistanceKm: m.FallbackDistanceKm,
		DeliveryETAMinutes: m.DeliveryETAMinutes,
		IsActive:           m.IsActive,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
	if m.Latitude != nil && m.Longitude != nil {
		dto.Location = &geo.Point{Lat: *m.Latitude, Lng: *m.Longitude}
	}
	return dto
}

// LocationFromModel projects the store onto the fields the delivery
// calculator reads.
func LocationFromModel(m models.Store) delivery.StoreLocation {
	return delivery.StoreLocation{
		StoreID:            m.ID,
		Lat:                m.Latitude,
		Lng:                m.Longitude,
		FallbackDistanceKm: m.FallbackDistanceKm,
	}
}
