package cart

import (
	"math"
	"net/http"

	"github.com/angelmondragon/voltmart-backend/api/middleware"
	"github.com/angelmondragon/voltmart-backend/api/validators"
	pkgerrors "github.com/angelmondragon/voltmart-backend/pkg/errors"
	"github.com/angelmondragon/voltmart-backend/pkg/geo"
)

type addItemRequest struct {
	OfferID  int64 `json:"offer_id" validate:"required,gt=0"`
	Quantity int   `json:"quantity" validate:"gte=0,lte=99"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0,lte=99"`
}

func sessionFromRequest(r *http.Request) (string, error) {
	sessionID := middleware.CartSessionFromContext(r.Context())
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "cart session is required")
	}
	return sessionID, nil
}

// locationFromQuery reads lat and lng; both must be present or both absent.
func locationFromQuery(r *http.Request) (*geo.Point, error) {
	lat, err := validators.ParseQueryFloat(r, "lat")
	if err != nil {
		return nil, err
	}
	lng, err := validators.ParseQueryFloat(r, "lng")
	if err != nil {
		return nil, err
	}
	if lat == nil && lng == nil {
		return nil, nil
	}
	if lat == nil || lng == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "lat and lng must be provided together")
	}
	if math.Abs(*lat) > 90 || math.Abs(*lng) > 180 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coordinates out of range").WithDetails(map[string]any{"lat": *lat, "lng": *lng})
	}
	return &geo.Point{Lat: *lat, Lng: *lng}, nil
}
