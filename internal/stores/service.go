package stores

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/angelmondragon/voltmart-backend/internal/delivery"
	"github.com/angelmondragon/voltmart-backend/pkg/db"
	"github.com/angelmondragon/voltmart-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/voltmart-backend/pkg/errors"
	"github.com/angelmondragon/voltmart-backend/pkg/maps"
	"github.com/angelmondragon/voltmart-backend/pkg/slug"
)

const defaultDeliveryETAMinutes = 60

type storeRepository interface {
	Create(ctx context.Context, store *models.Store) error
	FindByID(ctx context.Context, id int64) (*models.Store, error)
	FindByIDs(ctx context.Context, ids []int64) ([]models.Store, error)
	ListActive(ctx context.Context) ([]models.Store, error)
	Update(ctx context.Context, store *models.Store) error
}

// Service exposes store operations.
type Service interface {
	List(ctx context.Context) ([]StoreDTO, error)
	Get(ctx context.Context, id int64) (*StoreDTO, error)
	Create(ctx context.Context, input CreateStoreInput) (*StoreDTO, error)
	Update(ctx context.Context, id int64, input UpdateStoreInput) (*StoreDTO, error)
	Locations(ctx context.Context, ids []int64) (map[int64]delivery.StoreLocation, error)
}

type service struct {
	repo     storeRepository
	geocoder maps.Geocoder
}

// NewService builds a store service. The geocoder is optional; without one,
// place IDs are stored but never resolved.
func NewService(repo storeRepository, geocoder maps.Geocoder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	return &service{repo: repo, geocoder: geocoder}, nil
}

func (s *service) List(ctx context.Context) ([]StoreDTO, error) {
	rows, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stores")
	}
	out := make([]StoreDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id int64) (*StoreDTO, error) {
	store, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(store), nil
}

func (s *service) Create(ctx context.Context, input CreateStoreInput) (*StoreDTO, error) {
	name := strings.TrimSpace(input.Name)
	address := strings.TrimSpace(input.Address)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store name is required")
	}
	if address == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store address is required")
	}

	storeSlug := slug.Make(input.Slug)
	if storeSlug == "" {
		storeSlug = slug.Make(name)
	}
	if storeSlug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store slug could not be derived from name")
	}

	store := &models.Store{
		Name:               name,
		Slug:               storeSlug,
		Address:            address,
		Phone:              trimmedOrNil(input.Phone),
		PlaceID:            trimmedOrNil(input.PlaceID),
		Latitude:           input.Latitude,
		Longitude:          input.Longitude,
		FallbackDistanceKm: input.FallbackDistanceKm,
		DeliveryETAMinutes: defaultDeliveryETAMinutes,
		IsActive:           true,
	}
	if input.DeliveryETAMinutes != nil {
		store.DeliveryETAMinutes = *input.DeliveryETAMinutes
	}
	if input.IsActive != nil {
		store.IsActive = *input.IsActive
	}

	if err := s.geocode(ctx, store, input.Latitude == nil && input.Longitude == nil); err != nil {
		return nil, err
	}
	if err := validateStore(store); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, store); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "store slug already exists").
				WithDetails(map[string]any{"slug": storeSlug})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create store")
	}
	return FromModel(store), nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateStoreInput) (*StoreDTO, error) {
	store, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		store.Name = strings.TrimSpace(*input.Name)
		if store.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "store name cannot be empty")
		}
	}
	if input.Address != nil {
		store.Address = strings.TrimSpace(*input.Address)
		if store.Address == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "store address cannot be empty")
		}
	}
	if input.Phone != nil {
		store.Phone = trimmedOrNil(input.Phone)
	}
	if input.Latitude != nil {
		store.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		store.Longitude = input.Longitude
	}
	if input.FallbackDistanceKm != nil {
		store.FallbackDistanceKm = input.FallbackDistanceKm
	}
	if input.DeliveryETAMinutes != nil {
		store.DeliveryETAMinutes = *input.DeliveryETAMinutes
	}
	if input.IsActive != nil {
		store.IsActive = *input.IsActive
	}

	coordsSupplied := input.Latitude != nil || input.Longitude != nil
	placeChanged := input.PlaceID != nil && !sameString(store.PlaceID, input.PlaceID)
	if input.PlaceID != nil {
		store.PlaceID = trimmedOrNil(input.PlaceID)
	}
	if err := s.geocode(ctx, store, placeChanged && !coordsSupplied); err != nil {
		return nil, err
	}
	if err := validateStore(store); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, store); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update store")
	}
	return FromModel(store), nil
}

// Locations returns the delivery view of each requested store that exists.
// Stores missing from the result are priced with the default distance.
func (s *service) Locations(ctx context.Context, ids []int64) (map[int64]delivery.StoreLocation, error) {
	rows, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store locations")
	}
	out := make(map[int64]delivery.StoreLocation, len(rows))
	for _, row := range rows {
		out[row.ID] = LocationFromModel(row)
	}
	return out, nil
}

func (s *service) load(ctx context.Context, id int64) (*models.Store, error) {
	store, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	return store, nil
}

func (s *service) geocode(ctx context.Context, store *models.Store, wanted bool) error {
	if !wanted || s.geocoder == nil || store.PlaceID == nil {
		return nil
	}
	place, err := s.geocoder.ResolvePlace(ctx, *store.PlaceID)
	if err != nil {
		if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, "place ID could not be resolved").
				WithDetails(map[string]any{"place_id": *store.PlaceID})
		}
		return err
	}
	lat, lng := place.Location.Lat, place.Location.Lng
	store.Latitude = &lat
	store.Longitude = &lng
	return nil
}

func validateStore(store *models.Store) error {
	var problems []string
	if (store.Latitude == nil) != (store.Longitude == nil) {
		problems = append(problems, "latitude and longitude must be provided together")
	}
	if store.Latitude != nil && (math.IsNaN(*store.Latitude) || *store.Latitude < -90 || *store.Latitude > 90) {
		problems = append(problems, "latitude must be between -90 and 90")
	}
	if store.Longitude != nil && (math.IsNaN(*store.Longitude) || *store.Longitude < -180 || *store.Longitude > 180) {
		problems = append(problems, "longitude must be between -180 and 180")
	}
	if store.FallbackDistanceKm != nil && (math.IsNaN(*store.FallbackDistanceKm) || math.IsInf(*store.FallbackDistanceKm, 0) || *store.FallbackDistanceKm < 0) {
		problems = append(problems, "fallback distance must be a non-negative number")
	}
	if store.DeliveryETAMinutes <= 0 {
		problems = append(problems, "delivery ETA must be positive")
	}
	if len(problems) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid store").
			WithDetails(map[string]any{"problems": problems})
	}
	return nil
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func sameString(a, b *string) bool {
	switch {
	case a == nil && b == nil:
		return true
	case a == nil || b == nil:
		return false
	default:
		return strings.TrimSpace(*a) == strings.TrimSpace(*b)
	}
}
