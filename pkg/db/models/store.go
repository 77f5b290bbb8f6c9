package models

import "time"

// Store is a physical shop that fulfils deliveries from its own stock.
type Store struct {
	ID                 int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name               string    `gorm:"column:name;not null"`
	Slug               string    `gorm:"column:slug;not null;uniqueIndex"`
	Address            string    `gorm:"column:address;not null"`
	Phone              *string   `gorm:"column:phone"`
	PlaceID            *string   `gorm:"column:place_id"`
	Latitude           *float64  `gorm:"column:latitude"`
	Longitude          *float64  `gorm:"column:longitude"`
	FallbackDistanceKm *float64  `gorm:"column:fallback_distance_km"`
	DeliveryETAMinutes int       `gorm:"column:delivery_eta_minutes;not null"`
	IsActive           bool      `gorm:"column:is_active;not null"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
