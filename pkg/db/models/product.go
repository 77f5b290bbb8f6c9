package models

import (
	"time"

	"github.com/angelmondragon/voltmart-backend/pkg/enums"
	"github.com/angelmondragon/voltmart-backend/pkg/types"
)

// Product is a catalog entry independent of which stores carry it.
type Product struct {
	ID          int64                 `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string                `gorm:"column:name;not null"`
	Slug        string                `gorm:"column:slug;not null;uniqueIndex"`
	Brand       string                `gorm:"column:brand;not null"`
	Category    enums.ProductCategory `gorm:"column:category;type:text;not null;index"`
	Description *string               `gorm:"column:description"`
	ImageURL    *string               `gorm:"column:image_url"`
	Specs       types.Specs           `gorm:"column:specs;type:text"`
	Offers      []Offer               `gorm:"foreignKey:ProductID"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
