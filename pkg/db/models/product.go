package models

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a menu item. Price is the base price in whole rupiah;
// selected options add their extra price on top.
type Product struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID  uuid.UUID `gorm:"column:category_id;type:uuid;not null"`
	Name        string    `gorm:"column:name;not null"`
	Slug        string    `gorm:"column:slug;not null;uniqueIndex:products_slug_key"`
	Description *string   `gorm:"column:description"`
	Price       int       `gorm:"column:price;not null"`
	ImageURL    *string   `gorm:"column:image_url"`
	IsAvailable bool      `gorm:"column:is_available;not null;default:true"`
	Options     []Option  `gorm:"many2many:product_options;"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
