package models

import (
	"time"

	"github.com/google/uuid"
)

// Setting is the storefront settings singleton; exactly one row exists.
type Setting struct {
	ID                 uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreName          string    `gorm:"column:store_name;not null"`
	StoreTagline       string    `gorm:"column:store_tagline;not null"`
	StoreDescription   string    `gorm:"column:store_description;not null"`
	Phone              string    `gorm:"column:phone;not null"`
	Email              string    `gorm:"column:email;not null"`
	Address            string    `gorm:"column:address;not null"`
	City               string    `gorm:"column:city;not null"`
	PostalCode         string    `gorm:"column:postal_code;not null"`
	OperatingHoursText string    `gorm:"column:operating_hours_text;not null"`
	InstagramURL       *string   `gorm:"column:instagram_url"`
	FacebookURL        *string   `gorm:"column:facebook_url"`
	WhatsappNumber     *string   `gorm:"column:whatsapp_number"`
	GoogleMapsURL      *string   `gorm:"column:google_maps_url"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
