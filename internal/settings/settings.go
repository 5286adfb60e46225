package settings

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arcoffee/arcoffee-backend/pkg/db/models"
	pkgerrors "github.com/arcoffee/arcoffee-backend/pkg/errors"
)

// Defaults returned when the settings row has not been seeded yet, so the
// storefront always has something to render.
var defaults = models.Setting{
	StoreName:          "ARCoffee",
	StoreTagline:       "Kopi enak, harga bersahabat",
	StoreDescription:   "Kedai kopi dengan biji pilihan dan menu signature gula aren.",
	Phone:              "081234567890",
	Email:              "halo@arcoffee.id",
	Address:            "Jl. Melati No. 12",
	City:               "Jakarta",
	PostalCode:         "12345",
	OperatingHoursText: "Senin-Minggu 08.00-22.00",
}

// UpdateInput holds optional mutation values for the storefront settings.
type UpdateInput struct {
	StoreName          *string `json:"storeName,omitempty" validate:"omitempty,min=2"`
	StoreTagline       *string `json:"storeTagline,omitempty"`
	StoreDescription   *string `json:"storeDescription,omitempty"`
	Phone              *string `json:"phone,omitempty"`
	Email              *string `json:"email,omitempty" validate:"omitempty,email"`
	Address            *string `json:"address,omitempty"`
	City               *string `json:"city,omitempty"`
	PostalCode         *string `json:"postalCode,omitempty"`
	OperatingHoursText *string `json:"operatingHoursText,omitempty"`
	InstagramURL       *string `json:"instagramUrl,omitempty"`
	FacebookURL        *string `json:"facebookUrl,omitempty"`
	WhatsappNumber     *string `json:"whatsappNumber,omitempty"`
	GoogleMapsURL      *string `json:"googleMapsUrl,omitempty"`
}

// Repository provides settings storage operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a settings repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// First returns the singleton settings row.
func (r *Repository) First(ctx context.Context) (*models.Setting, error) {
	var setting models.Setting
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *Repository) Create(ctx context.Context, setting *models.Setting) error {
	return r.db.WithContext(ctx).Create(setting).Error
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Setting{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// Service exposes storefront settings reads and the admin update.
type Service interface {
	Get(ctx context.Context) (*models.Setting, error)
	Update(ctx context.Context, input UpdateInput) (*models.Setting, error)
}

type service struct {
	repo *Repository
}

// NewService constructs a settings service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	return &service{repo: repo}, nil
}

// Get returns the settings row, falling back to the built-in defaults when the
// row does not exist yet.
func (s *service) Get(ctx context.Context) (*models.Setting, error) {
	setting, err := s.repo.First(ctx)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			fallback := defaults
			return &fallback, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load settings")
	}
	return setting, nil
}

// Update applies the provided fields, seeding the row from defaults first when
// none exists.
func (s *service) Update(ctx context.Context, input UpdateInput) (*models.Setting, error) {
	setting, err := s.repo.First(ctx)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load settings")
		}
		seeded := defaults
		seeded.ID = uuid.New()
		if err := s.repo.Create(ctx, &seeded); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed settings")
		}
		setting = &seeded
	}

	updates := map[string]any{}
	setIfPresent(updates, "store_name", input.StoreName, true)
	setIfPresent(updates, "store_tagline", input.StoreTagline, false)
	setIfPresent(updates, "store_description", input.StoreDescription, false)
	setIfPresent(updates, "phone", input.Phone, true)
	setIfPresent(updates, "email", input.Email, true)
	setIfPresent(updates, "address", input.Address, false)
	setIfPresent(updates, "city", input.City, false)
	setIfPresent(updates, "postal_code", input.PostalCode, false)
	setIfPresent(updates, "operating_hours_text", input.OperatingHoursText, false)

	if input.InstagramURL != nil {
		updates["instagram_url"] = nilIfEmpty(*input.InstagramURL)
	}
	if input.FacebookURL != nil {
		updates["facebook_url"] = nilIfEmpty(*input.FacebookURL)
	}
	if input.WhatsappNumber != nil {
		updates["whatsapp_number"] = nilIfEmpty(*input.WhatsappNumber)
	}
	if input.GoogleMapsURL != nil {
		updates["google_maps_url"] = nilIfEmpty(*input.GoogleMapsURL)
	}

	if name, ok := updates["store_name"]; ok {
		if strings.TrimSpace(name.(string)) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "store name cannot be empty")
		}
	}

	if err := s.repo.Update(ctx, setting.ID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update settings")
	}

	updated, err := s.repo.First(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload settings")
	}
	return updated, nil
}

func setIfPresent(updates map[string]any, column string, value *string, trim bool) {
	if value == nil {
		return
	}
	v := *value
	if trim {
		v = strings.TrimSpace(v)
	}
	updates[column] = v
}

func nilIfEmpty(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
