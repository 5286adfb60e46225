package catalog

import (
	"github.com/google/uuid"

	"github.com/arcoffee/arcoffee-backend/pkg/db/models"
	"github.com/arcoffee/arcoffee-backend/pkg/enums"
)

// MenuSection is one storefront menu block: a category plus its available
// products, options preloaded.
type MenuSection struct {
	Category models.Category  `json:"category"`
	Products []models.Product `json:"products"`
}

// OptionGroupView lists the options of one customization group.
type OptionGroupView struct {
	Group     enums.OptionGroup `json:"group"`
	Exclusive bool              `json:"exclusive"`
	Options   []models.Option   `json:"options"`
}

// CreateCategoryInput holds the validated payload to create a category.
type CreateCategoryInput struct {
	Name        string  `json:"name" validate:"required,min=2"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
}

// CreateProductInput holds the validated payload to create a menu product.
type CreateProductInput struct {
	CategoryID  uuid.UUID   `json:"categoryId" validate:"required"`
	Name        string      `json:"name" validate:"required,min=2"`
	Description *string     `json:"description,omitempty"`
	Price       int         `json:"price" validate:"min=0"`
	ImageURL    *string     `json:"imageUrl,omitempty"`
	IsAvailable bool        `json:"isAvailable"`
	OptionIDs   []uuid.UUID `json:"optionIds,omitempty"`
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	CategoryID  *uuid.UUID   `json:"categoryId,omitempty"`
	Name        *string      `json:"name,omitempty" validate:"omitempty,min=2"`
	Description *string      `json:"description,omitempty"`
	Price       *int         `json:"price,omitempty" validate:"omitempty,min=0"`
	ImageURL    *string      `json:"imageUrl,omitempty"`
	IsAvailable *bool        `json:"isAvailable,omitempty"`
	OptionIDs   *[]uuid.UUID `json:"optionIds,omitempty"`
}

// CreateOptionInput holds the validated payload to create an option.
type CreateOptionInput struct {
	Group      string `json:"group" validate:"required"`
	Name       string `json:"name" validate:"required"`
	ExtraPrice int    `json:"extraPrice" validate:"min=0"`
}

// UpdateOptionInput holds optional mutation values for an option.
type UpdateOptionInput struct {
	Name       *string `json:"name,omitempty"`
	ExtraPrice *int    `json:"extraPrice,omitempty" validate:"omitempty,min=0"`
}
