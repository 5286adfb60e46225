package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/arcoffee/arcoffee-backend/pkg/db/models"
	"github.com/arcoffee/arcoffee-backend/pkg/enums"
)

// SubmitOrderOption is the snapshot of a selected option sent at checkout.
type SubmitOrderOption struct {
	OptionID   *uuid.UUID `json:"optionId,omitempty"`
	OptionName string     `json:"optionName" validate:"required"`
	ExtraPrice int        `json:"extraPrice" validate:"min=0"`
}

// SubmitOrderItem is one cart line in a checkout submission. Name and prices
// travel with the payload so the order keeps displaying correctly even after
// the catalog product changes or disappears.
type SubmitOrderItem struct {
	ProductID    *uuid.UUID          `json:"productId,omitempty"`
	ProductName  string              `json:"productName" validate:"required"`
	ProductPrice int                 `json:"productPrice" validate:"min=0"`
	Quantity     int                 `json:"quantity" validate:"min=1"`
	Subtotal     int                 `json:"subtotal" validate:"min=0"`
	Notes        *string             `json:"notes,omitempty"`
	Options      []SubmitOrderOption `json:"options,omitempty" validate:"omitempty,dive"`
}

func (i SubmitOrderItem) optionPrices() []int {
	if len(i.Options) == 0 {
		return nil
	}
	prices := make([]int, 0, len(i.Options))
	for _, opt := range i.Options {
		prices = append(prices, opt.ExtraPrice)
	}
	return prices
}

// SubmitOrderInput is the checkout payload. Client-side subtotal and total
// are accepted but never trusted; the service recomputes both.
type SubmitOrderInput struct {
	CustomerName  string            `json:"customerName" validate:"required,min=3"`
	CustomerPhone string            `json:"customerPhone" validate:"required,min=10"`
	Notes         *string           `json:"notes,omitempty"`
	Items         []SubmitOrderItem `json:"items" validate:"required,min=1,dive"`
	TotalPrice    int               `json:"totalPrice" validate:"min=0"`
}

// ListFilters describe the inputs supported by the admin orders list.
type ListFilters struct {
	Status   *enums.OrderStatus
	Query    string
	DateFrom *time.Time
	DateTo   *time.Time
}

// OrderList wraps a page of orders plus the next page cursor.
type OrderList struct {
	Orders     []models.Order `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}
