package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/arcoffee/arcoffee-backend/api/responses"
	"github.com/arcoffee/arcoffee-backend/api/validators"
	"github.com/arcoffee/arcoffee-backend/internal/orders"
	"github.com/arcoffee/arcoffee-backend/pkg/db/models"
	pkgerrors "github.com/arcoffee/arcoffee-backend/pkg/errors"
	"github.com/arcoffee/arcoffee-backend/pkg/logger"
)

// SubmitOrder handles the storefront checkout.
func SubmitOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		var payload orders.SubmitOrderInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Submit(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newOrderResponse(order))
	}
}

// TrackOrder returns one order by its customer-facing number.
func TrackOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		orderNumber := chi.URLParam(r, "orderNumber")
		order, err := svc.Track(r.Context(), orderNumber)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newOrderResponse(order))
	}
}

type orderItemOptionResponse struct {
	OptionID   *uuid.UUID `json:"optionId,omitempty"`
	Name       string     `json:"name"`
	ExtraPrice int        `json:"extraPrice"`
}

type orderItemResponse struct {
	ID           uuid.UUID                 `json:"id"`
	ProductID    *uuid.UUID                `json:"productId,omitempty"`
	ProductName  string                    `json:"productName"`
	ProductPrice int                       `json:"productPrice"`
	Quantity     int                       `json:"quantity"`
	Subtotal     int                       `json:"subtotal"`
	Notes        *string                   `json:"notes,omitempty"`
	Options      []orderItemOptionResponse `json:"options,omitempty"`
}

type orderResponse struct {
	ID            uuid.UUID           `json:"id"`
	OrderNumber   string              `json:"orderNumber"`
	CustomerName  string              `json:"customerName"`
	CustomerPhone string              `json:"customerPhone"`
	Notes         *string             `json:"notes,omitempty"`
	TotalPrice    int                 `json:"totalPrice"`
	Status        string              `json:"status"`
	StatusLabel   string              `json:"statusLabel"`
	Items         []orderItemResponse `json:"items"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

func newOrderResponse(order *models.Order) orderResponse {
	if order == nil {
		return orderResponse{}
	}

	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		options := make([]orderItemOptionResponse, 0, len(item.Options))
		for _, opt := range item.Options {
			options = append(options, orderItemOptionResponse{
				OptionID:   opt.OptionID,
				Name:       opt.OptionName,
				ExtraPrice: opt.ExtraPrice,
			})
		}
		items = append(items, orderItemResponse{
			ID:           item.ID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductPrice: item.ProductPrice,
			Quantity:     item.Quantity,
			Subtotal:     item.Subtotal,
			Notes:        item.Notes,
			Options:      options,
		})
	}

	return orderResponse{
		ID:            order.ID,
		OrderNumber:   order.OrderNumber,
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		Notes:         order.Notes,
		TotalPrice:    order.TotalPrice,
		Status:        string(order.Status),
		StatusLabel:   order.Status.Label(),
		Items:         items,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}
