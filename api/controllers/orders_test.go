package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/arcoffee/arcoffee-backend/internal/orders"
	"github.com/arcoffee/arcoffee-backend/pkg/db/models"
	"github.com/arcoffee/arcoffee-backend/pkg/enums"
	pkgerrors "github.com/arcoffee/arcoffee-backend/pkg/errors"
	"github.com/arcoffee/arcoffee-backend/pkg/logger"
	"github.com/arcoffee/arcoffee-backend/pkg/pagination"
	"github.com/arcoffee/arcoffee-backend/pkg/types"
)

type testOrdersService struct {
	submitFn     func(ctx context.Context, input orders.SubmitOrderInput) (*models.Order, error)
	trackFn      func(ctx context.Context, orderNumber string) (*models.Order, error)
	listFn       func(ctx context.Context, params pagination.Params, filters orders.ListFilters) (*orders.OrderList, error)
	transitionFn func(ctx context.Context, orderID uuid.UUID, target enums.OrderStatus) (*models.Order, error)
}

func (s *testOrdersService) Submit(ctx context.Context, input orders.SubmitOrderInput) (*models.Order, error) {
	if s.submitFn != nil {
		return s.submitFn(ctx, input)
	}
	return nil, nil
}

func (s *testOrdersService) Track(ctx context.Context, orderNumber string) (*models.Order, error) {
	if s.trackFn != nil {
		return s.trackFn(ctx, orderNumber)
	}
	return nil, nil
}

func (s *testOrdersService) List(ctx context.Context, params pagination.Params, filters orders.ListFilters) (*orders.OrderList, error) {
	if s.listFn != nil {
		return s.listFn(ctx, params, filters)
	}
	return &orders.OrderList{}, nil
}

func (s *testOrdersService) Transition(ctx context.Context, orderID uuid.UUID, target enums.OrderStatus) (*models.Order, error) {
	if s.transitionFn != nil {
		return s.transitionFn(ctx, orderID, target)
	}
	return nil, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func sampleOrder() *models.Order {
	notes := "less ice please"
	return &models.Order{
		ID:            uuid.New(),
		OrderNumber:   "ARC-M1X2Y3Z",
		CustomerName:  "Budi Santoso",
		CustomerPhone: "081234567890",
		TotalPrice:    87000,
		Status:        enums.OrderStatusPending,
		Items: []models.OrderItem{
			{
				ID:           uuid.New(),
				ProductName:  "Kopi Susu",
				ProductPrice: 15000,
				Quantity:     1,
				Subtotal:     15000,
				Notes:        &notes,
			},
		},
	}
}

func TestSubmitOrderSuccess(t *testing.T) {
	var got orders.SubmitOrderInput
	svc := &testOrdersService{
		submitFn: func(ctx context.Context, input orders.SubmitOrderInput) (*models.Order, error) {
			got = input
			return sampleOrder(), nil
		},
	}

	body := `{
		"customerName": "Budi Santoso",
		"customerPhone": "081234567890",
		"items": [
			{"productName": "Kopi Susu", "productPrice": 15000, "quantity": 1, "subtotal": 15000}
		],
		"totalPrice": 15000
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	resp := httptest.NewRecorder()

	SubmitOrder(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	if got.CustomerName != "Budi Santoso" {
		t.Fatalf("payload not forwarded, got %+v", got)
	}

	var envelope types.SuccessEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	data := envelope.Data.(map[string]any)
	if data["orderNumber"] != "ARC-M1X2Y3Z" {
		t.Fatalf("unexpected order number %v", data["orderNumber"])
	}
	if data["statusLabel"] != "Menunggu" {
		t.Fatalf("unexpected status label %v", data["statusLabel"])
	}
}

func TestSubmitOrderRejectsMalformedBody(t *testing.T) {
	svc := &testOrdersService{
		submitFn: func(ctx context.Context, input orders.SubmitOrderInput) (*models.Order, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{"customerName": }`))
	resp := httptest.NewRecorder()

	SubmitOrder(svc, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestSubmitOrderRejectsMissingFields(t *testing.T) {
	svc := &testOrdersService{
		submitFn: func(ctx context.Context, input orders.SubmitOrderInput) (*models.Order, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{"customerPhone": "081234567890"}`))
	resp := httptest.NewRecorder()

	SubmitOrder(svc, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestTrackOrderSuccess(t *testing.T) {
	svc := &testOrdersService{
		trackFn: func(ctx context.Context, orderNumber string) (*models.Order, error) {
			if orderNumber != "ARC-M1X2Y3Z" {
				t.Fatalf("unexpected order number %q", orderNumber)
			}
			return sampleOrder(), nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/ARC-M1X2Y3Z", nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("orderNumber", "ARC-M1X2Y3Z")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	resp := httptest.NewRecorder()

	TrackOrder(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestTrackOrderNotFound(t *testing.T) {
	svc := &testOrdersService{
		trackFn: func(ctx context.Context, orderNumber string) (*models.Order, error) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/ARC-UNKNOWN", nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("orderNumber", "ARC-UNKNOWN")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	resp := httptest.NewRecorder()

	TrackOrder(svc, testLogger())(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
