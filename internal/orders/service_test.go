package orders

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/arcoffee/arcoffee-backend/pkg/db/models"
	"github.com/arcoffee/arcoffee-backend/pkg/enums"
	pkgerrors "github.com/arcoffee/arcoffee-backend/pkg/errors"
	"github.com/arcoffee/arcoffee-backend/pkg/logger"
	"github.com/arcoffee/arcoffee-backend/pkg/pagination"
)

type stubOrdersRepo struct {
	orders  map[uuid.UUID]*models.Order
	items   []*models.OrderItem
	options []*models.OrderItemOption

	createOrder      func(ctx context.Context, order *models.Order) error
	createOrderItem  func(ctx context.Context, item *models.OrderItem) error
	createItemOption func(ctx context.Context, option *models.OrderItemOption) error

	statusUpdates int
}

func newStubOrdersRepo() *stubOrdersRepo {
	return &stubOrdersRepo{orders: map[uuid.UUID]*models.Order{}}
}

func (s *stubOrdersRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubOrdersRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	if s.createOrder != nil {
		if err := s.createOrder(ctx, order); err != nil {
			return err
		}
	}
	s.orders[order.ID] = order
	return nil
}

func (s *stubOrdersRepo) CreateOrderItem(ctx context.Context, item *models.OrderItem) error {
	if s.createOrderItem != nil {
		if err := s.createOrderItem(ctx, item); err != nil {
			return err
		}
	}
	s.items = append(s.items, item)
	return nil
}

func (s *stubOrdersRepo) CreateItemOption(ctx context.Context, option *models.OrderItemOption) error {
	if s.createItemOption != nil {
		if err := s.createItemOption(ctx, option); err != nil {
			return err
		}
	}
	s.options = append(s.options, option)
	return nil
}

func (s *stubOrdersRepo) FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	normalized := strings.ToUpper(strings.TrimSpace(orderNumber))
	for _, order := range s.orders {
		if order.OrderNumber == normalized {
			return order, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOrdersRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if order, ok := s.orders[id]; ok {
		return order, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOrdersRepo) List(ctx context.Context, params pagination.Params, filters ListFilters) (*OrderList, error) {
	list := &OrderList{}
	for _, order := range s.orders {
		list.Orders = append(list.Orders, *order)
	}
	return list, nil
}

func (s *stubOrdersRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error {
	order, ok := s.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.Status = status
	s.statusUpdates++
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "orders-test", Output: io.Discard})
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo, NewNumberGenerator("ARC"), nil, testLogger())
	require.NoError(t, err)
	return svc
}

func validSubmitInput() SubmitOrderInput {
	return SubmitOrderInput{
		CustomerName:  "Budi Santoso",
		CustomerPhone: "081234567890",
		Items: []SubmitOrderItem{
			{ProductName: "Kopi Susu", ProductPrice: 15000, Quantity: 1},
			{
				ProductName:  "Es Kopi Gula Aren",
				ProductPrice: 20000,
				Quantity:     3,
				Options: []SubmitOrderOption{
					{OptionName: "Extra Shot", ExtraPrice: 2000},
					{OptionName: "Oat Milk", ExtraPrice: 2000},
				},
			},
		},
	}
}

func TestServiceSubmit(t *testing.T) {
	repo := newStubOrdersRepo()
	svc := newTestService(t, repo)

	order, err := svc.Submit(context.Background(), validSubmitInput())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.OrderNumber, "ARC-"))
	assert.Equal(t, 87000, order.TotalPrice)
	assert.Equal(t, enums.OrderStatusPending, order.Status)
	assert.Equal(t, "Budi Santoso", order.CustomerName)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 15000, order.Items[0].Subtotal)
	assert.Equal(t, 72000, order.Items[1].Subtotal)
	require.Len(t, order.Items[1].Options, 2)

	assert.Len(t, repo.items, 2)
	assert.Len(t, repo.options, 2)

	found, err := svc.Track(context.Background(), order.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)
}

func TestServiceSubmitIgnoresClientTotal(t *testing.T) {
	repo := newStubOrdersRepo()
	svc := newTestService(t, repo)

	input := validSubmitInput()
	input.TotalPrice = 1
	input.Items[0].Subtotal = 99

	order, err := svc.Submit(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 87000, order.TotalPrice)
	assert.Equal(t, 15000, order.Items[0].Subtotal)
}

func TestServiceSubmitValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*SubmitOrderInput)
	}{
		{"short name", func(in *SubmitOrderInput) { in.CustomerName = "Bo" }},
		{"short phone", func(in *SubmitOrderInput) { in.CustomerPhone = "081234567" }},
		{"non numeric phone", func(in *SubmitOrderInput) { in.CustomerPhone = "0812-345-6789" }},
		{"no items", func(in *SubmitOrderInput) { in.Items = nil }},
		{"zero quantity", func(in *SubmitOrderInput) { in.Items[0].Quantity = 0 }},
		{"negative price", func(in *SubmitOrderInput) { in.Items[0].ProductPrice = -1 }},
		{"negative option price", func(in *SubmitOrderInput) { in.Items[1].Options[0].ExtraPrice = -500 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newStubOrdersRepo()
			svc := newTestService(t, repo)

			input := validSubmitInput()
			tc.mutate(&input)

			_, err := svc.Submit(context.Background(), input)
			require.Error(t, err)
			appErr := pkgerrors.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
			assert.Empty(t, repo.orders)
		})
	}
}

func TestServiceSubmitRetriesOnNumberCollision(t *testing.T) {
	repo := newStubOrdersRepo()
	attempts := 0
	repo.createOrder = func(ctx context.Context, order *models.Order) error {
		attempts++
		if attempts < 3 {
			return errors.New(`duplicate key value violates unique constraint "orders_order_number_key"`)
		}
		return nil
	}
	svc := newTestService(t, repo)

	order, err := svc.Submit(context.Background(), validSubmitInput())
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.NotEmpty(t, order.OrderNumber)
}

func TestServiceSubmitGivesUpAfterRepeatedCollisions(t *testing.T) {
	repo := newStubOrdersRepo()
	repo.createOrder = func(ctx context.Context, order *models.Order) error {
		return errors.New(`duplicate key value violates unique constraint "orders_order_number_key"`)
	}
	svc := newTestService(t, repo)

	_, err := svc.Submit(context.Background(), validSubmitInput())
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeDependency, appErr.Code())
}

func TestServiceSubmitSurvivesLineFailure(t *testing.T) {
	repo := newStubOrdersRepo()
	repo.createOrderItem = func(ctx context.Context, item *models.OrderItem) error {
		if item.ProductName == "Es Kopi Gula Aren" {
			return errors.New("connection reset")
		}
		return nil
	}
	svc := newTestService(t, repo)

	order, err := svc.Submit(context.Background(), validSubmitInput())
	require.NoError(t, err)

	// The failed line is skipped but the order and its number survive.
	assert.NotEmpty(t, order.OrderNumber)
	assert.Equal(t, 87000, order.TotalPrice)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Kopi Susu", order.Items[0].ProductName)
	assert.Empty(t, repo.options)
}

func TestServiceTrack(t *testing.T) {
	repo := newStubOrdersRepo()
	svc := newTestService(t, repo)

	order, err := svc.Submit(context.Background(), validSubmitInput())
	require.NoError(t, err)

	found, err := svc.Track(context.Background(), "  "+strings.ToLower(order.OrderNumber)+" ")
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, found.OrderNumber)

	_, err = svc.Track(context.Background(), "ARC-MISSING")
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())

	_, err = svc.Track(context.Background(), "   ")
	appErr = pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestServiceTransition(t *testing.T) {
	repo := newStubOrdersRepo()
	svc := newTestService(t, repo)

	order, err := svc.Submit(context.Background(), validSubmitInput())
	require.NoError(t, err)

	updated, err := svc.Transition(context.Background(), order.ID, enums.OrderStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusProcessing, updated.Status)
	assert.Equal(t, 1, repo.statusUpdates)

	// Orders can move backwards too, staff use that to undo mistakes.
	updated, err = svc.Transition(context.Background(), order.ID, enums.OrderStatusPending)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPending, updated.Status)
	assert.Equal(t, 2, repo.statusUpdates)
}

func TestServiceTransitionSameStatusNoOp(t *testing.T) {
	repo := newStubOrdersRepo()
	svc := newTestService(t, repo)

	order, err := svc.Submit(context.Background(), validSubmitInput())
	require.NoError(t, err)

	updated, err := svc.Transition(context.Background(), order.ID, enums.OrderStatusPending)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPending, updated.Status)
	assert.Zero(t, repo.statusUpdates)
}

func TestServiceTransitionErrors(t *testing.T) {
	repo := newStubOrdersRepo()
	svc := newTestService(t, repo)

	_, err := svc.Transition(context.Background(), uuid.Nil, enums.OrderStatusReady)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())

	_, err = svc.Transition(context.Background(), uuid.New(), enums.OrderStatus("shipped"))
	appErr = pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())

	_, err = svc.Transition(context.Background(), uuid.New(), enums.OrderStatusReady)
	appErr = pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}
