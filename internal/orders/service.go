package orders

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/arcoffee/arcoffee-backend/pkg/db"
	"github.com/arcoffee/arcoffee-backend/pkg/db/models"
	"github.com/arcoffee/arcoffee-backend/pkg/enums"
	pkgerrors "github.com/arcoffee/arcoffee-backend/pkg/errors"
	"github.com/arcoffee/arcoffee-backend/pkg/logger"
	"github.com/arcoffee/arcoffee-backend/pkg/metrics"
	"github.com/arcoffee/arcoffee-backend/pkg/pagination"
)

const (
	minCustomerNameLen  = 3
	minCustomerPhoneLen = 10
	// Collisions need the same millisecond plus the same random suffix, so a
	// couple of retries is plenty.
	maxNumberAttempts = 3

	orderNumberConstraint = "orders_order_number_key"
)

var phonePattern = regexp.MustCompile(`^[0-9]+$`)

// Service defines the order lifecycle operations.
type Service interface {
	Submit(ctx context.Context, input SubmitOrderInput) (*models.Order, error)
	Track(ctx context.Context, orderNumber string) (*models.Order, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters) (*OrderList, error)
	Transition(ctx context.Context, orderID uuid.UUID, target enums.OrderStatus) (*models.Order, error)
}

type service struct {
	repo    Repository
	numbers *NumberGenerator
	metrics *metrics.OrderMetrics
	logg    *logger.Logger
}

// NewService builds an order service with the required dependencies.
func NewService(repo Repository, numbers *NumberGenerator, m *metrics.OrderMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if numbers == nil {
		return nil, fmt.Errorf("order number generator required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:    repo,
		numbers: numbers,
		metrics: m,
		logg:    logg,
	}, nil
}

// Submit validates a checkout payload, reprices it server-side and persists
// the order. The header write is fatal; line item writes are best effort so a
// late storage hiccup never strands a customer without their order number.
func (s *service) Submit(ctx context.Context, input SubmitOrderInput) (*models.Order, error) {
	started := time.Now()

	if err := validateSubmitInput(input); err != nil {
		s.metrics.IncFailure("validation")
		s.metrics.ObserveCheckoutDuration("rejected", time.Since(started))
		return nil, err
	}

	total := CartTotal(input.Items)
	if input.TotalPrice > 0 && input.TotalPrice != total {
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
			"client_total":   input.TotalPrice,
			"computed_total": total,
		}), "client total ignored, recomputed server-side")
	}

	order, err := s.createOrderHeader(ctx, input, total)
	if err != nil {
		s.metrics.IncFailure("storage")
		s.metrics.ObserveCheckoutDuration("failed", time.Since(started))
		return nil, err
	}

	ctx = s.logg.WithOrderNumber(ctx, order.OrderNumber)
	if err := s.persistLines(ctx, order, input.Items); err != nil {
		s.logg.Error(ctx, "order persisted with missing lines", err)
	}

	s.metrics.IncSubmitted(string(order.Status))
	s.metrics.ObserveCheckoutDuration("accepted", time.Since(started))
	s.logg.Info(ctx, "order submitted")
	return order, nil
}

// createOrderHeader writes the order row, regenerating the order number when
// it collides with an existing one.
func (s *service) createOrderHeader(ctx context.Context, input SubmitOrderInput, total int) (*models.Order, error) {
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		number, err := s.numbers.Generate()
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate order number")
		}

		order := &models.Order{
			ID:            uuid.New(),
			OrderNumber:   number,
			CustomerName:  strings.TrimSpace(input.CustomerName),
			CustomerPhone: strings.TrimSpace(input.CustomerPhone),
			Notes:         input.Notes,
			TotalPrice:    total,
			Status:        enums.OrderStatusPending,
		}

		err = s.repo.CreateOrder(ctx, order)
		if err == nil {
			return order, nil
		}
		if db.IsUniqueViolation(err, orderNumberConstraint) {
			s.logg.Warn(s.logg.WithOrderNumber(ctx, number), "order number collision, retrying")
			continue
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}
	return nil, pkgerrors.New(pkgerrors.CodeDependency, "could not allocate a unique order number")
}

// persistLines writes items and their option snapshots one by one. A failed
// line is logged and skipped; the remaining lines still get written and the
// aggregate error is returned for the caller to log.
func (s *service) persistLines(ctx context.Context, order *models.Order, items []SubmitOrderItem) error {
	var errs error
	for idx, line := range items {
		item := &models.OrderItem{
			ID:           uuid.New(),
			OrderID:      order.ID,
			ProductID:    line.ProductID,
			ProductName:  line.ProductName,
			ProductPrice: line.ProductPrice,
			Quantity:     line.Quantity,
			Subtotal:     LineSubtotal(line.ProductPrice, line.optionPrices(), line.Quantity),
			Notes:        line.Notes,
		}
		if err := s.repo.CreateOrderItem(ctx, item); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("item %d (%s): %w", idx, line.ProductName, err))
			continue
		}

		for _, opt := range line.Options {
			option := &models.OrderItemOption{
				ID:          uuid.New(),
				OrderItemID: item.ID,
				OptionID:    opt.OptionID,
				OptionName:  opt.OptionName,
				ExtraPrice:  opt.ExtraPrice,
			}
			if err := s.repo.CreateItemOption(ctx, option); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("item %d option %s: %w", idx, opt.OptionName, err))
				continue
			}
			item.Options = append(item.Options, *option)
		}
		order.Items = append(order.Items, *item)
	}
	return errs
}

// Track loads an order by its customer-facing number. Lookup is
// case-insensitive for typed-in numbers.
func (s *service) Track(ctx context.Context, orderNumber string) (*models.Order, error) {
	if strings.TrimSpace(orderNumber) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order number required")
	}

	order, err := s.repo.FindByNumber(ctx, orderNumber)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters ListFilters) (*OrderList, error) {
	list, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return list, nil
}

// Transition moves an order to the target status. Staff correct mistakes by
// moving orders freely between statuses, so any status can reach any other;
// a transition to the current status is a no-op success.
func (s *service) Transition(ctx context.Context, orderID uuid.UUID, target enums.OrderStatus) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status").
			WithDetails(map[string]any{"status": string(target)})
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if order.Status == target {
		return order, nil
	}

	if err := s.repo.UpdateStatus(ctx, order.ID, target); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	order.Status = target
	order.UpdatedAt = time.Now().UTC()

	s.metrics.IncTransition(string(target))
	s.logg.Info(s.logg.WithOrderNumber(ctx, order.OrderNumber), "order status updated")
	return order, nil
}

func validateSubmitInput(input SubmitOrderInput) error {
	name := strings.TrimSpace(input.CustomerName)
	if len(name) < minCustomerNameLen {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name must be at least 3 characters")
	}

	phone := strings.TrimSpace(input.CustomerPhone)
	if len(phone) < minCustomerPhoneLen {
		return pkgerrors.New(pkgerrors.CodeValidation, "phone number must be at least 10 digits")
	}
	if !phonePattern.MatchString(phone) {
		return pkgerrors.New(pkgerrors.CodeValidation, "phone number must contain digits only")
	}

	if len(input.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	for idx, item := range input.Items {
		if strings.TrimSpace(item.ProductName) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "item name required").
				WithDetails(map[string]any{"item": idx})
		}
		if item.Quantity < 1 {
			return pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be at least 1").
				WithDetails(map[string]any{"item": idx})
		}
		if item.ProductPrice < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "item price cannot be negative").
				WithDetails(map[string]any{"item": idx})
		}
		for _, opt := range item.Options {
			if opt.ExtraPrice < 0 {
				return pkgerrors.New(pkgerrors.CodeValidation, "option price cannot be negative").
					WithDetails(map[string]any{"item": idx, "option": opt.OptionName})
			}
		}
	}
	return nil
}
