package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arcoffee/arcoffee-backend/pkg/db/models"
	"github.com/arcoffee/arcoffee-backend/pkg/enums"
	"github.com/arcoffee/arcoffee-backend/pkg/pagination"
)

// Repository defines storage operations for customer orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) error
	CreateOrderItem(ctx context.Context, item *models.OrderItem) error
	CreateItemOption(ctx context.Context, option *models.OrderItemOption) error
	FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters) (*OrderList, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error
}
