package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/arcoffee/arcoffee-backend/pkg/enums"
)

// Order is the persisted aggregate root for a customer order. The order number
// is the only customer-facing handle and never changes once assigned.
type Order struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber   string            `gorm:"column:order_number;not null;uniqueIndex:orders_order_number_key"`
	CustomerName  string            `gorm:"column:customer_name;not null"`
	CustomerPhone string            `gorm:"column:customer_phone;not null"`
	Notes         *string           `gorm:"column:notes"`
	TotalPrice    int               `gorm:"column:total_price;not null"`
	Status        enums.OrderStatus `gorm:"column:status;not null;default:'pending'"`
	Items         []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
