package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem captures the snapshot of one cart line inside an order. Product
// name and price are copied at checkout so the line stays displayable even if
// the catalog product is later renamed, repriced or deleted.
type OrderItem struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID      uuid.UUID         `gorm:"column:order_id;type:uuid;not null"`
	ProductID    *uuid.UUID        `gorm:"column:product_id;type:uuid"`
	ProductName  string            `gorm:"column:product_name;not null"`
	ProductPrice int               `gorm:"column:product_price;not null"`
	Quantity     int               `gorm:"column:quantity;not null"`
	Subtotal     int               `gorm:"column:subtotal;not null"`
	Notes        *string           `gorm:"column:notes"`
	Options      []OrderItemOption `gorm:"foreignKey:OrderItemID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
}
