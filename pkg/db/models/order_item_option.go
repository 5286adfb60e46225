package models

import "github.com/google/uuid"

// OrderItemOption is a frozen snapshot of a selected option (name and extra
// price at order time), never a live reference into the options table.
type OrderItemOption struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderItemID uuid.UUID  `gorm:"column:order_item_id;type:uuid;not null"`
	OptionID    *uuid.UUID `gorm:"column:option_id;type:uuid"`
	OptionName  string     `gorm:"column:option_name;not null"`
	ExtraPrice  int        `gorm:"column:extra_price;not null"`
}
