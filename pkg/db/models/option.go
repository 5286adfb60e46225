package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/arcoffee/arcoffee-backend/pkg/enums"
)

// Option is a reusable customization modifier (size/ice/sugar/addon). Orders
// never reference it live; they carry OrderItemOption snapshots instead.
type Option struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Group      enums.OptionGroup `gorm:"column:group_name;not null"`
	Name       string            `gorm:"column:name;not null"`
	ExtraPrice int               `gorm:"column:extra_price;not null;default:0"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
}
