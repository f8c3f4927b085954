package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a cashier or admin referenced by sales and ledger entries.
// Authentication is handled upstream; this row exists for attribution.
type User struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID uuid.UUID `gorm:"column:tenant_id;type:uuid;not null;index"`
	Name     string    `gorm:"column:name;not null"`
	Email    *string   `gorm:"column:email"`
	Role     string    `gorm:"column:role;not null;default:'cashier'"`
	IsActive bool      `gorm:"column:is_active;not null;default:true"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
