package models

import (
	"time"

	"github.com/google/uuid"
)

// Branch is a physical outlet a sale may be attributed to.
type Branch struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID uuid.UUID `gorm:"column:tenant_id;type:uuid;not null;index"`
	Name     string    `gorm:"column:name;not null"`
	Address  *string   `gorm:"column:address"`
	IsActive bool      `gorm:"column:is_active;not null;default:true"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
