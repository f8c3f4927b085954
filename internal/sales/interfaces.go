package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukkonapp/dukkon-backend/pkg/db/models"
	"github.com/dukkonapp/dukkon-backend/pkg/enums"
	"github.com/dukkonapp/dukkon-backend/pkg/pagination"
)

// Repository defines persistence operations for sales history.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateSale(ctx context.Context, sale *models.Sale) (*models.Sale, error)
	CreateSaleItems(ctx context.Context, items []models.SaleItem) error
	FindSale(ctx context.Context, tenantID, saleID uuid.UUID) (*models.Sale, error)
	ListSales(ctx context.Context, tenantID uuid.UUID, params pagination.Params, filters Filters) (*SaleList, error)
	UpdateStatus(ctx context.Context, saleID uuid.UUID, from, to enums.SaleStatus) error
}

// Filters narrows sales listings.
type Filters struct {
	CashierID  *uuid.UUID
	CustomerID *uuid.UUID
	Status     *enums.SaleStatus
	From       *time.Time
	To         *time.Time
}

// SaleList is one page of sales plus the cursor for the next page.
type SaleList struct {
	Sales      []models.Sale `json:"sales"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// Service exposes read access to sales history.
type Service interface {
	Get(ctx context.Context, tenantID, saleID uuid.UUID) (*models.Sale, error)
	List(ctx context.Context, tenantID uuid.UUID, params pagination.Params, filters Filters) (*SaleList, error)
}
