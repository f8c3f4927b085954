package sales

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dukkonapp/dukkon-backend/pkg/db/models"
	"github.com/dukkonapp/dukkon-backend/pkg/pagination"
)

type service struct {
	repo Repository
}

// NewService builds a sales history service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sales repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, tenantID, saleID uuid.UUID) (*models.Sale, error) {
	return s.repo.FindSale(ctx, tenantID, saleID)
}

func (s *service) List(ctx context.Context, tenantID uuid.UUID, params pagination.Params, filters Filters) (*SaleList, error) {
	return s.repo.ListSales(ctx, tenantID, params, filters)
}
