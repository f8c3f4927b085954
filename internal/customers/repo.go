package customers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dukkonapp/dukkon-backend/pkg/db"
	"github.com/dukkonapp/dukkon-backend/pkg/db/models"
	pkgerrors "github.com/dukkonapp/dukkon-backend/pkg/errors"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a customers repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Find(ctx context.Context, tenantID, customerID uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", customerID, tenantID).
		First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "customer %s not found", customerID)
		}
		return nil, err
	}
	return &customer, nil
}

func (r *repository) Create(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "a customer with this phone already exists")
		}
		return nil, err
	}
	return customer, nil
}

func (r *repository) List(ctx context.Context, tenantID uuid.UUID, filters Filters) ([]models.Customer, error) {
	query := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)

	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where("name LIKE ? OR phone LIKE ?", like, like)
	}
	if filters.Debtors {
		query = query.Where("balance < 0")
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}

	var customers []models.Customer
	if err := query.Order("name ASC").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *repository) UpdateBalance(ctx context.Context, customerID uuid.UUID, expected, next decimal.Decimal) error {
	res := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ? AND balance = ?", customerID, expected).
		Update("balance", next)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.Newf(pkgerrors.CodeTransaction, "customer %s balance changed concurrently", customerID)
	}
	return nil
}
