package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dukkonapp/dukkon-backend/internal/cart"
	"github.com/dukkonapp/dukkon-backend/internal/catalog"
	"github.com/dukkonapp/dukkon-backend/internal/customers"
	"github.com/dukkonapp/dukkon-backend/internal/industry"
	"github.com/dukkonapp/dukkon-backend/internal/ledger"
	"github.com/dukkonapp/dukkon-backend/internal/sales"
	"github.com/dukkonapp/dukkon-backend/internal/tenants"
	"github.com/dukkonapp/dukkon-backend/pkg/db/models"
	"github.com/dukkonapp/dukkon-backend/pkg/enums"
	pkgerrors "github.com/dukkonapp/dukkon-backend/pkg/errors"
	"github.com/dukkonapp/dukkon-backend/pkg/logger"
	"github.com/dukkonapp/dukkon-backend/pkg/metrics"
)

var hundred = decimal.NewFromInt(100)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type quoter interface {
	Calculate(ctx context.Context, input cart.Input) (*cart.Result, error)
}

type policySource interface {
	GetPolicy(ctx context.Context, tenantID uuid.UUID) (*tenants.Policy, error)
}

// Service runs checkouts and refunds as atomic units of work.
type Service interface {
	Execute(ctx context.Context, input Input) (*models.Sale, error)
	Refund(ctx context.Context, input RefundInput) (*models.Sale, error)
}

type service struct {
	tx        txRunner
	calc      quoter
	policies  policySource
	catalog   catalog.Repository
	customers customers.Repository
	ledger    ledger.Repository
	sales     sales.Repository
	logg      *logger.Logger
	metrics   *metrics.CheckoutMetrics
}

// NewService builds a checkout service with the required collaborators.
// Metrics may be nil.
func NewService(
	tx txRunner,
	calc quoter,
	policies policySource,
	catalogRepo catalog.Repository,
	customersRepo customers.Repository,
	ledgerRepo ledger.Repository,
	salesRepo sales.Repository,
	logg *logger.Logger,
	checkoutMetrics *metrics.CheckoutMetrics,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if calc == nil {
		return nil, fmt.Errorf("cart calculator required")
	}
	if policies == nil {
		return nil, fmt.Errorf("tenant policy source required")
	}
	if catalogRepo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if customersRepo == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	if ledgerRepo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	if salesRepo == nil {
		return nil, fmt.Errorf("sales repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		tx:        tx,
		calc:      calc,
		policies:  policies,
		catalog:   catalogRepo,
		customers: customersRepo,
		ledger:    ledgerRepo,
		sales:     salesRepo,
		logg:      logg,
		metrics:   checkoutMetrics,
	}, nil
}

// Execute prices the cart, runs the debt and margin guards, then
// commits the sale, stock movements, and any ledger posting in one
// transaction. Every write rolls back together on failure.
func (s *service) Execute(ctx context.Context, input Input) (*models.Sale, error) {
	started := time.Now()

	policy, err := s.policies.GetPolicy(ctx, input.TenantID)
	if err != nil {
		return nil, err
	}

	sale, err := s.execute(ctx, input, policy)
	if err != nil {
		s.metrics.IncFailure(string(policy.BusinessType), string(errCode(err)))
		return nil, err
	}

	s.metrics.IncSuccess(string(policy.BusinessType), string(sale.PaymentMethod))
	s.metrics.ObserveDuration(string(policy.BusinessType), time.Since(started))

	ctx = s.logg.WithFields(ctx, map[string]any{
		"sale_id": sale.ID.String(),
		"total":   sale.TotalAmount.String(),
	})
	s.logg.Info(ctx, "checkout committed")
	return sale, nil
}

func (s *service) execute(ctx context.Context, input Input, policy *tenants.Policy) (*models.Sale, error) {
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "unknown payment method %q", string(input.PaymentMethod))
	}
	if input.ExplicitDebtAmount != nil && input.ExplicitDebtAmount.Sign() <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "explicit debt amount must be positive")
	}

	quote, err := s.calc.Calculate(ctx, cart.Input{
		TenantID:   input.TenantID,
		CustomerID: input.CustomerID,
		Lines:      input.Lines,
	})
	if err != nil {
		return nil, err
	}

	isDebt := input.PaymentMethod == enums.PaymentMethodDebt

	var customer *models.Customer
	var newDebt, newBalance decimal.Decimal
	if isDebt {
		if input.CustomerID == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "debt payment requires a customer")
		}
		customer, err = s.customers.Find(ctx, input.TenantID, *input.CustomerID)
		if err != nil {
			if appErr := pkgerrors.As(err); appErr != nil && appErr.Code() == pkgerrors.CodeNotFound {
				return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "debt payment requires a resolvable customer, %s not found", *input.CustomerID)
			}
			return nil, err
		}

		newDebt = quote.Total
		if input.ExplicitDebtAmount != nil {
			newDebt = *input.ExplicitDebtAmount
		}
		newBalance = customer.Balance.Sub(newDebt)

		maxDebt := customers.DebtCeiling(customer)
		if newBalance.Abs().GreaterThan(maxDebt) {
			return nil, pkgerrors.Newf(pkgerrors.CodeDebtLimit,
				"balance would reach %s, limit is %s", newBalance, maxDebt).
				WithDetails(map[string]any{
					"balance":     customer.Balance.String(),
					"new_balance": newBalance.String(),
					"max_debt":    maxDebt.String(),
				})
		}
	}

	if err := marginGuard(quote, policy.MinMarginPercent); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sale := &models.Sale{
		ID:             uuid.New(),
		TenantID:       input.TenantID,
		CashierID:      input.CashierID,
		CustomerID:     input.CustomerID,
		BranchID:       input.BranchID,
		Subtotal:       quote.Subtotal,
		TaxAmount:      quote.TaxAmount,
		DiscountAmount: quote.DiscountAmount,
		ServiceCharge:  quote.ServiceCharge,
		TotalAmount:    quote.Total,
		PaymentMethod:  input.PaymentMethod,
		Status:         enums.SaleStatusCompleted,
		IsDebt:         isDebt,
		Notes:          input.Notes,
		ReceiptNumber:  sales.NewReceiptNumber(now),
	}
	if isDebt {
		sale.DebtAmount = newDebt
	}

	industryPolicy := industry.PolicyFor(policy.BusinessType)

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		salesRepo := s.sales.WithTx(tx)
		catalogRepo := s.catalog.WithTx(tx)

		if _, err := salesRepo.CreateSale(ctx, sale); err != nil {
			return err
		}

		items := make([]models.SaleItem, 0, len(quote.Lines))
		for _, line := range quote.Lines {
			items = append(items, models.SaleItem{
				ID:              uuid.New(),
				SaleID:          sale.ID,
				VariantID:       line.VariantID,
				Quantity:        line.Quantity,
				UnitPrice:       line.UnitPrice,
				CostPrice:       line.CostPrice,
				Total:           line.Total,
				DiscountPercent: line.DiscountPercent,
				DiscountAmount:  line.DiscountAmount,
				TaxRate:         line.TaxRate,
				TaxAmount:       line.TaxAmount,
			})

			for _, movement := range industryPolicy.StockMovements(line.Product, line.VariantID, line.Quantity) {
				if err := catalogRepo.AdjustStock(ctx, movement.VariantID, movement.Qty); err != nil {
					return err
				}
			}
		}
		if err := salesRepo.CreateSaleItems(ctx, items); err != nil {
			return err
		}

		if isDebt {
			entry := &models.CustomerLedger{
				ID:              uuid.New(),
				CustomerID:      customer.ID,
				SaleID:          &sale.ID,
				Debit:           newDebt,
				Credit:          decimal.Zero,
				BalanceAfter:    newBalance,
				ReferenceNumber: &sale.ReceiptNumber,
				CreatedBy:       &input.CashierID,
			}
			if _, err := s.ledger.WithTx(tx).Append(ctx, entry); err != nil {
				return err
			}
			if err := s.customers.WithTx(tx).UpdateBalance(ctx, customer.ID, customer.Balance, newBalance); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, wrapTxErr(err)
	}

	return s.sales.FindSale(ctx, input.TenantID, sale.ID)
}

// Refund reverses a completed sale: restores every stock movement,
// credits any debt back to the customer, and marks the sale refunded.
// The status guard makes the reversal run at most once.
func (s *service) Refund(ctx context.Context, input RefundInput) (*models.Sale, error) {
	policy, err := s.policies.GetPolicy(ctx, input.TenantID)
	if err != nil {
		return nil, err
	}
	industryPolicy := industry.PolicyFor(policy.BusinessType)

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		salesRepo := s.sales.WithTx(tx)
		catalogRepo := s.catalog.WithTx(tx)

		sale, err := salesRepo.FindSale(ctx, input.TenantID, input.SaleID)
		if err != nil {
			return err
		}
		if sale.Status != enums.SaleStatusCompleted {
			return pkgerrors.Newf(pkgerrors.CodeConflict, "sale %s is %s, only completed sales can be refunded", sale.ID, sale.Status)
		}
		if err := salesRepo.UpdateStatus(ctx, sale.ID, enums.SaleStatusCompleted, enums.SaleStatusRefunded); err != nil {
			return err
		}

		for _, item := range sale.Items {
			variant, err := catalogRepo.FindVariant(ctx, input.TenantID, item.VariantID)
			if err != nil {
				return err
			}
			for _, movement := range industryPolicy.StockMovements(variant.Product, item.VariantID, item.Quantity) {
				if err := catalogRepo.RestoreStock(ctx, movement.VariantID, movement.Qty); err != nil {
					return err
				}
			}
		}

		if sale.IsDebt && sale.CustomerID != nil {
			customersRepo := s.customers.WithTx(tx)
			customer, err := customersRepo.Find(ctx, input.TenantID, *sale.CustomerID)
			if err != nil {
				return err
			}
			newBalance := customer.Balance.Add(sale.DebtAmount)
			entry := &models.CustomerLedger{
				ID:              uuid.New(),
				CustomerID:      customer.ID,
				SaleID:          &sale.ID,
				Debit:           decimal.Zero,
				Credit:          sale.DebtAmount,
				BalanceAfter:    newBalance,
				Description:     input.Reason,
				ReferenceNumber: &sale.ReceiptNumber,
				CreatedBy:       &input.CashierID,
			}
			if _, err := s.ledger.WithTx(tx).Append(ctx, entry); err != nil {
				return err
			}
			if err := customersRepo.UpdateBalance(ctx, customer.ID, customer.Balance, newBalance); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, wrapTxErr(err)
	}

	return s.sales.FindSale(ctx, input.TenantID, input.SaleID)
}

// marginGuard fails the whole checkout when any line sells below the
// tenant's margin floor. A zero unit price has no defined margin and
// always fails.
func marginGuard(quote *cart.Result, minMargin decimal.Decimal) error {
	for _, line := range quote.Lines {
		if line.UnitPrice.Sign() <= 0 {
			return pkgerrors.Newf(pkgerrors.CodeMarginTooLow, "sku %s has zero unit price", line.SKU)
		}
		margin := line.UnitPrice.Sub(line.CostPrice).
			Div(line.UnitPrice).
			Mul(hundred)
		if margin.LessThan(minMargin) {
			return pkgerrors.Newf(pkgerrors.CodeMarginTooLow,
				"sku %s margin %s%% is below the %s%% floor", line.SKU, margin.Round(2), minMargin).
				WithDetails(map[string]any{
					"sku":        line.SKU,
					"margin":     margin.Round(2).String(),
					"min_margin": minMargin.String(),
				})
		}
	}
	return nil
}

func errCode(err error) pkgerrors.Code {
	if appErr := pkgerrors.As(err); appErr != nil {
		return appErr.Code()
	}
	return pkgerrors.CodeInternal
}

// wrapTxErr keeps business rejections as-is and wraps storage failures
// as TRANSACTION_FAILED.
func wrapTxErr(err error) error {
	if err == nil {
		return nil
	}
	if pkgerrors.As(err) != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeTransaction, err, "checkout transaction failed")
}
