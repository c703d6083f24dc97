package settlement

import (
	"context"
	"fmt"

	"github.com/dineflow/dineflow-backend/internal/customers"
	"github.com/dineflow/dineflow-backend/internal/ledger"
	"github.com/dineflow/dineflow-backend/internal/numbering"
	"github.com/dineflow/dineflow-backend/internal/orders"
	"github.com/dineflow/dineflow-backend/internal/tables"
	"github.com/dineflow/dineflow-backend/pkg/db/models"
	"github.com/dineflow/dineflow-backend/pkg/enums"
	apperrors "github.com/dineflow/dineflow-backend/pkg/errors"
	"github.com/dineflow/dineflow-backend/pkg/logger"
	"github.com/dineflow/dineflow-backend/pkg/metrics"
	"github.com/dineflow/dineflow-backend/pkg/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// SettleInput captures one settlement request. Received carries the single
// tender amount; Cash/Card/UPI only apply when Method is others. A DUE
// voucher on a paying tender clears an earlier due against the customer
// ledger. Rebill reopens an already billed order and reuses its bill
// number.
type SettleInput struct {
	OrderID    string             `json:"order_id" validate:"required"`
	CustomerID string             `json:"customer_id"`
	Voucher    enums.VoucherType  `json:"voucher_type"`
	Method     enums.TenderMethod `json:"tender_method" validate:"required"`
	Received   decimal.Decimal    `json:"received_amt"`
	Cash       decimal.Decimal    `json:"cash"`
	Card       decimal.Decimal    `json:"card"`
	UPI        decimal.Decimal    `json:"upi"`
	Rebill     bool               `json:"rebill"`
}

// SettledBill is the settlement result: the persisted bill plus the
// balanced posting batch written for it.
type SettledBill struct {
	Bill     *models.Bill           `json:"bill"`
	Postings []models.LedgerPosting `json:"postings"`
}

// Service settles running orders. Settlement never recomputes tax; it
// aggregates the stored line decompositions, splits the total across
// tenders, numbers the bill on the series the tender outcome demands and
// posts the ledger batch, all in one transaction.
type Service interface {
	Settle(ctx context.Context, tenant types.TenantContext, input SettleInput) (*SettledBill, error)
	GetBill(ctx context.Context, tenant types.TenantContext, billNo string) (*SettledBill, error)
}

type service struct {
	repo      Repository
	orders    orders.Repository
	customers customers.Repository
	tables    tables.Repository
	ledger    ledger.Service
	numbers   numbering.Service
	tx        txRunner
	log       *logger.Logger
	metrics   *metrics.POSMetrics
}

// NewService wires the settlement engine with its dependencies.
func NewService(
	repo Repository,
	orderRepo orders.Repository,
	customerRepo customers.Repository,
	tableRepo tables.Repository,
	ledgerSvc ledger.Service,
	numbers numbering.Service,
	tx txRunner,
	log *logger.Logger,
	posMetrics *metrics.POSMetrics,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("bill repository required")
	}
	if orderRepo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if customerRepo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	if tableRepo == nil {
		return nil, fmt.Errorf("table repository required")
	}
	if ledgerSvc == nil {
		return nil, fmt.Errorf("ledger service required")
	}
	if numbers == nil {
		return nil, fmt.Errorf("numbering service required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:      repo,
		orders:    orderRepo,
		customers: customerRepo,
		tables:    tableRepo,
		ledger:    ledgerSvc,
		numbers:   numbers,
		tx:        tx,
		log:       log,
		metrics:   posMetrics,
	}, nil
}

// tenderSplit is the resolved tender breakdown of one settlement.
// Clearance marks a DUE voucher riding a paying tender, which settles an
// earlier due instead of recording a sale against the sales account.
type tenderSplit struct {
	Cash, Card, UPI decimal.Decimal
	Received        decimal.Decimal
	Due             decimal.Decimal
	Change          decimal.Decimal
	Series          enums.BillSeries
	Clearance       bool
}

func (s *service) Settle(ctx context.Context, tenant types.TenantContext, input SettleInput) (*SettledBill, error) {
	if err := tenant.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeValidation, err, "invalid tenant context")
	}
	if input.OrderID == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "order id is required")
	}
	if !input.Method.IsValid() {
		return nil, apperrors.New(apperrors.CodeValidation, fmt.Sprintf("invalid tender method %q", input.Method))
	}
	if input.Voucher == "" {
		input.Voucher = enums.VoucherTypeBill
	}
	if !input.Voucher.IsValid() {
		return nil, apperrors.New(apperrors.CodeValidation, fmt.Sprintf("invalid voucher type %q", input.Voucher))
	}
	if input.CustomerID == "" {
		input.CustomerID = tenant.WalkInCustomerID
	}

	order, err := s.orders.FindByID(ctx, tenant.TenantCode, input.OrderID)
	if err != nil {
		return nil, apperrors.Upstream(err, "loading order")
	}
	if order == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("order %s not found", input.OrderID))
	}

	existing, err := s.repo.GetByOrderID(ctx, tenant.TenantCode, input.OrderID)
	if err != nil {
		return nil, apperrors.Upstream(err, "checking for existing bill")
	}
	if existing != nil && !input.Rebill {
		return nil, apperrors.New(apperrors.CodeAlreadyBilled,
			fmt.Sprintf("order %s already settled as %s", input.OrderID, existing.BillNo))
	}
	if existing == nil && input.Rebill {
		return nil, apperrors.New(apperrors.CodeStateConflict,
			fmt.Sprintf("order %s has no bill to correct", input.OrderID))
	}

	lines, err := s.orders.ListLines(ctx, input.OrderID)
	if err != nil {
		return nil, apperrors.Upstream(err, "listing order lines")
	}
	if len(lines) == 0 {
		return nil, apperrors.New(apperrors.CodeEmptyOrder, "order has no line items")
	}
	totals := orders.AggregateLines(lines)
	grandTotal := tenant.Round(totals.GrandTotal)

	split, err := resolveTenders(input, grandTotal)
	if err != nil {
		return nil, err
	}

	customer, err := s.customers.GetByID(ctx, tenant.TenantCode, input.CustomerID)
	if err != nil {
		return nil, apperrors.Upstream(err, "loading customer")
	}
	if customer == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("customer %s not found", input.CustomerID))
	}
	if (split.Due.IsPositive() || split.Clearance) && customer.ID == tenant.WalkInCustomerID {
		return nil, apperrors.New(apperrors.CodeMissingCustomer,
			"walk-in customer has no ledger; select a named customer")
	}

	var settled SettledBill
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		orderRepo := s.orders.WithTx(tx)
		ledgerSvc := s.ledger.WithTx(tx)

		billNo := ""
		if existing != nil {
			billNo = existing.BillNo
			if err := ledgerSvc.ResetBill(ctx, tenant.TenantCode, billNo); err != nil {
				return err
			}
		} else {
			billNo, err = s.numbers.WithTx(tx).NextBillNo(ctx, tenant.TenantCode, tenant.CounterID, split.Series)
			if err != nil {
				return err
			}
		}

		bill := &models.Bill{
			BillNo:        billNo,
			TenantCode:    tenant.TenantCode,
			Series:        split.Series,
			OrderMasterID: order.ID,
			CustomerID:    customer.ID,
			OrderAmt:      tenant.Round(totals.OrderAmt),
			TaxAmt:        tenant.Round(totals.TaxAmt),
			Cess:          tenant.Round(totals.Cess),
			CessSpecific:  tenant.Round(totals.CessSpecific),
			GrandTotal:    grandTotal,
			Cash:          split.Cash,
			Card:          split.Card,
			UPI:           split.UPI,
			Due:           split.Due,
			ReceivedAmt:   split.Received,
			ChangeAmt:     split.Change,
			PendingAmt:    split.Due,
		}
		if existing != nil {
			// The reused bill number keeps its original series prefix.
			bill.Series = existing.Series
			bill.CreatedAt = existing.CreatedAt
			if err := repo.Update(ctx, bill); err != nil {
				return apperrors.Upstream(err, "updating bill")
			}
		} else {
			if err := repo.Create(ctx, bill); err != nil {
				return apperrors.Upstream(err, "creating bill")
			}
		}

		customerAccountID := ""
		if split.Due.IsPositive() || split.Clearance {
			account, err := ledgerSvc.ResolveCustomerAccount(ctx, tenant.TenantCode, customer)
			if err != nil {
				return err
			}
			customerAccountID = account.ID
		}

		postings, err := ledgerSvc.PostBill(ctx, ledger.BuildInput{
			TenantCode:        tenant.TenantCode,
			BillNo:            billNo,
			Cash:              split.Cash,
			Card:              split.Card,
			UPI:               split.UPI,
			Due:               split.Due,
			CustomerAccountID: customerAccountID,
			DueClearance:      split.Clearance,
		})
		if err != nil {
			return err
		}

		if err := orderRepo.FinalizeLineTax(ctx, order.ID, customer.IGSTStatus); err != nil {
			return apperrors.Upstream(err, "finalizing line tax")
		}
		if err := orderRepo.UpdateStatus(ctx, tenant.TenantCode, order.ID, enums.OrderStatusCompleted); err != nil {
			return apperrors.Upstream(err, "completing order")
		}
		if order.Mode.OccupiesTable() {
			if err := s.tables.WithTx(tx).SetStatus(ctx, tenant.TenantCode, order.TableID, enums.TableStatusAvailable); err != nil {
				return apperrors.Upstream(err, "releasing table")
			}
		}

		settled = SettledBill{Bill: bill, Postings: postings}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncBillSettled(string(settled.Bill.Series))
	s.metrics.ObservePostingLegs(len(settled.Postings))
	if s.log != nil {
		logCtx := s.log.WithOrderID(ctx, order.ID)
		logCtx = s.log.WithBillNo(logCtx, settled.Bill.BillNo)
		s.log.Info(logCtx, "order settled")
	}
	return &settled, nil
}

// resolveTenders splits the grand total across tender channels and decides
// the numbering series. Any shortfall becomes a due; overpayment becomes
// change handed back, deducted cash first from the posting legs so the
// batch stays balanced. A DUE voucher on a paying tender goes through the
// normal split and is flagged as a clearance.
func resolveTenders(input SettleInput, grandTotal decimal.Decimal) (tenderSplit, error) {
	var split tenderSplit

	switch {
	case input.Method == enums.TenderMethodDue:
		split.Received = decimal.Zero
	case input.Method.IsSingleTender():
		received := input.Received
		if received.IsNegative() {
			return split, apperrors.New(apperrors.CodeValidation, "received amount cannot be negative")
		}
		switch input.Method {
		case enums.TenderMethodCash:
			split.Cash = received
		case enums.TenderMethodCard:
			split.Card = received
		case enums.TenderMethodUPI:
			split.UPI = received
		}
		split.Received = received
	case input.Method == enums.TenderMethodOthers:
		for _, amt := range []decimal.Decimal{input.Cash, input.Card, input.UPI} {
			if amt.IsNegative() {
				return split, apperrors.New(apperrors.CodeValidation, "tender amounts cannot be negative")
			}
		}
		split.Cash, split.Card, split.UPI = input.Cash, input.Card, input.UPI
		split.Received = input.Cash.Add(input.Card).Add(input.UPI)
	default:
		return split, apperrors.New(apperrors.CodeValidation,
			fmt.Sprintf("unsupported tender method %q", input.Method))
	}

	if split.Received.GreaterThan(grandTotal) {
		split.Change = split.Received.Sub(grandTotal)
		remaining := split.Change
		for _, channel := range []*decimal.Decimal{&split.Cash, &split.Card, &split.UPI} {
			if !remaining.IsPositive() {
				break
			}
			back := decimal.Min(*channel, remaining)
			*channel = channel.Sub(back)
			remaining = remaining.Sub(back)
		}
		split.Due = decimal.Zero
	} else {
		split.Due = grandTotal.Sub(split.Received)
	}

	split.Clearance = input.Voucher == enums.VoucherTypeDue && split.Received.IsPositive()
	if input.Method == enums.TenderMethodDue || input.Voucher == enums.VoucherTypeDue || split.Due.IsPositive() {
		split.Series = enums.BillSeriesDue
	} else {
		split.Series = enums.BillSeriesBill
	}
	return split, nil
}

func (s *service) GetBill(ctx context.Context, tenant types.TenantContext, billNo string) (*SettledBill, error) {
	if billNo == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "bill number is required")
	}
	bill, err := s.repo.GetByBillNo(ctx, tenant.TenantCode, billNo)
	if err != nil {
		return nil, apperrors.Upstream(err, "loading bill")
	}
	if bill == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("bill %s not found", billNo))
	}
	postings, err := s.ledger.ListByBillNo(ctx, tenant.TenantCode, billNo)
	if err != nil {
		return nil, err
	}
	return &SettledBill{Bill: bill, Postings: postings}, nil
}
