package orders

import (
	"context"
	"fmt"

	"github.com/dineflow/dineflow-backend/internal/menu"
	"github.com/dineflow/dineflow-backend/internal/numbering"
	"github.com/dineflow/dineflow-backend/internal/tables"
	"github.com/dineflow/dineflow-backend/internal/tax"
	"github.com/dineflow/dineflow-backend/internal/taxmaster"
	"github.com/dineflow/dineflow-backend/pkg/db"
	"github.com/dineflow/dineflow-backend/pkg/db/models"
	"github.com/dineflow/dineflow-backend/pkg/enums"
	apperrors "github.com/dineflow/dineflow-backend/pkg/errors"
	"github.com/dineflow/dineflow-backend/pkg/logger"
	"github.com/dineflow/dineflow-backend/pkg/metrics"
	"github.com/dineflow/dineflow-backend/pkg/types"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service composes orders: it resolves menu pricing, decomposes tax per
// line and persists the result atomically. Placement against a table that
// already has a running order appends to it under a fresh KOT number.
type Service interface {
	PlaceOrder(ctx context.Context, tenant types.TenantContext, input PlaceOrderInput) (*PlacedOrder, error)
	GetRunningOrder(ctx context.Context, tenant types.TenantContext, tableID string) (*OrderView, error)
	GetOrder(ctx context.Context, tenant types.TenantContext, orderID string) (*OrderView, error)
}

type service struct {
	repo    Repository
	menu    menu.Repository
	tables  tables.Repository
	taxes   taxmaster.Service
	numbers numbering.Service
	tx      txRunner
	log     *logger.Logger
	metrics *metrics.POSMetrics
}

// NewService wires the order composer with its dependencies.
func NewService(
	repo Repository,
	menuRepo menu.Repository,
	tableRepo tables.Repository,
	taxes taxmaster.Service,
	numbers numbering.Service,
	tx txRunner,
	log *logger.Logger,
	posMetrics *metrics.POSMetrics,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if menuRepo == nil {
		return nil, fmt.Errorf("menu repository required")
	}
	if tableRepo == nil {
		return nil, fmt.Errorf("table repository required")
	}
	if taxes == nil {
		return nil, fmt.Errorf("taxmaster service required")
	}
	if numbers == nil {
		return nil, fmt.Errorf("numbering service required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:    repo,
		menu:    menuRepo,
		tables:  tableRepo,
		taxes:   taxes,
		numbers: numbers,
		tx:      tx,
		log:     log,
		metrics: posMetrics,
	}, nil
}

func (s *service) PlaceOrder(ctx context.Context, tenant types.TenantContext, input PlaceOrderInput) (*PlacedOrder, error) {
	placed, err := s.placeOrder(ctx, tenant, input)
	if err != nil {
		if appErr := apperrors.As(err); appErr != nil {
			s.metrics.IncPlacementFailure(string(appErr.Code()))
		} else {
			s.metrics.IncPlacementFailure(string(apperrors.CodeInternal))
		}
		return nil, err
	}
	s.metrics.IncOrderPlaced(string(input.Mode))
	s.metrics.IncKOTIssued()
	return placed, nil
}

func (s *service) placeOrder(ctx context.Context, tenant types.TenantContext, input PlaceOrderInput) (*PlacedOrder, error) {
	if err := tenant.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeValidation, err, "invalid tenant context")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	itemIDs := make([]string, 0, len(input.Lines))
	for _, line := range input.Lines {
		itemIDs = append(itemIDs, line.MenuItemID)
	}
	items, err := s.menu.GetByIDs(ctx, tenant.TenantCode, itemIDs)
	if err != nil {
		return nil, apperrors.Upstream(err, "loading menu items")
	}
	var missing []string
	for _, id := range itemIDs {
		if _, ok := items[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.New(apperrors.CodeNotFound, "unknown menu items").
			WithDetails(map[string]any{"menu_item_ids": missing})
	}

	// Price every line before opening the transaction; a bad split or
	// rate fails the whole placement without touching the database.
	pricedLines := make([]models.OrderLine, 0, len(input.Lines))
	for _, line := range input.Lines {
		item := items[line.MenuItemID]
		priced, err := s.priceLine(ctx, tenant, input.Mode, item, line.Qty)
		if err != nil {
			return nil, err
		}
		pricedLines = append(pricedLines, priced)
	}

	var placed PlacedOrder
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		numbers := s.numbers.WithTx(tx)

		kot, err := numbers.NextKOTNumber(ctx, tenant.TenantCode)
		if err != nil {
			return err
		}

		order, reused, err := s.resolveOrder(ctx, tenant, input, kot, repo, numbers, tx)
		if err != nil {
			return err
		}
		if reused {
			if err := repo.UpdateKOTNumber(ctx, tenant.TenantCode, order.ID, kot); err != nil {
				return apperrors.Upstream(err, "advancing order kot")
			}
			order.KOTNumber = kot
		}

		for i := range pricedLines {
			pricedLines[i].OrderMasterID = order.ID
			pricedLines[i].KOTNumber = kot
		}
		if err := repo.CreateLines(ctx, pricedLines); err != nil {
			return apperrors.Upstream(err, "persisting order lines")
		}

		placed = PlacedOrder{Order: order, Lines: pricedLines, KOTNumber: kot, Reused: reused}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.log != nil {
		logCtx := s.log.WithOrderID(ctx, placed.Order.ID)
		logCtx = s.log.WithTableID(logCtx, input.TableID)
		s.log.Info(logCtx, fmt.Sprintf("order placed with kot %d", placed.KOTNumber))
	}
	return &placed, nil
}

// resolveOrder reuses the order named by the caller, falls back to the
// running order on the table for occupying modes, or opens a fresh order
// master. The partial unique index on running dine-in orders turns a lost
// race into a conflict instead of a double open table.
func (s *service) resolveOrder(
	ctx context.Context,
	tenant types.TenantContext,
	input PlaceOrderInput,
	kot int,
	repo Repository,
	numbers numbering.Service,
	tx *gorm.DB,
) (*models.OrderMaster, bool, error) {
	if input.OrderMasterID != "" {
		existing, err := repo.FindByID(ctx, tenant.TenantCode, input.OrderMasterID)
		if err != nil {
			return nil, false, apperrors.Upstream(err, "looking up order")
		}
		if existing == nil {
			return nil, false, apperrors.New(apperrors.CodeNotFound,
				fmt.Sprintf("order %s not found", input.OrderMasterID))
		}
		if existing.Status != enums.OrderStatusRunning {
			return nil, false, apperrors.New(apperrors.CodeStateConflict,
				fmt.Sprintf("order %s is no longer running", input.OrderMasterID))
		}
		return existing, true, nil
	}

	if input.Mode.OccupiesTable() {
		existing, err := repo.FindRunningByTable(ctx, tenant.TenantCode, input.TableID)
		if err != nil {
			return nil, false, apperrors.Upstream(err, "looking up running order")
		}
		if existing != nil {
			return existing, true, nil
		}
	}

	orderID, err := numbers.NextOrderID(ctx, tenant.TenantCode)
	if err != nil {
		return nil, false, err
	}
	order := &models.OrderMaster{
		ID:         orderID,
		TenantCode: tenant.TenantCode,
		TableID:    input.TableID,
		Mode:       input.Mode,
		Status:     enums.OrderStatusRunning,
		KOTNumber:  kot,
	}
	if err := repo.CreateOrder(ctx, order); err != nil {
		if db.IsUniqueViolation(err, "uq_order_masters_running_table") {
			return nil, false, apperrors.Wrap(apperrors.CodeConflict, err,
				fmt.Sprintf("table %s already has a running order", input.TableID))
		}
		return nil, false, apperrors.Upstream(err, "creating order")
	}

	if input.Mode.OccupiesTable() {
		if err := s.tables.WithTx(tx).SetStatus(ctx, tenant.TenantCode, input.TableID, enums.TableStatusOccupied); err != nil {
			return nil, false, apperrors.Upstream(err, "occupying table")
		}
	}
	return order, false, nil
}

// priceLine snapshots one cart line: rate variant by mode, inclusive-tax
// reversal per unit, then each rounded component scaled by quantity so the
// line total stays an exact multiple of the unit total.
func (s *service) priceLine(
	ctx context.Context,
	tenant types.TenantContext,
	mode enums.TableMode,
	item models.MenuItem,
	qty int,
) (models.OrderLine, error) {
	split, err := s.taxes.SplitFor(ctx, tenant.TenantCode, item.TaxID)
	if err != nil {
		return models.OrderLine{}, err
	}

	actualRate := rateForMode(item, mode)
	in := tax.GSTInput{
		Amount:    actualRate,
		GSTRate:   split.TaxPercentage,
		CGSTRate:  split.CGSTShare,
		SGSTRate:  split.SGSTShare,
		Inclusive: true,
		Precision: tenant.Precision,
	}

	// Cess-aware pricing applies only to inventory items carrying a
	// specific cess; percentage-only cess rides the plain GST path.
	var breakdown tax.Breakdown
	if item.IsInventory && !item.CessSpecific.IsZero() {
		breakdown = tax.ComputeGSTWithCess(tax.GSTCessInput{
			GSTInput:     in,
			CessRate:     item.CessPercentage,
			CessSpecific: item.CessSpecific,
		})
	} else {
		breakdown = tax.ComputeGST(in)
	}
	if mode == enums.TableModeDelivery {
		breakdown = breakdown.ZeroIntraState()
	}

	q := decimal.NewFromInt(int64(qty))
	return models.OrderLine{
		MenuItemID:        item.ID,
		Qty:               qty,
		ActualRate:        actualRate,
		Rate:              breakdown.BasePrice,
		TaxAmount:         breakdown.GSTAmount.Mul(q),
		SGST:              breakdown.SGST.Mul(q),
		CGST:              breakdown.CGST.Mul(q),
		IGST:              breakdown.IGST.Mul(q),
		CessAmount:        breakdown.CessAmount.Mul(q),
		CessSpecificTotal: breakdown.CessSpecific.Mul(q),
		GrandTotal:        breakdown.TotalPrice.Mul(q),
	}, nil
}

func (s *service) GetRunningOrder(ctx context.Context, tenant types.TenantContext, tableID string) (*OrderView, error) {
	if tableID == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "table id is required")
	}
	order, err := s.repo.FindRunningByTable(ctx, tenant.TenantCode, tableID)
	if err != nil {
		return nil, apperrors.Upstream(err, "looking up running order")
	}
	if order == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("no running order on table %s", tableID))
	}
	return s.buildView(ctx, order)
}

func (s *service) GetOrder(ctx context.Context, tenant types.TenantContext, orderID string) (*OrderView, error) {
	if orderID == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "order id is required")
	}
	order, err := s.repo.FindByID(ctx, tenant.TenantCode, orderID)
	if err != nil {
		return nil, apperrors.Upstream(err, "looking up order")
	}
	if order == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("order %s not found", orderID))
	}
	return s.buildView(ctx, order)
}

func (s *service) buildView(ctx context.Context, order *models.OrderMaster) (*OrderView, error) {
	lines, err := s.repo.ListLines(ctx, order.ID)
	if err != nil {
		return nil, apperrors.Upstream(err, "listing order lines")
	}
	return &OrderView{Order: order, Lines: lines, Totals: AggregateLines(lines)}, nil
}

func rateForMode(item models.MenuItem, mode enums.TableMode) decimal.Decimal {
	switch {
	case mode == enums.TableModeAC:
		return item.ACRate
	case mode.UsesParcelRate():
		return item.ParcelRate
	default:
		return item.DineInRate
	}
}

func validateInput(input PlaceOrderInput) error {
	if !input.Mode.IsValid() {
		return apperrors.New(apperrors.CodeValidation, fmt.Sprintf("invalid table mode %q", input.Mode))
	}
	if input.TableID == "" {
		return apperrors.New(apperrors.CodeValidation, "table id is required")
	}
	if len(input.Lines) == 0 {
		return apperrors.New(apperrors.CodeEmptyOrder, "order has no line items")
	}

	var lineErrs error
	for i, line := range input.Lines {
		if line.MenuItemID == "" {
			lineErrs = multierr.Append(lineErrs, fmt.Errorf("line %d: menu item id is required", i))
		}
		if line.Qty <= 0 {
			lineErrs = multierr.Append(lineErrs, fmt.Errorf("line %d: qty must be positive", i))
		}
	}
	if lineErrs != nil {
		return apperrors.Wrap(apperrors.CodeValidation, lineErrs, "invalid order lines")
	}
	return nil
}
