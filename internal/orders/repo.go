package orders

import (
	"context"
	stdErrors "errors"

	"github.com/dineflow/dineflow-backend/pkg/db/models"
	"github.com/dineflow/dineflow-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository defines persistence operations for order masters and lines.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.OrderMaster) error
	FindByID(ctx context.Context, tenantCode, orderID string) (*models.OrderMaster, error)
	FindRunningByTable(ctx context.Context, tenantCode, tableID string) (*models.OrderMaster, error)
	UpdateKOTNumber(ctx context.Context, tenantCode, orderID string, kotNumber int) error
	UpdateStatus(ctx context.Context, tenantCode, orderID string, status enums.OrderStatus) error
	FinalizeLineTax(ctx context.Context, orderID string, interState bool) error
	CreateLines(ctx context.Context, lines []models.OrderLine) error
	ListLines(ctx context.Context, orderID string) ([]models.OrderLine, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an order repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateOrder(ctx context.Context, order *models.OrderMaster) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repository) FindByID(ctx context.Context, tenantCode, orderID string) (*models.OrderMaster, error) {
	var order models.OrderMaster
	err := r.db.WithContext(ctx).
		Where("tenant_code = ? AND id = ?", tenantCode, orderID).
		First(&order).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *repository) FindRunningByTable(ctx context.Context, tenantCode, tableID string) (*models.OrderMaster, error) {
	var order models.OrderMaster
	err := r.db.WithContext(ctx).
		Where("tenant_code = ? AND table_id = ? AND status = ?",
			tenantCode, tableID, enums.OrderStatusRunning).
		First(&order).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *repository) UpdateKOTNumber(ctx context.Context, tenantCode, orderID string, kotNumber int) error {
	return r.db.WithContext(ctx).
		Model(&models.OrderMaster{}).
		Where("tenant_code = ? AND id = ?", tenantCode, orderID).
		Update("kot_number", kotNumber).Error
}

func (r *repository) UpdateStatus(ctx context.Context, tenantCode, orderID string, status enums.OrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.OrderMaster{}).
		Where("tenant_code = ? AND id = ?", tenantCode, orderID).
		Update("status", status).Error
}

// FinalizeLineTax settles each line on one tax regime: inter-state sales
// keep IGST and zero the intra-state halves, everything else drops IGST.
func (r *repository) FinalizeLineTax(ctx context.Context, orderID string, interState bool) error {
	updates := map[string]any{"igst": decimal.Zero}
	if interState {
		updates = map[string]any{"cgst": decimal.Zero, "sgst": decimal.Zero}
	}
	return r.db.WithContext(ctx).
		Model(&models.OrderLine{}).
		Where("order_master_id = ?", orderID).
		Updates(updates).Error
}

func (r *repository) CreateLines(ctx context.Context, lines []models.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&lines).Error
}

func (r *repository) ListLines(ctx context.Context, orderID string) ([]models.OrderLine, error) {
	var lines []models.OrderLine
	if err := r.db.WithContext(ctx).
		Where("order_master_id = ?", orderID).
		Order("created_at ASC").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}
