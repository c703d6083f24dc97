package settlement

import (
	"context"
	stdErrors "errors"

	"github.com/dineflow/dineflow-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository manages persistence for bills.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, bill *models.Bill) error
	Update(ctx context.Context, bill *models.Bill) error
	GetByOrderID(ctx context.Context, tenantCode, orderID string) (*models.Bill, error)
	GetByBillNo(ctx context.Context, tenantCode, billNo string) (*models.Bill, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a bill repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, bill *models.Bill) error {
	return r.db.WithContext(ctx).Create(bill).Error
}

func (r *repository) Update(ctx context.Context, bill *models.Bill) error {
	return r.db.WithContext(ctx).Save(bill).Error
}

func (r *repository) GetByOrderID(ctx context.Context, tenantCode, orderID string) (*models.Bill, error) {
	var bill models.Bill
	err := r.db.WithContext(ctx).
		Where("tenant_code = ? AND order_master_id = ?", tenantCode, orderID).
		First(&bill).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bill, nil
}

func (r *repository) GetByBillNo(ctx context.Context, tenantCode, billNo string) (*models.Bill, error) {
	var bill models.Bill
	err := r.db.WithContext(ctx).
		Where("tenant_code = ? AND bill_no = ?", tenantCode, billNo).
		First(&bill).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bill, nil
}
