package tables

import (
	"context"
	stdErrors "errors"

	"github.com/dineflow/dineflow-backend/pkg/db/models"
	"github.com/dineflow/dineflow-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository tracks dining table occupancy. Only dine-in and AC flows touch
// these rows; takeaway and delivery carry sentinel table ids.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	GetByID(ctx context.Context, tenantCode, tableID string) (*models.DiningTable, error)
	SetStatus(ctx context.Context, tenantCode, tableID string, status enums.TableStatus) error
	List(ctx context.Context, tenantCode string) ([]models.DiningTable, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a dining table repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) GetByID(ctx context.Context, tenantCode, tableID string) (*models.DiningTable, error) {
	var table models.DiningTable
	err := r.db.WithContext(ctx).
		Where("tenant_code = ? AND id = ?", tenantCode, tableID).
		First(&table).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &table, nil
}

func (r *repository) SetStatus(ctx context.Context, tenantCode, tableID string, status enums.TableStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.DiningTable{}).
		Where("tenant_code = ? AND id = ?", tenantCode, tableID).
		Update("status", status).Error
}

func (r *repository) List(ctx context.Context, tenantCode string) ([]models.DiningTable, error) {
	var tables []models.DiningTable
	if err := r.db.WithContext(ctx).
		Where("tenant_code = ?", tenantCode).
		Order("id ASC").
		Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}
