package customers

import (
	"context"
	stdErrors "errors"

	"github.com/dineflow/dineflow-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes customer lookups for billing and IGST finalization.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	GetByID(ctx context.Context, tenantCode, customerID string) (*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a customer repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) GetByID(ctx context.Context, tenantCode, customerID string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("tenant_code = ? AND id = ?", tenantCode, customerID).
		First(&customer).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func (r *repository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}
