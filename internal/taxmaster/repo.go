package taxmaster

import (
	"context"
	stdErrors "errors"

	"github.com/dineflow/dineflow-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository manages persistence for tax split master rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Upsert(ctx context.Context, split *models.TaxSplit) error
	GetByTaxID(ctx context.Context, tenantCode, taxID string) (*models.TaxSplit, error)
	List(ctx context.Context, tenantCode string) ([]models.TaxSplit, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a tax split repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Upsert(ctx context.Context, split *models.TaxSplit) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "tax_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"tax_percentage", "cgst_share", "sgst_share", "updated_at",
			}),
		}).
		Create(split).Error
}

func (r *repository) GetByTaxID(ctx context.Context, tenantCode, taxID string) (*models.TaxSplit, error) {
	var split models.TaxSplit
	err := r.db.WithContext(ctx).
		Where("tenant_code = ? AND tax_id = ?", tenantCode, taxID).
		First(&split).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &split, nil
}

func (r *repository) List(ctx context.Context, tenantCode string) ([]models.TaxSplit, error) {
	var splits []models.TaxSplit
	if err := r.db.WithContext(ctx).
		Where("tenant_code = ?", tenantCode).
		Order("tax_id ASC").
		Find(&splits).Error; err != nil {
		return nil, err
	}
	return splits, nil
}
