package menu

import (
	"context"
	stdErrors "errors"

	"github.com/dineflow/dineflow-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes the menu item lookups order placement needs.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	GetByID(ctx context.Context, tenantCode, itemID string) (*models.MenuItem, error)
	GetByIDs(ctx context.Context, tenantCode string, itemIDs []string) (map[string]models.MenuItem, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a menu repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) GetByID(ctx context.Context, tenantCode, itemID string) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.WithContext(ctx).
		Where("tenant_code = ? AND id = ?", tenantCode, itemID).
		First(&item).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *repository) GetByIDs(ctx context.Context, tenantCode string, itemIDs []string) (map[string]models.MenuItem, error) {
	if len(itemIDs) == 0 {
		return map[string]models.MenuItem{}, nil
	}
	var items []models.MenuItem
	if err := r.db.WithContext(ctx).
		Where("tenant_code = ? AND id IN ?", tenantCode, itemIDs).
		Find(&items).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]models.MenuItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return byID, nil
}
