package numbering

import (
	"context"
	stdErrors "errors"

	"github.com/dineflow/dineflow-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository increments named counters. Next must run inside a transaction
// so the FOR UPDATE lock serializes concurrent takers of the same counter.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Next(ctx context.Context, tenantCode, name string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a counter repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Next(ctx context.Context, tenantCode, name string) (int64, error) {
	var counter models.Counter
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("tenant_code = ? AND name = ?", tenantCode, name).
		First(&counter).Error
	if err != nil {
		if !stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return 0, err
		}
		counter = models.Counter{TenantCode: tenantCode, Name: name}
	}

	counter.LastValue++
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_code"}, {Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_value", "updated_at"}),
		}).
		Create(&counter).Error; err != nil {
		return 0, err
	}
	return counter.LastValue, nil
}
