package ledger

import (
	"context"
	stdErrors "errors"

	"github.com/dineflow/dineflow-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository manages persistence for ledger accounts and posting legs.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateBatch(ctx context.Context, postings []models.LedgerPosting) error
	DeleteByBillNo(ctx context.Context, tenantCode, billNo string) error
	ListByBillNo(ctx context.Context, tenantCode, billNo string) ([]models.LedgerPosting, error)
	FindAccountByCustomerID(ctx context.Context, tenantCode, customerID string) (*models.LedgerAccount, error)
	CreateAccount(ctx context.Context, account *models.LedgerAccount) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a ledger repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateBatch(ctx context.Context, postings []models.LedgerPosting) error {
	if len(postings) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&postings).Error
}

func (r *repository) DeleteByBillNo(ctx context.Context, tenantCode, billNo string) error {
	return r.db.WithContext(ctx).
		Where("tenant_code = ? AND bill_no = ?", tenantCode, billNo).
		Delete(&models.LedgerPosting{}).Error
}

func (r *repository) ListByBillNo(ctx context.Context, tenantCode, billNo string) ([]models.LedgerPosting, error) {
	var postings []models.LedgerPosting
	if err := r.db.WithContext(ctx).
		Where("tenant_code = ? AND bill_no = ?", tenantCode, billNo).
		Order("created_at ASC").
		Find(&postings).Error; err != nil {
		return nil, err
	}
	return postings, nil
}

func (r *repository) FindAccountByCustomerID(ctx context.Context, tenantCode, customerID string) (*models.LedgerAccount, error) {
	var account models.LedgerAccount
	err := r.db.WithContext(ctx).
		Where("tenant_code = ? AND customer_id = ?", tenantCode, customerID).
		First(&account).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *repository) CreateAccount(ctx context.Context, account *models.LedgerAccount) error {
	return r.db.WithContext(ctx).Create(account).Error
}
