package ledger

import (
	"context"
	"fmt"

	"github.com/dineflow/dineflow-backend/pkg/db/models"
	"github.com/dineflow/dineflow-backend/pkg/enums"
	apperrors "github.com/dineflow/dineflow-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service records settlement postings. PostBill builds and persists the
// batch in one step; a re-bill deletes the previous batch first so the
// account history never double counts a corrected bill.
type Service interface {
	WithTx(tx *gorm.DB) Service
	ResolveCustomerAccount(ctx context.Context, tenantCode string, customer *models.Customer) (*models.LedgerAccount, error)
	PostBill(ctx context.Context, input BuildInput) ([]models.LedgerPosting, error)
	ResetBill(ctx context.Context, tenantCode, billNo string) error
	ListByBillNo(ctx context.Context, tenantCode, billNo string) ([]models.LedgerPosting, error)
}

type service struct {
	repo Repository
}

// NewService wires a ledger service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) WithTx(tx *gorm.DB) Service {
	if tx == nil {
		return s
	}
	return &service{repo: s.repo.WithTx(tx)}
}

// ResolveCustomerAccount returns the receivable ledger for a customer,
// creating it on first use.
func (s *service) ResolveCustomerAccount(ctx context.Context, tenantCode string, customer *models.Customer) (*models.LedgerAccount, error) {
	if customer == nil {
		return nil, apperrors.New(apperrors.CodeValidation, "customer is required")
	}
	account, err := s.repo.FindAccountByCustomerID(ctx, tenantCode, customer.ID)
	if err != nil {
		return nil, apperrors.Upstream(err, "looking up customer ledger")
	}
	if account != nil {
		return account, nil
	}

	account = &models.LedgerAccount{
		ID:         uuid.NewString(),
		TenantCode: tenantCode,
		Kind:       enums.LedgerAccountKindCustomer,
		Name:       customer.Name,
		Contact:    customer.Contact,
		CustomerID: customer.ID,
	}
	if err := s.repo.CreateAccount(ctx, account); err != nil {
		return nil, apperrors.Upstream(err, "creating customer ledger")
	}
	return account, nil
}

func (s *service) PostBill(ctx context.Context, input BuildInput) ([]models.LedgerPosting, error) {
	postings, err := BuildPostings(input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateBatch(ctx, postings); err != nil {
		return nil, apperrors.Upstream(err, "persisting ledger postings")
	}
	return postings, nil
}

func (s *service) ResetBill(ctx context.Context, tenantCode, billNo string) error {
	if err := s.repo.DeleteByBillNo(ctx, tenantCode, billNo); err != nil {
		return apperrors.Upstream(err, "clearing previous postings")
	}
	return nil
}

func (s *service) ListByBillNo(ctx context.Context, tenantCode, billNo string) ([]models.LedgerPosting, error) {
	postings, err := s.repo.ListByBillNo(ctx, tenantCode, billNo)
	if err != nil {
		return nil, apperrors.Upstream(err, "listing ledger postings")
	}
	return postings, nil
}
