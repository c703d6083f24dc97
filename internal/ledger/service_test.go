package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/dineflow/dineflow-backend/pkg/db/models"
	"github.com/dineflow/dineflow-backend/pkg/enums"
	"gorm.io/gorm"
)

type fakeRepository struct {
	batches  [][]models.LedgerPosting
	accounts map[string]*models.LedgerAccount
	created  []*models.LedgerAccount
	batchErr error
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepository) CreateBatch(ctx context.Context, postings []models.LedgerPosting) error {
	if f.batchErr != nil {
		return f.batchErr
	}
	f.batches = append(f.batches, postings)
	return nil
}

func (f *fakeRepository) DeleteByBillNo(ctx context.Context, tenantCode, billNo string) error {
	return nil
}

func (f *fakeRepository) ListByBillNo(ctx context.Context, tenantCode, billNo string) ([]models.LedgerPosting, error) {
	return nil, nil
}

func (f *fakeRepository) FindAccountByCustomerID(ctx context.Context, tenantCode, customerID string) (*models.LedgerAccount, error) {
	if f.accounts == nil {
		return nil, nil
	}
	return f.accounts[customerID], nil
}

func (f *fakeRepository) CreateAccount(ctx context.Context, account *models.LedgerAccount) error {
	f.created = append(f.created, account)
	return nil
}

func TestService_ResolveCustomerAccountCreatesOnFirstUse(t *testing.T) {
	repo := &fakeRepository{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	customer := &models.Customer{ID: "42", Name: "Asha", Contact: "98765"}
	account, err := svc.ResolveCustomerAccount(context.Background(), "default", customer)
	if err != nil {
		t.Fatalf("ResolveCustomerAccount error: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one account creation, got %d", len(repo.created))
	}
	if account.Kind != enums.LedgerAccountKindCustomer || account.CustomerID != "42" {
		t.Fatalf("unexpected account: %+v", account)
	}
	if account.ID == "" {
		t.Fatal("expected a generated account id")
	}
}

func TestService_ResolveCustomerAccountReusesExisting(t *testing.T) {
	existing := &models.LedgerAccount{ID: "acct-1", CustomerID: "42"}
	repo := &fakeRepository{accounts: map[string]*models.LedgerAccount{"42": existing}}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	account, err := svc.ResolveCustomerAccount(context.Background(), "default", &models.Customer{ID: "42"})
	if err != nil {
		t.Fatalf("ResolveCustomerAccount error: %v", err)
	}
	if account != existing {
		t.Fatalf("expected existing account, got %+v", account)
	}
	if len(repo.created) != 0 {
		t.Fatal("should not create a second ledger for the same customer")
	}
}

func TestService_PostBillPersistsBatch(t *testing.T) {
	repo := &fakeRepository{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	postings, err := svc.PostBill(context.Background(), BuildInput{
		TenantCode: "default",
		BillNo:     "BILL-1-1",
		Cash:       dec("150"),
	})
	if err != nil {
		t.Fatalf("PostBill error: %v", err)
	}
	if len(repo.batches) != 1 || len(repo.batches[0]) != len(postings) {
		t.Fatalf("expected persisted batch to match built postings")
	}
}

func TestService_PostBillRepoError(t *testing.T) {
	repo := &fakeRepository{batchErr: errors.New("boom")}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	if _, err := svc.PostBill(context.Background(), BuildInput{
		TenantCode: "default",
		BillNo:     "BILL-1-2",
		Cash:       dec("10"),
	}); err == nil {
		t.Fatal("expected repo error to bubble up")
	}
}
