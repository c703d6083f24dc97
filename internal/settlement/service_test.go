package settlement

import (
	"context"
	"testing"

	"github.com/dineflow/dineflow-backend/internal/customers"
	"github.com/dineflow/dineflow-backend/internal/ledger"
	"github.com/dineflow/dineflow-backend/internal/numbering"
	"github.com/dineflow/dineflow-backend/internal/orders"
	"github.com/dineflow/dineflow-backend/internal/tables"
	"github.com/dineflow/dineflow-backend/pkg/db/models"
	"github.com/dineflow/dineflow-backend/pkg/enums"
	apperrors "github.com/dineflow/dineflow-backend/pkg/errors"
	"github.com/dineflow/dineflow-backend/pkg/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func dec(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return d
}

func testTenant() types.TenantContext {
	return types.TenantContext{
		TenantCode:       "default",
		CounterID:        "1",
		Precision:        2,
		WalkInCustomerID: "1",
	}
}

type fakeBillRepo struct {
	bills map[string]*models.Bill // keyed by order master id
}

func newFakeBillRepo() *fakeBillRepo {
	return &fakeBillRepo{bills: map[string]*models.Bill{}}
}

func (f *fakeBillRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeBillRepo) Create(ctx context.Context, bill *models.Bill) error {
	f.bills[bill.OrderMasterID] = bill
	return nil
}

func (f *fakeBillRepo) Update(ctx context.Context, bill *models.Bill) error {
	f.bills[bill.OrderMasterID] = bill
	return nil
}

func (f *fakeBillRepo) GetByOrderID(ctx context.Context, tenantCode, orderID string) (*models.Bill, error) {
	return f.bills[orderID], nil
}

func (f *fakeBillRepo) GetByBillNo(ctx context.Context, tenantCode, billNo string) (*models.Bill, error) {
	for _, bill := range f.bills {
		if bill.BillNo == billNo {
			return bill, nil
		}
	}
	return nil, nil
}

type fakeOrderRepo struct {
	orders            map[string]*models.OrderMaster
	lines             map[string][]models.OrderLine
	finalizedOrderID  string
	finalizedInter    bool
	finalizeTaxCalled bool
}

func (f *fakeOrderRepo) WithTx(tx *gorm.DB) orders.Repository { return f }

func (f *fakeOrderRepo) CreateOrder(ctx context.Context, order *models.OrderMaster) error {
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrderRepo) FindByID(ctx context.Context, tenantCode, orderID string) (*models.OrderMaster, error) {
	return f.orders[orderID], nil
}

func (f *fakeOrderRepo) FindRunningByTable(ctx context.Context, tenantCode, tableID string) (*models.OrderMaster, error) {
	return nil, nil
}

func (f *fakeOrderRepo) UpdateKOTNumber(ctx context.Context, tenantCode, orderID string, kotNumber int) error {
	return nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, tenantCode, orderID string, status enums.OrderStatus) error {
	if order, ok := f.orders[orderID]; ok {
		order.Status = status
	}
	return nil
}

func (f *fakeOrderRepo) FinalizeLineTax(ctx context.Context, orderID string, interState bool) error {
	f.finalizeTaxCalled = true
	f.finalizedOrderID = orderID
	f.finalizedInter = interState
	return nil
}

func (f *fakeOrderRepo) CreateLines(ctx context.Context, lines []models.OrderLine) error {
	return nil
}

func (f *fakeOrderRepo) ListLines(ctx context.Context, orderID string) ([]models.OrderLine, error) {
	return f.lines[orderID], nil
}

type fakeCustomerRepo struct {
	customers map[string]*models.Customer
}

func (f *fakeCustomerRepo) WithTx(tx *gorm.DB) customers.Repository { return f }

func (f *fakeCustomerRepo) GetByID(ctx context.Context, tenantCode, customerID string) (*models.Customer, error) {
	return f.customers[customerID], nil
}

func (f *fakeCustomerRepo) Create(ctx context.Context, customer *models.Customer) error {
	f.customers[customer.ID] = customer
	return nil
}

type fakeTableRepo struct {
	statuses map[string]enums.TableStatus
}

func (f *fakeTableRepo) WithTx(tx *gorm.DB) tables.Repository { return f }

func (f *fakeTableRepo) GetByID(ctx context.Context, tenantCode, tableID string) (*models.DiningTable, error) {
	return nil, nil
}

func (f *fakeTableRepo) SetStatus(ctx context.Context, tenantCode, tableID string, status enums.TableStatus) error {
	if f.statuses == nil {
		f.statuses = map[string]enums.TableStatus{}
	}
	f.statuses[tableID] = status
	return nil
}

func (f *fakeTableRepo) List(ctx context.Context, tenantCode string) ([]models.DiningTable, error) {
	return nil, nil
}

type fakeLedgerRepo struct {
	postings map[string][]models.LedgerPosting
	accounts map[string]*models.LedgerAccount
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{
		postings: map[string][]models.LedgerPosting{},
		accounts: map[string]*models.LedgerAccount{},
	}
}

func (f *fakeLedgerRepo) WithTx(tx *gorm.DB) ledger.Repository { return f }

func (f *fakeLedgerRepo) CreateBatch(ctx context.Context, batch []models.LedgerPosting) error {
	if len(batch) == 0 {
		return nil
	}
	billNo := batch[0].BillNo
	f.postings[billNo] = append(f.postings[billNo], batch...)
	return nil
}

func (f *fakeLedgerRepo) DeleteByBillNo(ctx context.Context, tenantCode, billNo string) error {
	delete(f.postings, billNo)
	return nil
}

func (f *fakeLedgerRepo) ListByBillNo(ctx context.Context, tenantCode, billNo string) ([]models.LedgerPosting, error) {
	return f.postings[billNo], nil
}

func (f *fakeLedgerRepo) FindAccountByCustomerID(ctx context.Context, tenantCode, customerID string) (*models.LedgerAccount, error) {
	return f.accounts[customerID], nil
}

func (f *fakeLedgerRepo) CreateAccount(ctx context.Context, account *models.LedgerAccount) error {
	f.accounts[account.CustomerID] = account
	return nil
}

type fakeCounterRepo struct {
	values map[string]int64
}

func (f *fakeCounterRepo) WithTx(tx *gorm.DB) numbering.Repository { return f }

func (f *fakeCounterRepo) Next(ctx context.Context, tenantCode, name string) (int64, error) {
	if f.values == nil {
		f.values = map[string]int64{}
	}
	f.values[name]++
	return f.values[name], nil
}

type fakeTxRunner struct{}

func (fakeTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fixture struct {
	svc     Service
	bills   *fakeBillRepo
	orders  *fakeOrderRepo
	ledger  *fakeLedgerRepo
	tables  *fakeTableRepo
	tenants types.TenantContext
}

// twoHundredLine is a settled decomposition worth 200 total: base 169.50,
// tax 30.50 at 18% inclusive, scaled to one line.
func twoHundredLine(orderID string) models.OrderLine {
	return models.OrderLine{
		OrderMasterID: orderID,
		MenuItemID:    "thali",
		Qty:           2,
		ActualRate:    dec("100.00"),
		Rate:          dec("84.75"),
		TaxAmount:     dec("30.50"),
		CGST:          dec("15.25"),
		SGST:          dec("15.25"),
		IGST:          dec("30.50"),
		GrandTotal:    dec("200.00"),
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	orderRepo := &fakeOrderRepo{
		orders: map[string]*models.OrderMaster{
			"ORD-1": {
				ID: "ORD-1", TenantCode: "default", TableID: "T1",
				Mode: enums.TableModeDineIn, Status: enums.OrderStatusRunning,
			},
		},
		lines: map[string][]models.OrderLine{
			"ORD-1": {twoHundredLine("ORD-1")},
		},
	}
	customerRepo := &fakeCustomerRepo{customers: map[string]*models.Customer{
		"1":  {ID: "1", TenantCode: "default", Name: "Walk-in"},
		"42": {ID: "42", TenantCode: "default", Name: "Asha", Contact: "98765"},
		"77": {ID: "77", TenantCode: "default", Name: "Sharma Transport", Contact: "91234", IGSTStatus: true},
	}}
	ledgerRepo := newFakeLedgerRepo()
	ledgerSvc, err := ledger.NewService(ledgerRepo)
	if err != nil {
		t.Fatalf("ledger service: %v", err)
	}
	numbers, err := numbering.NewService(&fakeCounterRepo{})
	if err != nil {
		t.Fatalf("numbering service: %v", err)
	}

	billRepo := newFakeBillRepo()
	tableRepo := &fakeTableRepo{}
	svc, err := NewService(billRepo, orderRepo, customerRepo, tableRepo, ledgerSvc, numbers, fakeTxRunner{}, nil, nil)
	if err != nil {
		t.Fatalf("settlement service: %v", err)
	}
	return &fixture{
		svc:     svc,
		bills:   billRepo,
		orders:  orderRepo,
		ledger:  ledgerRepo,
		tables:  tableRepo,
		tenants: testTenant(),
	}
}

func assertBalanced(t *testing.T, postings []models.LedgerPosting) {
	t.Helper()
	in, out := decimal.Zero, decimal.Zero
	for _, p := range postings {
		in = in.Add(p.AmountIn)
		out = out.Add(p.AmountOut)
	}
	if !in.Equal(out) {
		t.Fatalf("posting batch unbalanced: in=%s out=%s", in, out)
	}
}

func TestService_SettleFullCash(t *testing.T) {
	fx := newFixture(t)

	settled, err := fx.svc.Settle(context.Background(), fx.tenants, SettleInput{
		OrderID:  "ORD-1",
		Method:   enums.TenderMethodCash,
		Received: dec("200"),
	})
	if err != nil {
		t.Fatalf("Settle error: %v", err)
	}

	bill := settled.Bill
	if bill.BillNo != "BILL-1-1" {
		t.Fatalf("bill no = %s, want BILL-1-1", bill.BillNo)
	}
	if bill.Series != enums.BillSeriesBill {
		t.Fatalf("series = %s, want BILL", bill.Series)
	}
	if !bill.Cash.Equal(dec("200")) || !bill.Due.IsZero() || !bill.PendingAmt.IsZero() {
		t.Fatalf("unexpected tender columns: %+v", bill)
	}
	if !bill.GrandTotal.Equal(dec("200.00")) {
		t.Fatalf("grand total = %s, want 200.00", bill.GrandTotal)
	}

	if len(settled.Postings) != 2 {
		t.Fatalf("expected cash and sales legs, got %d", len(settled.Postings))
	}
	if settled.Postings[0].LedgerAccountID != ledger.AccountCash || !settled.Postings[0].AmountIn.Equal(dec("200")) {
		t.Fatalf("unexpected cash leg: %+v", settled.Postings[0])
	}
	if settled.Postings[1].LedgerAccountID != ledger.AccountSales || !settled.Postings[1].AmountOut.Equal(dec("200")) {
		t.Fatalf("unexpected sales leg: %+v", settled.Postings[1])
	}
	assertBalanced(t, settled.Postings)

	if fx.orders.orders["ORD-1"].Status != enums.OrderStatusCompleted {
		t.Fatal("order should complete on settlement")
	}
	if fx.tables.statuses["T1"] != enums.TableStatusAvailable {
		t.Fatal("table should be released on settlement")
	}
}

func TestService_SettleFinalizesIntraStateTax(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.svc.Settle(context.Background(), fx.tenants, SettleInput{
		OrderID:  "ORD-1",
		Method:   enums.TenderMethodCash,
		Received: dec("200"),
	})
	if err != nil {
		t.Fatalf("Settle error: %v", err)
	}

	if !fx.orders.finalizeTaxCalled {
		t.Fatal("settlement should finalize line tax")
	}
	if fx.orders.finalizedOrderID != "ORD-1" || fx.orders.finalizedInter {
		t.Fatalf("expected intra-state finalization for ORD-1, got order=%s inter=%v",
			fx.orders.finalizedOrderID, fx.orders.finalizedInter)
	}
}

func TestService_SettleFinalizesInterStateTax(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.svc.Settle(context.Background(), fx.tenants, SettleInput{
		OrderID:    "ORD-1",
		CustomerID: "77",
		Method:     enums.TenderMethodCard,
		Received:   dec("200"),
	})
	if err != nil {
		t.Fatalf("Settle error: %v", err)
	}

	if !fx.orders.finalizeTaxCalled || !fx.orders.finalizedInter {
		t.Fatal("inter-state customer should finalize lines on IGST")
	}
}

func TestService_SettlePartialCashBecomesDue(t *testing.T) {
	fx := newFixture(t)

	settled, err := fx.svc.Settle(context.Background(), fx.tenants, SettleInput{
		OrderID:    "ORD-1",
		CustomerID: "42",
		Method:     enums.TenderMethodCash,
		Received:   dec("120"),
	})
	if err != nil {
		t.Fatalf("Settle error: %v", err)
	}

	bill := settled.Bill
	if bill.Series != enums.BillSeriesDue || bill.BillNo != "DUE-1-1" {
		t.Fatalf("expected DUE-1-1, got %s on series %s", bill.BillNo, bill.Series)
	}
	if !bill.Due.Equal(dec("80")) || !bill.PendingAmt.Equal(dec("80")) {
		t.Fatalf("due = %s pending = %s, want 80/80", bill.Due, bill.PendingAmt)
	}
	if !bill.ReceivedAmt.Equal(dec("120")) {
		t.Fatalf("received = %s, want 120", bill.ReceivedAmt)
	}

	if len(settled.Postings) != 3 {
		t.Fatalf("expected cash, due and sales legs, got %d", len(settled.Postings))
	}
	assertBalanced(t, settled.Postings)
}

func TestService_SettlePureDue(t *testing.T) {
	fx := newFixture(t)

	settled, err := fx.svc.Settle(context.Background(), fx.tenants, SettleInput{
		OrderID:    "ORD-1",
		CustomerID: "42",
		Method:     enums.TenderMethodDue,
	})
	if err != nil {
		t.Fatalf("Settle error: %v", err)
	}

	bill := settled.Bill
	if !bill.ReceivedAmt.IsZero() {
		t.Fatalf("pure due should receive nothing, got %s", bill.ReceivedAmt)
	}
	if !bill.Due.Equal(dec("200.00")) {
		t.Fatalf("due = %s, want 200.00", bill.Due)
	}
	if len(settled.Postings) != 2 {
		t.Fatalf("expected customer and sales legs, got %d", len(settled.Postings))
	}
	if settled.Postings[0].Purpose != ledger.PurposeDue {
		t.Fatalf("first leg should hit the customer ledger, got %+v", settled.Postings[0])
	}
	assertBalanced(t, settled.Postings)
}

func TestService_SettleWalkInCannotTakeDue(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.svc.Settle(context.Background(), fx.tenants, SettleInput{
		OrderID: "ORD-1",
		Method:  enums.TenderMethodDue,
	})
	if appErr := apperrors.As(err); appErr == nil || appErr.Code() != apperrors.CodeMissingCustomer {
		t.Fatalf("expected missing customer code, got %v", err)
	}
	if len(fx.bills.bills) != 0 {
		t.Fatal("no bill should be written for a rejected settlement")
	}
}

func TestService_SettleSplitTender(t *testing.T) {
	fx := newFixture(t)

	settled, err := fx.svc.Settle(context.Background(), fx.tenants, SettleInput{
		OrderID: "ORD-1",
		Method:  enums.TenderMethodOthers,
		Cash:    dec("100"),
		Card:    dec("60"),
		UPI:     dec("40"),
	})
	if err != nil {
		t.Fatalf("Settle error: %v", err)
	}

	bill := settled.Bill
	if bill.Series != enums.BillSeriesBill {
		t.Fatalf("fully tendered split should stay on BILL, got %s", bill.Series)
	}
	if len(settled.Postings) != 4 {
		t.Fatalf("expected three tender legs plus sales, got %d", len(settled.Postings))
	}
	assertBalanced(t, settled.Postings)
}

func TestService_SettleTwiceRejected(t *testing.T) {
	fx := newFixture(t)

	if _, err := fx.svc.Settle(context.Background(), fx.tenants, SettleInput{
		OrderID:  "ORD-1",
		Method:   enums.TenderMethodCash,
		Received: dec("200"),
	}); err != nil {
		t.Fatalf("first Settle error: %v", err)
	}

	_, err := fx.svc.Settle(context.Background(), fx.tenants, SettleInput{
		OrderID:  "ORD-1",
		Method:   enums.TenderMethodCash,
		Received: dec("200"),
	})
	if appErr := apperrors.As(err); appErr == nil || appErr.Code() != apperrors.CodeAlreadyBilled {
		t.Fatalf("expected already billed code, got %v", err)
	}
}

func TestService_RebillReusesNumberAndResetsPostings(t *testing.T) {
	fx := newFixture(t)

	first, err := fx.svc.Settle(context.Background(), fx.tenants, SettleInput{
		OrderID:    "ORD-1",
		CustomerID: "42",
		Method:     enums.TenderMethodCash,
		Received:   dec("120"),
	})
	if err != nil {
		t.Fatalf("first Settle error: %v", err)
	}

	second, err := fx.svc.Settle(context.Background(), fx.tenants, SettleInput{
		OrderID:    "ORD-1",
		CustomerID: "42",
		Method:     enums.TenderMethodCash,
		Received:   dec("200"),
		Rebill:     true,
	})
	if err != nil {
		t.Fatalf("rebill Settle error: %v", err)
	}

	if second.Bill.BillNo != first.Bill.BillNo {
		t.Fatalf("rebill must reuse %s, got %s", first.Bill.BillNo, second.Bill.BillNo)
	}
	if !second.Bill.Due.IsZero() || !second.Bill.PendingAmt.IsZero() {
		t.Fatalf("rebill should clear the due, got %+v", second.Bill)
	}

	postings := fx.ledger.postings[second.Bill.BillNo]
	if len(postings) != 2 {
		t.Fatalf("old postings must be replaced, found %d legs", len(postings))
	}
	assertBalanced(t, postings)
}

func TestService_RebillWithoutBillRejected(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.svc.Settle(context.Background(), fx.tenants, SettleInput{
		OrderID:  "ORD-1",
		Method:   enums.TenderMethodCash,
		Received: dec("200"),
		Rebill:   true,
	})
	if appErr := apperrors.As(err); appErr == nil || appErr.Code() != apperrors.CodeStateConflict {
		t.Fatalf("expected state conflict code, got %v", err)
	}
}

func TestService_SettleOverpaymentGivesChange(t *testing.T) {
	fx := newFixture(t)

	settled, err := fx.svc.Settle(context.Background(), fx.tenants, SettleInput{
		OrderID:  "ORD-1",
		Method:   enums.TenderMethodCash,
		Received: dec("250"),
	})
	if err != nil {
		t.Fatalf("Settle error: %v", err)
	}

	bill := settled.Bill
	if bill.Series != enums.BillSeriesBill {
		t.Fatalf("overpaid cash sale should stay on BILL, got %s", bill.Series)
	}
	if !bill.ReceivedAmt.Equal(dec("250")) || !bill.ChangeAmt.Equal(dec("50")) {
		t.Fatalf("received/change = %s/%s, want 250/50", bill.ReceivedAmt, bill.ChangeAmt)
	}
	if !bill.Due.IsZero() || !bill.PendingAmt.IsZero() {
		t.Fatalf("overpayment must not create a due, got %+v", bill)
	}
	if !bill.Cash.Equal(dec("200")) {
		t.Fatalf("cash leg must be capped at the total, got %s", bill.Cash)
	}

	if len(settled.Postings) != 2 {
		t.Fatalf("expected cash and sales legs, got %d", len(settled.Postings))
	}
	if !settled.Postings[0].AmountIn.Equal(dec("200")) {
		t.Fatalf("cash posting must exclude the change, got %+v", settled.Postings[0])
	}
	assertBalanced(t, settled.Postings)
}

func TestService_SettleCashClearsDue(t *testing.T) {
	fx := newFixture(t)

	settled, err := fx.svc.Settle(context.Background(), fx.tenants, SettleInput{
		OrderID:    "ORD-1",
		CustomerID: "42",
		Method:     enums.TenderMethodCash,
		Received:   dec("200"),
		Voucher:    enums.VoucherTypeDue,
	})
	if err != nil {
		t.Fatalf("Settle error: %v", err)
	}

	bill := settled.Bill
	if bill.Series != enums.BillSeriesDue || bill.BillNo != "DUE-1-1" {
		t.Fatalf("due voucher must number on the DUE series, got %s on %s", bill.BillNo, bill.Series)
	}
	if !bill.ReceivedAmt.Equal(dec("200")) || !bill.Due.IsZero() {
		t.Fatalf("a paid clearance records the tender, got received=%s due=%s", bill.ReceivedAmt, bill.Due)
	}

	if len(settled.Postings) != 2 {
		t.Fatalf("expected cash and clearance legs, got %d", len(settled.Postings))
	}
	cashLeg, clearLeg := settled.Postings[0], settled.Postings[1]
	if cashLeg.LedgerAccountID != ledger.AccountCash || !cashLeg.AmountIn.Equal(dec("200")) {
		t.Fatalf("clearing cash must credit the cash account, got %+v", cashLeg)
	}
	if clearLeg.Purpose != ledger.PurposeClearance || clearLeg.LedgerAccountID == ledger.AccountSales {
		t.Fatalf("clearance must debit the customer ledger, got %+v", clearLeg)
	}
	if !clearLeg.AmountOut.Equal(dec("200")) {
		t.Fatalf("clearance debit = %s, want 200", clearLeg.AmountOut)
	}
	assertBalanced(t, settled.Postings)
}

func TestService_SettleWalkInCannotClearDue(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.svc.Settle(context.Background(), fx.tenants, SettleInput{
		OrderID:  "ORD-1",
		Method:   enums.TenderMethodCash,
		Received: dec("200"),
		Voucher:  enums.VoucherTypeDue,
	})
	if appErr := apperrors.As(err); appErr == nil || appErr.Code() != apperrors.CodeMissingCustomer {
		t.Fatalf("expected missing customer code, got %v", err)
	}
	if len(fx.bills.bills) != 0 {
		t.Fatal("no bill should be written for a rejected clearance")
	}
}
