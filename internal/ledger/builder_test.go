package ledger

import (
	"testing"

	"github.com/dineflow/dineflow-backend/pkg/db/models"
	apperrors "github.com/dineflow/dineflow-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

func dec(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return d
}

func assertBalanced(t *testing.T, postings []models.LedgerPosting) {
	t.Helper()
	in, out := decimal.Zero, decimal.Zero
	for _, p := range postings {
		in = in.Add(p.AmountIn)
		out = out.Add(p.AmountOut)
	}
	if !in.Equal(out) {
		t.Fatalf("batch unbalanced: in=%s out=%s", in, out)
	}
}

func TestBuildPostingsFullCash(t *testing.T) {
	t.Parallel()

	postings, err := BuildPostings(BuildInput{
		TenantCode: "default",
		BillNo:     "BILL-1-7",
		Cash:       dec("200"),
	})
	if err != nil {
		t.Fatalf("BuildPostings error: %v", err)
	}
	if len(postings) != 2 {
		t.Fatalf("expected 2 legs, got %d", len(postings))
	}
	if postings[0].LedgerAccountID != AccountCash || !postings[0].AmountIn.Equal(dec("200")) {
		t.Fatalf("unexpected cash leg: %+v", postings[0])
	}
	if postings[1].LedgerAccountID != AccountSales || !postings[1].AmountOut.Equal(dec("200")) {
		t.Fatalf("unexpected sales leg: %+v", postings[1])
	}
	assertBalanced(t, postings)
}

func TestBuildPostingsPartialCashWithDue(t *testing.T) {
	t.Parallel()

	postings, err := BuildPostings(BuildInput{
		TenantCode:        "default",
		BillNo:            "DUE-1-3",
		Cash:              dec("120"),
		Due:               dec("80"),
		CustomerAccountID: "cust-ledger-9",
	})
	if err != nil {
		t.Fatalf("BuildPostings error: %v", err)
	}
	if len(postings) != 3 {
		t.Fatalf("expected 3 legs, got %d", len(postings))
	}
	if postings[1].LedgerAccountID != "cust-ledger-9" || !postings[1].AmountIn.Equal(dec("80")) {
		t.Fatalf("unexpected due leg: %+v", postings[1])
	}
	if !postings[2].AmountOut.Equal(dec("200")) {
		t.Fatalf("sales leg should carry the full total: %+v", postings[2])
	}
	assertBalanced(t, postings)
}

func TestBuildPostingsPureDueIsTwoLegs(t *testing.T) {
	t.Parallel()

	postings, err := BuildPostings(BuildInput{
		TenantCode:        "default",
		BillNo:            "DUE-1-4",
		Due:               dec("450"),
		CustomerAccountID: "cust-ledger-2",
	})
	if err != nil {
		t.Fatalf("BuildPostings error: %v", err)
	}
	if len(postings) != 2 {
		t.Fatalf("expected 2 legs, got %d", len(postings))
	}
	if postings[0].Purpose != PurposeDue || postings[1].Purpose != PurposeSales {
		t.Fatalf("unexpected purposes: %s, %s", postings[0].Purpose, postings[1].Purpose)
	}
	assertBalanced(t, postings)
}

func TestBuildPostingsSplitTender(t *testing.T) {
	t.Parallel()

	postings, err := BuildPostings(BuildInput{
		TenantCode: "default",
		BillNo:     "BILL-1-8",
		Cash:       dec("100"),
		Card:       dec("50.50"),
		UPI:        dec("49.50"),
	})
	if err != nil {
		t.Fatalf("BuildPostings error: %v", err)
	}
	if len(postings) != 4 {
		t.Fatalf("expected 4 legs, got %d", len(postings))
	}
	if !postings[3].AmountOut.Equal(dec("200")) {
		t.Fatalf("sales leg should aggregate tenders: %+v", postings[3])
	}
	assertBalanced(t, postings)
}

func TestBuildPostingsCashClearingDue(t *testing.T) {
	t.Parallel()

	postings, err := BuildPostings(BuildInput{
		TenantCode:        "default",
		BillNo:            "DUE-1-6",
		Cash:              dec("200"),
		CustomerAccountID: "cust-ledger-9",
		DueClearance:      true,
	})
	if err != nil {
		t.Fatalf("BuildPostings error: %v", err)
	}
	if len(postings) != 2 {
		t.Fatalf("expected 2 legs, got %d", len(postings))
	}
	if postings[0].LedgerAccountID != AccountCash || !postings[0].AmountIn.Equal(dec("200")) {
		t.Fatalf("clearing cash must credit the cash account: %+v", postings[0])
	}
	if postings[1].LedgerAccountID != "cust-ledger-9" || postings[1].Purpose != PurposeClearance {
		t.Fatalf("clearance must debit the customer ledger, not sales: %+v", postings[1])
	}
	assertBalanced(t, postings)
}

func TestBuildPostingsSplitTenderClearingDue(t *testing.T) {
	t.Parallel()

	postings, err := BuildPostings(BuildInput{
		TenantCode:        "default",
		BillNo:            "DUE-1-7",
		Cash:              dec("120"),
		UPI:               dec("80"),
		CustomerAccountID: "cust-ledger-9",
		DueClearance:      true,
	})
	if err != nil {
		t.Fatalf("BuildPostings error: %v", err)
	}
	if len(postings) != 3 {
		t.Fatalf("expected 3 legs, got %d", len(postings))
	}
	last := postings[2]
	if last.LedgerAccountID != "cust-ledger-9" || !last.AmountOut.Equal(dec("200")) {
		t.Fatalf("clearance debit should aggregate tenders on the customer ledger: %+v", last)
	}
	assertBalanced(t, postings)
}

func TestBuildPostingsClearanceWithoutCustomerLedger(t *testing.T) {
	t.Parallel()

	_, err := BuildPostings(BuildInput{
		TenantCode:   "default",
		BillNo:       "DUE-1-8",
		Cash:         dec("200"),
		DueClearance: true,
	})
	if appErr := apperrors.As(err); appErr == nil || appErr.Code() != apperrors.CodeMissingCustomer {
		t.Fatalf("expected missing customer code, got %v", err)
	}
}

func TestBuildPostingsDueWithoutCustomerLedger(t *testing.T) {
	t.Parallel()

	_, err := BuildPostings(BuildInput{
		TenantCode: "default",
		BillNo:     "DUE-1-5",
		Due:        dec("10"),
	})
	if appErr := apperrors.As(err); appErr == nil || appErr.Code() != apperrors.CodeMissingCustomer {
		t.Fatalf("expected missing customer code, got %v", err)
	}
}

func TestBuildPostingsNegativeTenderRejected(t *testing.T) {
	t.Parallel()

	_, err := BuildPostings(BuildInput{
		TenantCode: "default",
		BillNo:     "BILL-1-9",
		Cash:       dec("-1"),
	})
	if appErr := apperrors.As(err); appErr == nil || appErr.Code() != apperrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestBuildPostingsZeroAmountsNoLegs(t *testing.T) {
	t.Parallel()

	postings, err := BuildPostings(BuildInput{
		TenantCode: "default",
		BillNo:     "BILL-1-10",
	})
	if err != nil {
		t.Fatalf("BuildPostings error: %v", err)
	}
	if len(postings) != 0 {
		t.Fatalf("expected no legs for a zero bill, got %d", len(postings))
	}
}
