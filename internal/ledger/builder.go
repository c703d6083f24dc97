package ledger

import (
	"fmt"

	"github.com/dineflow/dineflow-backend/pkg/db/models"
	apperrors "github.com/dineflow/dineflow-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Fixed house ledger codes, seeded by migration.
const (
	AccountCash  = "1"
	AccountCard  = "2"
	AccountUPI   = "3"
	AccountSales = "5"
)

// Leg purposes. One posting batch carries at most one leg per purpose.
const (
	PurposeCash      = "tender:cash"
	PurposeCard      = "tender:card"
	PurposeUPI       = "tender:upi"
	PurposeDue       = "due"
	PurposeSales     = "sales"
	PurposeClearance = "due:clearance"
)

// BuildInput is the tender breakdown of one settled bill. Amounts are
// post-rounding; CustomerAccountID names the receivable ledger and is
// required whenever Due is positive or a due is being cleared.
// DueClearance marks a payment against an earlier due: the outbound leg
// then debits the customer ledger instead of the sales account.
type BuildInput struct {
	TenantCode        string
	BillNo            string
	Cash              decimal.Decimal
	Card              decimal.Decimal
	UPI               decimal.Decimal
	Due               decimal.Decimal
	CustomerAccountID string
	DueClearance      bool
}

// BuildPostings converts a tender breakdown into a balanced double-entry
// batch: one inbound leg per positive tender, one inbound leg on the
// customer ledger for any due, and a single outbound leg for the total,
// debiting sales for a plain sale or the customer ledger when clearing a
// due. The batch always satisfies sum(in) == sum(out).
func BuildPostings(in BuildInput) ([]models.LedgerPosting, error) {
	if in.TenantCode == "" || in.BillNo == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "tenant code and bill number are required")
	}
	for _, amt := range []decimal.Decimal{in.Cash, in.Card, in.UPI, in.Due} {
		if amt.IsNegative() {
			return nil, apperrors.New(apperrors.CodeValidation, "tender amounts cannot be negative")
		}
	}
	if (in.Due.IsPositive() || in.DueClearance) && in.CustomerAccountID == "" {
		return nil, apperrors.New(apperrors.CodeMissingCustomer,
			fmt.Sprintf("bill %s needs a customer ledger", in.BillNo))
	}

	leg := func(accountID, purpose string, amountIn decimal.Decimal) models.LedgerPosting {
		return models.LedgerPosting{
			TenantCode:      in.TenantCode,
			LedgerAccountID: accountID,
			BillNo:          in.BillNo,
			Purpose:         purpose,
			AmountIn:        amountIn,
			AmountOut:       decimal.Zero,
		}
	}

	var postings []models.LedgerPosting
	if in.Cash.IsPositive() {
		postings = append(postings, leg(AccountCash, PurposeCash, in.Cash))
	}
	if in.Card.IsPositive() {
		postings = append(postings, leg(AccountCard, PurposeCard, in.Card))
	}
	if in.UPI.IsPositive() {
		postings = append(postings, leg(AccountUPI, PurposeUPI, in.UPI))
	}
	if in.Due.IsPositive() {
		postings = append(postings, leg(in.CustomerAccountID, PurposeDue, in.Due))
	}
	if len(postings) == 0 {
		return nil, nil
	}

	total := in.Cash.Add(in.Card).Add(in.UPI).Add(in.Due)
	outAccount, outPurpose := AccountSales, PurposeSales
	if in.DueClearance {
		outAccount, outPurpose = in.CustomerAccountID, PurposeClearance
	}
	postings = append(postings, models.LedgerPosting{
		TenantCode:      in.TenantCode,
		LedgerAccountID: outAccount,
		BillNo:          in.BillNo,
		Purpose:         outPurpose,
		AmountIn:        decimal.Zero,
		AmountOut:       total,
	})
	return postings, nil
}
