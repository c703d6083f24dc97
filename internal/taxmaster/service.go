package taxmaster

import (
	"context"
	"fmt"

	"github.com/dineflow/dineflow-backend/pkg/db/models"
	apperrors "github.com/dineflow/dineflow-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Service resolves GST rate splits for order pricing. Splits are validated
// at ingestion so lookups can trust cgst+sgst == rate without rechecking.
type Service interface {
	SplitFor(ctx context.Context, tenantCode, taxID string) (*models.TaxSplit, error)
	Register(ctx context.Context, input RegisterSplitInput) (*models.TaxSplit, error)
	List(ctx context.Context, tenantCode string) ([]models.TaxSplit, error)
}

type service struct {
	repo Repository
}

// RegisterSplitInput carries one tax master row for upsert.
type RegisterSplitInput struct {
	TenantCode    string          `json:"tenant_code"`
	TaxID         string          `json:"tax_id"`
	TaxPercentage decimal.Decimal `json:"tax_percentage"`
	CGSTShare     decimal.Decimal `json:"cgst_share"`
	SGSTShare     decimal.Decimal `json:"sgst_share"`
}

// NewService wires a tax master service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("taxmaster repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) SplitFor(ctx context.Context, tenantCode, taxID string) (*models.TaxSplit, error) {
	if tenantCode == "" || taxID == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "tenant code and tax id are required")
	}
	split, err := s.repo.GetByTaxID(ctx, tenantCode, taxID)
	if err != nil {
		return nil, apperrors.Upstream(err, "loading tax split")
	}
	if split == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("tax split %q not found", taxID))
	}
	return split, nil
}

func (s *service) Register(ctx context.Context, input RegisterSplitInput) (*models.TaxSplit, error) {
	if input.TenantCode == "" || input.TaxID == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "tenant code and tax id are required")
	}
	if input.TaxPercentage.IsNegative() {
		return nil, apperrors.New(apperrors.CodeValidation, "tax percentage cannot be negative")
	}
	if input.CGSTShare.IsNegative() || input.SGSTShare.IsNegative() {
		return nil, apperrors.New(apperrors.CodeValidation, "tax shares cannot be negative")
	}
	if !input.CGSTShare.Add(input.SGSTShare).Equal(input.TaxPercentage) {
		return nil, apperrors.New(apperrors.CodeValidation,
			fmt.Sprintf("cgst %s + sgst %s must equal tax percentage %s",
				input.CGSTShare, input.SGSTShare, input.TaxPercentage))
	}

	split := &models.TaxSplit{
		TaxID:         input.TaxID,
		TenantCode:    input.TenantCode,
		TaxPercentage: input.TaxPercentage,
		CGSTShare:     input.CGSTShare,
		SGSTShare:     input.SGSTShare,
	}
	if err := s.repo.Upsert(ctx, split); err != nil {
		return nil, apperrors.Upstream(err, "storing tax split")
	}
	return split, nil
}

func (s *service) List(ctx context.Context, tenantCode string) ([]models.TaxSplit, error) {
	if tenantCode == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "tenant code is required")
	}
	splits, err := s.repo.List(ctx, tenantCode)
	if err != nil {
		return nil, apperrors.Upstream(err, "listing tax splits")
	}
	return splits, nil
}
