package numbering

import (
	"context"
	"fmt"

	"github.com/dineflow/dineflow-backend/pkg/enums"
	apperrors "github.com/dineflow/dineflow-backend/pkg/errors"
	"gorm.io/gorm"
)

// Counter names. Bill counters are per billing counter and series so the
// BILL and DUE streams never share numbers.
const (
	counterOrder = "order"
	counterKOT   = "kot"
)

// Service issues the monotonic identifiers the order and billing flows
// consume. All methods are expected to run on a transaction-bound instance
// so a rolled back flow never burns a visible gap.
type Service interface {
	WithTx(tx *gorm.DB) Service
	NextOrderID(ctx context.Context, tenantCode string) (string, error)
	NextKOTNumber(ctx context.Context, tenantCode string) (int, error)
	NextBillNo(ctx context.Context, tenantCode, counterID string, series enums.BillSeries) (string, error)
}

type service struct {
	repo Repository
}

// NewService wires a numbering service with the provided counter repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("numbering repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) WithTx(tx *gorm.DB) Service {
	if tx == nil {
		return s
	}
	return &service{repo: s.repo.WithTx(tx)}
}

func (s *service) NextOrderID(ctx context.Context, tenantCode string) (string, error) {
	if tenantCode == "" {
		return "", apperrors.New(apperrors.CodeValidation, "tenant code is required")
	}
	n, err := s.repo.Next(ctx, tenantCode, counterOrder)
	if err != nil {
		return "", apperrors.Upstream(err, "advancing order counter")
	}
	return fmt.Sprintf("ORD-%d", n), nil
}

func (s *service) NextKOTNumber(ctx context.Context, tenantCode string) (int, error) {
	if tenantCode == "" {
		return 0, apperrors.New(apperrors.CodeValidation, "tenant code is required")
	}
	n, err := s.repo.Next(ctx, tenantCode, counterKOT)
	if err != nil {
		return 0, apperrors.Upstream(err, "advancing kot counter")
	}
	return int(n), nil
}

func (s *service) NextBillNo(ctx context.Context, tenantCode, counterID string, series enums.BillSeries) (string, error) {
	if tenantCode == "" || counterID == "" {
		return "", apperrors.New(apperrors.CodeValidation, "tenant code and counter id are required")
	}
	if !series.IsValid() {
		return "", apperrors.New(apperrors.CodeValidation, fmt.Sprintf("invalid bill series %q", series))
	}
	name := fmt.Sprintf("bill:%s:%s", counterID, series)
	n, err := s.repo.Next(ctx, tenantCode, name)
	if err != nil {
		return "", apperrors.Upstream(err, "advancing bill counter")
	}
	return fmt.Sprintf("%s-%s-%d", series, counterID, n), nil
}
