package controllers

import (
	"net/http"

	"github.com/dineflow/dineflow-backend/api/middleware"
	"github.com/dineflow/dineflow-backend/api/responses"
	"github.com/dineflow/dineflow-backend/api/validators"
	"github.com/dineflow/dineflow-backend/internal/tax"
	"github.com/dineflow/dineflow-backend/internal/taxmaster"
	pkgerrors "github.com/dineflow/dineflow-backend/pkg/errors"
	"github.com/dineflow/dineflow-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

type taxPreviewRequest struct {
	Amount       decimal.Decimal `json:"amount" validate:"required"`
	TaxID        string          `json:"tax_id" validate:"required"`
	CessRate     decimal.Decimal `json:"cess_rate"`
	CessSpecific decimal.Decimal `json:"cess_specific"`
	Exclusive    bool            `json:"exclusive"`
	InterState   bool            `json:"inter_state"`
}

// TaxPreview handles POST /api/v1/tax/preview. It runs the same
// decomposition order placement uses, without persisting anything.
func TaxPreview(taxes taxmaster.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := middleware.TenantFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tenant context missing"))
			return
		}

		var req taxPreviewRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		split, err := taxes.SplitFor(r.Context(), tenant.TenantCode, req.TaxID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		in := tax.GSTInput{
			Amount:    req.Amount,
			GSTRate:   split.TaxPercentage,
			CGSTRate:  split.CGSTShare,
			SGSTRate:  split.SGSTShare,
			Inclusive: !req.Exclusive,
			Precision: tenant.Precision,
		}

		var breakdown tax.Breakdown
		if !req.CessRate.IsZero() || !req.CessSpecific.IsZero() {
			breakdown = tax.ComputeGSTWithCess(tax.GSTCessInput{
				GSTInput:     in,
				CessRate:     req.CessRate,
				CessSpecific: req.CessSpecific,
			})
		} else {
			breakdown = tax.ComputeGST(in)
		}
		if req.InterState {
			breakdown = breakdown.ZeroIntraState()
		}
		responses.WriteSuccess(w, breakdown)
	}
}

// RegisterTaxSplit handles POST /api/v1/tax/splits.
func RegisterTaxSplit(taxes taxmaster.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := middleware.TenantFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tenant context missing"))
			return
		}

		var input taxmaster.RegisterSplitInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.TenantCode = tenant.TenantCode

		split, err := taxes.Register(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, split)
	}
}

// ListTaxSplits handles GET /api/v1/tax/splits.
func ListTaxSplits(taxes taxmaster.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := middleware.TenantFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tenant context missing"))
			return
		}

		splits, err := taxes.List(r.Context(), tenant.TenantCode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, splits)
	}
}
