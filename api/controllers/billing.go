package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dineflow/dineflow-backend/api/middleware"
	"github.com/dineflow/dineflow-backend/api/responses"
	"github.com/dineflow/dineflow-backend/api/validators"
	"github.com/dineflow/dineflow-backend/internal/settlement"
	pkgerrors "github.com/dineflow/dineflow-backend/pkg/errors"
	"github.com/dineflow/dineflow-backend/pkg/logger"
)

// SettleBill handles POST /api/v1/bills.
func SettleBill(svc settlement.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := middleware.TenantFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tenant context missing"))
			return
		}

		var input settlement.SettleInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		settled, err := svc.Settle(r.Context(), tenant, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, settled)
	}
}

// BillDetail handles GET /api/v1/bills/{billNo}.
func BillDetail(svc settlement.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := middleware.TenantFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tenant context missing"))
			return
		}

		billNo := chi.URLParam(r, "billNo")
		settled, err := svc.GetBill(r.Context(), tenant, billNo)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, settled)
	}
}
