package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dineflow/dineflow-backend/api/middleware"
	"github.com/dineflow/dineflow-backend/api/responses"
	"github.com/dineflow/dineflow-backend/api/validators"
	"github.com/dineflow/dineflow-backend/internal/orders"
	pkgerrors "github.com/dineflow/dineflow-backend/pkg/errors"
	"github.com/dineflow/dineflow-backend/pkg/logger"
)

// PlaceOrder handles POST /api/v1/orders.
func PlaceOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := middleware.TenantFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tenant context missing"))
			return
		}

		var input orders.PlaceOrderInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		placed, err := svc.PlaceOrder(r.Context(), tenant, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, placed)
	}
}

// TableOrder handles GET /api/v1/tables/{tableID}/order.
func TableOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := middleware.TenantFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tenant context missing"))
			return
		}

		tableID := chi.URLParam(r, "tableID")
		view, err := svc.GetRunningOrder(r.Context(), tenant, tableID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// OrderDetail handles GET /api/v1/orders/{orderID}.
func OrderDetail(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := middleware.TenantFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tenant context missing"))
			return
		}

		orderID := chi.URLParam(r, "orderID")
		view, err := svc.GetOrder(r.Context(), tenant, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}
