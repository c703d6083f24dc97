package controllers

import (
	"net/http"

	"github.com/dineflow/dineflow-backend/api/middleware"
	"github.com/dineflow/dineflow-backend/api/responses"
	"github.com/dineflow/dineflow-backend/internal/tables"
	pkgerrors "github.com/dineflow/dineflow-backend/pkg/errors"
	"github.com/dineflow/dineflow-backend/pkg/logger"
)

// ListTables handles GET /api/v1/tables.
func ListTables(repo tables.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := middleware.TenantFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tenant context missing"))
			return
		}

		list, err := repo.List(r.Context(), tenant.TenantCode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Upstream(err, "listing tables"))
			return
		}
		responses.WriteSuccess(w, list)
	}
}
