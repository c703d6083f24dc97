package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dineflow/dineflow-backend/api/responses"
	"github.com/dineflow/dineflow-backend/pkg/config"
	pkgerrors "github.com/dineflow/dineflow-backend/pkg/errors"
	"github.com/dineflow/dineflow-backend/pkg/logger"
	"github.com/dineflow/dineflow-backend/pkg/types"
)

const (
	tenantCodeHeader = "X-Tenant-Code"
	counterIDHeader  = "X-Counter-Id"
)

type tenantContextKey struct{}

// TenantContext resolves the tenant context for every request: the tenant
// code and billing counter come from headers when present, falling back to
// the configured defaults. Requests with an invalid resolved context are
// rejected before reaching any handler.
func TenantContext(billing config.BillingConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenant := types.TenantContext{
				TenantCode:       headerOrDefault(r, tenantCodeHeader, billing.DefaultTenantCode),
				CounterID:        headerOrDefault(r, counterIDHeader, billing.DefaultCounterID),
				Precision:        billing.RoundingPrecision,
				WalkInCustomerID: billing.WalkInCustomerID,
			}
			if err := tenant.Validate(); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tenant context"))
				return
			}

			ctx := context.WithValue(r.Context(), tenantContextKey{}, tenant)
			if logg != nil {
				ctx = logg.WithTenantCode(ctx, tenant.TenantCode)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TenantFromContext returns the tenant context resolved by the middleware.
func TenantFromContext(ctx context.Context) (types.TenantContext, bool) {
	tenant, ok := ctx.Value(tenantContextKey{}).(types.TenantContext)
	return tenant, ok
}

func headerOrDefault(r *http.Request, header, fallback string) string {
	if v := strings.TrimSpace(r.Header.Get(header)); v != "" {
		return v
	}
	return fallback
}
