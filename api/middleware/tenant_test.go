package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dineflow/dineflow-backend/pkg/config"
)

func billingDefaults() config.BillingConfig {
	return config.BillingConfig{
		DefaultTenantCode: "default",
		DefaultCounterID:  "1",
		RoundingPrecision: 2,
		WalkInCustomerID:  "1",
	}
}

func TestTenantContextDefaults(t *testing.T) {
	var seenTenant string
	var seenCounter string
	handler := TenantContext(billingDefaults(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := TenantFromContext(r.Context())
		if !ok {
			t.Fatal("tenant context not attached")
		}
		seenTenant = tenant.TenantCode
		seenCounter = tenant.CounterID
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tables", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seenTenant != "default" || seenCounter != "1" {
		t.Fatalf("expected configured defaults, got %s/%s", seenTenant, seenCounter)
	}
}

func TestTenantContextHeadersOverride(t *testing.T) {
	var seenTenant string
	var seenCounter string
	handler := TenantContext(billingDefaults(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenant, _ := TenantFromContext(r.Context())
		seenTenant = tenant.TenantCode
		seenCounter = tenant.CounterID
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tables", nil)
	req.Header.Set("X-Tenant-Code", "branch-2")
	req.Header.Set("X-Counter-Id", "3")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seenTenant != "branch-2" || seenCounter != "3" {
		t.Fatalf("headers should win, got %s/%s", seenTenant, seenCounter)
	}
}

func TestTenantContextInvalidConfigRejected(t *testing.T) {
	cfg := billingDefaults()
	cfg.RoundingPrecision = 7

	called := false
	handler := TenantContext(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/tables", nil))

	if called {
		t.Fatal("handler should not run with an invalid tenant context")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
