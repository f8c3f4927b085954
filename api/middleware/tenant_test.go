package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestTenantContextRequiresHeader(t *testing.T) {
	mw := TenantContext(nil)
	handlerCalled := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sales", nil)
	rec := httptest.NewRecorder()
	mw(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
	if handlerCalled {
		t.Fatalf("handler should not run without tenant header")
	}
}

func TestTenantContextRejectsMalformedTenant(t *testing.T) {
	mw := TenantContext(nil)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sales", nil)
	req.Header.Set("X-Tenant-ID", "not-a-uuid")
	rec := httptest.NewRecorder()
	mw(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestTenantContextInjectsIdentifiers(t *testing.T) {
	tenantID := uuid.New()
	cashierID := uuid.New()

	mw := TenantContext(nil)
	var gotTenant, gotCashier string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTenant = TenantIDFromContext(r.Context())
		gotCashier = CashierIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil)
	req.Header.Set("X-Tenant-ID", tenantID.String())
	req.Header.Set("X-Cashier-ID", cashierID.String())
	rec := httptest.NewRecorder()
	mw(handler).ServeHTTP(rec, req)

	if gotTenant != tenantID.String() {
		t.Fatalf("expected tenant %s got %s", tenantID, gotTenant)
	}
	if gotCashier != cashierID.String() {
		t.Fatalf("expected cashier %s got %s", cashierID, gotCashier)
	}
}

func TestTenantContextCashierOptional(t *testing.T) {
	mw := TenantContext(nil)
	var gotCashier string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCashier = CashierIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sales", nil)
	req.Header.Set("X-Tenant-ID", uuid.NewString())
	rec := httptest.NewRecorder()
	mw(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if gotCashier != "" {
		t.Fatalf("expected empty cashier, got %s", gotCashier)
	}
}
