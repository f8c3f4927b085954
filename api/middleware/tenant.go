package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dukkonapp/dukkon-backend/api/responses"
	pkgerrors "github.com/dukkonapp/dukkon-backend/pkg/errors"
	"github.com/dukkonapp/dukkon-backend/pkg/logger"
)

const (
	tenantIDHeader  = "X-Tenant-ID"
	cashierIDHeader = "X-Cashier-ID"
)

// TenantContext resolves the tenant scope for every request from the
// gateway-injected headers. The tenant header is mandatory; the cashier
// header is optional here and enforced by the endpoints that post
// transactions.
func TenantContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(tenantIDHeader))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "tenant context missing"))
				return
			}

			tenantID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid tenant identifier"))
				return
			}

			ctx := WithTenantID(r.Context(), tenantID.String())
			if logg != nil {
				ctx = logg.WithTenantID(ctx, tenantID.String())
			}

			if raw := strings.TrimSpace(r.Header.Get(cashierIDHeader)); raw != "" {
				cashierID, err := uuid.Parse(raw)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid cashier identifier"))
					return
				}
				ctx = WithCashierID(ctx, cashierID.String())
				if logg != nil {
					ctx = logg.WithCashierID(ctx, cashierID.String())
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
