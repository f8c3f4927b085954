package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dukkonapp/dukkon-backend/api/middleware"
	pkgerrors "github.com/dukkonapp/dukkon-backend/pkg/errors"
)

func tenantIDFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := middleware.TenantIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "tenant context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid tenant identifier")
	}
	return id, nil
}

func cashierIDFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := middleware.CashierIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "cashier context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cashier identifier")
	}
	return id, nil
}
