package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolationPgError(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "idx_customers_tenant_phone"}

	if !IsUniqueViolation(dup, "") {
		t.Fatal("expected 23505 to be a unique violation")
	}
	if !IsUniqueViolation(dup, "idx_customers_tenant_phone") {
		t.Fatal("expected constraint name to match")
	}
	if IsUniqueViolation(dup, "idx_variants_tenant_sku") {
		t.Fatal("expected mismatched constraint to be rejected")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}, "") {
		t.Fatal("foreign key violation is not a unique violation")
	}

	wrapped := fmt.Errorf("create customer: %w", dup)
	if !IsUniqueViolation(wrapped, "idx_customers_tenant_phone") {
		t.Fatal("expected wrapped pg error to be recognized")
	}
}

func TestIsUniqueViolationMessageFallback(t *testing.T) {
	pg := errors.New(`ERROR: duplicate key value violates unique constraint "idx_variants_tenant_sku" (SQLSTATE 23505)`)
	if !IsUniqueViolation(pg, "") {
		t.Fatal("expected duplicate key message to match")
	}
	if !IsUniqueViolation(pg, "idx_variants_tenant_sku") {
		t.Fatal("expected constraint substring to match")
	}
	if IsUniqueViolation(pg, "idx_customers_tenant_phone") {
		t.Fatal("expected other constraint to be rejected")
	}

	lite := errors.New("UNIQUE constraint failed: customers.tenant_id, customers.phone")
	if !IsUniqueViolation(lite, "") {
		t.Fatal("expected sqlite unique message to match")
	}

	if IsUniqueViolation(errors.New("connection refused"), "") {
		t.Fatal("unrelated error must not match")
	}
	if IsUniqueViolation(nil, "") {
		t.Fatal("nil error must not match")
	}
}
