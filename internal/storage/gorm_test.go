package storage

import (
	"context"
	"testing"
)

// Uniqueness is enforced by database constraints, so these tests apply to
// the relational backend only; the in-memory backend accepts duplicates.

func TestGormDuplicateUsernameFails(t *testing.T) {
	ctx := context.Background()
	st := newSQLiteStorage(t)

	mustCreateUser(t, st, "sharma_farms", "sharma@example.com", RoleFarmer)
	_, err := st.CreateUser(ctx, User{
		Username: "sharma_farms",
		Password: "other",
		Email:    "other@example.com",
		FullName: "Other",
		Role:     RoleBuyer,
	})
	if err == nil {
		t.Fatal("expected constraint violation for duplicate username")
	}
}

func TestGormDuplicateEmailFails(t *testing.T) {
	ctx := context.Background()
	st := newSQLiteStorage(t)

	mustCreateUser(t, st, "sharma_farms", "sharma@example.com", RoleFarmer)
	_, err := st.CreateUser(ctx, User{
		Username: "someone_else",
		Password: "other",
		Email:    "sharma@example.com",
		FullName: "Other",
		Role:     RoleBuyer,
	})
	if err == nil {
		t.Fatal("expected constraint violation for duplicate email")
	}
}

func TestGormPing(t *testing.T) {
	st := newSQLiteStorage(t)
	if err := st.Ping(context.Background()); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
}
