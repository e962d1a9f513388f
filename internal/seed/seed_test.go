package seed

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/digifasal/agrimarket/internal/storage"
)

func TestApplyPopulatesDemoDataset(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()

	if err := Apply(ctx, st); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	farmers, err := st.GetUsersByRole(ctx, storage.RoleFarmer)
	if err != nil || len(farmers) != 3 {
		t.Fatalf("expected 3 farmers, got %d err %v", len(farmers), err)
	}
	providers, err := st.GetUsersByRole(ctx, storage.RoleServiceProvider)
	if err != nil || len(providers) != 1 {
		t.Fatalf("expected 1 provider, got %d err %v", len(providers), err)
	}

	products, err := st.GetProducts(ctx, storage.ProductQuery{})
	if err != nil || len(products) != 4 {
		t.Fatalf("expected 4 products, got %d err %v", len(products), err)
	}
	services, err := st.GetServices(ctx, storage.ServiceQuery{})
	if err != nil || len(services) != 1 {
		t.Fatalf("expected 1 service, got %d err %v", len(services), err)
	}
	testimonials, err := st.GetApprovedTestimonials(ctx)
	if err != nil || len(testimonials) != 2 {
		t.Fatalf("expected 2 approved testimonials, got %d err %v", len(testimonials), err)
	}

	sharma, err := st.GetUserByUsername(ctx, "sharma_farms")
	if err != nil || sharma == nil {
		t.Fatalf("expected seeded user sharma_farms, err %v", err)
	}
	if sharma.Password == "password123" {
		t.Fatal("seeded password must be hashed, found plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(sharma.Password), []byte("password123")); err != nil {
		t.Fatalf("seeded password hash does not verify: %v", err)
	}
}

func TestApplyIsNotIdempotentInMemory(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()

	if err := Apply(ctx, st); err != nil {
		t.Fatalf("first Apply failed: %v", err)
	}
	// the in-memory backend has no uniqueness constraints, so a second run
	// duplicates the dataset rather than failing
	if err := Apply(ctx, st); err != nil {
		t.Fatalf("second Apply failed: %v", err)
	}
	products, _ := st.GetProducts(ctx, storage.ProductQuery{})
	if len(products) != 8 {
		t.Fatalf("expected duplicated products (8), got %d", len(products))
	}
}
