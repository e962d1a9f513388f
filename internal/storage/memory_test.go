package storage

import (
	"context"
	"testing"
)

func TestMemoryInstancesAreIsolated(t *testing.T) {
	ctx := context.Background()
	a := NewMemory()
	b := NewMemory()

	ua := mustCreateUser(t, a, "alpha", "alpha@example.com", RoleFarmer)
	ub := mustCreateUser(t, b, "beta", "beta@example.com", RoleBuyer)

	// separate instances keep separate id sequences and data
	if ua.ID != 1 || ub.ID != 1 {
		t.Fatalf("expected both instances to start at id 1, got %d and %d", ua.ID, ub.ID)
	}
	if got, _ := a.GetUserByUsername(ctx, "beta"); got != nil {
		t.Fatalf("instance a sees instance b's user: %+v", got)
	}
}

func TestMemoryCounterNotReusedAfterDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	farmer := mustCreateUser(t, m, "farmer", "farmer@example.com", RoleFarmer)

	p1 := mustCreateProduct(t, m, farmer.ID, "One", "d", CategoryGrains)
	if ok, _ := m.DeleteProduct(ctx, p1.ID); !ok {
		t.Fatal("delete failed")
	}
	p2 := mustCreateProduct(t, m, farmer.ID, "Two", "d", CategoryGrains)
	if p2.ID != p1.ID+1 {
		t.Fatalf("expected id %d after delete, got %d", p1.ID+1, p2.ID)
	}
}

func TestMemoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	farmer := mustCreateUser(t, m, "farmer", "farmer@example.com", RoleFarmer)

	created, err := m.CreateProduct(ctx, Product{
		FarmerID:    farmer.ID,
		Title:       "Fresh Tomatoes",
		Description: "d",
		Category:    CategoryVegetables,
		Price:       "45",
		Unit:        "kg",
		Quantity:    "500",
		Images:      []string{"a.jpg"},
	})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	// mutating the returned slice must not leak into the store
	created.Images[0] = "tampered.jpg"
	got, _ := m.GetProduct(ctx, created.ID)
	if got.Images[0] != "a.jpg" {
		t.Fatalf("stored record aliased by caller mutation: %v", got.Images)
	}

	got.Images[0] = "tampered-again.jpg"
	again, _ := m.GetProduct(ctx, created.ID)
	if again.Images[0] != "a.jpg" {
		t.Fatalf("stored record aliased by read result mutation: %v", again.Images)
	}
}
