package storage

import (
	"context"
	"strings"
	"testing"
)

// testBackends returns one instance of every backend; the sqlite-backed
// GormStorage stands in for the relational backend so the contract tests run
// without external services.
func testBackends(t *testing.T) map[string]Storage {
	t.Helper()
	return map[string]Storage{
		"memory": NewMemory(),
		"sqlite": newSQLiteStorage(t),
	}
}

func newSQLiteStorage(t *testing.T) *GormStorage {
	t.Helper()
	dsn := "file:" + strings.NewReplacer("/", "_", "#", "_").Replace(t.Name()) + "?mode=memory&cache=shared"
	st, err := NewGormStorage("sqlite", dsn)
	if err != nil {
		t.Fatalf("NewGormStorage failed: %v", err)
	}
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func mustCreateUser(t *testing.T, st Storage, username, email string, role Role) User {
	t.Helper()
	u, err := st.CreateUser(context.Background(), User{
		Username: username,
		Password: "secret",
		Email:    email,
		FullName: "Test " + username,
		Role:     role,
	})
	if err != nil {
		t.Fatalf("CreateUser(%s) failed: %v", username, err)
	}
	return u
}

func mustCreateProduct(t *testing.T, st Storage, farmerID int, title, description string, category ProductCategory) Product {
	t.Helper()
	p, err := st.CreateProduct(context.Background(), Product{
		FarmerID:    farmerID,
		Title:       title,
		Description: description,
		Category:    category,
		Price:       "45",
		Unit:        "kg",
		Quantity:    "500",
	})
	if err != nil {
		t.Fatalf("CreateProduct(%s) failed: %v", title, err)
	}
	return p
}

func TestCreateAssignsStrictlyIncreasingIDs(t *testing.T) {
	for name, st := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			prev := 0
			for i := 0; i < 5; i++ {
				u := mustCreateUser(t, st, "user"+strings.Repeat("x", i), "u"+strings.Repeat("x", i)+"@example.com", RoleBuyer)
				if u.ID <= prev {
					t.Fatalf("expected strictly increasing ids, got %d after %d", u.ID, prev)
				}
				prev = u.ID
			}
			// product counter is independent of the user counter
			farmer := mustCreateUser(t, st, "idfarmer", "idfarmer@example.com", RoleFarmer)
			p := mustCreateProduct(t, st, farmer.ID, "First Product", "desc", CategoryVegetables)
			if p.ID != 1 {
				t.Fatalf("expected first product id 1, got %d", p.ID)
			}
		})
	}
}

func TestUserCreateGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, st := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			created, err := st.CreateUser(ctx, User{
				Username: "sharma_farms",
				Password: "password123",
				Email:    "sharma@example.com",
				Phone:    "9876543210",
				FullName: "Sharma Organic Farms",
				Role:     RoleFarmer,
				Address:  "123 Farm Road",
				City:     "Mumbai",
				State:    "Maharashtra",
				Bio:      "Growing organic vegetables since 1995",
			})
			if err != nil {
				t.Fatalf("CreateUser failed: %v", err)
			}
			if created.ID != 1 {
				t.Fatalf("expected id 1, got %d", created.ID)
			}

			got, err := st.GetUser(ctx, created.ID)
			if err != nil {
				t.Fatalf("GetUser failed: %v", err)
			}
			if got == nil {
				t.Fatal("expected user, got absent")
			}
			if *got != created {
				t.Fatalf("round trip mismatch: want %+v got %+v", created, *got)
			}

			byName, err := st.GetUserByUsername(ctx, "sharma_farms")
			if err != nil || byName == nil || byName.ID != created.ID {
				t.Fatalf("GetUserByUsername: got %+v err %v", byName, err)
			}
			byEmail, err := st.GetUserByEmail(ctx, "sharma@example.com")
			if err != nil || byEmail == nil || byEmail.ID != created.ID {
				t.Fatalf("GetUserByEmail: got %+v err %v", byEmail, err)
			}
		})
	}
}

func TestProductCreateSetsDefaults(t *testing.T) {
	ctx := context.Background()
	for name, st := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			farmer := mustCreateUser(t, st, "farmer", "farmer@example.com", RoleFarmer)
			p, err := st.CreateProduct(ctx, Product{
				FarmerID:    farmer.ID,
				Title:       "Fresh Tomatoes",
				Description: "Organically grown",
				Category:    CategoryVegetables,
				Price:       "45",
				Unit:        "kg",
				Quantity:    "500",
				Images:      []string{"https://example.com/tomato.jpg"},
			})
			if err != nil {
				t.Fatalf("CreateProduct failed: %v", err)
			}
			if p.ID != 1 {
				t.Fatalf("expected id 1, got %d", p.ID)
			}
			if p.CreatedAt.IsZero() {
				t.Fatal("expected createdAt to be set")
			}
			if p.IsCertified || p.IsOrganic || p.IsPremium {
				t.Fatalf("expected flags defaulted false, got %+v", p)
			}

			got, err := st.GetProduct(ctx, p.ID)
			if err != nil {
				t.Fatalf("GetProduct failed: %v", err)
			}
			if got == nil {
				t.Fatal("expected product, got absent")
			}
			if got.Title != p.Title || got.Price != p.Price || got.Category != p.Category {
				t.Fatalf("round trip mismatch: want %+v got %+v", p, *got)
			}
			if len(got.Images) != 1 || got.Images[0] != p.Images[0] {
				t.Fatalf("images mismatch: want %v got %v", p.Images, got.Images)
			}
		})
	}
}

func TestPartialUpdatePreservesUnsetFields(t *testing.T) {
	ctx := context.Background()
	for name, st := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			farmer := mustCreateUser(t, st, "farmer", "farmer@example.com", RoleFarmer)
			p := mustCreateProduct(t, st, farmer.ID, "Fresh Tomatoes", "Rich in flavor", CategoryVegetables)

			newPrice := "50"
			updated, err := st.UpdateProduct(ctx, p.ID, ProductPatch{Price: &newPrice})
			if err != nil {
				t.Fatalf("UpdateProduct failed: %v", err)
			}
			if updated == nil {
				t.Fatal("expected updated product, got absent")
			}
			if updated.Price != "50" {
				t.Fatalf("expected price 50, got %s", updated.Price)
			}
			if updated.Title != "Fresh Tomatoes" || updated.Unit != "kg" || updated.Quantity != "500" {
				t.Fatalf("untouched fields changed: %+v", updated)
			}

			got, _ := st.GetProduct(ctx, p.ID)
			if got.Price != "50" || got.Title != "Fresh Tomatoes" {
				t.Fatalf("stored record mismatch after update: %+v", got)
			}

			images := []string{"a.jpg", "b.jpg"}
			updated, err = st.UpdateProduct(ctx, p.ID, ProductPatch{Images: images})
			if err != nil {
				t.Fatalf("UpdateProduct(images) failed: %v", err)
			}
			if len(updated.Images) != 2 || updated.Images[0] != "a.jpg" || updated.Images[1] != "b.jpg" {
				t.Fatalf("images not applied: %v", updated.Images)
			}
			if updated.Price != "50" || updated.Title != "Fresh Tomatoes" {
				t.Fatalf("image patch changed other fields: %+v", updated)
			}

			got, _ = st.GetProduct(ctx, p.ID)
			if len(got.Images) != 2 || got.Images[0] != "a.jpg" {
				t.Fatalf("stored images mismatch after update: %v", got.Images)
			}
		})
	}
}

func TestEmptyPatchIsNoop(t *testing.T) {
	ctx := context.Background()
	for name, st := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			farmer := mustCreateUser(t, st, "farmer", "farmer@example.com", RoleFarmer)
			p := mustCreateProduct(t, st, farmer.ID, "Basmati Rice", "Aromatic", CategoryGrains)

			updated, err := st.UpdateProduct(ctx, p.ID, ProductPatch{})
			if err != nil {
				t.Fatalf("UpdateProduct with empty patch failed: %v", err)
			}
			if updated == nil {
				t.Fatal("empty patch on existing record must not report absent")
			}
			if updated.Title != p.Title || updated.Price != p.Price {
				t.Fatalf("empty patch changed record: want %+v got %+v", p, updated)
			}
		})
	}
}

func TestUpdateAndDeleteMissingReturnAbsent(t *testing.T) {
	ctx := context.Background()
	for name, st := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			title := "ghost"
			updated, err := st.UpdateProduct(ctx, 9999, ProductPatch{Title: &title})
			if err != nil {
				t.Fatalf("UpdateProduct on missing id errored: %v", err)
			}
			if updated != nil {
				t.Fatalf("expected absent, got %+v", updated)
			}

			ok, err := st.DeleteProduct(ctx, 9999)
			if err != nil {
				t.Fatalf("DeleteProduct on missing id errored: %v", err)
			}
			if ok {
				t.Fatal("expected false for missing id")
			}

			u, err := st.UpdateUser(ctx, 9999, UserPatch{})
			if err != nil || u != nil {
				t.Fatalf("UpdateUser on missing id: got %+v err %v", u, err)
			}

			o, err := st.UpdateOrderStatus(ctx, 9999, OrderShipped)
			if err != nil || o != nil {
				t.Fatalf("UpdateOrderStatus on missing id: got %+v err %v", o, err)
			}
		})
	}
}

func TestGetProductsFilterConjunction(t *testing.T) {
	ctx := context.Background()
	for name, st := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			farmer := mustCreateUser(t, st, "farmer", "farmer@example.com", RoleFarmer)
			mustCreateProduct(t, st, farmer.ID, "Fresh Tomatoes", "Organically grown", CategoryVegetables)
			mustCreateProduct(t, st, farmer.ID, "Organic Wheat", "Premium quality wheat", CategoryGrains)
			mustCreateProduct(t, st, farmer.ID, "Cherry Special", "tomato flavored treat", CategoryVegetables)
			mustCreateProduct(t, st, farmer.ID, "Himalayan Apples", "Sweet and juicy", CategoryFruits)

			// category AND case-insensitive search over title OR description
			got, err := st.GetProducts(ctx, ProductQuery{Category: CategoryVegetables, SearchTerm: "TOMATO"})
			if err != nil {
				t.Fatalf("GetProducts failed: %v", err)
			}
			if len(got) != 2 {
				t.Fatalf("expected 2 matches, got %d: %+v", len(got), got)
			}
			for _, p := range got {
				if p.Category != CategoryVegetables {
					t.Fatalf("category filter violated: %+v", p)
				}
			}

			// search alone is disjunctive across title and description
			got, err = st.GetProducts(ctx, ProductQuery{SearchTerm: "wheat"})
			if err != nil {
				t.Fatalf("GetProducts failed: %v", err)
			}
			if len(got) != 1 || got[0].Title != "Organic Wheat" {
				t.Fatalf("expected only Organic Wheat, got %+v", got)
			}

			// limit caps after filtering
			got, err = st.GetProducts(ctx, ProductQuery{Limit: 3})
			if err != nil {
				t.Fatalf("GetProducts failed: %v", err)
			}
			if len(got) != 3 {
				t.Fatalf("expected 3 products with limit, got %d", len(got))
			}

			// no match
			got, err = st.GetProducts(ctx, ProductQuery{Category: CategoryOrganic})
			if err != nil {
				t.Fatalf("GetProducts failed: %v", err)
			}
			if len(got) != 0 {
				t.Fatalf("expected no organic products, got %+v", got)
			}
		})
	}
}

func TestGetProductsNewestFirst(t *testing.T) {
	ctx := context.Background()
	for name, st := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			farmer := mustCreateUser(t, st, "farmer", "farmer@example.com", RoleFarmer)
			first := mustCreateProduct(t, st, farmer.ID, "First", "a", CategoryGrains)
			second := mustCreateProduct(t, st, farmer.ID, "Second", "b", CategoryGrains)
			third := mustCreateProduct(t, st, farmer.ID, "Third", "c", CategoryGrains)

			got, err := st.GetProducts(ctx, ProductQuery{})
			if err != nil {
				t.Fatalf("GetProducts failed: %v", err)
			}
			if len(got) != 3 {
				t.Fatalf("expected 3 products, got %d", len(got))
			}
			if got[0].ID != third.ID || got[1].ID != second.ID || got[2].ID != first.ID {
				t.Fatalf("expected newest-first order, got ids %d,%d,%d", got[0].ID, got[1].ID, got[2].ID)
			}
		})
	}
}

func TestDeleteProductThenGetAbsent(t *testing.T) {
	ctx := context.Background()
	for name, st := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			farmer := mustCreateUser(t, st, "farmer", "farmer@example.com", RoleFarmer)
			p := mustCreateProduct(t, st, farmer.ID, "Fresh Tomatoes", "desc", CategoryVegetables)

			ok, err := st.DeleteProduct(ctx, p.ID)
			if err != nil {
				t.Fatalf("DeleteProduct failed: %v", err)
			}
			if !ok {
				t.Fatal("expected true for existing row")
			}

			got, err := st.GetProduct(ctx, p.ID)
			if err != nil {
				t.Fatalf("GetProduct failed: %v", err)
			}
			if got != nil {
				t.Fatalf("expected absent after delete, got %+v", got)
			}
		})
	}
}

func TestServicesFilterAndUpdate(t *testing.T) {
	ctx := context.Background()
	for name, st := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			provider := mustCreateUser(t, st, "provider", "provider@example.com", RoleServiceProvider)
			transport, err := st.CreateService(ctx, Service{
				ProviderID:  provider.ID,
				Title:       "Fast Transport",
				Description: "Reliable transportation",
				ServiceType: ServiceTransportation,
				Price:       "1500",
				PricingUnit: "per trip",
			})
			if err != nil {
				t.Fatalf("CreateService failed: %v", err)
			}
			if _, err := st.CreateService(ctx, Service{
				ProviderID:  provider.ID,
				Title:       "Tractor Rental",
				Description: "Hourly tractor hire",
				ServiceType: ServiceEquipmentRental,
			}); err != nil {
				t.Fatalf("CreateService failed: %v", err)
			}

			got, err := st.GetServices(ctx, ServiceQuery{Type: ServiceTransportation})
			if err != nil {
				t.Fatalf("GetServices failed: %v", err)
			}
			if len(got) != 1 || got[0].ID != transport.ID {
				t.Fatalf("type filter mismatch: %+v", got)
			}

			byProvider, err := st.GetServicesByProvider(ctx, provider.ID)
			if err != nil {
				t.Fatalf("GetServicesByProvider failed: %v", err)
			}
			if len(byProvider) != 2 {
				t.Fatalf("expected 2 services for provider, got %d", len(byProvider))
			}

			newPrice := "1800"
			updated, err := st.UpdateService(ctx, transport.ID, ServicePatch{Price: &newPrice})
			if err != nil || updated == nil {
				t.Fatalf("UpdateService: got %+v err %v", updated, err)
			}
			if updated.Price != "1800" || updated.Title != "Fast Transport" {
				t.Fatalf("partial service update mismatch: %+v", updated)
			}

			ok, err := st.DeleteService(ctx, transport.ID)
			if err != nil || !ok {
				t.Fatalf("DeleteService: got %v err %v", ok, err)
			}
			gone, _ := st.GetService(ctx, transport.ID)
			if gone != nil {
				t.Fatalf("expected absent after delete, got %+v", gone)
			}
		})
	}
}

func TestOrderLifecycle(t *testing.T) {
	ctx := context.Background()
	for name, st := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			farmer := mustCreateUser(t, st, "farmer", "farmer@example.com", RoleFarmer)
			buyer := mustCreateUser(t, st, "buyer", "buyer@example.com", RoleBuyer)
			p := mustCreateProduct(t, st, farmer.ID, "Fresh Tomatoes", "desc", CategoryVegetables)

			o, err := st.CreateOrder(ctx, Order{
				BuyerID:         buyer.ID,
				FarmerID:        farmer.ID,
				ProductID:       p.ID,
				Quantity:        "10",
				TotalPrice:      "450",
				ShippingAddress: "42 Market Street",
			})
			if err != nil {
				t.Fatalf("CreateOrder failed: %v", err)
			}
			if o.Status != OrderPending {
				t.Fatalf("expected default status pending, got %s", o.Status)
			}
			if o.PaymentStatus {
				t.Fatal("expected paymentStatus defaulted false")
			}

			byBuyer, err := st.GetOrdersByBuyer(ctx, buyer.ID)
			if err != nil || len(byBuyer) != 1 {
				t.Fatalf("GetOrdersByBuyer: got %d err %v", len(byBuyer), err)
			}
			byFarmer, err := st.GetOrdersByFarmer(ctx, farmer.ID)
			if err != nil || len(byFarmer) != 1 {
				t.Fatalf("GetOrdersByFarmer: got %d err %v", len(byFarmer), err)
			}

			updated, err := st.UpdateOrderStatus(ctx, o.ID, OrderShipped)
			if err != nil || updated == nil {
				t.Fatalf("UpdateOrderStatus: got %+v err %v", updated, err)
			}
			if updated.Status != OrderShipped {
				t.Fatalf("expected shipped, got %s", updated.Status)
			}
			if updated.TotalPrice != "450" || updated.ShippingAddress != "42 Market Street" {
				t.Fatalf("status update touched other fields: %+v", updated)
			}
		})
	}
}

func TestReviewsAttachToProductOrService(t *testing.T) {
	ctx := context.Background()
	for name, st := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			farmer := mustCreateUser(t, st, "farmer", "farmer@example.com", RoleFarmer)
			buyer := mustCreateUser(t, st, "buyer", "buyer@example.com", RoleBuyer)
			p := mustCreateProduct(t, st, farmer.ID, "Fresh Tomatoes", "desc", CategoryVegetables)
			svc, err := st.CreateService(ctx, Service{
				ProviderID:  farmer.ID,
				Title:       "Advisory",
				Description: "Crop advice",
				ServiceType: ServiceAdvisory,
			})
			if err != nil {
				t.Fatalf("CreateService failed: %v", err)
			}

			if _, err := st.CreateReview(ctx, Review{UserID: buyer.ID, ProductID: &p.ID, Rating: 5, Comment: "great"}); err != nil {
				t.Fatalf("CreateReview failed: %v", err)
			}
			if _, err := st.CreateReview(ctx, Review{UserID: buyer.ID, ServiceID: &svc.ID, Rating: 4}); err != nil {
				t.Fatalf("CreateReview failed: %v", err)
			}

			forProduct, err := st.GetReviewsForProduct(ctx, p.ID)
			if err != nil || len(forProduct) != 1 {
				t.Fatalf("GetReviewsForProduct: got %d err %v", len(forProduct), err)
			}
			if forProduct[0].Rating != 5 || forProduct[0].Comment != "great" {
				t.Fatalf("review mismatch: %+v", forProduct[0])
			}

			forService, err := st.GetReviewsForService(ctx, svc.ID)
			if err != nil || len(forService) != 1 {
				t.Fatalf("GetReviewsForService: got %d err %v", len(forService), err)
			}
			if forService[0].Rating != 4 {
				t.Fatalf("review mismatch: %+v", forService[0])
			}
		})
	}
}

func TestOnlyApprovedTestimonialsListed(t *testing.T) {
	ctx := context.Background()
	for name, st := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			u := mustCreateUser(t, st, "fan", "fan@example.com", RoleFarmer)
			if _, err := st.CreateTestimonial(ctx, Testimonial{UserID: u.ID, Content: "love it", Rating: 5, IsApproved: true}); err != nil {
				t.Fatalf("CreateTestimonial failed: %v", err)
			}
			pending, err := st.CreateTestimonial(ctx, Testimonial{UserID: u.ID, Content: "pending", Rating: 3})
			if err != nil {
				t.Fatalf("CreateTestimonial failed: %v", err)
			}
			if pending.IsApproved {
				t.Fatal("expected isApproved defaulted false")
			}

			approved, err := st.GetApprovedTestimonials(ctx)
			if err != nil {
				t.Fatalf("GetApprovedTestimonials failed: %v", err)
			}
			if len(approved) != 1 || approved[0].Content != "love it" {
				t.Fatalf("expected only approved testimonial, got %+v", approved)
			}
		})
	}
}

func TestGetUsersByRole(t *testing.T) {
	ctx := context.Background()
	for name, st := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			f1 := mustCreateUser(t, st, "f1", "f1@example.com", RoleFarmer)
			mustCreateUser(t, st, "b1", "b1@example.com", RoleBuyer)
			f2 := mustCreateUser(t, st, "f2", "f2@example.com", RoleFarmer)

			farmers, err := st.GetUsersByRole(ctx, RoleFarmer)
			if err != nil {
				t.Fatalf("GetUsersByRole failed: %v", err)
			}
			if len(farmers) != 2 {
				t.Fatalf("expected 2 farmers, got %d", len(farmers))
			}
			if farmers[0].ID != f1.ID || farmers[1].ID != f2.ID {
				t.Fatalf("expected ascending id order, got %d,%d", farmers[0].ID, farmers[1].ID)
			}
		})
	}
}

func TestGetUsersListsEveryRole(t *testing.T) {
	ctx := context.Background()
	for name, st := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			mustCreateUser(t, st, "farmer", "farmer@example.com", RoleFarmer)
			mustCreateUser(t, st, "buyer", "buyer@example.com", RoleBuyer)
			mustCreateUser(t, st, "hauler", "hauler@example.com", RoleServiceProvider)

			users, err := st.GetUsers(ctx)
			if err != nil {
				t.Fatalf("GetUsers failed: %v", err)
			}
			if len(users) != 3 {
				t.Fatalf("expected 3 users, got %d", len(users))
			}
			for i := 1; i < len(users); i++ {
				if users[i].ID <= users[i-1].ID {
					t.Fatalf("users not in ascending id order: %v", users)
				}
			}
		})
	}
}

func TestEmptyListsAreEmptyNotNil(t *testing.T) {
	ctx := context.Background()
	for name, st := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			users, err := st.GetUsers(ctx)
			if err != nil || users == nil {
				t.Fatalf("GetUsers: got %v err %v, want empty slice", users, err)
			}
			byRole, err := st.GetUsersByRole(ctx, RoleFarmer)
			if err != nil || byRole == nil {
				t.Fatalf("GetUsersByRole: got %v err %v, want empty slice", byRole, err)
			}
			products, err := st.GetProducts(ctx, ProductQuery{})
			if err != nil || products == nil {
				t.Fatalf("GetProducts: got %v err %v, want empty slice", products, err)
			}
			services, err := st.GetServices(ctx, ServiceQuery{})
			if err != nil || services == nil {
				t.Fatalf("GetServices: got %v err %v, want empty slice", services, err)
			}
			orders, err := st.GetOrdersByBuyer(ctx, 1)
			if err != nil || orders == nil {
				t.Fatalf("GetOrdersByBuyer: got %v err %v, want empty slice", orders, err)
			}
			reviews, err := st.GetReviewsForProduct(ctx, 1)
			if err != nil || reviews == nil {
				t.Fatalf("GetReviewsForProduct: got %v err %v, want empty slice", reviews, err)
			}
			testimonials, err := st.GetApprovedTestimonials(ctx)
			if err != nil || testimonials == nil {
				t.Fatalf("GetApprovedTestimonials: got %v err %v, want empty slice", testimonials, err)
			}
		})
	}
}
