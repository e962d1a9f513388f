package seed

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/digifasal/agrimarket/internal/storage"
)

// Apply inserts the demonstration dataset: three farmers, one transport
// provider, four products, one service and two approved testimonials.
//
// Apply is NOT idempotent. Running it against a populated relational store
// fails on the username/email uniqueness constraints; running it twice
// against the in-memory store inserts duplicates.
func Apply(ctx context.Context, st storage.Storage) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed: hash password: %w", err)
	}
	password := string(hash)

	farmer1, err := st.CreateUser(ctx, storage.User{
		Username: "sharma_farms",
		Password: password,
		Email:    "sharma@example.com",
		Phone:    "9876543210",
		FullName: "Sharma Organic Farms",
		Role:     storage.RoleFarmer,
		Address:  "123 Farm Road",
		City:     "Mumbai",
		State:    "Maharashtra",
		Bio:      "Growing organic vegetables since 1995",
	})
	if err != nil {
		return fmt.Errorf("seed: create farmer1: %w", err)
	}

	farmer2, err := st.CreateUser(ctx, storage.User{
		Username: "singh_family",
		Password: password,
		Email:    "singh@example.com",
		Phone:    "9876543211",
		FullName: "Singh Family Farms",
		Role:     storage.RoleFarmer,
		Address:  "456 Wheat Field",
		City:     "Amritsar",
		State:    "Punjab",
		Bio:      "Premium wheat growers",
	})
	if err != nil {
		return fmt.Errorf("seed: create farmer2: %w", err)
	}

	farmer3, err := st.CreateUser(ctx, storage.User{
		Username: "himalayan_orchards",
		Password: password,
		Email:    "himalayan@example.com",
		Phone:    "9876543212",
		FullName: "Himalayan Orchards",
		Role:     storage.RoleFarmer,
		Address:  "789 Mountain Road",
		City:     "Shimla",
		State:    "Himachal Pradesh",
		Bio:      "Fresh mountain fruits",
	})
	if err != nil {
		return fmt.Errorf("seed: create farmer3: %w", err)
	}

	provider, err := st.CreateUser(ctx, storage.User{
		Username: "fast_logistics",
		Password: password,
		Email:    "logistics@example.com",
		Phone:    "9876543213",
		FullName: "Fast Logistics",
		Role:     storage.RoleServiceProvider,
		Address:  "101 Transport Nagar",
		City:     "Delhi",
		State:    "Delhi",
		Bio:      "Reliable transport services",
	})
	if err != nil {
		return fmt.Errorf("seed: create provider: %w", err)
	}

	products := []storage.Product{
		{
			FarmerID:    farmer1.ID,
			Title:       "Fresh Tomatoes",
			Description: "Organically grown, rich in flavor and nutrients",
			Category:    storage.CategoryVegetables,
			Price:       "45",
			Unit:        "kg",
			Quantity:    "500",
			Location:    "Mumbai, Maharashtra",
			IsCertified: true,
			IsOrganic:   true,
			IsPremium:   true,
			Rating:      "4.8",
			Images:      []string{"https://images.unsplash.com/photo-1603048719539-9ecb1b68901a"},
		},
		{
			FarmerID:    farmer2.ID,
			Title:       "Organic Wheat",
			Description: "Premium quality wheat grown without pesticides",
			Category:    storage.CategoryGrains,
			Price:       "32",
			Unit:        "kg",
			Quantity:    "1000",
			Location:    "Amritsar, Punjab",
			IsCertified: true,
			IsOrganic:   true,
			Rating:      "4.6",
			Images:      []string{"https://images.unsplash.com/photo-1619566636858-adf3ef46400b"},
		},
		{
			FarmerID:    farmer3.ID,
			Title:       "Himalayan Apples",
			Description: "Sweet and juicy apples from the Himalayan orchards",
			Category:    storage.CategoryFruits,
			Price:       "120",
			Unit:        "kg",
			Quantity:    "300",
			Location:    "Shimla, Himachal Pradesh",
			Rating:      "4.9",
			Images:      []string{"https://images.unsplash.com/photo-1550258987-190a2d41a8ba"},
		},
		{
			FarmerID:    farmer2.ID,
			Title:       "Basmati Rice",
			Description: "Aromatic long-grain basmati rice",
			Category:    storage.CategoryGrains,
			Price:       "85",
			Unit:        "kg",
			Quantity:    "800",
			Location:    "Amritsar, Punjab",
			Rating:      "4.7",
			Images:      []string{"https://images.unsplash.com/photo-1601493700625-9256e9af8fbd"},
		},
	}
	for _, p := range products {
		if _, err := st.CreateProduct(ctx, p); err != nil {
			return fmt.Errorf("seed: create product %q: %w", p.Title, err)
		}
	}

	if _, err := st.CreateService(ctx, storage.Service{
		ProviderID:   provider.ID,
		Title:        "Fast Transport Services",
		Description:  "Reliable and quick transportation of agricultural products",
		ServiceType:  storage.ServiceTransportation,
		Price:        "1500",
		PricingUnit:  "per trip",
		Location:     "Delhi",
		Availability: "Monday to Saturday",
		Rating:       "4.5",
	}); err != nil {
		return fmt.Errorf("seed: create service: %w", err)
	}

	testimonials := []storage.Testimonial{
		{
			UserID:     farmer1.ID,
			Content:    "Before Digi Fasal, I had to rely on middlemen who took most of my profits. Now I sell directly to buyers and have increased my income by 40%. The platform is easy to use even for someone like me who isn't tech-savvy.",
			Rating:     5,
			IsApproved: true,
		},
		{
			UserID:     provider.ID,
			Content:    "I registered my transport service on Digi Fasal and now my trucks are always booked. The platform has simplified finding clients and managing schedules. My business has grown 25% in just six months.",
			Rating:     5,
			IsApproved: true,
		},
	}
	for _, tm := range testimonials {
		if _, err := st.CreateTestimonial(ctx, tm); err != nil {
			return fmt.Errorf("seed: create testimonial: %w", err)
		}
	}

	return nil
}
