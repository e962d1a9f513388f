package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormStorage is the relational Storage implementation. Every write is a
// single statement, so each operation is atomic without explicit
// transactions; uniqueness and foreign-key violations surface as driver
// errors.
type GormStorage struct {
	db *gorm.DB
}

func NewGormStorage(driver, dsn string) (*GormStorage, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	return &GormStorage{db: db}, nil
}

func (s *GormStorage) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&User{},
		&Product{},
		&Service{},
		&Order{},
		&Review{},
		&Testimonial{},
	)
}

// Users

func (s *GormStorage) CreateUser(ctx context.Context, u User) (User, error) {
	err := s.db.WithContext(ctx).Create(&u).Error
	return u, err
}

func (s *GormStorage) GetUser(ctx context.Context, id int) (*User, error) {
	var u User
	result := s.db.WithContext(ctx).First(&u, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &u, nil
}

func (s *GormStorage) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	result := s.db.WithContext(ctx).First(&u, "username = ?", username)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &u, nil
}

func (s *GormStorage) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	result := s.db.WithContext(ctx).First(&u, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &u, nil
}

func (s *GormStorage) UpdateUser(ctx context.Context, id int, patch UserPatch) (*User, error) {
	updates := map[string]interface{}{}
	setString(updates, "username", patch.Username)
	setString(updates, "password", patch.Password)
	setString(updates, "email", patch.Email)
	setString(updates, "phone", patch.Phone)
	setString(updates, "full_name", patch.FullName)
	if patch.Role != nil {
		updates["role"] = *patch.Role
	}
	setString(updates, "address", patch.Address)
	setString(updates, "city", patch.City)
	setString(updates, "state", patch.State)
	setString(updates, "profile_image", patch.ProfileImage)
	setString(updates, "bio", patch.Bio)

	if len(updates) == 0 {
		return s.GetUser(ctx, id)
	}
	result := s.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return s.GetUser(ctx, id)
}

func (s *GormStorage) GetUsers(ctx context.Context) ([]User, error) {
	users := []User{}
	result := s.db.WithContext(ctx).Order("id").Find(&users)
	return users, result.Error
}

func (s *GormStorage) GetUsersByRole(ctx context.Context, role Role) ([]User, error) {
	users := []User{}
	result := s.db.WithContext(ctx).Where("role = ?", role).Order("id").Find(&users)
	return users, result.Error
}

// Products

func (s *GormStorage) CreateProduct(ctx context.Context, p Product) (Product, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	err := s.db.WithContext(ctx).Create(&p).Error
	return p, err
}

func (s *GormStorage) GetProduct(ctx context.Context, id int) (*Product, error) {
	var p Product
	result := s.db.WithContext(ctx).First(&p, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &p, nil
}

func (s *GormStorage) GetProducts(ctx context.Context, q ProductQuery) ([]Product, error) {
	query := s.db.WithContext(ctx).Model(&Product{})
	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}
	if q.SearchTerm != "" {
		pattern := "%" + strings.ToLower(q.SearchTerm) + "%"
		query = query.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern)
	}
	query = query.Order("created_at DESC, id DESC")
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	products := []Product{}
	result := query.Find(&products)
	return products, result.Error
}

func (s *GormStorage) GetProductsByFarmer(ctx context.Context, farmerID int) ([]Product, error) {
	products := []Product{}
	result := s.db.WithContext(ctx).
		Where("farmer_id = ?", farmerID).
		Order("created_at DESC, id DESC").
		Find(&products)
	return products, result.Error
}

func (s *GormStorage) UpdateProduct(ctx context.Context, id int, patch ProductPatch) (*Product, error) {
	updates := map[string]interface{}{}
	if patch.FarmerID != nil {
		updates["farmer_id"] = *patch.FarmerID
	}
	setString(updates, "title", patch.Title)
	setString(updates, "description", patch.Description)
	if patch.Category != nil {
		updates["category"] = *patch.Category
	}
	setString(updates, "price", patch.Price)
	setString(updates, "unit", patch.Unit)
	setString(updates, "quantity", patch.Quantity)
	if patch.Images != nil {
		// map-based Updates bypasses the json serializer on the images
		// column, so store the marshaled form directly
		images, err := json.Marshal(patch.Images)
		if err != nil {
			return nil, err
		}
		updates["images"] = string(images)
	}
	setString(updates, "location", patch.Location)
	if patch.IsCertified != nil {
		updates["is_certified"] = *patch.IsCertified
	}
	if patch.IsOrganic != nil {
		updates["is_organic"] = *patch.IsOrganic
	}
	if patch.IsPremium != nil {
		updates["is_premium"] = *patch.IsPremium
	}
	setString(updates, "rating", patch.Rating)

	if len(updates) == 0 {
		return s.GetProduct(ctx, id)
	}
	result := s.db.WithContext(ctx).Model(&Product{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return s.GetProduct(ctx, id)
}

func (s *GormStorage) DeleteProduct(ctx context.Context, id int) (bool, error) {
	result := s.db.WithContext(ctx).Delete(&Product{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Services

func (s *GormStorage) CreateService(ctx context.Context, svc Service) (Service, error) {
	if svc.CreatedAt.IsZero() {
		svc.CreatedAt = time.Now()
	}
	err := s.db.WithContext(ctx).Create(&svc).Error
	return svc, err
}

func (s *GormStorage) GetService(ctx context.Context, id int) (*Service, error) {
	var svc Service
	result := s.db.WithContext(ctx).First(&svc, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &svc, nil
}

func (s *GormStorage) GetServices(ctx context.Context, q ServiceQuery) ([]Service, error) {
	query := s.db.WithContext(ctx).Model(&Service{})
	if q.Type != "" {
		query = query.Where("service_type = ?", q.Type)
	}
	query = query.Order("created_at DESC, id DESC")
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	services := []Service{}
	result := query.Find(&services)
	return services, result.Error
}

func (s *GormStorage) GetServicesByProvider(ctx context.Context, providerID int) ([]Service, error) {
	services := []Service{}
	result := s.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("created_at DESC, id DESC").
		Find(&services)
	return services, result.Error
}

func (s *GormStorage) UpdateService(ctx context.Context, id int, patch ServicePatch) (*Service, error) {
	updates := map[string]interface{}{}
	if patch.ProviderID != nil {
		updates["provider_id"] = *patch.ProviderID
	}
	setString(updates, "title", patch.Title)
	setString(updates, "description", patch.Description)
	if patch.ServiceType != nil {
		updates["service_type"] = *patch.ServiceType
	}
	setString(updates, "price", patch.Price)
	setString(updates, "pricing_unit", patch.PricingUnit)
	setString(updates, "location", patch.Location)
	setString(updates, "availability", patch.Availability)
	setString(updates, "rating", patch.Rating)

	if len(updates) == 0 {
		return s.GetService(ctx, id)
	}
	result := s.db.WithContext(ctx).Model(&Service{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return s.GetService(ctx, id)
}

func (s *GormStorage) DeleteService(ctx context.Context, id int) (bool, error) {
	result := s.db.WithContext(ctx).Delete(&Service{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Orders

func (s *GormStorage) CreateOrder(ctx context.Context, o Order) (Order, error) {
	if o.Status == "" {
		o.Status = OrderPending
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	err := s.db.WithContext(ctx).Create(&o).Error
	return o, err
}

func (s *GormStorage) GetOrder(ctx context.Context, id int) (*Order, error) {
	var o Order
	result := s.db.WithContext(ctx).First(&o, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &o, nil
}

func (s *GormStorage) GetOrdersByBuyer(ctx context.Context, buyerID int) ([]Order, error) {
	orders := []Order{}
	result := s.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC, id DESC").
		Find(&orders)
	return orders, result.Error
}

func (s *GormStorage) GetOrdersByFarmer(ctx context.Context, farmerID int) ([]Order, error) {
	orders := []Order{}
	result := s.db.WithContext(ctx).
		Where("farmer_id = ?", farmerID).
		Order("created_at DESC, id DESC").
		Find(&orders)
	return orders, result.Error
}

func (s *GormStorage) UpdateOrderStatus(ctx context.Context, id int, status OrderStatus) (*Order, error) {
	result := s.db.WithContext(ctx).Model(&Order{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return s.GetOrder(ctx, id)
}

// Reviews

func (s *GormStorage) CreateReview(ctx context.Context, r Review) (Review, error) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	err := s.db.WithContext(ctx).Create(&r).Error
	return r, err
}

func (s *GormStorage) GetReviewsForProduct(ctx context.Context, productID int) ([]Review, error) {
	reviews := []Review{}
	result := s.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		Find(&reviews)
	return reviews, result.Error
}

func (s *GormStorage) GetReviewsForService(ctx context.Context, serviceID int) ([]Review, error) {
	reviews := []Review{}
	result := s.db.WithContext(ctx).
		Where("service_id = ?", serviceID).
		Order("created_at DESC, id DESC").
		Find(&reviews)
	return reviews, result.Error
}

// Testimonials

func (s *GormStorage) CreateTestimonial(ctx context.Context, tm Testimonial) (Testimonial, error) {
	if tm.CreatedAt.IsZero() {
		tm.CreatedAt = time.Now()
	}
	err := s.db.WithContext(ctx).Create(&tm).Error
	return tm, err
}

func (s *GormStorage) GetApprovedTestimonials(ctx context.Context) ([]Testimonial, error) {
	testimonials := []Testimonial{}
	result := s.db.WithContext(ctx).
		Where("is_approved = ?", true).
		Order("created_at DESC, id DESC").
		Find(&testimonials)
	return testimonials, result.Error
}

// Close & Ping

func (s *GormStorage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *GormStorage) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func setString(updates map[string]interface{}, column string, v *string) {
	if v != nil {
		updates[column] = *v
	}
}
