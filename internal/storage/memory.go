package storage

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStorage is an in-memory Storage implementation, useful for tests and
// demo deployments. Each instance owns its own maps and id counters, so
// independent instances never share state.
//
// Unlike the relational backend it does not enforce username/email
// uniqueness; that divergence is documented on the Storage interface.
type MemoryStorage struct {
	mu           sync.RWMutex
	users        map[int]User
	products     map[int]Product
	services     map[int]Service
	orders       map[int]Order
	reviews      map[int]Review
	testimonials map[int]Testimonial

	userID        int
	productID     int
	serviceID     int
	orderID       int
	reviewID      int
	testimonialID int
}

// NewMemory returns an empty MemoryStorage. Counters start at 1 and only
// ever increase within the lifetime of the instance.
func NewMemory() *MemoryStorage {
	return &MemoryStorage{
		users:         make(map[int]User),
		products:      make(map[int]Product),
		services:      make(map[int]Service),
		orders:        make(map[int]Order),
		reviews:       make(map[int]Review),
		testimonials:  make(map[int]Testimonial),
		userID:        1,
		productID:     1,
		serviceID:     1,
		orderID:       1,
		reviewID:      1,
		testimonialID: 1,
	}
}

func (m *MemoryStorage) Close() error { return nil }

func (m *MemoryStorage) Ping(ctx context.Context) error { return nil }

// Users

func (m *MemoryStorage) CreateUser(ctx context.Context, u User) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = m.userID
	m.userID++
	m.users[u.ID] = u
	return u, nil
}

func (m *MemoryStorage) GetUser(ctx context.Context, id int) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *MemoryStorage) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Username == username {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MemoryStorage) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MemoryStorage) UpdateUser(ctx context.Context, id int, patch UserPatch) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	if patch.Username != nil {
		u.Username = *patch.Username
	}
	if patch.Password != nil {
		u.Password = *patch.Password
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Phone != nil {
		u.Phone = *patch.Phone
	}
	if patch.FullName != nil {
		u.FullName = *patch.FullName
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if patch.Address != nil {
		u.Address = *patch.Address
	}
	if patch.City != nil {
		u.City = *patch.City
	}
	if patch.State != nil {
		u.State = *patch.State
	}
	if patch.ProfileImage != nil {
		u.ProfileImage = *patch.ProfileImage
	}
	if patch.Bio != nil {
		u.Bio = *patch.Bio
	}
	m.users[id] = u
	return &u, nil
}

func (m *MemoryStorage) GetUsers(ctx context.Context) ([]User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []User{}
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStorage) GetUsersByRole(ctx context.Context, role Role) ([]User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []User{}
	for _, u := range m.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Products

func (m *MemoryStorage) CreateProduct(ctx context.Context, p Product) (Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.productID
	m.productID++
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.Images = slices.Clone(p.Images)
	m.products[p.ID] = p
	return cloneProduct(p), nil
}

func (m *MemoryStorage) GetProduct(ctx context.Context, id int) (*Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	cp := cloneProduct(p)
	return &cp, nil
}

func (m *MemoryStorage) GetProducts(ctx context.Context, q ProductQuery) ([]Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Product{}
	term := strings.ToLower(q.SearchTerm)
	for _, p := range m.products {
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Title), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		out = append(out, cloneProduct(p))
	}
	sortProductsNewestFirst(out)
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *MemoryStorage) GetProductsByFarmer(ctx context.Context, farmerID int) ([]Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Product{}
	for _, p := range m.products {
		if p.FarmerID == farmerID {
			out = append(out, cloneProduct(p))
		}
	}
	sortProductsNewestFirst(out)
	return out, nil
}

func (m *MemoryStorage) UpdateProduct(ctx context.Context, id int, patch ProductPatch) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	if patch.FarmerID != nil {
		p.FarmerID = *patch.FarmerID
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Unit != nil {
		p.Unit = *patch.Unit
	}
	if patch.Quantity != nil {
		p.Quantity = *patch.Quantity
	}
	if patch.Images != nil {
		p.Images = slices.Clone(patch.Images)
	}
	if patch.Location != nil {
		p.Location = *patch.Location
	}
	if patch.IsCertified != nil {
		p.IsCertified = *patch.IsCertified
	}
	if patch.IsOrganic != nil {
		p.IsOrganic = *patch.IsOrganic
	}
	if patch.IsPremium != nil {
		p.IsPremium = *patch.IsPremium
	}
	if patch.Rating != nil {
		p.Rating = *patch.Rating
	}
	m.products[id] = p
	cp := cloneProduct(p)
	return &cp, nil
}

func (m *MemoryStorage) DeleteProduct(ctx context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.products[id]
	delete(m.products, id)
	return ok, nil
}

// Services

func (m *MemoryStorage) CreateService(ctx context.Context, s Service) (Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = m.serviceID
	m.serviceID++
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	m.services[s.ID] = s
	return s, nil
}

func (m *MemoryStorage) GetService(ctx context.Context, id int) (*Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.services[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *MemoryStorage) GetServices(ctx context.Context, q ServiceQuery) ([]Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Service{}
	for _, s := range m.services {
		if q.Type != "" && s.ServiceType != q.Type {
			continue
		}
		out = append(out, s)
	}
	sortServicesNewestFirst(out)
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *MemoryStorage) GetServicesByProvider(ctx context.Context, providerID int) ([]Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Service{}
	for _, s := range m.services {
		if s.ProviderID == providerID {
			out = append(out, s)
		}
	}
	sortServicesNewestFirst(out)
	return out, nil
}

func (m *MemoryStorage) UpdateService(ctx context.Context, id int, patch ServicePatch) (*Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.services[id]
	if !ok {
		return nil, nil
	}
	if patch.ProviderID != nil {
		s.ProviderID = *patch.ProviderID
	}
	if patch.Title != nil {
		s.Title = *patch.Title
	}
	if patch.Description != nil {
		s.Description = *patch.Description
	}
	if patch.ServiceType != nil {
		s.ServiceType = *patch.ServiceType
	}
	if patch.Price != nil {
		s.Price = *patch.Price
	}
	if patch.PricingUnit != nil {
		s.PricingUnit = *patch.PricingUnit
	}
	if patch.Location != nil {
		s.Location = *patch.Location
	}
	if patch.Availability != nil {
		s.Availability = *patch.Availability
	}
	if patch.Rating != nil {
		s.Rating = *patch.Rating
	}
	m.services[id] = s
	return &s, nil
}

func (m *MemoryStorage) DeleteService(ctx context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.services[id]
	delete(m.services, id)
	return ok, nil
}

// Orders

func (m *MemoryStorage) CreateOrder(ctx context.Context, o Order) (Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o.ID = m.orderID
	m.orderID++
	if o.Status == "" {
		o.Status = OrderPending
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	m.orders[o.ID] = o
	return o, nil
}

func (m *MemoryStorage) GetOrder(ctx context.Context, id int) (*Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (m *MemoryStorage) GetOrdersByBuyer(ctx context.Context, buyerID int) ([]Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Order{}
	for _, o := range m.orders {
		if o.BuyerID == buyerID {
			out = append(out, o)
		}
	}
	sortOrdersNewestFirst(out)
	return out, nil
}

func (m *MemoryStorage) GetOrdersByFarmer(ctx context.Context, farmerID int) ([]Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Order{}
	for _, o := range m.orders {
		if o.FarmerID == farmerID {
			out = append(out, o)
		}
	}
	sortOrdersNewestFirst(out)
	return out, nil
}

func (m *MemoryStorage) UpdateOrderStatus(ctx context.Context, id int, status OrderStatus) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	o.Status = status
	m.orders[id] = o
	return &o, nil
}

// Reviews

func (m *MemoryStorage) CreateReview(ctx context.Context, r Review) (Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = m.reviewID
	m.reviewID++
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	r.ProductID = cloneIntPtr(r.ProductID)
	r.ServiceID = cloneIntPtr(r.ServiceID)
	m.reviews[r.ID] = r
	return cloneReview(r), nil
}

func (m *MemoryStorage) GetReviewsForProduct(ctx context.Context, productID int) ([]Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Review{}
	for _, r := range m.reviews {
		if r.ProductID != nil && *r.ProductID == productID {
			out = append(out, cloneReview(r))
		}
	}
	sortReviewsNewestFirst(out)
	return out, nil
}

func (m *MemoryStorage) GetReviewsForService(ctx context.Context, serviceID int) ([]Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Review{}
	for _, r := range m.reviews {
		if r.ServiceID != nil && *r.ServiceID == serviceID {
			out = append(out, cloneReview(r))
		}
	}
	sortReviewsNewestFirst(out)
	return out, nil
}

// Testimonials

func (m *MemoryStorage) CreateTestimonial(ctx context.Context, tm Testimonial) (Testimonial, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tm.ID = m.testimonialID
	m.testimonialID++
	if tm.CreatedAt.IsZero() {
		tm.CreatedAt = time.Now()
	}
	m.testimonials[tm.ID] = tm
	return tm, nil
}

func (m *MemoryStorage) GetApprovedTestimonials(ctx context.Context) ([]Testimonial, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Testimonial{}
	for _, tm := range m.testimonials {
		if tm.IsApproved {
			out = append(out, tm)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// Both backends list newest-first; id breaks creation-time ties so results
// stay deterministic when records are created within the same instant.

func sortProductsNewestFirst(ps []Product) {
	sort.Slice(ps, func(i, j int) bool {
		if !ps[i].CreatedAt.Equal(ps[j].CreatedAt) {
			return ps[i].CreatedAt.After(ps[j].CreatedAt)
		}
		return ps[i].ID > ps[j].ID
	})
}

func sortServicesNewestFirst(ss []Service) {
	sort.Slice(ss, func(i, j int) bool {
		if !ss[i].CreatedAt.Equal(ss[j].CreatedAt) {
			return ss[i].CreatedAt.After(ss[j].CreatedAt)
		}
		return ss[i].ID > ss[j].ID
	})
}

func sortOrdersNewestFirst(os []Order) {
	sort.Slice(os, func(i, j int) bool {
		if !os[i].CreatedAt.Equal(os[j].CreatedAt) {
			return os[i].CreatedAt.After(os[j].CreatedAt)
		}
		return os[i].ID > os[j].ID
	})
}

func sortReviewsNewestFirst(rs []Review) {
	sort.Slice(rs, func(i, j int) bool {
		if !rs[i].CreatedAt.Equal(rs[j].CreatedAt) {
			return rs[i].CreatedAt.After(rs[j].CreatedAt)
		}
		return rs[i].ID > rs[j].ID
	})
}

func cloneProduct(p Product) Product {
	p.Images = slices.Clone(p.Images)
	return p
}

func cloneReview(r Review) Review {
	r.ProductID = cloneIntPtr(r.ProductID)
	r.ServiceID = cloneIntPtr(r.ServiceID)
	return r
}

func cloneIntPtr(v *int) *int {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}
