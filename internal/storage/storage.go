package storage

import "context"

// Storage abstracts persistence for the marketplace entities. Exactly one
// backend is active per process; both backends honor the same contract:
//
//   - Lookups return (nil, nil) when the id does not exist; absence is never
//     an error.
//   - Creates assign the identifier (and CreatedAt where the entity carries
//     one) and return the fully materialized record.
//   - Updates overlay only the non-nil patch fields onto the stored record
//     and return (nil, nil) when the target id does not exist.
//   - Deletes report whether a row existed; deleting a missing id is false,
//     not an error.
//   - Constraint and driver failures propagate unmodified; nothing here
//     retries.
//
// The durable backend enforces username/email uniqueness through database
// constraints; the in-memory backend does not.
type Storage interface {
	// Users
	CreateUser(ctx context.Context, u User) (User, error)
	GetUser(ctx context.Context, id int) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdateUser(ctx context.Context, id int, patch UserPatch) (*User, error)
	GetUsers(ctx context.Context) ([]User, error)
	GetUsersByRole(ctx context.Context, role Role) ([]User, error)

	// Products
	CreateProduct(ctx context.Context, p Product) (Product, error)
	GetProduct(ctx context.Context, id int) (*Product, error)
	GetProducts(ctx context.Context, q ProductQuery) ([]Product, error)
	GetProductsByFarmer(ctx context.Context, farmerID int) ([]Product, error)
	UpdateProduct(ctx context.Context, id int, patch ProductPatch) (*Product, error)
	DeleteProduct(ctx context.Context, id int) (bool, error)

	// Services
	CreateService(ctx context.Context, s Service) (Service, error)
	GetService(ctx context.Context, id int) (*Service, error)
	GetServices(ctx context.Context, q ServiceQuery) ([]Service, error)
	GetServicesByProvider(ctx context.Context, providerID int) ([]Service, error)
	UpdateService(ctx context.Context, id int, patch ServicePatch) (*Service, error)
	DeleteService(ctx context.Context, id int) (bool, error)

	// Orders
	CreateOrder(ctx context.Context, o Order) (Order, error)
	GetOrder(ctx context.Context, id int) (*Order, error)
	GetOrdersByBuyer(ctx context.Context, buyerID int) ([]Order, error)
	GetOrdersByFarmer(ctx context.Context, farmerID int) ([]Order, error)
	UpdateOrderStatus(ctx context.Context, id int, status OrderStatus) (*Order, error)

	// Reviews
	CreateReview(ctx context.Context, r Review) (Review, error)
	GetReviewsForProduct(ctx context.Context, productID int) ([]Review, error)
	GetReviewsForService(ctx context.Context, serviceID int) ([]Review, error)

	// Testimonials
	CreateTestimonial(ctx context.Context, tm Testimonial) (Testimonial, error)
	GetApprovedTestimonials(ctx context.Context) ([]Testimonial, error)

	// Ping reports backend reachability (no-op for in-memory).
	Ping(ctx context.Context) error

	// Close releases any resources (no-op for in-memory).
	Close() error
}
