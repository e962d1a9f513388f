package storage

import "time"

// Role classifies a user account.
type Role string

const (
	RoleFarmer          Role = "farmer"
	RoleBuyer           Role = "buyer"
	RoleServiceProvider Role = "service_provider"
)

// ProductCategory is the closed set of product listing categories.
type ProductCategory string

const (
	CategoryVegetables ProductCategory = "vegetables"
	CategoryFruits     ProductCategory = "fruits"
	CategoryGrains     ProductCategory = "grains"
	CategoryOrganic    ProductCategory = "organic"
)

// ServiceType is the closed set of offered service kinds.
type ServiceType string

const (
	ServiceTransportation  ServiceType = "transportation"
	ServiceEquipmentRental ServiceType = "equipment_rental"
	ServiceAdvisory        ServiceType = "advisory"
)

// OrderStatus tracks order fulfillment. Transitions are not constrained by
// the storage layer; any status may overwrite any other.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// User is a registered account: a farmer, a buyer, or a service provider.
// The password is stored as a bcrypt hash and never serialized.
type User struct {
	ID           int    `json:"id" gorm:"primaryKey;column:id"`
	Username     string `json:"username" gorm:"uniqueIndex;column:username"`
	Password     string `json:"-" gorm:"column:password"`
	Email        string `json:"email" gorm:"uniqueIndex;column:email"`
	Phone        string `json:"phone,omitempty" gorm:"column:phone"`
	FullName     string `json:"fullName" gorm:"column:full_name"`
	Role         Role   `json:"role" gorm:"column:role"`
	Address      string `json:"address,omitempty" gorm:"column:address"`
	City         string `json:"city,omitempty" gorm:"column:city"`
	State        string `json:"state,omitempty" gorm:"column:state"`
	ProfileImage string `json:"profileImage,omitempty" gorm:"column:profile_image"`
	Bio          string `json:"bio,omitempty" gorm:"column:bio"`
}

// Product is a farm product listed by a farmer. Price, quantity and rating
// are decimal strings so values survive the round trip through the numeric
// database columns unchanged.
type Product struct {
	ID          int             `json:"id" gorm:"primaryKey;column:id"`
	FarmerID    int             `json:"farmerId" gorm:"column:farmer_id"`
	Title       string          `json:"title" gorm:"column:title"`
	Description string          `json:"description" gorm:"column:description"`
	Category    ProductCategory `json:"category" gorm:"column:category"`
	Price       string          `json:"price" gorm:"column:price"`
	Unit        string          `json:"unit" gorm:"column:unit"`
	Quantity    string          `json:"quantity" gorm:"column:quantity"`
	Images      []string        `json:"images,omitempty" gorm:"serializer:json;column:images"`
	Location    string          `json:"location,omitempty" gorm:"column:location"`
	IsCertified bool            `json:"isCertified" gorm:"column:is_certified"`
	IsOrganic   bool            `json:"isOrganic" gorm:"column:is_organic"`
	IsPremium   bool            `json:"isPremium" gorm:"column:is_premium"`
	Rating      string          `json:"rating,omitempty" gorm:"column:rating"`
	CreatedAt   time.Time       `json:"createdAt" gorm:"column:created_at"`
}

// Service is a support offering (transport, equipment rental, advisory)
// listed by a service provider.
type Service struct {
	ID           int         `json:"id" gorm:"primaryKey;column:id"`
	ProviderID   int         `json:"providerId" gorm:"column:provider_id"`
	Title        string      `json:"title" gorm:"column:title"`
	Description  string      `json:"description" gorm:"column:description"`
	ServiceType  ServiceType `json:"serviceType" gorm:"column:service_type"`
	Price        string      `json:"price,omitempty" gorm:"column:price"`
	PricingUnit  string      `json:"pricingUnit,omitempty" gorm:"column:pricing_unit"`
	Location     string      `json:"location,omitempty" gorm:"column:location"`
	Availability string      `json:"availability,omitempty" gorm:"column:availability"`
	Rating       string      `json:"rating,omitempty" gorm:"column:rating"`
	CreatedAt    time.Time   `json:"createdAt" gorm:"column:created_at"`
}

// Order links a buyer, a farmer and one product.
type Order struct {
	ID              int         `json:"id" gorm:"primaryKey;column:id"`
	BuyerID         int         `json:"buyerId" gorm:"column:buyer_id"`
	FarmerID        int         `json:"farmerId" gorm:"column:farmer_id"`
	ProductID       int         `json:"productId" gorm:"column:product_id"`
	Quantity        string      `json:"quantity" gorm:"column:quantity"`
	TotalPrice      string      `json:"totalPrice" gorm:"column:total_price"`
	Status          OrderStatus `json:"status" gorm:"column:status"`
	PaymentStatus   bool        `json:"paymentStatus" gorm:"column:payment_status"`
	ShippingAddress string      `json:"shippingAddress" gorm:"column:shipping_address"`
	CreatedAt       time.Time   `json:"createdAt" gorm:"column:created_at"`
}

// Review is attached to a product or to a service (one of the two ids set).
type Review struct {
	ID        int       `json:"id" gorm:"primaryKey;column:id"`
	UserID    int       `json:"userId" gorm:"column:user_id"`
	ProductID *int      `json:"productId,omitempty" gorm:"column:product_id"`
	ServiceID *int      `json:"serviceId,omitempty" gorm:"column:service_id"`
	Rating    int       `json:"rating" gorm:"column:rating"`
	Comment   string    `json:"comment,omitempty" gorm:"column:comment"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
}

// Testimonial is user-submitted platform feedback; only approved ones are
// listed publicly.
type Testimonial struct {
	ID         int       `json:"id" gorm:"primaryKey;column:id"`
	UserID     int       `json:"userId" gorm:"column:user_id"`
	Content    string    `json:"content" gorm:"column:content"`
	Rating     int       `json:"rating" gorm:"column:rating"`
	IsApproved bool      `json:"isApproved" gorm:"column:is_approved"`
	CreatedAt  time.Time `json:"createdAt" gorm:"column:created_at"`
}

// UserPatch is a partial user update; nil fields are left untouched.
type UserPatch struct {
	Username     *string `json:"username"`
	Password     *string `json:"password"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	FullName     *string `json:"fullName"`
	Role         *Role   `json:"role"`
	Address      *string `json:"address"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	ProfileImage *string `json:"profileImage"`
	Bio          *string `json:"bio"`
}

// ProductPatch is a partial product update; nil fields are left untouched.
// CreatedAt is immutable and deliberately absent.
type ProductPatch struct {
	FarmerID    *int             `json:"farmerId"`
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Category    *ProductCategory `json:"category"`
	Price       *string          `json:"price"`
	Unit        *string          `json:"unit"`
	Quantity    *string          `json:"quantity"`
	Images      []string         `json:"images"`
	Location    *string          `json:"location"`
	IsCertified *bool            `json:"isCertified"`
	IsOrganic   *bool            `json:"isOrganic"`
	IsPremium   *bool            `json:"isPremium"`
	Rating      *string          `json:"rating"`
}

// ServicePatch is a partial service update; nil fields are left untouched.
type ServicePatch struct {
	ProviderID   *int         `json:"providerId"`
	Title        *string      `json:"title"`
	Description  *string      `json:"description"`
	ServiceType  *ServiceType `json:"serviceType"`
	Price        *string      `json:"price"`
	PricingUnit  *string      `json:"pricingUnit"`
	Location     *string      `json:"location"`
	Availability *string      `json:"availability"`
	Rating       *string      `json:"rating"`
}

// ProductQuery filters GetProducts. Zero values mean "no filter".
// Category matches exactly; SearchTerm matches title or description as a
// case-insensitive substring; Limit caps the result count and is applied
// after filtering and ordering.
type ProductQuery struct {
	Limit      int
	Category   ProductCategory
	SearchTerm string
}

// ServiceQuery filters GetServices. Zero values mean "no filter".
type ServiceQuery struct {
	Limit int
	Type  ServiceType
}
