package model

import "time"

type User struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	Username     string `gorm:"size:64;not null" json:"username"`
	Email        string `gorm:"size:128;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:128;not null" json:"-"`
	IsAdmin      bool   `gorm:"not null;default:false" json:"isAdmin"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Category struct {
	ID   string `gorm:"primaryKey;size:36" json:"id"`
	Name string `gorm:"size:64;uniqueIndex;not null" json:"name"`
}

type Product struct {
	ID          string  `gorm:"primaryKey;size:36" json:"id"`
	Name        string  `gorm:"size:128;index;not null" json:"name"`
	Image       string  `gorm:"size:256" json:"image"`
	Brand       string  `gorm:"size:64;not null" json:"brand"`
	Description string  `gorm:"not null" json:"description"`
	CategoryID  string  `gorm:"size:36;index;not null" json:"category"`
	Price       float64 `gorm:"not null" json:"price"`
	// CountInStock is the sellable quantity, named after the storefront field.
	CountInStock int `gorm:"not null" json:"countInStock"`

	// Rating is the arithmetic mean of all review ratings, NumReviews the
	// count. Both are recomputed on every review append.
	Rating     float64  `gorm:"not null;default:0" json:"rating"`
	NumReviews int      `gorm:"not null;default:0" json:"numReviews"`
	Reviews    []Review `gorm:"foreignKey:ProductID" json:"reviews,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Review struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	ProductID string `gorm:"size:36;not null;uniqueIndex:idx_review_product_user" json:"productId"`
	UserID    string `gorm:"size:36;not null;uniqueIndex:idx_review_product_user" json:"userId"`
	Name      string `gorm:"size:64;not null" json:"name"`
	Rating    int    `gorm:"not null" json:"rating"`
	Comment   string `json:"comment"`

	CreatedAt time.Time `json:"createdAt"`
}

// CartItem is a product snapshot keyed by (user, product). Adding the same
// product again replaces the quantity rather than adding to it.
type CartItem struct {
	UserID       string  `gorm:"primaryKey;size:36" json:"-"`
	ProductID    string  `gorm:"primaryKey;size:36" json:"productId"`
	Name         string  `gorm:"size:128;not null" json:"name"`
	Image        string  `gorm:"size:256" json:"image"`
	Brand        string  `gorm:"size:64" json:"brand"`
	Price        float64 `gorm:"not null" json:"price"`
	CountInStock int     `gorm:"not null" json:"countInStock"`
	Quantity     int     `gorm:"not null" json:"qty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ShippingAddress struct {
	Address    string `gorm:"size:128" json:"address"`
	City       string `gorm:"size:64" json:"city"`
	PostalCode string `gorm:"size:16" json:"postalCode"`
	Country    string `gorm:"size:64" json:"country"`
}

// PaymentResult is the capture receipt as reported by the payment provider
// after server-side verification, stored as-is.
type PaymentResult struct {
	ID         string `gorm:"size:64" json:"id"`
	Status     string `gorm:"size:32" json:"status"`
	PayerEmail string `gorm:"size:128" json:"email_address"`
}

type Order struct {
	ID     string      `gorm:"primaryKey;size:36" json:"id"`
	UserID string      `gorm:"size:36;index;not null" json:"userId"`
	Items  []OrderItem `gorm:"foreignKey:OrderID" json:"orderItems"`

	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shippingAddress"`
	PaymentMethod   string          `gorm:"size:32;not null" json:"paymentMethod"`

	ItemsPrice    float64 `gorm:"not null" json:"itemsPrice"`
	ShippingPrice float64 `gorm:"not null" json:"shippingPrice"`
	TaxPrice      float64 `gorm:"not null" json:"taxPrice"`
	TotalPrice    float64 `gorm:"not null" json:"totalPrice"`

	IsPaid        bool          `gorm:"not null;default:false" json:"isPaid"`
	PaidAt        *time.Time    `json:"paidAt,omitempty"`
	PaymentResult PaymentResult `gorm:"embedded;embeddedPrefix:payment_" json:"paymentResult"`

	IsDelivered bool       `gorm:"not null;default:false" json:"isDelivered"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// OrderItem is copied from the cart at creation time, not live-linked to the
// catalog; later product edits or deletion do not alter historical orders.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	OrderID   string  `gorm:"size:36;index;not null" json:"-"`
	ProductID string  `gorm:"size:36;not null" json:"product"`
	Name      string  `gorm:"size:128;not null" json:"name"`
	Image     string  `gorm:"size:256" json:"image"`
	Price     float64 `gorm:"not null" json:"price"`
	Quantity  int     `gorm:"not null" json:"qty"`
}

// WebhookEvent records processed provider webhook deliveries so that
// redeliveries of the same event are no-ops.
type WebhookEvent struct {
	EventID     string `gorm:"primaryKey;size:128;not null"`
	EventType   string `gorm:"size:64;index"`
	ProcessedAt time.Time
	CreatedAt   time.Time
}
