package dto

import "storefront-api/internal/model"

// ---- users ----

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
}

func NewUserResponse(u *model.User) *UserResponse {
	return &UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		IsAdmin:  u.IsAdmin,
	}
}

// ---- catalog ----

type ProductRequest struct {
	Name         string  `json:"name"`
	Image        string  `json:"image"`
	Brand        string  `json:"brand"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	CountInStock int     `json:"countInStock"`
}

type ProductPage struct {
	Products []*model.Product `json:"products"`
	Page     int              `json:"page"`
	Pages    int              `json:"pages"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// FilterRequest mirrors the storefront filter widget: checked category ids
// plus an inclusive [min,max] price range.
type FilterRequest struct {
	Checked []string  `json:"checked"`
	Radio   []float64 `json:"radio"`
}

type CategoryRequest struct {
	Name string `json:"name"`
}

// ---- cart ----

type AddToCartRequest struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

type Cart struct {
	Items      []*model.CartItem `json:"items"`
	ItemsPrice float64           `json:"itemsPrice"`
}

type CheckoutRequest struct {
	ShippingAddress model.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                `json:"paymentMethod"`
}

// ---- orders ----

type OrderItemInput struct {
	ProductID string `json:"product"`
	Qty       int    `json:"qty"`
}

type CreateOrderRequest struct {
	Items           []OrderItemInput      `json:"orderItems"`
	ShippingAddress model.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                `json:"paymentMethod"`
	ShippingPrice   float64               `json:"shippingPrice"`
	TaxPrice        float64               `json:"taxPrice"`
}

// PayOrderRequest carries the provider handle only: the PayPal checkout order
// id, or a Braintree client nonce. The capture receipt itself is fetched from
// the provider, never trusted from the browser.
type PayOrderRequest struct {
	ID    string `json:"id"`
	Nonce string `json:"nonce,omitempty"`
}

type OrderCount struct {
	TotalOrders int64 `json:"totalOrders"`
}

type SalesTotal struct {
	TotalSales float64 `json:"totalSales"`
}

// ---- config ----

type PaypalConfig struct {
	ClientID string `json:"clientId"`
}
