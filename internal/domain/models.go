package domain

import "time"

type Product struct {
	ID           int      `json:"id"`
	ProductName  string   `json:"productName"`
	Image        string   `json:"image"`
	Price        float64  `json:"price"`
	CutPrice     *float64 `json:"cutPrice,omitempty"`
	Description  string   `json:"description"`
	Rating       float64  `json:"rating"`
	ReviewCount  int      `json:"reviewCount"`
	Producer     string   `json:"producer,omitempty"`
	QuantityType string   `json:"quantityType,omitempty"`
}

// Available reports whether the product can still be added to an order.
func (p Product) Available() bool {
	return p.QuantityType != QuantityNone
}

// ProductSummary is the lightweight catalog row returned by /api/products/dto.
type ProductSummary struct {
	ID           int      `json:"id"`
	ProductName  string   `json:"productName"`
	Image        string   `json:"image"`
	Price        float64  `json:"price"`
	CutPrice     *float64 `json:"cutPrice,omitempty"`
	Rating       float64  `json:"rating"`
	ReviewCount  int      `json:"reviewCount"`
	QuantityType string   `json:"quantityType,omitempty"`
}

// CartLineItem is one product-plus-quantity row in the cart. Quantity is
// always >= 1; a zero-quantity line never exists in a well-formed cart.
type CartLineItem struct {
	Product
	Quantity int `json:"quantity"`
}

// Subtotal is price times quantity for this line.
func (li CartLineItem) Subtotal() float64 {
	return li.Price * float64(li.Quantity)
}

type Comment struct {
	ID          int     `json:"id"`
	ProductID   int     `json:"productId,omitempty"`
	UserID      int     `json:"userId,omitempty"`
	Username    string  `json:"username,omitempty"`
	Rating      float64 `json:"rating"`
	Description string  `json:"description"`
}

type CommentRequest struct {
	ProductID   int     `json:"productId"`
	UserID      int     `json:"userId"`
	Rating      float64 `json:"rating"`
	Description string  `json:"description"`
}

type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Email    string `json:"email"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User        User   `json:"user"`
	BasketID    int    `json:"basketId"`
	AccessToken string `json:"accessToken,omitempty"`
	Message     string `json:"message,omitempty"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

type Shop struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Street  string `json:"street"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
}

// OrderProduct is a product reference inside an order, carrying the quantity
// purchased rather than the full catalog row.
type OrderProduct struct {
	ID       int `json:"id"`
	Quantity int `json:"quantity"`
}

type OrderRequest struct {
	Email          string         `json:"email"`
	BasketID       int            `json:"basketId"`
	Address        *Address       `json:"address,omitempty"`
	DeliveryType   string         `json:"deliveryType"`
	ShopID         int            `json:"shopId,omitempty"`
	IdempotencyKey string         `json:"idempotencyKey,omitempty"`
	Products       []OrderProduct `json:"products"`
}

type Order struct {
	ID             int            `json:"id"`
	Email          string         `json:"email,omitempty"`
	OrderDate      time.Time      `json:"orderDate"`
	ShipDate       *time.Time     `json:"shipDate,omitempty"`
	State          string         `json:"state"`
	DeliveryType   string         `json:"deliveryType"`
	Address        *Address       `json:"address,omitempty"`
	ShopID         int            `json:"shopId,omitempty"`
	OrderIssueType string         `json:"orderIssueType,omitempty"`
	IssueText      string         `json:"issueDescription,omitempty"`
	Products       []OrderProduct `json:"products,omitempty"`
}

type OrderStateUpdate struct {
	State string `json:"state"`
}

type OrderIssueRequest struct {
	OrderIssueType string `json:"orderIssueType"`
	Description    string `json:"description"`
}

// StockUpdate reports a stock state change for one product. IDs travel as
// strings on the wire (the backend PATCH endpoint expects them that way).
type StockUpdate struct {
	ID           string `json:"id"`
	QuantityType string `json:"quantityType"`
}

type PaymentIntentRequest struct {
	// Amount is in minor currency units (grosze for PLN).
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

const (
	QuantityAvailable = "AVAILABLE"
	QuantityFew       = "FEW"
	QuantityNone      = "NONE"
)

const (
	OrderStatePending    = "PENDING"
	OrderStateProcessing = "PROCESSING"
	OrderStateShipped    = "SHIPPED"
	OrderStateCancelled  = "CANCELLED"
)

const (
	IssueNoProduct     = "NO_PRODUCT"
	IssueDamaged       = "DAMAGED_PRODUCT"
	IssueIncorrectData = "INCORRECT_DATA"
	IssueOther         = "ANOTHER"
)

const (
	DeliveryShipping = "SHIPPING"
	DeliveryPickup   = "PICKUP"
)
