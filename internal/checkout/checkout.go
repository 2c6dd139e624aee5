package checkout

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"

	"techsklep/mobile/internal/domain"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrNoDeliveryOption  = errors.New("no delivery option selected")
	ErrIncompleteAddress = errors.New("shipping address incomplete")
)

// Backend is the slice of the REST client checkout needs.
type Backend interface {
	ListShops(ctx context.Context) ([]domain.Shop, error)
	CreatePaymentIntent(ctx context.Context, req domain.PaymentIntentRequest) (*domain.PaymentIntentResponse, error)
	CreateOrder(ctx context.Context, req domain.OrderRequest) (*domain.Order, error)
}

// Cart is the read-and-clear view of the cart store checkout works against.
type Cart interface {
	Items() []domain.CartLineItem
	Total() float64
	ClearCart(ctx context.Context)
}

// Flow drives one checkout: pick a delivery option, create the payment
// intent, submit the order, and clear the cart only once the server has
// confirmed. Retrying a failed submit reuses the same idempotency key, so
// the backend can deduplicate.
type Flow struct {
	mu       sync.Mutex
	backend  Backend
	cart     Cart
	currency string

	deliveryType   string
	address        *domain.Address
	shopID         int
	idempotencyKey string
}

func NewFlow(backend Backend, cart Cart, currency string) *Flow {
	if currency == "" {
		currency = "pln"
	}
	return &Flow{backend: backend, cart: cart, currency: currency}
}

// Shops lists the pickup locations for the delivery step.
func (f *Flow) Shops(ctx context.Context) ([]domain.Shop, error) {
	return f.backend.ListShops(ctx)
}

// SelectShipping chooses home delivery. All address fields are required.
func (f *Flow) SelectShipping(address domain.Address) error {
	if address.Street == "" || address.City == "" || address.PostalCode == "" {
		return ErrIncompleteAddress
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deliveryType = domain.DeliveryShipping
	f.address = &address
	f.shopID = 0
	return nil
}

// SelectPickup chooses in-store pickup at the given shop.
func (f *Flow) SelectPickup(shopID int) error {
	if shopID <= 0 {
		return fmt.Errorf("invalid shop id %d", shopID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deliveryType = domain.DeliveryPickup
	f.shopID = shopID
	f.address = nil
	return nil
}

// AmountMinorUnits converts the cart total to minor currency units (grosze
// for PLN), the unit the payment endpoint expects.
func (f *Flow) AmountMinorUnits() int64 {
	return int64(math.Round(f.cart.Total() * 100))
}

// CreatePaymentIntent asks the backend for a payment-sheet secret covering
// the current cart total.
func (f *Flow) CreatePaymentIntent(ctx context.Context) (*domain.PaymentIntentResponse, error) {
	if len(f.cart.Items()) == 0 {
		return nil, ErrEmptyCart
	}
	return f.backend.CreatePaymentIntent(ctx, domain.PaymentIntentRequest{
		Amount:   f.AmountMinorUnits(),
		Currency: f.currency,
	})
}

// Submit sends the order built from the cart and the selected delivery
// option. On success the cart is cleared; on failure it is left intact so
// the user can retry.
func (f *Flow) Submit(ctx context.Context, email string, basketID int) (*domain.Order, error) {
	items := f.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	f.mu.Lock()
	if f.deliveryType == "" {
		f.mu.Unlock()
		return nil, ErrNoDeliveryOption
	}
	if f.idempotencyKey == "" {
		f.idempotencyKey = uuid.NewString()
	}
	req := domain.OrderRequest{
		Email:          email,
		BasketID:       basketID,
		DeliveryType:   f.deliveryType,
		Address:        f.address,
		ShopID:         f.shopID,
		IdempotencyKey: f.idempotencyKey,
		Products:       make([]domain.OrderProduct, 0, len(items)),
	}
	f.mu.Unlock()

	for _, item := range items {
		req.Products = append(req.Products, domain.OrderProduct{ID: item.ID, Quantity: item.Quantity})
	}

	order, err := f.backend.CreateOrder(ctx, req)
	if err != nil {
		return nil, err
	}
	f.cart.ClearCart(ctx)
	return order, nil
}
