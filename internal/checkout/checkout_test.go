package checkout

import (
	"context"
	"errors"
	"testing"

	"techsklep/mobile/internal/cart"
	"techsklep/mobile/internal/domain"
	"techsklep/mobile/internal/storage/memory"
)

type stubBackend struct {
	shops      []domain.Shop
	intentReq  *domain.PaymentIntentRequest
	orderReqs  []domain.OrderRequest
	orderErr   error
	nextOrder  domain.Order
	intentResp domain.PaymentIntentResponse
}

func (b *stubBackend) ListShops(_ context.Context) ([]domain.Shop, error) {
	return b.shops, nil
}

func (b *stubBackend) CreatePaymentIntent(_ context.Context, req domain.PaymentIntentRequest) (*domain.PaymentIntentResponse, error) {
	b.intentReq = &req
	return &b.intentResp, nil
}

func (b *stubBackend) CreateOrder(_ context.Context, req domain.OrderRequest) (*domain.Order, error) {
	b.orderReqs = append(b.orderReqs, req)
	if b.orderErr != nil {
		return nil, b.orderErr
	}
	return &b.nextOrder, nil
}

func seededCart(t *testing.T) *cart.Store {
	t.Helper()
	ctx := context.Background()
	store := cart.New(ctx, memory.New())
	store.AddToCart(ctx, domain.Product{ID: 1, Price: 100}, 2)
	store.AddToCart(ctx, domain.Product{ID: 2, Price: 49.99}, 1)
	return store
}

func TestAmountMinorUnits(t *testing.T) {
	flow := NewFlow(&stubBackend{}, seededCart(t), "pln")
	// 100*2 + 49.99 = 249.99 → 24999 grosze
	if got := flow.AmountMinorUnits(); got != 24999 {
		t.Fatalf("expected 24999 minor units, got %d", got)
	}
}

func TestCreatePaymentIntentUsesCartTotal(t *testing.T) {
	backend := &stubBackend{intentResp: domain.PaymentIntentResponse{ClientSecret: "pi_secret"}}
	flow := NewFlow(backend, seededCart(t), "pln")

	resp, err := flow.CreatePaymentIntent(context.Background())
	if err != nil {
		t.Fatalf("create intent failed: %v", err)
	}
	if resp.ClientSecret != "pi_secret" {
		t.Fatalf("unexpected secret %q", resp.ClientSecret)
	}
	if backend.intentReq.Amount != 24999 || backend.intentReq.Currency != "pln" {
		t.Fatalf("unexpected intent request %+v", backend.intentReq)
	}
}

func TestCreatePaymentIntentEmptyCart(t *testing.T) {
	ctx := context.Background()
	flow := NewFlow(&stubBackend{}, cart.New(ctx, memory.New()), "pln")

	if _, err := flow.CreatePaymentIntent(ctx); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestSubmitRequiresDeliverySelection(t *testing.T) {
	flow := NewFlow(&stubBackend{}, seededCart(t), "pln")

	if _, err := flow.Submit(context.Background(), "jan@example.com", 42); !errors.Is(err, ErrNoDeliveryOption) {
		t.Fatalf("expected ErrNoDeliveryOption, got %v", err)
	}
}

func TestSelectShippingValidatesAddress(t *testing.T) {
	flow := NewFlow(&stubBackend{}, seededCart(t), "pln")

	err := flow.SelectShipping(domain.Address{Street: "Długa 1", City: "", PostalCode: "80-001"})
	if !errors.Is(err, ErrIncompleteAddress) {
		t.Fatalf("expected ErrIncompleteAddress, got %v", err)
	}
	if err := flow.SelectShipping(domain.Address{Street: "Długa 1", City: "Gdańsk", PostalCode: "80-001"}); err != nil {
		t.Fatalf("valid address rejected: %v", err)
	}
}

func TestSubmitShippingOrderClearsCart(t *testing.T) {
	ctx := context.Background()
	backend := &stubBackend{nextOrder: domain.Order{ID: 77, State: domain.OrderStatePending}}
	store := seededCart(t)
	flow := NewFlow(backend, store, "pln")

	if err := flow.SelectShipping(domain.Address{Street: "Długa 1", City: "Gdańsk", PostalCode: "80-001"}); err != nil {
		t.Fatalf("select shipping: %v", err)
	}
	order, err := flow.Submit(ctx, "jan@example.com", 42)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if order.ID != 77 {
		t.Fatalf("unexpected order %+v", order)
	}

	req := backend.orderReqs[0]
	if req.Email != "jan@example.com" || req.BasketID != 42 {
		t.Fatalf("unexpected identity fields %+v", req)
	}
	if req.DeliveryType != domain.DeliveryShipping || req.Address == nil || req.Address.City != "Gdańsk" {
		t.Fatalf("unexpected delivery fields %+v", req)
	}
	if len(req.Products) != 2 || req.Products[0].ID != 1 || req.Products[0].Quantity != 2 {
		t.Fatalf("unexpected products %+v", req.Products)
	}
	if req.IdempotencyKey == "" {
		t.Fatalf("expected an idempotency key")
	}
	if store.ItemCount() != 0 {
		t.Fatalf("cart must be cleared after a confirmed order")
	}
}

func TestSubmitPickupOrderCarriesShopID(t *testing.T) {
	backend := &stubBackend{}
	flow := NewFlow(backend, seededCart(t), "pln")

	if err := flow.SelectPickup(3); err != nil {
		t.Fatalf("select pickup: %v", err)
	}
	if _, err := flow.Submit(context.Background(), "jan@example.com", 42); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	req := backend.orderReqs[0]
	if req.DeliveryType != domain.DeliveryPickup || req.ShopID != 3 || req.Address != nil {
		t.Fatalf("unexpected pickup request %+v", req)
	}
}

func TestFailedSubmitKeepsCartAndReusesIdempotencyKey(t *testing.T) {
	ctx := context.Background()
	backend := &stubBackend{orderErr: errors.New("connection refused")}
	store := seededCart(t)
	flow := NewFlow(backend, store, "pln")
	_ = flow.SelectPickup(1)

	if _, err := flow.Submit(ctx, "jan@example.com", 42); err == nil {
		t.Fatalf("expected submit error")
	}
	if store.ItemCount() == 0 {
		t.Fatalf("cart must survive a failed submit")
	}

	backend.orderErr = nil
	if _, err := flow.Submit(ctx, "jan@example.com", 42); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if backend.orderReqs[0].IdempotencyKey != backend.orderReqs[1].IdempotencyKey {
		t.Fatalf("retry must reuse the idempotency key")
	}
}
