package orders

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"

	"techsklep/mobile/internal/domain"
)

var (
	ErrUnknownState        = errors.New("unknown order state")
	ErrUnknownIssueType    = errors.New("unknown issue type")
	ErrDescriptionRequired = errors.New("issue description required")
	ErrNoProductsSelected  = errors.New("no products selected")
)

// Backend is the slice of the REST client order management needs.
type Backend interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	OrdersForUser(ctx context.Context, email string) ([]domain.Order, error)
	UpdateOrderState(ctx context.Context, id int, state string) (*domain.Order, error)
	AddOrderIssue(ctx context.Context, id int, req domain.OrderIssueRequest) (*domain.Order, error)
	UpdateStockStates(ctx context.Context, updates []domain.StockUpdate) error
}

// Manager holds the order-management screen state. After any mutation the
// server's returned entity replaces the local row wholesale; fields are
// never hand-merged.
type Manager struct {
	mu      sync.Mutex
	backend Backend
	orders  []domain.Order
}

func NewManager(backend Backend) *Manager {
	return &Manager{backend: backend}
}

// Refresh loads all orders, newest first.
func (m *Manager) Refresh(ctx context.Context) error {
	orders, err := m.backend.ListOrders(ctx)
	if err != nil {
		return err
	}
	sortNewestFirst(orders)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = orders
	return nil
}

// Orders returns a copy of the loaded list.
func (m *Manager) Orders() []domain.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]domain.Order, len(m.orders))
	copy(cp, m.orders)
	return cp
}

// ForUser fetches one account's order history, newest first. It does not
// touch the management list.
func (m *Manager) ForUser(ctx context.Context, email string) ([]domain.Order, error) {
	orders, err := m.backend.OrdersForUser(ctx, email)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(orders)
	return orders, nil
}

// UpdateState moves the order to a new state and replaces the local row
// with the server's response.
func (m *Manager) UpdateState(ctx context.Context, id int, state string) (*domain.Order, error) {
	switch state {
	case domain.OrderStatePending, domain.OrderStateProcessing, domain.OrderStateShipped, domain.OrderStateCancelled:
	default:
		return nil, ErrUnknownState
	}
	updated, err := m.backend.UpdateOrderState(ctx, id, state)
	if err != nil {
		return nil, err
	}
	m.replace(*updated)
	return updated, nil
}

// ReportIssue attaches an issue to the order. The description is mandatory.
func (m *Manager) ReportIssue(ctx context.Context, id int, issueType string, description string) (*domain.Order, error) {
	switch issueType {
	case domain.IssueNoProduct, domain.IssueDamaged, domain.IssueIncorrectData, domain.IssueOther:
	default:
		return nil, ErrUnknownIssueType
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrDescriptionRequired
	}
	updated, err := m.backend.AddOrderIssue(ctx, id, domain.OrderIssueRequest{
		OrderIssueType: issueType,
		Description:    description,
	})
	if err != nil {
		return nil, err
	}
	m.replace(*updated)
	return updated, nil
}

// ReportOutOfStock marks the products as unavailable.
func (m *Manager) ReportOutOfStock(ctx context.Context, productIDs []int) error {
	return m.reportStock(ctx, productIDs, domain.QuantityNone)
}

// ReportLowStock marks the products as nearly sold out.
func (m *Manager) ReportLowStock(ctx context.Context, productIDs []int) error {
	return m.reportStock(ctx, productIDs, domain.QuantityFew)
}

func (m *Manager) reportStock(ctx context.Context, productIDs []int, quantityType string) error {
	if len(productIDs) == 0 {
		return ErrNoProductsSelected
	}
	updates := make([]domain.StockUpdate, 0, len(productIDs))
	for _, id := range productIDs {
		updates = append(updates, domain.StockUpdate{
			ID:           strconv.Itoa(id),
			QuantityType: quantityType,
		})
	}
	return m.backend.UpdateStockStates(ctx, updates)
}

// replace swaps the server-confirmed entity into the local list. An id not
// currently listed is ignored; the next Refresh will pick it up.
func (m *Manager) replace(order domain.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].ID == order.ID {
			m.orders[i] = order
			return
		}
	}
}

func sortNewestFirst(orders []domain.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].OrderDate.After(orders[j].OrderDate)
	})
}
