package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"leafy_back_end/internal/catalog"
	"leafy_back_end/internal/models"
	"leafy_back_end/internal/repository"
)

var errMockStorage = errors.New("simulated storage failure")

// memCartRepo reproduit en mémoire la sémantique des updates Mongo du
// vrai repository (incrément conditionnel, append avec upsert).
type memCartRepo struct {
	mu    sync.Mutex
	carts map[string]*models.Cart

	clearFailures int // nombre d'échecs à simuler sur ClearCart
	clearCalls    int
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: make(map[string]*models.Cart)}
}

func (m *memCartRepo) GetCart(_ context.Context, userID string) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cart, ok := m.carts[userID]
	if !ok {
		return nil, repository.ErrCartNotFound
	}

	cp := *cart
	cp.Items = append([]models.CartItem(nil), cart.Items...)
	return &cp, nil
}

func (m *memCartRepo) IncrementLine(_ context.Context, userID, productID, size, color string, quantity int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cart, ok := m.carts[userID]
	if !ok {
		return false, nil
	}

	for i := range cart.Items {
		if cart.Items[i].SameLine(productID, size, color) {
			cart.Items[i].Quantity += quantity
			cart.UpdatedAt = time.Now()
			return true, nil
		}
	}
	return false, nil
}

func (m *memCartRepo) AppendLine(_ context.Context, userID string, item models.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	cart, ok := m.carts[userID]
	if !ok {
		cart = &models.Cart{UserID: userID, CreatedAt: now}
		m.carts[userID] = cart
	}

	cart.Items = append(cart.Items, item)
	cart.UpdatedAt = now
	return nil
}

func (m *memCartRepo) UpdateItemQuantity(_ context.Context, userID, itemID string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cart, ok := m.carts[userID]
	if !ok {
		return repository.ErrItemNotFound
	}

	for i := range cart.Items {
		if cart.Items[i].ItemID == itemID {
			cart.Items[i].Quantity = quantity
			cart.UpdatedAt = time.Now()
			return nil
		}
	}
	return repository.ErrItemNotFound
}

func (m *memCartRepo) RemoveItem(_ context.Context, userID, itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cart, ok := m.carts[userID]
	if !ok {
		return repository.ErrItemNotFound
	}

	for i, item := range cart.Items {
		if item.ItemID == itemID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			cart.UpdatedAt = time.Now()
			return nil
		}
	}
	return repository.ErrItemNotFound
}

func (m *memCartRepo) ClearCart(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clearCalls++
	if m.clearFailures > 0 {
		m.clearFailures--
		return errMockStorage
	}

	now := time.Now()
	cart, ok := m.carts[userID]
	if !ok {
		cart = &models.Cart{UserID: userID, CreatedAt: now}
		m.carts[userID] = cart
	}
	cart.Items = []models.CartItem{}
	cart.UpdatedAt = now
	return nil
}

func (m *memCartRepo) CreateIndexes(context.Context) error { return nil }

// memCatalog : catalogue mutable pour vérifier que les prix du panier
// restent des instantanés.
type memCatalog struct {
	mu       sync.Mutex
	products map[string]models.Product
}

func newMemCatalog() *memCatalog {
	return &memCatalog{products: make(map[string]models.Product)}
}

func (m *memCatalog) put(p models.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID.String()] = p
}

func (m *memCatalog) setPrice(productID string, cents int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.products[productID]
	p.PriceCents = cents
	m.products[productID] = p
}

func (m *memCatalog) GetProduct(_ context.Context, productID string) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.products[productID]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	cp := p
	return &cp, nil
}

// memOrderRepo : transitions conditionnelles comme les filtres Mongo.
type memOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*models.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[string]*models.Order)}
}

func (m *memOrderRepo) Insert(_ context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := cloneOrder(order)
	m.orders[order.ID] = cp
	return nil
}

func (m *memOrderRepo) FindByID(_ context.Context, orderID string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[orderID]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

func (m *memOrderRepo) FindByUser(_ context.Context, userID string) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, *cloneOrder(o))
		}
	}
	return out, nil
}

func (m *memOrderRepo) FindAll(context.Context) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Order
	for _, o := range m.orders {
		out = append(out, *cloneOrder(o))
	}
	return out, nil
}

func (m *memOrderRepo) MarkPaid(_ context.Context, orderID string, result models.PaymentResult, paidAt time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[orderID]
	if !ok || order.IsPaid {
		return false, nil
	}

	order.IsPaid = true
	order.PaidAt = &paidAt
	order.PaymentResult = &result
	order.Status = models.OrderStatusPaid
	return true, nil
}

func (m *memOrderRepo) MarkDelivered(_ context.Context, orderID string, deliveredAt time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[orderID]
	if !ok || order.IsDelivered {
		return false, nil
	}

	order.IsDelivered = true
	order.DeliveredAt = &deliveredAt
	order.Status = models.OrderStatusDelivered
	return true, nil
}

func cloneOrder(o *models.Order) *models.Order {
	cp := *o
	cp.OrderItems = append([]models.OrderItem(nil), o.OrderItems...)
	if o.PaidAt != nil {
		t := *o.PaidAt
		cp.PaidAt = &t
	}
	if o.DeliveredAt != nil {
		t := *o.DeliveredAt
		cp.DeliveredAt = &t
	}
	if o.PaymentResult != nil {
		pr := *o.PaymentResult
		cp.PaymentResult = &pr
	}
	return &cp
}

// recordingNotifier capture les événements émis.
type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) NotifyOrderEvent(_ context.Context, event string, _ *models.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) seen() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}
