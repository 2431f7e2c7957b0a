package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"leafy_back_end/internal/models"
	"leafy_back_end/internal/pricing"
	"leafy_back_end/internal/repository"
)

// Événements publiés après une transition de commande.
const (
	OrderEventCreated   = "order_created"
	OrderEventPaid      = "order_paid"
	OrderEventDelivered = "order_delivered"
)

// OrderNotifier reçoit les transitions (websocket, email…). Meilleur effort :
// un échec de notification n'échoue jamais l'opération.
type OrderNotifier interface {
	NotifyOrderEvent(ctx context.Context, event string, order *models.Order)
}

type CreateOrderRequest struct {
	ShippingAddress models.ShippingAddress `json:"shipping_address" binding:"required"`
	PaymentMethod   string                 `json:"payment_method" binding:"required"`
}

// OrderService matérialise un panier en commande immuable et fait avancer
// la machine à états created → paid → delivered, jamais en arrière.
type OrderService struct {
	orders   repository.OrderRepository
	carts    repository.CartRepository
	rules    func() pricing.Rules
	policy   func() bool // livraison conditionnée au paiement ?
	notifier OrderNotifier

	clearRetries int
	clearBackoff time.Duration
}

func NewOrderService(orders repository.OrderRepository, carts repository.CartRepository,
	rules func() pricing.Rules, deliveryRequiresPayment func() bool, notifier OrderNotifier) *OrderService {
	return &OrderService{
		orders:       orders,
		carts:        carts,
		rules:        rules,
		policy:       deliveryRequiresPayment,
		notifier:     notifier,
		clearRetries: 3,
		clearBackoff: time.Second,
	}
}

// CreateOrder fige le panier courant : lignes copiées, montants recalculés
// au moment de la soumission puis stockés tels quels. Une fois la commande
// persistée elle n'est jamais annulée ; si le vidage du panier échoue, on
// réessaie en arrière-plan et on trace un avertissement de réconciliation.
func (s *OrderService) CreateOrder(ctx context.Context, userID string, req CreateOrderRequest) (*models.Order, error) {
	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, ErrEmptyOrder
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	totals := pricing.Calculate(cart.Items, s.rules())

	orderItems := make([]models.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		orderItems = append(orderItems, models.OrderItem{
			ProductID:      item.ProductID,
			Name:           item.Name,
			ImageURL:       item.ImageURL,
			Size:           item.Size,
			Color:          item.Color,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		})
	}

	order := &models.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		OrderItems:      orderItems,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		ItemsPriceCents: totals.SubtotalCents,
		ShippingCents:   totals.ShippingCents,
		TaxCents:        totals.TaxCents,
		TotalCents:      totals.TotalCents,
		Status:          models.OrderStatusCreated,
		CreatedAt:       time.Now(),
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	// La durabilité de la commande prime sur la propreté du panier.
	if err := s.carts.ClearCart(ctx, userID); err != nil {
		log.Printf("⚠️  Panier de %s non vidé après la commande %s, réconciliation en arrière-plan: %v",
			userID, order.ID, err)
		go s.retryClearCart(userID, order.ID)
	}

	s.notify(ctx, OrderEventCreated, order)
	return order, nil
}

func (s *OrderService) retryClearCart(userID, orderID string) {
	for attempt := 1; attempt <= s.clearRetries; attempt++ {
		time.Sleep(s.clearBackoff * time.Duration(attempt))

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := s.carts.ClearCart(ctx, userID)
		cancel()

		if err == nil {
			log.Printf("✅ Panier de %s vidé (tentative %d) après la commande %s", userID, attempt, orderID)
			return
		}
		log.Printf("⚠️  Échec vidage panier de %s (tentative %d/%d): %v", userID, attempt, s.clearRetries, err)
	}
	log.Printf("❌ Réconciliation nécessaire : panier de %s toujours plein après la commande %s", userID, orderID)
}

// GetOrder : accessible au propriétaire ou à un admin, refusé aux autres.
func (s *OrderService) GetOrder(ctx context.Context, orderID, callerID string, isAdmin bool) (*models.Order, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && order.UserID != callerID {
		return nil, ErrUnauthorized
	}

	return order, nil
}

func (s *OrderService) ListUserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.orders.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) ListAllOrders(ctx context.Context, isAdmin bool) ([]models.Order, error) {
	if !isAdmin {
		return nil, ErrUnauthorized
	}

	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all orders: %w", err)
	}
	return orders, nil
}

// Pay enregistre la confirmation de paiement externe. Rejouer la même
// transaction est idempotent ; une transaction différente sur une commande
// déjà payée est rejetée — on ne réécrit jamais un paiement en silence.
func (s *OrderService) Pay(ctx context.Context, orderID, callerID string, isAdmin bool, result models.PaymentResult) (*models.Order, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && order.UserID != callerID {
		return nil, ErrUnauthorized
	}

	if order.IsPaid {
		return s.replayOrConflict(order, result)
	}

	matched, err := s.orders.MarkPaid(ctx, orderID, result, time.Now())
	if err != nil {
		return nil, fmt.Errorf("mark paid: %w", err)
	}

	if !matched {
		// Un paiement concurrent est passé entre la lecture et l'update.
		order, err = s.findOrder(ctx, orderID)
		if err != nil {
			return nil, err
		}
		return s.replayOrConflict(order, result)
	}

	order, err = s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, OrderEventPaid, order)
	return order, nil
}

func (s *OrderService) replayOrConflict(order *models.Order, result models.PaymentResult) (*models.Order, error) {
	if order.PaymentResult != nil && order.PaymentResult.TransactionID == result.TransactionID {
		return order, nil
	}
	return nil, ErrAlreadyPaid
}

// Deliver : réservé aux admins. Selon la politique en vigueur, une commande
// impayée ne peut pas être livrée. Une commande livrée le reste : la
// transition ne se rejoue pas.
func (s *OrderService) Deliver(ctx context.Context, orderID string, isAdmin bool) (*models.Order, error) {
	if !isAdmin {
		return nil, ErrUnauthorized
	}

	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.IsDelivered {
		return nil, ErrAlreadyDelivered
	}

	if s.policy() && !order.IsPaid {
		return nil, ErrNotPaid
	}

	matched, err := s.orders.MarkDelivered(ctx, orderID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("mark delivered: %w", err)
	}
	if !matched {
		return nil, ErrAlreadyDelivered
	}

	order, err = s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, OrderEventDelivered, order)
	return order, nil
}

func (s *OrderService) findOrder(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return order, nil
}

func (s *OrderService) notify(ctx context.Context, event string, order *models.Order) {
	if s.notifier == nil {
		return
	}
	s.notifier.NotifyOrderEvent(ctx, event, order)
}
