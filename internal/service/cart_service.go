package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"leafy_back_end/internal/catalog"
	"leafy_back_end/internal/models"
	"leafy_back_end/internal/repository"
)

// AddItemRequest : la clé d'identité d'une ligne est (productID, size, color),
// comparée à l'exact, sensible à la casse.
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// CartService applique la règle de fusion et le cycle de vie du panier.
// Les mutations d'un même utilisateur sont sérialisées par un verrou dédié,
// en plus des updates atomiques du repository : sans ça, deux ajouts
// simultanés d'une nouvelle ligne identique créeraient un doublon.
type CartService struct {
	repo    repository.CartRepository
	catalog catalog.Lookup

	mu    sync.Mutex
	locks map[string]*sync.Mutex // userID → verrou de mutation
}

func NewCartService(repo repository.CartRepository, lookup catalog.Lookup) *CartService {
	return &CartService{
		repo:    repo,
		catalog: lookup,
		locks:   make(map[string]*sync.Mutex),
	}
}

func (s *CartService) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}

// GetCart retourne le panier de l'utilisateur, vide si jamais créé
// (création paresseuse : rien n'est écrit sur une simple lecture).
func (s *CartService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.repo.GetCart(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			now := time.Now()
			return &models.Cart{
				UserID:    userID,
				Items:     []models.CartItem{},
				CreatedAt: now,
				UpdatedAt: now,
			}, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	return cart, nil
}

// AddItem applique la règle de fusion : même (produit, taille, couleur) →
// incrément de quantité, prix d'origine conservé ; sinon nouvelle ligne avec
// le prix catalogue courant comme instantané.
func (s *CartService) AddItem(ctx context.Context, userID string, req AddItemRequest) (*models.Cart, error) {
	if req.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("catalog lookup: %w", err)
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	merged, err := s.repo.IncrementLine(ctx, userID, req.ProductID, req.Size, req.Color, req.Quantity)
	if err != nil {
		return nil, fmt.Errorf("merge cart line: %w", err)
	}

	if !merged {
		imageURL := ""
		if len(product.Images) > 0 {
			imageURL = product.Images[0]
		}

		item := models.CartItem{
			ItemID:         uuid.NewString(),
			ProductID:      req.ProductID,
			Name:           product.Name,
			ImageURL:       imageURL,
			Size:           req.Size,
			Color:          req.Color,
			Quantity:       req.Quantity,
			UnitPriceCents: product.PriceCents,
			AddedAt:        time.Now(),
		}
		if err := s.repo.AppendLine(ctx, userID, item); err != nil {
			return nil, fmt.Errorf("append cart line: %w", err)
		}
	}

	return s.GetCart(ctx, userID)
}

// UpdateItemQuantity remplace la quantité d'une ligne ciblée par son item_id.
func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, itemID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.repo.UpdateItemQuantity(ctx, userID, itemID, quantity); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("update item quantity: %w", err)
	}

	return s.GetCart(ctx, userID)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) (*models.Cart, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.repo.RemoveItem(ctx, userID, itemID); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("remove item: %w", err)
	}

	return s.GetCart(ctx, userID)
}

func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.repo.ClearCart(ctx, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	return nil
}
