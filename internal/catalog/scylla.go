package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"leafy_back_end/internal/models"
)

const productCacheTTL = 10 * time.Minute

// scyllaStore lit les produits dans ScyllaDB avec un cache Redis devant.
// singleflight évite la ruée sur Scylla quand une clé expire.
type scyllaStore struct {
	session func() (*gocql.Session, error)
	redis   *redis.Client
	sfg     singleflight.Group
}

func NewScyllaStore(session func() (*gocql.Session, error), redisClient *redis.Client) Store {
	return &scyllaStore{session: session, redis: redisClient}
}

func (s *scyllaStore) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	if _, err := uuid.Parse(productID); err != nil {
		return nil, ErrProductNotFound
	}

	v, err, _ := s.sfg.Do(productID, func() (interface{}, error) {
		// 1. Cache Redis
		if s.redis != nil {
			data, err := s.redis.Get(ctx, "product:"+productID).Result()
			if err == nil {
				var p models.Product
				if json.Unmarshal([]byte(data), &p) == nil {
					return &p, nil
				}
			}
		}

		// 2. ScyllaDB
		p, err := s.fetchProduct(productID)
		if err != nil {
			return nil, err
		}

		// 3. Mise en cache, meilleur effort
		if s.redis != nil {
			if jsonData, err := json.Marshal(p); err == nil {
				s.redis.Set(ctx, "product:"+productID, jsonData, productCacheTTL)
			}
		}

		return p, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*models.Product), nil
}

func (s *scyllaStore) fetchProduct(productID string) (*models.Product, error) {
	session, err := s.session()
	if err != nil {
		return nil, fmt.Errorf("catalog session: %w", err)
	}

	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, ErrProductNotFound
	}

	var p models.Product
	err = session.Query(`SELECT product_id, name, description, price_cents, images, category,
	                            sizes, color, is_featured, is_new, is_eco, features, stock,
	                            created_at, updated_at
	                     FROM products WHERE product_id = ?`, gocql.UUID(pid)).Scan(
		&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.Images, &p.Category,
		&p.Sizes, &p.Color, &p.IsFeatured, &p.IsNew, &p.IsEco, &p.Features, &p.Stock,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, gocql.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("catalog query: %w", err)
	}

	return &p, nil
}

func (s *scyllaStore) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	session, err := s.session()
	if err != nil {
		return nil, fmt.Errorf("catalog session: %w", err)
	}

	cql := `SELECT product_id, name, description, price_cents, images, category,
	               sizes, color, is_featured, is_new, is_eco, features, stock,
	               created_at, updated_at
	        FROM products`
	var iter *gocql.Iter
	if category != "" {
		// Index secondaire sur category (voir scripts/scylladb_init.cql)
		iter = session.Query(cql+" WHERE category = ?", category).Iter()
	} else {
		iter = session.Query(cql).Iter()
	}

	var products []models.Product
	var p models.Product
	for iter.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.Images, &p.Category,
		&p.Sizes, &p.Color, &p.IsFeatured, &p.IsNew, &p.IsEco, &p.Features, &p.Stock,
		&p.CreatedAt, &p.UpdatedAt) {
		products = append(products, p)
		p = models.Product{}
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("catalog list: %w", err)
	}

	return products, nil
}

func (s *scyllaStore) CreateProduct(ctx context.Context, p *models.Product) error {
	session, err := s.session()
	if err != nil {
		return fmt.Errorf("catalog session: %w", err)
	}

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.ID == (gocql.UUID{}) {
		p.ID = gocql.UUID(uuid.New())
	}

	err = session.Query(`INSERT INTO products (product_id, name, description, price_cents, images,
	                        category, sizes, color, is_featured, is_new, is_eco, features, stock,
	                        created_at, updated_at)
	                     VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.PriceCents, p.Images, p.Category, p.Sizes, p.Color,
		p.IsFeatured, p.IsNew, p.IsEco, p.Features, p.Stock, p.CreatedAt, p.UpdatedAt).Exec()
	if err != nil {
		return fmt.Errorf("catalog insert: %w", err)
	}

	return nil
}

func (s *scyllaStore) UpdateProduct(ctx context.Context, p *models.Product) error {
	session, err := s.session()
	if err != nil {
		return fmt.Errorf("catalog session: %w", err)
	}

	p.UpdatedAt = time.Now()

	err = session.Query(`UPDATE products SET name = ?, description = ?, price_cents = ?, images = ?,
	                        category = ?, sizes = ?, color = ?, is_featured = ?, is_new = ?,
	                        is_eco = ?, features = ?, stock = ?, updated_at = ?
	                     WHERE product_id = ?`,
		p.Name, p.Description, p.PriceCents, p.Images, p.Category, p.Sizes, p.Color,
		p.IsFeatured, p.IsNew, p.IsEco, p.Features, p.Stock, p.UpdatedAt, p.ID).Exec()
	if err != nil {
		return fmt.Errorf("catalog update: %w", err)
	}

	s.invalidate(ctx, p.ID.String())
	return nil
}

func (s *scyllaStore) DeleteProduct(ctx context.Context, productID string) error {
	session, err := s.session()
	if err != nil {
		return fmt.Errorf("catalog session: %w", err)
	}

	pid, err := uuid.Parse(productID)
	if err != nil {
		return ErrProductNotFound
	}

	if err := session.Query(`DELETE FROM products WHERE product_id = ?`, gocql.UUID(pid)).Exec(); err != nil {
		return fmt.Errorf("catalog delete: %w", err)
	}

	s.invalidate(ctx, productID)
	return nil
}

func (s *scyllaStore) invalidate(ctx context.Context, productID string) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, "product:"+productID).Err(); err != nil {
		log.Printf("⚠️  Invalidation cache produit %s: %v", productID, err)
	}
}
