// Package catalog expose le catalogue produits (ScyllaDB + cache Redis).
// Le coeur panier ne s'en sert que pour valider l'existence d'un produit
// et figer son prix courant au moment de l'ajout.
package catalog

import (
	"context"
	"errors"

	"leafy_back_end/internal/models"
)

var ErrProductNotFound = errors.New("product not found in catalog")

// Lookup est la seule dépendance du coeur panier vers le catalogue.
type Lookup interface {
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
}

// Store couvre le CRUD complet utilisé par les handlers produits.
type Store interface {
	Lookup
	ListProducts(ctx context.Context, category string) ([]models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, productID string) error
}
