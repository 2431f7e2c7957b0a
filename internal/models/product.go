package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Product struct {
	ID          gocql.UUID `json:"id" db:"product_id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	PriceCents  int64      `json:"price_cents" db:"price_cents"`
	Images      []string   `json:"images" db:"images"`
	Category    string     `json:"category" db:"category"`
	Sizes       []string   `json:"sizes" db:"sizes"`
	Color       string     `json:"color" db:"color"`
	IsFeatured  bool       `json:"is_featured" db:"is_featured"`
	IsNew       bool       `json:"is_new" db:"is_new"`
	IsEco       bool       `json:"is_eco" db:"is_eco"`
	Features    []string   `json:"features" db:"features"`
	Stock       int        `json:"stock" db:"stock"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}
