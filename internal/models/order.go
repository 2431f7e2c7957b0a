package models

import "time"

// Statuts d'une commande. Le cycle de vie est strictement linéaire :
// created → paid → delivered, aucun retour en arrière.
const (
	OrderStatusCreated   = "created"
	OrderStatusPaid      = "paid"
	OrderStatusDelivered = "delivered"
)

// Order : copie figée du panier au moment du checkout. Les montants sont
// stockés, jamais recalculés — une commande historique reste stable même
// si les règles de prix changent.
type Order struct {
	ID              string          `json:"id" bson:"_id"`
	UserID          string          `json:"user_id" bson:"user_id"`
	OrderItems      []OrderItem     `json:"order_items" bson:"order_items"`
	ShippingAddress ShippingAddress `json:"shipping_address" bson:"shipping_address"`
	PaymentMethod   string          `json:"payment_method" bson:"payment_method"`
	ItemsPriceCents int64           `json:"items_price_cents" bson:"items_price_cents"`
	ShippingCents   int64           `json:"shipping_price_cents" bson:"shipping_price_cents"`
	TaxCents        int64           `json:"tax_price_cents" bson:"tax_price_cents"`
	TotalCents      int64           `json:"total_price_cents" bson:"total_price_cents"`
	Status          string          `json:"status" bson:"status"`
	IsPaid          bool            `json:"is_paid" bson:"is_paid"`
	PaidAt          *time.Time      `json:"paid_at,omitempty" bson:"paid_at,omitempty"`
	PaymentResult   *PaymentResult  `json:"payment_result,omitempty" bson:"payment_result,omitempty"`
	IsDelivered     bool            `json:"is_delivered" bson:"is_delivered"`
	DeliveredAt     *time.Time      `json:"delivered_at,omitempty" bson:"delivered_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at" bson:"created_at"`
}

type OrderItem struct {
	ProductID      string `json:"product_id" bson:"product_id"`
	Name           string `json:"name" bson:"name"`
	ImageURL       string `json:"image_url" bson:"image_url"`
	Size           string `json:"size" bson:"size"`
	Color          string `json:"color" bson:"color"`
	Quantity       int    `json:"quantity" bson:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents" bson:"unit_price_cents"`
}

// PaymentResult : payload de confirmation du prestataire de paiement,
// stocké tel quel.
type PaymentResult struct {
	TransactionID string    `json:"transaction_id" bson:"transaction_id"`
	Status        string    `json:"status" bson:"status"`
	PayerEmail    string    `json:"payer_email" bson:"payer_email"`
	UpdateTime    time.Time `json:"update_time" bson:"update_time"`
}

type ShippingAddress struct {
	FullName   string `json:"full_name" bson:"full_name"`
	Street     string `json:"street" bson:"street"`
	City       string `json:"city" bson:"city"`
	PostalCode string `json:"postal_code" bson:"postal_code"`
	Country    string `json:"country" bson:"country"`
}
