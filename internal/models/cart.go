package models

import "time"

// Cart : un panier par utilisateur, créé à la volée au premier accès.
// L'invariant (product_id, size, color) unique est garanti à l'écriture
// par le repository, jamais corrigé à la lecture.
type Cart struct {
	UserID    string     `json:"user_id" bson:"user_id"`
	Items     []CartItem `json:"items" bson:"items"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
}

// CartItem : le prix unitaire est un instantané en centimes pris au moment
// de l'ajout — il ne bouge plus, même si le catalogue change.
type CartItem struct {
	ItemID         string    `json:"item_id" bson:"item_id"`
	ProductID      string    `json:"product_id" bson:"product_id"`
	Name           string    `json:"name" bson:"name"`
	ImageURL       string    `json:"image_url" bson:"image_url"`
	Size           string    `json:"size" bson:"size"`
	Color          string    `json:"color" bson:"color"`
	Quantity       int       `json:"quantity" bson:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents" bson:"unit_price_cents"`
	AddedAt        time.Time `json:"added_at" bson:"added_at"`
}

// SameLine : deux demandes visent la même ligne ssi produit, taille et
// couleur correspondent exactement (sensible à la casse, aucune normalisation).
func (i CartItem) SameLine(productID, size, color string) bool {
	return i.ProductID == productID && i.Size == size && i.Color == color
}
