// Package pricing calcule les montants d'un panier : sous-total, livraison,
// TVA et total. Tous les calculs se font en centimes (entiers) pour éviter
// toute dérive flottante ; decimal ne sert qu'au taux de TVA et à l'affichage.
package pricing

import (
	"github.com/shopspring/decimal"

	"leafy_back_end/internal/config"
	"leafy_back_end/internal/models"
)

type Totals struct {
	SubtotalCents int64 `json:"subtotal_cents"`
	ShippingCents int64 `json:"shipping_cents"`
	TaxCents      int64 `json:"tax_cents"`
	TotalCents    int64 `json:"total_cents"`
}

type Rules struct {
	FreeShippingThresholdCents int64
	ShippingFeeCents           int64
	TaxRate                    decimal.Decimal
}

// DefaultRules lit les règles en vigueur depuis la configuration.
func DefaultRules() Rules {
	return Rules{
		FreeShippingThresholdCents: config.FreeShippingThresholdCents(),
		ShippingFeeCents:           config.ShippingFeeCents(),
		TaxRate:                    config.TaxRate(),
	}
}

// Calculate est une fonction pure : mêmes items, mêmes règles → mêmes
// montants, aucune mutation du panier.
//
// Panier vide → tout à zéro, y compris la livraison.
// Livraison offerte dès que le sous-total atteint le seuil (comparaison
// large : le seuil exact est gratuit).
func Calculate(items []models.CartItem, rules Rules) Totals {
	var subtotal int64
	for _, item := range items {
		subtotal += item.UnitPriceCents * int64(item.Quantity)
	}

	var shipping int64
	if len(items) > 0 && subtotal < rules.FreeShippingThresholdCents {
		shipping = rules.ShippingFeeCents
	}

	var tax int64
	if subtotal > 0 {
		tax = decimal.NewFromInt(subtotal).Mul(rules.TaxRate).Round(0).IntPart()
	}

	return Totals{
		SubtotalCents: subtotal,
		ShippingCents: shipping,
		TaxCents:      tax,
		TotalCents:    subtotal + shipping + tax,
	}
}

// FormatCents convertit un montant en centimes vers sa représentation
// décimale d'affichage ("214.00").
func FormatCents(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}

// CentsFromDecimalString parse un montant décimal ("149.99") en centimes.
func CentsFromDecimalString(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}
