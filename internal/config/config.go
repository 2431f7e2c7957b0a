package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}
}

// --- Règles de prix ---
// Tout est en centimes. Les valeurs par défaut correspondent à la boutique :
// livraison offerte dès 100,00, sinon 9,99 de frais fixes, TVA 7%.
const (
	DefaultFreeShippingThresholdCents = 10000
	DefaultShippingFeeCents           = 999
	DefaultTaxRate                    = "0.07"
)

// FreeShippingThresholdCents : seuil de livraison gratuite, surchargeable
// via FREE_SHIPPING_THRESHOLD_CENTS.
func FreeShippingThresholdCents() int64 {
	return envInt64("FREE_SHIPPING_THRESHOLD_CENTS", DefaultFreeShippingThresholdCents)
}

// ShippingFeeCents : frais de port fixes sous le seuil, surchargeables
// via SHIPPING_FEE_CENTS.
func ShippingFeeCents() int64 {
	return envInt64("SHIPPING_FEE_CENTS", DefaultShippingFeeCents)
}

// TaxRate : taux de TVA plat, surchargeable via TAX_RATE (ex: "0.07").
func TaxRate() decimal.Decimal {
	if v := os.Getenv("TAX_RATE"); v != "" {
		if rate, err := decimal.NewFromString(v); err == nil {
			return rate
		}
		log.Printf("⚠️  TAX_RATE invalide (%q), on garde le taux par défaut", v)
	}
	rate, _ := decimal.NewFromString(DefaultTaxRate)
	return rate
}

// DeliveryRequiresPayment : la source historique permettait de livrer une
// commande non payée. Comportement désormais piloté par config, exigé par
// défaut. Surchargeable via DELIVERY_REQUIRES_PAYMENT=false.
func DeliveryRequiresPayment() bool {
	if v := os.Getenv("DELIVERY_REQUIRES_PAYMENT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return true
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			return n
		}
		log.Printf("⚠️  %s invalide (%q), valeur par défaut conservée", key, v)
	}
	return fallback
}
