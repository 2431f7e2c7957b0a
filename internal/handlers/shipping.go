package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"leafy_back_end/internal/config"
	"leafy_back_end/internal/models"
)

//
// 🚚 GET /api/shipping/options?cart_subtotal_cents=...
//
func GetShippingOptions(c *gin.Context) {
	var subtotal int64
	if v := c.Query("cart_subtotal_cents"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			subtotal = n
		}
	}

	threshold := config.FreeShippingThresholdCents()
	fee := config.ShippingFeeCents()
	isFree := subtotal >= threshold

	standard := models.ShippingOption{
		ID:            "standard",
		Name:          "Livraison Standard",
		Description:   "Livraison en 5-7 jours ouvrés",
		PriceCents:    fee,
		EstimatedDays: 7,
	}
	if isFree {
		standard.PriceCents = 0
		standard.Name = "Livraison Standard Gratuite"
	}

	c.JSON(http.StatusOK, models.ShippingCalculation{
		Options:            []models.ShippingOption{standard},
		FreeThresholdCents: threshold,
		CartSubtotalCents:  subtotal,
		IsFree:             isFree,
	})
}
