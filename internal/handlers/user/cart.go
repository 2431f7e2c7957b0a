package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leafy_back_end/internal/handlers"
	"leafy_back_end/internal/pricing"
	"leafy_back_end/internal/service"
)

var cartService *service.CartService

// InitCart branche le service panier sur les handlers du package.
func InitCart(svc *service.CartService) {
	cartService = svc
}

//
// 🟢 GET /api/cart
//
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	cart, err := cartService.GetCart(c.Request.Context(), userID)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	totals := pricing.Calculate(cart.Items, pricing.DefaultRules())
	c.JSON(http.StatusOK, gin.H{
		"cart":   cart,
		"totals": totals,
	})
}

//
// 🟢 POST /api/cart/add
//
func AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input service.AddItemRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	cart, err := cartService.AddItem(c.Request.Context(), userID, input)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	totals := pricing.Calculate(cart.Items, pricing.DefaultRules())
	c.JSON(http.StatusCreated, gin.H{
		"message": "Produit ajouté au panier",
		"cart":    cart,
		"totals":  totals,
	})
}

//
// 🔁 PUT /api/cart/update/:itemId
//
func UpdateCartItem(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	cart, err := cartService.UpdateItemQuantity(c.Request.Context(), userID, c.Param("itemId"), input.Quantity)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	totals := pricing.Calculate(cart.Items, pricing.DefaultRules())
	c.JSON(http.StatusOK, gin.H{"cart": cart, "totals": totals})
}

//
// ❌ DELETE /api/cart/remove/:itemId
//
func RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	cart, err := cartService.RemoveItem(c.Request.Context(), userID, c.Param("itemId"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	totals := pricing.Calculate(cart.Items, pricing.DefaultRules())
	c.JSON(http.StatusOK, gin.H{
		"message": "Article supprimé du panier",
		"cart":    cart,
		"totals":  totals,
	})
}

//
// 🧹 DELETE /api/cart/clear
//
func ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	if err := cartService.ClearCart(c.Request.Context(), userID); err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Panier vidé avec succès"})
}
