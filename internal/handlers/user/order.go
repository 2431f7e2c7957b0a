package user

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"leafy_back_end/internal/handlers"
	"leafy_back_end/internal/models"
	"leafy_back_end/internal/service"
)

var orderService *service.OrderService

// InitOrders branche le service commandes sur les handlers du package.
func InitOrders(svc *service.OrderService) {
	orderService = svc
}

//
// 🟢 POST /api/orders — matérialise le panier en commande
//
func CreateOrder(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input service.CreateOrderRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	order, err := orderService.CreateOrder(c.Request.Context(), userID, input)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

//
// ✅ GET /api/orders — commandes de l'utilisateur connecté
//
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	orders, err := orderService.ListUserOrders(c.Request.Context(), userID)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

//
// ✅ GET /api/orders/:id — propriétaire ou admin uniquement
//
func GetOrderByID(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	order, err := orderService.GetOrder(c.Request.Context(), c.Param("id"), userID, c.GetBool("is_admin"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

//
// 💳 PUT /api/orders/:id/pay — confirmation de paiement externe
//
func PayOrder(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		TransactionID string    `json:"transaction_id" binding:"required"`
		Status        string    `json:"status" binding:"required"`
		PayerEmail    string    `json:"payer_email"`
		UpdateTime    time.Time `json:"update_time"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}
	if input.UpdateTime.IsZero() {
		input.UpdateTime = time.Now()
	}

	order, err := orderService.Pay(c.Request.Context(), c.Param("id"), userID, c.GetBool("is_admin"),
		models.PaymentResult{
			TransactionID: input.TransactionID,
			Status:        input.Status,
			PayerEmail:    input.PayerEmail,
			UpdateTime:    input.UpdateTime,
		})
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}
