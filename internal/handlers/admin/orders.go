package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leafy_back_end/internal/handlers"
	"leafy_back_end/internal/service"
)

var orderService *service.OrderService

// InitOrders branche le service commandes sur les handlers admin.
func InitOrders(svc *service.OrderService) {
	orderService = svc
}

//
// ✅ GET /api/orders/admin/all — toutes les commandes
//
func GetAllOrders(c *gin.Context) {
	orders, err := orderService.ListAllOrders(c.Request.Context(), c.GetBool("is_admin"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

//
// 🚚 PUT /api/orders/:id/deliver — marque une commande livrée
//
func DeliverOrder(c *gin.Context) {
	order, err := orderService.Deliver(c.Request.Context(), c.Param("id"), c.GetBool("is_admin"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}
