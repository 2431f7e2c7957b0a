package routes

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"leafy_back_end/internal/catalog"
	"leafy_back_end/internal/config"
	"leafy_back_end/internal/database"
	"leafy_back_end/internal/handlers"
	"leafy_back_end/internal/handlers/admin"
	"leafy_back_end/internal/handlers/product"
	"leafy_back_end/internal/handlers/user"
	"leafy_back_end/internal/middleware"
	"leafy_back_end/internal/notify"
	"leafy_back_end/internal/pricing"
	"leafy_back_end/internal/repository"
	"leafy_back_end/internal/service"
)

// RegisterRoutes assemble les repositories, services et handlers puis
// déclare toute la surface HTTP.
func RegisterRoutes(r *gin.Engine) {
	r.Use(corsMiddleware())

	// --- Assemblage ---
	carts := repository.NewMongoCartRepository(database.MongoShopDB)
	orders := repository.NewMongoOrderRepository(database.MongoShopDB)
	users := repository.NewMongoUserRepository(database.MongoShopDB)
	store := catalog.NewScyllaStore(database.GetProductsSession, database.Redis)

	ensureIndexes(carts, users)

	cartSvc := service.NewCartService(carts, store)
	notifier := notify.MultiNotifier{
		notify.NewRedisOrderNotifier(database.Redis),
		notify.NewEmailOrderNotifier(users),
	}
	orderSvc := service.NewOrderService(orders, carts, pricing.DefaultRules,
		config.DeliveryRequiresPayment, notifier)

	user.InitCart(cartSvc)
	user.InitOrders(orderSvc)
	user.InitAuth(users)
	admin.InitOrders(orderSvc)
	product.Init(store)

	// --- Auth ---
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", middleware.RegisterRateLimit(), user.Register)
		auth.POST("/login", middleware.LoginRateLimit(), user.Login)
		auth.GET("/me", middleware.AuthRequired(), user.Me)
	}

	// --- Produits ---
	products := r.Group("/api/products")
	{
		products.GET("", product.GetAll)
		products.GET("/:id", product.Get)

		adminOnly := products.Group("", middleware.AuthRequired(), middleware.RequireAdmin)
		adminOnly.POST("", product.Create)
		adminOnly.PUT("/:id", product.Update)
		adminOnly.DELETE("/:id", product.Delete)
		adminOnly.POST("/:id/images", product.UploadImage)
	}

	// --- Panier ---
	cart := r.Group("/api/cart", middleware.AuthRequired())
	{
		cart.GET("", user.GetCart)
		cart.POST("/add", user.AddToCart)
		cart.PUT("/update/:itemId", user.UpdateCartItem)
		cart.DELETE("/remove/:itemId", user.RemoveFromCart)
		cart.DELETE("/clear", user.ClearCart)
	}

	// --- Commandes ---
	orderRoutes := r.Group("/api/orders", middleware.AuthRequired())
	{
		orderRoutes.POST("", user.CreateOrder)
		orderRoutes.GET("", user.GetMyOrders)
		orderRoutes.GET("/ws", user.OrderWebSocket)
		orderRoutes.GET("/admin/all", middleware.RequireAdmin, admin.GetAllOrders)
		orderRoutes.GET("/:id", user.GetOrderByID)
		orderRoutes.PUT("/:id/pay", user.PayOrder)
		orderRoutes.PUT("/:id/deliver", middleware.RequireAdmin, admin.DeliverOrder)
	}

	// --- Livraison ---
	r.GET("/api/shipping/options", handlers.GetShippingOptions)
}

func corsMiddleware() gin.HandlerFunc {
	origins := []string{"http://localhost:3000"}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins = strings.Split(v, ",")
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func ensureIndexes(carts repository.CartRepository, users repository.UserRepository) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := carts.CreateIndexes(ctx); err != nil {
		log.Printf("⚠️  Index paniers: %v", err)
	}
	if err := users.CreateIndexes(ctx); err != nil {
		log.Printf("⚠️  Index utilisateurs: %v", err)
	}
}
