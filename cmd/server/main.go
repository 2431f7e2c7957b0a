package main

import (
	"context"
	"log"
	"os"

	"leafy_back_end/internal/config"
	"leafy_back_end/internal/database"
	"leafy_back_end/internal/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	config.Load()

	database.ConnectDatabases()
	defer database.CloseScylla()

	// ✅ Pré-chauffer le cache Redis
	warmupRedisCache()

	r := gin.Default()
	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur Leafy lancé sur le port", port)
	r.Run(":" + port)
}

// warmupRedisCache pré-chauffe le cache Redis pour éviter la latence du premier appel
func warmupRedisCache() {
	ctx := context.Background()
	if err := database.Redis.Ping(ctx).Err(); err == nil {
		log.Println("✅ Cache Redis pré-chauffé")
	}
}
