package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"leafy_back_end/internal/database"
)

const (
	LoginMaxAttempts    = 5
	RegisterMaxAttempts = 3

	LoginCooldown    = 15 * time.Minute
	RegisterCooldown = 30 * time.Minute
)

// LoginRateLimit limite les tentatives de connexion par email
func LoginRateLimit() gin.HandlerFunc {
	return rateLimitByEmail("login", LoginMaxAttempts, LoginCooldown)
}

// RegisterRateLimit limite les créations de compte par email
func RegisterRateLimit() gin.HandlerFunc {
	return rateLimitByEmail("register", RegisterMaxAttempts, RegisterCooldown)
}

func rateLimitByEmail(action string, maxAttempts int, cooldown time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Lire le body sans le consommer
		bodyBytes, _ := io.ReadAll(c.Request.Body)

		var input struct {
			Email string `json:"email"`
		}
		if err := json.Unmarshal(bodyBytes, &input); err != nil || input.Email == "" {
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			c.Next()
			return
		}

		// Remettre le body pour les handlers suivants
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		ctx := context.Background()
		key := action + "_attempts:" + input.Email
		cooldownKey := action + "_cooldown:" + input.Email

		if database.Redis.Exists(ctx, cooldownKey).Val() > 0 {
			ttl := database.Redis.TTL(ctx, cooldownKey).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de tentatives. Réessayez dans %d minutes", int(ttl.Minutes())),
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		attempts, _ := database.Redis.Get(ctx, key).Int()
		if attempts >= maxAttempts {
			database.Redis.Set(ctx, cooldownKey, "1", cooldown)
			database.Redis.Del(ctx, key)

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de tentatives. Bloqué pendant %d minutes", int(cooldown.Minutes())),
				"retry_after": int(cooldown.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RecordFailedAttempt incrémente le compteur d'échecs pour un email
func RecordFailedAttempt(action, email string) {
	ctx := context.Background()
	key := action + "_attempts:" + email
	database.Redis.Incr(ctx, key)
	database.Redis.Expire(ctx, key, 1*time.Hour)
}

// ResetAttempts remet le compteur à zéro après un succès
func ResetAttempts(action, email string) {
	database.Redis.Del(context.Background(), action+"_attempts:"+email)
}
