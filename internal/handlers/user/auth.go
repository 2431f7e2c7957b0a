package user

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"leafy_back_end/internal/middleware"
	"leafy_back_end/internal/models"
	"leafy_back_end/internal/repository"
	"leafy_back_end/internal/utils"
)

var userRepo repository.UserRepository

// InitAuth branche le repository utilisateurs sur les handlers du package.
func InitAuth(repo repository.UserRepository) {
	userRepo = repo
}

//
// 🟢 POST /api/auth/register
//
func Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	user := models.User{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Email:     input.Email,
		Password:  hashed,
		Role:      "customer",
		CreatedAt: time.Now(),
	}

	if err := userRepo.Create(c.Request.Context(), &user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			middleware.RecordFailedAttempt("register", input.Email)
			c.JSON(http.StatusConflict, gin.H{"error": "Un compte avec cet email existe déjà"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":   token,
		"user_id": user.ID,
		"email":   user.Email,
		"name":    user.Name,
		"role":    user.Role,
	})
}

//
// 🟢 POST /api/auth/login
//
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	user, err := userRepo.FindByEmail(c.Request.Context(), input.Email)
	if err != nil || !utils.VerifyPassword(input.Password, user.Password) {
		middleware.RecordFailedAttempt("login", input.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	middleware.ResetAttempts("login", input.Email)

	token, err := utils.GenerateJWT(*user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"user_id": user.ID,
		"email":   user.Email,
		"name":    user.Name,
		"role":    user.Role,
	})
}

//
// ✅ GET /api/auth/me
//
func Me(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	user, err := userRepo.FindByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	c.JSON(http.StatusOK, user)
}
