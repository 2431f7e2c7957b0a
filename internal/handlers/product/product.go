package product

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"leafy_back_end/internal/catalog"
	"leafy_back_end/internal/models"
	"leafy_back_end/internal/pricing"
)

var store catalog.Store

// Init branche le catalogue sur les handlers du package.
func Init(s catalog.Store) {
	store = s
}

//
// 🟢 GET /api/products — liste, filtre optionnel par catégorie
//
func GetAll(c *gin.Context) {
	products, err := store.ListProducts(c.Request.Context(), c.Query("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération produits"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

//
// 🟢 GET /api/products/:id
//
func Get(c *gin.Context) {
	p, err := store.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération produit"})
		return
	}

	c.JSON(http.StatusOK, p)
}

type productInput struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       string   `json:"price" binding:"required"` // décimal, ex: "149.99"
	Images      []string `json:"images"`
	Category    string   `json:"category" binding:"required"`
	Sizes       []string `json:"sizes"`
	Color       string   `json:"color"`
	IsFeatured  bool     `json:"is_featured"`
	IsNew       bool     `json:"is_new"`
	IsEco       bool     `json:"is_eco"`
	Features    []string `json:"features"`
	Stock       int      `json:"stock"`
}

//
// 🛠️ POST /api/products — admin
//
func Create(c *gin.Context) {
	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	priceCents, err := pricing.CentsFromDecimalString(input.Price)
	if err != nil || priceCents < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prix invalide"})
		return
	}

	p := models.Product{
		Name:        input.Name,
		Description: input.Description,
		PriceCents:  priceCents,
		Images:      input.Images,
		Category:    input.Category,
		Sizes:       input.Sizes,
		Color:       input.Color,
		IsFeatured:  input.IsFeatured,
		IsNew:       input.IsNew,
		IsEco:       input.IsEco,
		Features:    input.Features,
		Stock:       input.Stock,
	}

	if err := store.CreateProduct(c.Request.Context(), &p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit"})
		return
	}

	c.JSON(http.StatusCreated, p)
}

//
// 🛠️ PUT /api/products/:id — admin
//
func Update(c *gin.Context) {
	pid, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	priceCents, err := pricing.CentsFromDecimalString(input.Price)
	if err != nil || priceCents < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prix invalide"})
		return
	}

	p := models.Product{
		ID:          gocql.UUID(pid),
		Name:        input.Name,
		Description: input.Description,
		PriceCents:  priceCents,
		Images:      input.Images,
		Category:    input.Category,
		Sizes:       input.Sizes,
		Color:       input.Color,
		IsFeatured:  input.IsFeatured,
		IsNew:       input.IsNew,
		IsEco:       input.IsEco,
		Features:    input.Features,
		Stock:       input.Stock,
	}

	if err := store.UpdateProduct(c.Request.Context(), &p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	c.JSON(http.StatusOK, p)
}

//
// ❌ DELETE /api/products/:id — admin
//
func Delete(c *gin.Context) {
	if err := store.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression produit"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé"})
}
