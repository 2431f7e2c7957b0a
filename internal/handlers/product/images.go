package product

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"leafy_back_end/internal/catalog"
	"leafy_back_end/internal/services"
)

//
// 🖼️ POST /api/products/:id/images — admin, multipart "image"
//
func UploadImage(c *gin.Context) {
	productID := c.Param("id")

	p, err := store.GetProduct(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération produit"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier 'image' manquant"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture fichier"})
		return
	}
	defer file.Close()

	objectName, err := services.UploadProductImage(c.Request.Context(), productID,
		fileHeader.Filename, file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload image"})
		return
	}

	p.Images = append(p.Images, objectName)
	if err := store.UpdateProduct(c.Request.Context(), p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	url, err := services.SignedImageURL(c.Request.Context(), objectName)
	if err != nil {
		// L'objet est stocké, l'URL signée est un confort
		url = ""
	}

	c.JSON(http.StatusCreated, gin.H{
		"object": objectName,
		"url":    url,
		"images": p.Images,
	})
}
