package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"leafy_back_end/internal/service"
)

// RespondError traduit la taxonomie d'erreurs du coeur en familles HTTP.
// Les erreurs internes restent opaques pour le client mais sont tracées
// avec leur contexte complet.
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
	case errors.Is(err, service.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Article introuvable dans le panier"})
	case errors.Is(err, service.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
	case errors.Is(err, service.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "La quantité doit être un entier positif"})
	case errors.Is(err, service.ErrEmptyOrder):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Impossible de créer une commande vide"})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès non autorisé"})
	case errors.Is(err, service.ErrAlreadyPaid):
		c.JSON(http.StatusConflict, gin.H{"error": "Commande déjà payée avec une autre transaction"})
	case errors.Is(err, service.ErrAlreadyDelivered):
		c.JSON(http.StatusConflict, gin.H{"error": "Commande déjà livrée"})
	case errors.Is(err, service.ErrNotPaid):
		c.JSON(http.StatusConflict, gin.H{"error": "La commande doit être payée avant livraison"})
	default:
		log.Printf("❌ Erreur interne: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur interne"})
	}
}
