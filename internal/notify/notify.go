// Package notify diffuse les transitions de commande : canal Redis pour la
// synchro websocket, email de confirmation à la création. Tout est meilleur
// effort — on trace, on n'échoue jamais l'opération d'origine.
package notify

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"

	"leafy_back_end/internal/models"
	"leafy_back_end/internal/repository"
	"leafy_back_end/internal/service"
	"leafy_back_end/internal/utils"
)

// OrderChannel retourne le canal pub/sub des commandes d'un utilisateur.
func OrderChannel(userID string) string {
	return "orders:" + userID
}

type orderEvent struct {
	Event   string `json:"event"`
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// RedisOrderNotifier publie chaque transition sur le canal de l'utilisateur.
type RedisOrderNotifier struct {
	redis *redis.Client
}

func NewRedisOrderNotifier(client *redis.Client) *RedisOrderNotifier {
	return &RedisOrderNotifier{redis: client}
}

func (n *RedisOrderNotifier) NotifyOrderEvent(ctx context.Context, event string, order *models.Order) {
	payload, err := json.Marshal(orderEvent{
		Event:   event,
		OrderID: order.ID,
		Status:  order.Status,
	})
	if err != nil {
		return
	}

	if err := n.redis.Publish(ctx, OrderChannel(order.UserID), payload).Err(); err != nil {
		log.Printf("⚠️  Publication événement commande %s: %v", order.ID, err)
	}
}

// EmailOrderNotifier envoie l'email de confirmation (facture PDF jointe)
// à la création de la commande.
type EmailOrderNotifier struct {
	users repository.UserRepository
}

func NewEmailOrderNotifier(users repository.UserRepository) *EmailOrderNotifier {
	return &EmailOrderNotifier{users: users}
}

func (n *EmailOrderNotifier) NotifyOrderEvent(ctx context.Context, event string, order *models.Order) {
	if event != service.OrderEventCreated {
		return
	}

	user, err := n.users.FindByID(ctx, order.UserID)
	if err != nil {
		log.Printf("⚠️  Email de confirmation %s: utilisateur introuvable: %v", order.ID, err)
		return
	}

	// L'envoi (et la génération de la facture) se fait hors requête.
	orderCopy := *order
	go func() {
		pdf, err := utils.GenerateInvoicePDF(&orderCopy)
		if err != nil {
			log.Printf("⚠️  Génération facture %s: %v", orderCopy.ID, err)
			pdf = nil // on envoie quand même l'email, sans pièce jointe
		}

		html := utils.GenerateOrderConfirmationHTML(&orderCopy)
		if err := utils.SendConfirmationEmail(user.Email, "Confirmation de votre commande Leafy", html, pdf); err != nil {
			log.Printf("⚠️  Envoi email confirmation %s: %v", orderCopy.ID, err)
		}
	}()
}

// MultiNotifier fan-out vers plusieurs notifiers.
type MultiNotifier []service.OrderNotifier

func (m MultiNotifier) NotifyOrderEvent(ctx context.Context, event string, order *models.Order) {
	for _, n := range m {
		n.NotifyOrderEvent(ctx, event, order)
	}
}
