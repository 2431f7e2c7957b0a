package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"leafy_back_end/internal/models"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderRepository : les transitions pay/deliver sont des updates
// conditionnels — le filtre porte l'état attendu, donc une transition
// concurrente déjà appliquée ne matche plus (l'état n'avance que vers
// l'avant, jamais en arrière).
type OrderRepository interface {
	Insert(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, orderID string) (*models.Order, error)
	FindByUser(ctx context.Context, userID string) ([]models.Order, error)
	FindAll(ctx context.Context) ([]models.Order, error)
	MarkPaid(ctx context.Context, orderID string, result models.PaymentResult, paidAt time.Time) (bool, error)
	MarkDelivered(ctx context.Context, orderID string, deliveredAt time.Time) (bool, error)
}

type mongoOrderRepository struct {
	collection *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) OrderRepository {
	return &mongoOrderRepository{collection: db.Collection("orders")}
}

func (m *mongoOrderRepository) Insert(ctx context.Context, order *models.Order) error {
	_, err := m.collection.InsertOne(ctx, order)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (m *mongoOrderRepository) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order

	err := m.collection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return &order, nil
}

func (m *mongoOrderRepository) FindByUser(ctx context.Context, userID string) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := m.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	return orders, nil
}

func (m *mongoOrderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := m.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list all orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	return orders, nil
}

// MarkPaid pose is_paid sur une commande encore impayée. Retourne false si
// rien n'a matché (commande inconnue ou déjà payée — l'appelant tranche).
func (m *mongoOrderRepository) MarkPaid(ctx context.Context, orderID string, result models.PaymentResult, paidAt time.Time) (bool, error) {
	filter := bson.M{"_id": orderID, "is_paid": false}
	update := bson.M{
		"$set": bson.M{
			"is_paid":        true,
			"paid_at":        paidAt,
			"payment_result": result,
			"status":         models.OrderStatusPaid,
		},
	}

	res, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to mark order paid: %w", err)
	}

	return res.MatchedCount > 0, nil
}

// MarkDelivered pose is_delivered sur une commande pas encore livrée.
func (m *mongoOrderRepository) MarkDelivered(ctx context.Context, orderID string, deliveredAt time.Time) (bool, error) {
	filter := bson.M{"_id": orderID, "is_delivered": false}
	update := bson.M{
		"$set": bson.M{
			"is_delivered": true,
			"delivered_at": deliveredAt,
			"status":       models.OrderStatusDelivered,
		},
	}

	res, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to mark order delivered: %w", err)
	}

	return res.MatchedCount > 0, nil
}
