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

var (
	ErrCartNotFound = errors.New("cart not found")
	ErrItemNotFound = errors.New("item not found in cart")
)

// CartRepository expose des opérations atomiques côté document : le merge
// incrémental et l'ajout de ligne sont des updates conditionnels Mongo,
// jamais un read-modify-write côté application.
type CartRepository interface {
	GetCart(ctx context.Context, userID string) (*models.Cart, error)
	IncrementLine(ctx context.Context, userID, productID, size, color string, quantity int) (bool, error)
	AppendLine(ctx context.Context, userID string, item models.CartItem) error
	UpdateItemQuantity(ctx context.Context, userID, itemID string, quantity int) error
	RemoveItem(ctx context.Context, userID, itemID string) error
	ClearCart(ctx context.Context, userID string) error
	CreateIndexes(ctx context.Context) error
}

type mongoCartRepository struct {
	collection *mongo.Collection
}

func NewMongoCartRepository(db *mongo.Database) CartRepository {
	return &mongoCartRepository{collection: db.Collection("carts")}
}

func (m *mongoCartRepository) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart

	filter := bson.M{"user_id": userID}
	err := m.collection.FindOne(ctx, filter).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	return &cart, nil
}

// IncrementLine incrémente la quantité de la ligne (product_id, size, color)
// si elle existe. La ligne est sélectionnée dans le filtre de la requête
// (pas dans l'update) : sans ligne correspondante, rien ne matche et le
// document n'est pas touché, même pas updated_at. Retourne false si aucune
// ligne ne correspond — le prix unitaire n'est jamais modifié, c'est
// l'instantané d'origine qui fait foi.
func (m *mongoCartRepository) IncrementLine(ctx context.Context, userID, productID, size, color string, quantity int) (bool, error) {
	filter := bson.M{
		"user_id": userID,
		"items": bson.M{"$elemMatch": bson.M{
			"product_id": productID,
			"size":       size,
			"color":      color,
		}},
	}
	update := bson.M{
		"$inc": bson.M{"items.$.quantity": quantity},
		"$set": bson.M{"updated_at": time.Now()},
	}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to increment cart line: %w", err)
	}

	return result.MatchedCount > 0, nil
}

// AppendLine ajoute une nouvelle ligne, en créant le panier au passage
// s'il n'existe pas encore (création paresseuse).
func (m *mongoCartRepository) AppendLine(ctx context.Context, userID string, item models.CartItem) error {
	now := time.Now()

	filter := bson.M{"user_id": userID}
	update := bson.M{
		"$push":        bson.M{"items": item},
		"$set":         bson.M{"updated_at": now},
		"$setOnInsert": bson.M{"created_at": now},
	}
	opts := options.Update().SetUpsert(true)

	_, err := m.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to append cart line: %w", err)
	}

	return nil
}

func (m *mongoCartRepository) UpdateItemQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	filter := bson.M{
		"user_id":       userID,
		"items.item_id": itemID,
	}
	update := bson.M{
		"$set": bson.M{
			"items.$[elem].quantity": quantity,
			"updated_at":             time.Now(),
		},
	}
	arrayFilters := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{
			bson.M{"elem.item_id": itemID},
		},
	})

	result, err := m.collection.UpdateOne(ctx, filter, update, arrayFilters)
	if err != nil {
		return fmt.Errorf("failed to update item quantity: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrItemNotFound
	}
	return nil
}

// RemoveItem retire la ligne ciblée. L'item fait partie du filtre : un
// item_id absent ne matche rien, donc ErrItemNotFound et updated_at intact.
func (m *mongoCartRepository) RemoveItem(ctx context.Context, userID, itemID string) error {
	filter := bson.M{
		"user_id":       userID,
		"items.item_id": itemID,
	}
	update := bson.M{
		"$pull": bson.M{"items": bson.M{"item_id": itemID}},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to remove item: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrItemNotFound
	}

	return nil
}

// ClearCart vide le panier sans le supprimer : items = [], updated_at
// rafraîchi. Upsert pour rester cohérent avec la création paresseuse.
func (m *mongoCartRepository) ClearCart(ctx context.Context, userID string) error {
	now := time.Now()

	filter := bson.M{"user_id": userID}
	update := bson.M{
		"$set":         bson.M{"items": []models.CartItem{}, "updated_at": now},
		"$setOnInsert": bson.M{"created_at": now},
	}
	opts := options.Update().SetUpsert(true)

	_, err := m.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}

func (m *mongoCartRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create cart indexes: %w", err)
	}

	return nil
}
