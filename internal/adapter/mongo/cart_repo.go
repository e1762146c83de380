package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vikas-0-3/farmer/internal/domain/entity"
	"github.com/vikas-0-3/farmer/internal/platform/logger"
	"github.com/vikas-0-3/farmer/internal/repository"
)

const cartCollectionName = "carts"

type cartRepository struct {
	collection *mongo.Collection
	log        logger.Logger
}

func NewCartRepository(db *mongo.Database, log logger.Logger) repository.CartRepository {
	collection := db.Collection(cartCollectionName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// One cart per user. Concurrent find-or-create sequences collide on
	// this index instead of producing a duplicate cart.
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := collection.Indexes().CreateOne(ctx, index); err != nil {
		log.Warnf("failed to ensure indexes for carts collection: %v", err)
	}

	return &cartRepository{collection: collection, log: log.With("repo", "cart")}
}

func (r *cartRepository) Create(ctx context.Context, cart *entity.Cart) (primitive.ObjectID, error) {
	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	cart.CreatedAt = now
	cart.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, cart); err != nil {
		if isDuplicateKey(err, "user_1") {
			return primitive.NilObjectID, repository.ErrDuplicateCart
		}
		return primitive.NilObjectID, fmt.Errorf("failed to create cart: %w", err)
	}
	return cart.ID, nil
}

func (r *cartRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Cart, error) {
	var cart entity.Cart
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get cart by ID %s: %w", id.Hex(), err)
	}
	return &cart, nil
}

func (r *cartRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*entity.Cart, error) {
	var cart entity.Cart
	err := r.collection.FindOne(ctx, bson.M{"user": userID}).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get cart for user %s: %w", userID.Hex(), err)
	}
	return &cart, nil
}

func (r *cartRepository) Save(ctx context.Context, cart *entity.Cart) error {
	update := bson.M{"$set": bson.M{
		"products":     cart.Items,
		"total_amount": cart.TotalAmount,
		"updated_at":   cart.UpdatedAt,
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": cart.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to save cart %s: %w", cart.ID.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *cartRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete cart %s: %w", id.Hex(), err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
