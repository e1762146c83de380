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

const orderCollectionName = "orders"

type orderRepository struct {
	collection *mongo.Collection
	log        logger.Logger
}

func NewOrderRepository(db *mongo.Database, log logger.Logger) repository.OrderRepository {
	return &orderRepository{
		collection: db.Collection(orderCollectionName),
		log:        log.With("repo", "order"),
	}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) (primitive.ObjectID, error) {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}

	if _, err := r.collection.InsertOne(ctx, order); err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to create order: %w", err)
	}
	return order.ID, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*entity.Order, error) {
	return r.find(ctx, bson.M{"user": userID})
}

func (r *orderRepository) ListAll(ctx context.Context) ([]*entity.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *orderRepository) find(ctx context.Context, filter bson.M) ([]*entity.Order, error) {
	findOptions := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := make([]*entity.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*entity.Order, error) {
	update := bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}}

	var order entity.Order
	returnAfter := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, returnAfter).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update order status for ID %s: %w", id.Hex(), err)
	}
	return &order, nil
}
