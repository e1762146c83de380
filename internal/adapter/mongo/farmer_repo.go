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

const farmerCollectionName = "farmers"

type farmerRepository struct {
	collection *mongo.Collection
	log        logger.Logger
}

func NewFarmerRepository(db *mongo.Database, log logger.Logger) repository.FarmerRepository {
	collection := db.Collection(farmerCollectionName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := collection.Indexes().CreateOne(ctx, index); err != nil {
		log.Warnf("failed to ensure indexes for farmers collection: %v", err)
	}

	return &farmerRepository{collection: collection, log: log.With("repo", "farmer")}
}

func (r *farmerRepository) Create(ctx context.Context, farmer *entity.Farmer) (primitive.ObjectID, error) {
	if farmer.ID.IsZero() {
		farmer.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	farmer.CreatedAt = now
	farmer.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, farmer); err != nil {
		if isDuplicateKey(err, "user_1") {
			r.log.Warnf("duplicate farmer for user %s", farmer.UserID.Hex())
			return primitive.NilObjectID, repository.ErrDuplicateFarmer
		}
		return primitive.NilObjectID, fmt.Errorf("failed to create farmer: %w", err)
	}
	return farmer.ID, nil
}

func (r *farmerRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*entity.Farmer, error) {
	var farmer entity.Farmer
	err := r.collection.FindOne(ctx, bson.M{"user": userID}).Decode(&farmer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get farmer by user ID %s: %w", userID.Hex(), err)
	}
	return &farmer, nil
}

func (r *farmerRepository) List(ctx context.Context) ([]*entity.Farmer, error) {
	findOptions := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list farmers: %w", err)
	}
	defer cursor.Close(ctx)

	farmers := make([]*entity.Farmer, 0)
	if err := cursor.All(ctx, &farmers); err != nil {
		return nil, fmt.Errorf("failed to decode farmers: %w", err)
	}
	return farmers, nil
}

func (r *farmerRepository) Update(ctx context.Context, id primitive.ObjectID, upd repository.FarmerUpdate) (*entity.Farmer, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.FarmName != nil {
		set["farm_name"] = *upd.FarmName
	}
	if upd.Location != nil {
		set["location"] = *upd.Location
	}
	if upd.FarmPhoto != nil {
		set["farm_photo"] = *upd.FarmPhoto
	}

	var farmer entity.Farmer
	returnAfter := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, returnAfter).Decode(&farmer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update farmer %s: %w", id.Hex(), err)
	}
	return &farmer, nil
}

func (r *farmerRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete farmer %s: %w", id.Hex(), err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
