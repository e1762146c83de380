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

const productCollectionName = "products"

type productRepository struct {
	collection *mongo.Collection
	log        logger.Logger
}

func NewProductRepository(db *mongo.Database, log logger.Logger) repository.ProductRepository {
	collection := db.Collection(productCollectionName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	index := mongo.IndexModel{Keys: bson.D{{Key: "farmer", Value: 1}}}
	if _, err := collection.Indexes().CreateOne(ctx, index); err != nil {
		log.Warnf("failed to ensure indexes for products collection: %v", err)
	}

	return &productRepository{collection: collection, log: log.With("repo", "product")}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (r *productRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error) {
	var product entity.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id.Hex(), err)
	}
	return &product, nil
}

func (r *productRepository) GetManyByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*entity.Product, error) {
	result := make(map[primitive.ObjectID]*entity.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to get products by IDs: %w", err)
	}
	defer cursor.Close(ctx)

	var products []*entity.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	for _, p := range products {
		result[p.ID] = p
	}
	return result, nil
}

func (r *productRepository) List(ctx context.Context) ([]*entity.Product, error) {
	return r.find(ctx, bson.M{})
}

func (r *productRepository) ListByFarmer(ctx context.Context, farmerID primitive.ObjectID) ([]*entity.Product, error) {
	return r.find(ctx, bson.M{"farmer": farmerID})
}

func (r *productRepository) find(ctx context.Context, filter bson.M) ([]*entity.Product, error) {
	findOptions := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]*entity.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

func (r *productRepository) Update(ctx context.Context, id primitive.ObjectID, upd repository.ProductUpdate) (*entity.Product, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.ProductName != nil {
		set["product_name"] = *upd.ProductName
	}
	if upd.ProductQuantity != nil {
		set["product_quantity"] = *upd.ProductQuantity
	}
	if upd.MRP != nil {
		set["mrp"] = *upd.MRP
	}
	if upd.SellingPrice != nil {
		set["selling_price"] = *upd.SellingPrice
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.FarmerID != nil {
		set["farmer"] = *upd.FarmerID
	}
	if upd.ProductImage != nil {
		set["product_image"] = *upd.ProductImage
	}

	var product entity.Product
	returnAfter := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, returnAfter).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update product %s: %w", id.Hex(), err)
	}
	return &product, nil
}

func (r *productRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id.Hex(), err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
