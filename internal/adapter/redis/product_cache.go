package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vikas-0-3/farmer/internal/domain/entity"
	"github.com/vikas-0-3/farmer/internal/repository"
)

const productKeyPrefix = "product:"

type productCache struct {
	client *redis.Client
}

func NewProductCache(client *redis.Client) repository.ProductCache {
	return &productCache{client: client}
}

func (c *productCache) Get(ctx context.Context, id primitive.ObjectID) (*entity.Product, error) {
	data, err := c.client.Get(ctx, productKeyPrefix+id.Hex()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product %s from cache: %w", id.Hex(), err)
	}

	var product entity.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached product %s: %w", id.Hex(), err)
	}
	return &product, nil
}

func (c *productCache) Set(ctx context.Context, product *entity.Product, ttl time.Duration) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product %s for cache: %w", product.ID.Hex(), err)
	}
	return c.client.Set(ctx, productKeyPrefix+product.ID.Hex(), data, ttl).Err()
}

func (c *productCache) Delete(ctx context.Context, id primitive.ObjectID) error {
	return c.client.Del(ctx, productKeyPrefix+id.Hex()).Err()
}
