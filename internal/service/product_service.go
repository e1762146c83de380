package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vikas-0-3/farmer/internal/domain/entity"
	"github.com/vikas-0-3/farmer/internal/platform/logger"
	"github.com/vikas-0-3/farmer/internal/repository"
)

type CreateProductInput struct {
	FarmerID        primitive.ObjectID
	ProductName     string
	ProductQuantity string
	MRP             float64
	SellingPrice    float64
	Category        string
	Status          string
	ProductImage    string
}

type UpdateProductInput struct {
	ProductName     *string
	ProductQuantity *string
	MRP             *float64
	SellingPrice    *float64
	Category        *string
	Status          *string
	FarmerID        *primitive.ObjectID
	ProductImage    *string
}

type ProductService interface {
	Create(ctx context.Context, input CreateProductInput) (*entity.Product, error)
	Get(ctx context.Context, id primitive.ObjectID) (*entity.ProductWithFarmer, error)
	List(ctx context.Context) ([]*entity.ProductWithFarmer, error)
	ListByFarmer(ctx context.Context, farmerID primitive.ObjectID) ([]*entity.ProductWithFarmer, error)
	Update(ctx context.Context, id primitive.ObjectID, input UpdateProductInput) (*entity.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type productService struct {
	products repository.ProductRepository
	users    repository.UserRepository
	cache    repository.ProductCache
	cacheTTL time.Duration
	log      logger.Logger
}

func NewProductService(
	products repository.ProductRepository,
	users repository.UserRepository,
	cache repository.ProductCache,
	cacheTTL time.Duration,
	log logger.Logger,
) ProductService {
	return &productService{
		products: products,
		users:    users,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log.With("service", "product"),
	}
}

func (s *productService) Create(ctx context.Context, input CreateProductInput) (*entity.Product, error) {
	category, err := entity.ParseCategory(input.Category)
	if err != nil {
		return nil, err
	}
	status, err := entity.ParseProductStatus(input.Status)
	if err != nil {
		return nil, err
	}

	// Products reference the owning user, not the Farmer document.
	if _, err := s.users.GetByID(ctx, input.FarmerID); err != nil {
		return nil, err
	}

	product := &entity.Product{
		ProductName:     input.ProductName,
		ProductImage:    input.ProductImage,
		ProductQuantity: input.ProductQuantity,
		MRP:             input.MRP,
		SellingPrice:    input.SellingPrice,
		Category:        category,
		Status:          status,
		FarmerID:        input.FarmerID,
	}
	created, err := s.products.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	s.log.Infof("product created: %s", created.ID.Hex())
	return created, nil
}

func (s *productService) Get(ctx context.Context, id primitive.ObjectID) (*entity.ProductWithFarmer, error) {
	product, err := s.cache.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Warnf("product cache read failed for %s: %v", id.Hex(), err)
		}
		product, err = s.products.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if cacheErr := s.cache.Set(ctx, product, s.cacheTTL); cacheErr != nil {
			s.log.Warnf("product cache write failed for %s: %v", id.Hex(), cacheErr)
		}
	}
	return s.resolveFarmer(ctx, product), nil
}

func (s *productService) List(ctx context.Context) ([]*entity.ProductWithFarmer, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.resolveFarmers(ctx, products), nil
}

// ListByFarmer returns an empty collection when the farmer has no
// products; list queries never fail on zero results.
func (s *productService) ListByFarmer(ctx context.Context, farmerID primitive.ObjectID) ([]*entity.ProductWithFarmer, error) {
	products, err := s.products.ListByFarmer(ctx, farmerID)
	if err != nil {
		return nil, err
	}
	return s.resolveFarmers(ctx, products), nil
}

func (s *productService) Update(ctx context.Context, id primitive.ObjectID, input UpdateProductInput) (*entity.Product, error) {
	upd := repository.ProductUpdate{
		ProductName:     input.ProductName,
		ProductQuantity: input.ProductQuantity,
		MRP:             input.MRP,
		SellingPrice:    input.SellingPrice,
		FarmerID:        input.FarmerID,
		ProductImage:    input.ProductImage,
	}
	if input.Category != nil {
		category, err := entity.ParseCategory(*input.Category)
		if err != nil {
			return nil, err
		}
		upd.Category = &category
	}
	if input.Status != nil {
		status, err := entity.ParseProductStatus(*input.Status)
		if err != nil {
			return nil, err
		}
		upd.Status = &status
	}

	product, err := s.products.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	if cacheErr := s.cache.Delete(ctx, id); cacheErr != nil {
		s.log.Warnf("product cache invalidation failed for %s: %v", id.Hex(), cacheErr)
	}
	s.log.Infof("product updated: %s", id.Hex())
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	if cacheErr := s.cache.Delete(ctx, id); cacheErr != nil {
		s.log.Warnf("product cache invalidation failed for %s: %v", id.Hex(), cacheErr)
	}
	s.log.Infof("product deleted: %s", id.Hex())
	return nil
}

func (s *productService) resolveFarmer(ctx context.Context, product *entity.Product) *entity.ProductWithFarmer {
	resolved := &entity.ProductWithFarmer{Product: *product}
	if user, err := s.users.GetByID(ctx, product.FarmerID); err == nil {
		resolved.Farmer = user
	}
	return resolved
}

func (s *productService) resolveFarmers(ctx context.Context, products []*entity.Product) []*entity.ProductWithFarmer {
	// Resolve each distinct owner once per call.
	owners := make(map[primitive.ObjectID]*entity.User)
	result := make([]*entity.ProductWithFarmer, 0, len(products))
	for _, product := range products {
		resolved := &entity.ProductWithFarmer{Product: *product}
		owner, seen := owners[product.FarmerID]
		if !seen {
			owner, _ = s.users.GetByID(ctx, product.FarmerID)
			owners[product.FarmerID] = owner
		}
		resolved.Farmer = owner
		result = append(result, resolved)
	}
	return result
}
