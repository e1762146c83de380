package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vikas-0-3/farmer/internal/domain/entity"
)

// UserUpdate carries partial-update fields for a user. Nil pointers are
// left untouched in the stored document, never cleared.
type UserUpdate struct {
	Name         *string
	Age          *int
	Gender       *entity.Gender
	Phone        *string
	Address      *string
	Role         *entity.Role
	ProfilePhoto *string
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, role *entity.Role) ([]*entity.User, error)
	Update(ctx context.Context, id primitive.ObjectID, upd UserUpdate) (*entity.User, error)
	SetRole(ctx context.Context, id primitive.ObjectID, role entity.Role) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type FarmerUpdate struct {
	FarmName  *string
	Location  *string
	FarmPhoto *string
}

type FarmerRepository interface {
	Create(ctx context.Context, farmer *entity.Farmer) (primitive.ObjectID, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*entity.Farmer, error)
	List(ctx context.Context) ([]*entity.Farmer, error)
	Update(ctx context.Context, id primitive.ObjectID, upd FarmerUpdate) (*entity.Farmer, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ProductUpdate struct {
	ProductName     *string
	ProductQuantity *string
	MRP             *float64
	SellingPrice    *float64
	Category        *entity.Category
	Status          *entity.ProductStatus
	FarmerID        *primitive.ObjectID
	ProductImage    *string
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) (*entity.Product, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error)
	GetManyByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	ListByFarmer(ctx context.Context, farmerID primitive.ObjectID) ([]*entity.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, upd ProductUpdate) (*entity.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type CartRepository interface {
	// Create inserts a new cart. A concurrent insert for the same user
	// fails with ErrDuplicateCart (unique index on user).
	Create(ctx context.Context, cart *entity.Cart) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Cart, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*entity.Cart, error)
	Save(ctx context.Context, cart *entity.Cart) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) (primitive.ObjectID, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*entity.Order, error)
	ListAll(ctx context.Context) ([]*entity.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*entity.Order, error)
}

// ProductCache is a read-through cache for product details.
type ProductCache interface {
	Get(ctx context.Context, id primitive.ObjectID) (*entity.Product, error)
	Set(ctx context.Context, product *entity.Product, ttl time.Duration) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
