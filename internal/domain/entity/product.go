package entity

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category string

const (
	CategoryFruits     Category = "Fruits"
	CategoryVegetables Category = "Vegetables"
	CategoryDairy      Category = "Dairy"
)

var ErrInvalidCategory = errors.New("invalid category")

func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryFruits, CategoryVegetables, CategoryDairy:
		return Category(s), nil
	default:
		return "", ErrInvalidCategory
	}
}

type ProductStatus string

const (
	ProductActive   ProductStatus = "active"
	ProductInactive ProductStatus = "inactive"
)

var ErrInvalidProductStatus = errors.New("invalid product status")

// ParseProductStatus defaults an empty string to "active".
func ParseProductStatus(s string) (ProductStatus, error) {
	switch ProductStatus(s) {
	case "":
		return ProductActive, nil
	case ProductActive, ProductInactive:
		return ProductStatus(s), nil
	default:
		return "", ErrInvalidProductStatus
	}
}

// Product is a sellable listing. ProductQuantity is a free-text
// descriptor ("1 kg", "dozen"), not a stock count. ProductImage is the
// empty string when no file was uploaded; clients rely on that shape.
// FarmerID references the owning User document.
type Product struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ProductName     string             `bson:"product_name" json:"productName"`
	ProductImage    string             `bson:"product_image" json:"productImage"`
	ProductQuantity string             `bson:"product_quantity" json:"productQuantity"`
	MRP             float64            `bson:"mrp" json:"mrp"`
	SellingPrice    float64            `bson:"selling_price" json:"sellingPrice"`
	Category        Category           `bson:"category" json:"category"`
	Status          ProductStatus      `bson:"status" json:"status"`
	FarmerID        primitive.ObjectID `bson:"farmer" json:"farmer"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`
}

// ProductWithFarmer resolves the owning user for read paths.
type ProductWithFarmer struct {
	Product `bson:",inline"`
	Farmer  *User `bson:"-" json:"farmerDetails,omitempty"`
}
