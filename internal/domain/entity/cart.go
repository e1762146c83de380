package entity

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrEmptyCartItems  = errors.New("cart must contain at least one item")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrItemNotFound    = errors.New("item not found in cart")
)

// CartItem is a line item. ID identifies the line item itself (not the
// product), matching how item-level routes address it.
type CartItem struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	ProductID primitive.ObjectID `bson:"product" json:"product"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

func NewCartItem(productID primitive.ObjectID, quantity int) (CartItem, error) {
	if productID.IsZero() {
		return CartItem{}, errors.New("product ID cannot be empty for cart item")
	}
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return CartItem{}, ErrInvalidQuantity
	}
	return CartItem{ID: primitive.NewObjectID(), ProductID: productID, Quantity: quantity}, nil
}

// Cart holds one user's active cart. One cart per user, enforced by a
// unique index on the user field.
type Cart struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID      primitive.ObjectID `bson:"user" json:"user"`
	Items       []CartItem         `bson:"products" json:"products"`
	TotalAmount float64            `bson:"total_amount" json:"totalAmount"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

func NewCart(userID primitive.ObjectID) *Cart {
	now := time.Now().UTC()
	return &Cart{
		UserID:    userID,
		Items:     make([]CartItem, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (c *Cart) itemByProduct(productID primitive.ObjectID) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

func (c *Cart) itemIndex(itemID primitive.ObjectID) int {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// Merge folds incoming line items into the cart: an item for a product
// already present has its quantity incremented, anything else is
// appended.
func (c *Cart) Merge(items []CartItem) error {
	if len(items) == 0 {
		return ErrEmptyCartItems
	}
	for _, in := range items {
		if in.Quantity < 1 {
			return ErrInvalidQuantity
		}
		if existing := c.itemByProduct(in.ProductID); existing != nil {
			existing.Quantity += in.Quantity
		} else {
			item := in
			if item.ID.IsZero() {
				item.ID = primitive.NewObjectID()
			}
			c.Items = append(c.Items, item)
		}
	}
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// Replace swaps out the whole line-item list.
func (c *Cart) Replace(items []CartItem) error {
	if len(items) == 0 {
		return ErrEmptyCartItems
	}
	replacement := make([]CartItem, 0, len(items))
	for _, in := range items {
		if in.Quantity < 1 {
			return ErrInvalidQuantity
		}
		item := in
		if item.ID.IsZero() {
			item.ID = primitive.NewObjectID()
		}
		replacement = append(replacement, item)
	}
	c.Items = replacement
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// UpdateItemQuantity sets the quantity of one line item, addressed by
// line-item ID.
func (c *Cart) UpdateItemQuantity(itemID primitive.ObjectID, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	i := c.itemIndex(itemID)
	if i == -1 {
		return ErrItemNotFound
	}
	c.Items[i].Quantity = quantity
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// RemoveItem drops a line item by ID. Removing an item that is not in
// the cart is a no-op.
func (c *Cart) RemoveItem(itemID primitive.ObjectID) {
	i := c.itemIndex(itemID)
	if i == -1 {
		return
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	c.UpdatedAt = time.Now().UTC()
}

// RecomputeTotal derives TotalAmount from the line items and the given
// product prices. A product missing from the map counts as zero, so a
// dangling product reference cannot poison the total.
func (c *Cart) RecomputeTotal(prices map[primitive.ObjectID]float64) {
	var total float64
	for _, item := range c.Items {
		total += float64(item.Quantity) * prices[item.ProductID]
	}
	c.TotalAmount = total
}
