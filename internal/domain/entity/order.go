package entity

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatusPending is the status every order starts in. Later transitions
// are free-form strings set by admins or farmers; no transition table
// is enforced.
const StatusPending = "pending"

var ErrEmptyOrderItems = errors.New("order must contain at least one item")

type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product" json:"product"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// Order is a snapshot of a purchase. Line items are immutable after
// creation; only the status changes.
type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID      primitive.ObjectID `bson:"user" json:"user"`
	Items       []OrderItem        `bson:"products" json:"products"`
	TotalAmount float64            `bson:"total_amount" json:"totalAmount"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

func NewOrder(userID primitive.ObjectID, items []OrderItem, totalAmount float64) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrderItems
	}
	for i := range items {
		if items[i].Quantity < 1 {
			items[i].Quantity = 1
		}
	}
	now := time.Now().UTC()
	return &Order{
		UserID:      userID,
		Items:       items,
		TotalAmount: totalAmount,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
