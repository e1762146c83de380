package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Farmer is a one-to-one extension of a User with role "farmer".
// At most one Farmer document exists per user (unique index on user).
type Farmer struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    primitive.ObjectID `bson:"user" json:"user"`
	FarmName  string             `bson:"farm_name" json:"farmName"`
	Location  string             `bson:"location,omitempty" json:"location,omitempty"`
	FarmPhoto string             `bson:"farm_photo,omitempty" json:"farmPhoto,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// FarmerWithUser is the read shape for farmer listings, with the owning
// user resolved (password stripped by the User json tags).
type FarmerWithUser struct {
	Farmer `bson:",inline"`
	User   *User `bson:"-" json:"userDetails,omitempty"`
}
