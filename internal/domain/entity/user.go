package entity

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleUser   Role = "user"
	RoleFarmer Role = "farmer"
	RoleAdmin  Role = "admin"
)

var ErrInvalidRole = errors.New("invalid role")

// ParseRole validates a role coming in from the boundary. An empty
// string defaults to RoleUser.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case "":
		return RoleUser, nil
	case RoleUser, RoleFarmer, RoleAdmin:
		return Role(s), nil
	default:
		return "", ErrInvalidRole
	}
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

var ErrInvalidGender = errors.New("invalid gender")

func ParseGender(s string) (Gender, error) {
	switch Gender(s) {
	case GenderMale, GenderFemale, GenderOther:
		return Gender(s), nil
	default:
		return "", ErrInvalidGender
	}
}

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name         string             `bson:"name" json:"name"`
	Age          int                `bson:"age" json:"age"`
	Gender       Gender             `bson:"gender" json:"gender"`
	Email        string             `bson:"email" json:"email"`
	Phone        string             `bson:"phone" json:"phone"`
	Password     string             `bson:"password" json:"-"`
	ProfilePhoto string             `bson:"profile_photo,omitempty" json:"profilePhoto,omitempty"`
	Address      string             `bson:"address,omitempty" json:"address,omitempty"`
	Role         Role               `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"created_at" json:"dateJoined"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}
