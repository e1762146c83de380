package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseRole(t *testing.T) {
	role, err := ParseRole("")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, role)

	for _, known := range []string{"user", "farmer", "admin"} {
		role, err := ParseRole(known)
		require.NoError(t, err)
		assert.Equal(t, Role(known), role)
	}

	_, err = ParseRole("superadmin")
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = ParseRole("Admin")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestParseGender(t *testing.T) {
	for _, known := range []string{"male", "female", "other"} {
		g, err := ParseGender(known)
		require.NoError(t, err)
		assert.Equal(t, Gender(known), g)
	}

	_, err := ParseGender("")
	assert.ErrorIs(t, err, ErrInvalidGender)
}

func TestParseCategory(t *testing.T) {
	for _, known := range []string{"Fruits", "Vegetables", "Dairy"} {
		c, err := ParseCategory(known)
		require.NoError(t, err)
		assert.Equal(t, Category(known), c)
	}

	_, err := ParseCategory("fruits")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestParseProductStatusDefaultsToActive(t *testing.T) {
	status, err := ParseProductStatus("")
	require.NoError(t, err)
	assert.Equal(t, ProductActive, status)

	status, err = ParseProductStatus("inactive")
	require.NoError(t, err)
	assert.Equal(t, ProductInactive, status)

	_, err = ParseProductStatus("archived")
	assert.ErrorIs(t, err, ErrInvalidProductStatus)
}

func TestNewOrder(t *testing.T) {
	userID := primitive.NewObjectID()
	items := []OrderItem{
		{ProductID: primitive.NewObjectID(), Quantity: 2},
		{ProductID: primitive.NewObjectID(), Quantity: 0},
	}

	order, err := NewOrder(userID, items, 99.5)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, 99.5, order.TotalAmount)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, 1, order.Items[1].Quantity)
}

func TestNewOrderRejectsEmptyItems(t *testing.T) {
	_, err := NewOrder(primitive.NewObjectID(), nil, 0)
	assert.ErrorIs(t, err, ErrEmptyOrderItems)
}
