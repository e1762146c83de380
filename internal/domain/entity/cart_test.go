package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func mustItem(t *testing.T, productID primitive.ObjectID, quantity int) CartItem {
	t.Helper()
	item, err := NewCartItem(productID, quantity)
	require.NoError(t, err)
	return item
}

func TestNewCartItemDefaultsZeroQuantityToOne(t *testing.T) {
	item, err := NewCartItem(primitive.NewObjectID(), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)
	assert.False(t, item.ID.IsZero())
}

func TestNewCartItemRejectsNegativeQuantity(t *testing.T) {
	_, err := NewCartItem(primitive.NewObjectID(), -1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestNewCartItemRejectsZeroProduct(t *testing.T) {
	_, err := NewCartItem(primitive.NilObjectID, 1)
	assert.Error(t, err)
}

func TestCartMergeIncrementsSameProduct(t *testing.T) {
	productID := primitive.NewObjectID()
	cart := NewCart(primitive.NewObjectID())

	require.NoError(t, cart.Merge([]CartItem{mustItem(t, productID, 2)}))
	require.NoError(t, cart.Merge([]CartItem{mustItem(t, productID, 3)}))

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCartMergeAppendsNewProduct(t *testing.T) {
	cart := NewCart(primitive.NewObjectID())

	require.NoError(t, cart.Merge([]CartItem{mustItem(t, primitive.NewObjectID(), 1)}))
	require.NoError(t, cart.Merge([]CartItem{mustItem(t, primitive.NewObjectID(), 2)}))

	assert.Len(t, cart.Items, 2)
}

func TestCartMergeRejectsEmpty(t *testing.T) {
	cart := NewCart(primitive.NewObjectID())
	assert.ErrorIs(t, cart.Merge(nil), ErrEmptyCartItems)
}

func TestCartReplaceSwapsItems(t *testing.T) {
	cart := NewCart(primitive.NewObjectID())
	require.NoError(t, cart.Merge([]CartItem{mustItem(t, primitive.NewObjectID(), 4)}))

	replacement := mustItem(t, primitive.NewObjectID(), 1)
	require.NoError(t, cart.Replace([]CartItem{replacement}))

	require.Len(t, cart.Items, 1)
	assert.Equal(t, replacement.ProductID, cart.Items[0].ProductID)
}

func TestCartUpdateItemQuantityByLineItemID(t *testing.T) {
	cart := NewCart(primitive.NewObjectID())
	item := mustItem(t, primitive.NewObjectID(), 2)
	require.NoError(t, cart.Merge([]CartItem{item}))

	require.NoError(t, cart.UpdateItemQuantity(item.ID, 7))
	assert.Equal(t, 7, cart.Items[0].Quantity)

	assert.ErrorIs(t, cart.UpdateItemQuantity(primitive.NewObjectID(), 1), ErrItemNotFound)
	assert.ErrorIs(t, cart.UpdateItemQuantity(item.ID, 0), ErrInvalidQuantity)
}

func TestCartRemoveItemIsIdempotent(t *testing.T) {
	cart := NewCart(primitive.NewObjectID())
	item := mustItem(t, primitive.NewObjectID(), 1)
	require.NoError(t, cart.Merge([]CartItem{item}))

	cart.RemoveItem(item.ID)
	assert.Empty(t, cart.Items)

	cart.RemoveItem(item.ID)
	assert.Empty(t, cart.Items)
}

func TestCartRecomputeTotal(t *testing.T) {
	apple := primitive.NewObjectID()
	milk := primitive.NewObjectID()
	cart := NewCart(primitive.NewObjectID())
	require.NoError(t, cart.Merge([]CartItem{
		mustItem(t, apple, 2),
		mustItem(t, milk, 3),
	}))

	cart.RecomputeTotal(map[primitive.ObjectID]float64{apple: 10, milk: 25})
	assert.Equal(t, 95.0, cart.TotalAmount)
}

func TestCartRecomputeTotalMissingPriceCountsAsZero(t *testing.T) {
	apple := primitive.NewObjectID()
	gone := primitive.NewObjectID()
	cart := NewCart(primitive.NewObjectID())
	require.NoError(t, cart.Merge([]CartItem{
		mustItem(t, apple, 1),
		mustItem(t, gone, 5),
	}))

	cart.RecomputeTotal(map[primitive.ObjectID]float64{apple: 10})
	assert.Equal(t, 10.0, cart.TotalAmount)
}
