package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vikas-0-3/farmer/internal/domain/entity"
	"github.com/vikas-0-3/farmer/internal/platform/logger"
	"github.com/vikas-0-3/farmer/internal/repository"
)

func seedUser(t *testing.T, users *fakeUserRepo, email, phone string, role entity.Role) primitive.ObjectID {
	t.Helper()
	id, err := users.Create(context.Background(), &entity.User{
		Name:     "Sita",
		Age:      28,
		Gender:   entity.GenderFemale,
		Email:    email,
		Phone:    phone,
		Password: "hashed",
		Role:     role,
	})
	require.NoError(t, err)
	return id
}

func TestUserUpdatePartialFieldsOnly(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users, logger.NoOp{})
	ctx := context.Background()

	id := seedUser(t, users, "sita@example.com", "9000000010", entity.RoleUser)

	name := "Sita Devi"
	updated, err := svc.Update(ctx, id, UpdateUserInput{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Sita Devi", updated.Name)
	assert.Equal(t, 28, updated.Age)
	assert.Equal(t, "sita@example.com", updated.Email)
	assert.Equal(t, "hashed", updated.Password)
}

func TestUserUpdateRejectsInvalidGender(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users, logger.NoOp{})

	id := seedUser(t, users, "g@example.com", "9000000011", entity.RoleUser)

	bad := "unknown"
	_, err := svc.Update(context.Background(), id, UpdateUserInput{Gender: &bad})
	assert.ErrorIs(t, err, entity.ErrInvalidGender)
}

func TestUserListFilterByRole(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users, logger.NoOp{})
	ctx := context.Background()

	seedUser(t, users, "u1@example.com", "9000000012", entity.RoleUser)
	seedUser(t, users, "f1@example.com", "9000000013", entity.RoleFarmer)

	role := entity.RoleUser
	filtered, err := svc.List(ctx, &role)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, entity.RoleUser, filtered[0].Role)

	all, err := svc.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUserListEmptyIsNotAnError(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), logger.NoOp{})

	all, err := svc.List(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestUserDeleteMissing(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), logger.NoOp{})

	err := svc.Delete(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
