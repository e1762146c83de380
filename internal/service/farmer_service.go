package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vikas-0-3/farmer/internal/domain/entity"
	"github.com/vikas-0-3/farmer/internal/platform/logger"
	"github.com/vikas-0-3/farmer/internal/repository"
)

type CreateFarmerInput struct {
	UserID    primitive.ObjectID
	FarmName  string
	Location  string
	FarmPhoto string
}

type UpdateFarmerInput struct {
	FarmName  *string
	Location  *string
	FarmPhoto *string
}

type FarmerService interface {
	Create(ctx context.Context, input CreateFarmerInput) (primitive.ObjectID, error)
	List(ctx context.Context) ([]*entity.FarmerWithUser, error)
	ListFarms(ctx context.Context) ([]*entity.Farmer, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*entity.FarmerWithUser, error)
	Update(ctx context.Context, id primitive.ObjectID, input UpdateFarmerInput) (*entity.Farmer, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type farmerService struct {
	farmers repository.FarmerRepository
	users   repository.UserRepository
	log     logger.Logger
}

func NewFarmerService(farmers repository.FarmerRepository, users repository.UserRepository, log logger.Logger) FarmerService {
	return &farmerService{farmers: farmers, users: users, log: log.With("service", "farmer")}
}

// Create inserts the Farmer document first (the unique index on user
// rejects a second farmer for the same user), then promotes the user's
// role. A failed promotion removes the just-created Farmer so the two
// writes cannot diverge.
func (s *farmerService) Create(ctx context.Context, input CreateFarmerInput) (primitive.ObjectID, error) {
	if _, err := s.users.GetByID(ctx, input.UserID); err != nil {
		return primitive.NilObjectID, err
	}

	farmer := &entity.Farmer{
		UserID:    input.UserID,
		FarmName:  input.FarmName,
		Location:  input.Location,
		FarmPhoto: input.FarmPhoto,
	}
	farmerID, err := s.farmers.Create(ctx, farmer)
	if err != nil {
		return primitive.NilObjectID, err
	}

	if err := s.users.SetRole(ctx, input.UserID, entity.RoleFarmer); err != nil {
		if delErr := s.farmers.Delete(ctx, farmerID); delErr != nil {
			s.log.Errorf("failed to roll back farmer %s after role promotion failure: %v", farmerID.Hex(), delErr)
		}
		return primitive.NilObjectID, fmt.Errorf("failed to promote user %s to farmer: %w", input.UserID.Hex(), err)
	}

	s.log.Infof("farmer created: %s (user %s)", farmerID.Hex(), input.UserID.Hex())
	return farmerID, nil
}

func (s *farmerService) List(ctx context.Context) ([]*entity.FarmerWithUser, error) {
	farmers, err := s.farmers.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*entity.FarmerWithUser, 0, len(farmers))
	for _, farmer := range farmers {
		resolved := &entity.FarmerWithUser{Farmer: *farmer}
		user, err := s.users.GetByID(ctx, farmer.UserID)
		if err == nil {
			resolved.User = user
		} else {
			// Deleting a user does not cascade; a farmer can point at a
			// user that no longer exists.
			s.log.Warnf("farmer %s references missing user %s", farmer.ID.Hex(), farmer.UserID.Hex())
		}
		result = append(result, resolved)
	}
	return result, nil
}

func (s *farmerService) ListFarms(ctx context.Context) ([]*entity.Farmer, error) {
	return s.farmers.List(ctx)
}

func (s *farmerService) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*entity.FarmerWithUser, error) {
	farmer, err := s.farmers.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resolved := &entity.FarmerWithUser{Farmer: *farmer}
	if user, err := s.users.GetByID(ctx, farmer.UserID); err == nil {
		resolved.User = user
	}
	return resolved, nil
}

func (s *farmerService) Update(ctx context.Context, id primitive.ObjectID, input UpdateFarmerInput) (*entity.Farmer, error) {
	farmer, err := s.farmers.Update(ctx, id, repository.FarmerUpdate{
		FarmName:  input.FarmName,
		Location:  input.Location,
		FarmPhoto: input.FarmPhoto,
	})
	if err != nil {
		return nil, err
	}
	s.log.Infof("farmer updated: %s", id.Hex())
	return farmer, nil
}

// Delete removes the Farmer record only. The user keeps the farmer
// role; demotion on delete was never part of the contract.
func (s *farmerService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.farmers.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Infof("farmer deleted: %s", id.Hex())
	return nil
}
