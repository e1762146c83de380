package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vikas-0-3/farmer/internal/domain/entity"
	"github.com/vikas-0-3/farmer/internal/platform/logger"
	"github.com/vikas-0-3/farmer/internal/repository"
)

// UpdateUserInput carries partial-update fields; nil means "leave the
// stored value alone".
type UpdateUserInput struct {
	Name         *string
	Age          *int
	Gender       *string
	Phone        *string
	Address      *string
	ProfilePhoto *string
}

type UserService interface {
	Get(ctx context.Context, id primitive.ObjectID) (*entity.User, error)
	List(ctx context.Context, roleFilter *entity.Role) ([]*entity.User, error)
	Update(ctx context.Context, id primitive.ObjectID, input UpdateUserInput) (*entity.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type userService struct {
	users repository.UserRepository
	log   logger.Logger
}

func NewUserService(users repository.UserRepository, log logger.Logger) UserService {
	return &userService{users: users, log: log.With("service", "user")}
}

func (s *userService) Get(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userService) List(ctx context.Context, roleFilter *entity.Role) ([]*entity.User, error) {
	return s.users.List(ctx, roleFilter)
}

func (s *userService) Update(ctx context.Context, id primitive.ObjectID, input UpdateUserInput) (*entity.User, error) {
	upd := repository.UserUpdate{
		Name:         input.Name,
		Age:          input.Age,
		Phone:        input.Phone,
		Address:      input.Address,
		ProfilePhoto: input.ProfilePhoto,
	}
	if input.Gender != nil {
		gender, err := entity.ParseGender(*input.Gender)
		if err != nil {
			return nil, err
		}
		upd.Gender = &gender
	}

	user, err := s.users.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	s.log.Infof("user updated: %s", id.Hex())
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Infof("user deleted: %s", id.Hex())
	return nil
}
