package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/vikas-0-3/farmer/internal/domain/entity"
	"github.com/vikas-0-3/farmer/internal/platform/logger"
	"github.com/vikas-0-3/farmer/internal/repository"
)

type RegisterInput struct {
	Name         string
	Age          int
	Gender       string
	Email        string
	Phone        string
	Password     string
	Address      string
	Role         string
	ProfilePhoto string
}

type LoginResult struct {
	Token  string `json:"token"`
	Role   string `json:"role"`
	UserID string `json:"userId"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (primitive.ObjectID, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

type authService struct {
	users     repository.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	log       logger.Logger
}

func NewAuthService(users repository.UserRepository, jwtSecret string, tokenTTL time.Duration, log logger.Logger) AuthService {
	return &authService{
		users:     users,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log.With("service", "auth"),
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (primitive.ObjectID, error) {
	gender, err := entity.ParseGender(input.Gender)
	if err != nil {
		return primitive.NilObjectID, err
	}
	role, err := entity.ParseRole(input.Role)
	if err != nil {
		return primitive.NilObjectID, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Name:         input.Name,
		Age:          input.Age,
		Gender:       gender,
		Email:        input.Email,
		Phone:        input.Phone,
		Password:     string(hashed),
		ProfilePhoto: input.ProfilePhoto,
		Address:      input.Address,
		Role:         role,
	}

	id, err := s.users.Create(ctx, user)
	if err != nil {
		return primitive.NilObjectID, err
	}
	s.log.Infof("user registered: %s", id.Hex())
	return id, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"userId": user.ID.Hex(),
		"role":   string(user.Role),
		"iat":    now.Unix(),
		"exp":    now.Add(s.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.log.Infof("user logged in: %s", user.ID.Hex())
	return &LoginResult{Token: token, Role: string(user.Role), UserID: user.ID.Hex()}, nil
}
