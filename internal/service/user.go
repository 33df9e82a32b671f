package service

import (
	"context"
	"ecommerce-api/internal/model"
	"ecommerce-api/internal/repository"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService interface {
	Register(ctx context.Context, email, password, fullName string) (*model.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	ResolveToken(ctx context.Context, token string) (*model.User, error)
}

type userServiceImpl struct {
	userRepo repository.UserRepository
	tokens   *TokenManager
}

func NewUserService(
	userRepo repository.UserRepository,
	tokens *TokenManager,
) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (s *userServiceImpl) Register(ctx context.Context, email, password, fullName string) (*model.User, error) {
	_, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("look up email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:          email,
		HashedPassword: string(hashed),
		IsActive:       true,
		FullName:       fullName,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (s *userServiceImpl) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("look up email: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(user.ID)
}

func (s *userServiceImpl) ResolveToken(ctx context.Context, token string) (*model.User, error) {
	userID, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	return user, nil
}
