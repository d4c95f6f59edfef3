package service

import (
	"context"
	"errors"

	"github.com/sportvenue/booking-service/internal/models"
	"github.com/sportvenue/booking-service/internal/repository"
	"github.com/sportvenue/booking-service/pkg/clock"
	"github.com/sportvenue/booking-service/pkg/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrPasswordIncorrect  = errors.New("incorrect password")
	ErrInvalidOldPassword = errors.New("old password is incorrect")
)

type UserService interface {
	Register(ctx context.Context, username, password, phone string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, *models.User, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
	UpdateUser(ctx context.Context, id uint, phone, oldPassword, newPassword string) error
}

type userService struct {
	users  repository.UserRepository
	tokens *token.Manager
	clock  clock.Clock
}

func NewUserService(users repository.UserRepository, tokens *token.Manager, clk clock.Clock) UserService {
	return &userService{users: users, tokens: tokens, clock: clk}
}

func (s *userService) Register(ctx context.Context, username, password, phone string) (*models.User, error) {
	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Password: string(hash),
		Phone:    phone,
		Role:     models.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrUserNotFound
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrPasswordIncorrect
	}

	signed, err := s.tokens.Issue(user, s.clock.Now())
	if err != nil {
		return "", nil, err
	}
	return signed, user, nil
}

func (s *userService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uint, phone, oldPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if phone != "" {
		user.Phone = phone
	}

	if newPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
			return ErrInvalidOldPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user.Password = string(hash)
	}

	return s.users.Update(ctx, user)
}
