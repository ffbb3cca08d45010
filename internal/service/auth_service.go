package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"forgeboard/internal/model"
	"forgeboard/internal/repository"
	"forgeboard/internal/util"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

// AuthService handles dashboard user registration and login.
type AuthService struct {
	users     *repository.UserRepository
	jwtSecret string
	logger    *zap.Logger
}

func NewAuthService(users *repository.UserRepository, jwtSecret string, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, jwtSecret: jwtSecret, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, email, password, displayName string) (int64, error) {
	if email == "" || password == "" {
		return 0, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return 0, ErrEmailTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return 0, err
	}

	id, err := s.users.Insert(ctx, &model.User{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayName,
		Role:         "user",
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("User registered", zap.Int64("id", id), zap.String("email", email))
	return id, nil
}

// Login verifies the credentials and returns a signed JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !util.CheckPassword(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(int(user.ID), s.jwtSecret)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
