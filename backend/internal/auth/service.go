package auth

import (
	"context"

	"go.uber.org/zap"
	"resume-chatbot/backend/internal/constants"
	"resume-chatbot/backend/internal/graph"
	apperrors "resume-chatbot/backend/pkg/errors"
	"resume-chatbot/backend/pkg/logger"
)

// UserRepo is the account storage the auth service depends on
type UserRepo interface {
	CreateUser(ctx context.Context, email, hashedPassword string) (*graph.User, error)
	GetUserByEmail(ctx context.Context, email string) (*graph.User, error)
}

// Service handles registration, login and token refresh
type Service struct {
	users  UserRepo
	secret string
	logger *zap.Logger
}

// NewService creates the auth service
func NewService(users UserRepo, jwtSecret string) *Service {
	return &Service{
		users:  users,
		secret: jwtSecret,
		logger: logger.Get(),
	}
}

// TokenPair is issued on login: a short-lived access token and a
// longer-lived refresh token
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Register creates a new account with a bcrypt-hashed password
func (s *Service) Register(ctx context.Context, email, password string) (*graph.User, error) {
	hashed, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CreateUser(ctx, email, hashed)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.String("email", email))
	return user, nil
}

// Login validates credentials and issues a token pair
func (s *Service) Login(ctx context.Context, email, password string) (*graph.User, *TokenPair, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if user == nil || !CheckPasswordHash(password, user.HashedPassword) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(user.ID, user.Email)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh validates a refresh token and issues a new access token
func (s *Service) Refresh(refreshToken string) (string, error) {
	claims, err := ParseToken(refreshToken, s.secret)
	if err != nil {
		return "", err
	}
	return NewToken(claims.Subject, claims.Email, s.secret, constants.AccessTokenTTL)
}

func (s *Service) issueTokens(userID, email string) (*TokenPair, error) {
	access, err := NewToken(userID, email, s.secret, constants.AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := NewToken(userID, email, s.secret, constants.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
