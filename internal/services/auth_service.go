package services

import (
	"context"
	"errors"
	"strings"

	"github.com/anonto42/inkwell/backend/internal/apperror"
	"github.com/anonto42/inkwell/backend/internal/auth"
	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/repositories"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService registers users, checks credentials and resolves bearer tokens
type AuthService struct {
	store      *repositories.Store
	tokens     *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
}

func NewAuthService(store *repositories.Store, tokens *auth.TokenManager, bcryptCost int, logger *zap.Logger) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{store: store, tokens: tokens, bcryptCost: bcryptCost, logger: logger}
}

// Register creates an account. Username and email must both be unused.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if username == "" || email == "" || req.Password == "" {
		return nil, apperror.Validation("username, email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	err = s.store.Transaction(ctx, func(tx *repositories.Store) error {
		taken, err := tx.Users.ExistsByUsernameOrEmail(ctx, username, email)
		if err != nil {
			return err
		}
		if taken {
			return apperror.Conflict("username or email already registered")
		}
		return tx.Users.CreateUser(ctx, user)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, apperror.Wrap(apperror.KindConflict, "username or email already registered", err)
	}
	if err != nil {
		return nil, translate(err, "user not found")
	}

	s.logger.Info("user registered", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Login checks the credentials and issues a bearer token. The identifier may be
// a username or an email address.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	identifier := strings.TrimSpace(req.Identifier)

	var (
		user *models.User
		err  error
	)
	if strings.Contains(identifier, "@") {
		user, err = s.store.Users.GetUserByEmail(ctx, identifier)
	} else {
		user, err = s.store.Users.GetUserByUsername(ctx, identifier)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Authentication("invalid credentials")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperror.Authentication("invalid credentials")
	}
	if !user.IsActive {
		return nil, apperror.Authentication("account is disabled")
	}

	token, expiresAt, err := s.tokens.Generate(user)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &models.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

// Authenticate resolves a bearer token to the user it was issued for
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Parse(token)
	switch {
	case errors.Is(err, auth.ErrEmptyToken):
		return nil, apperror.Authentication("missing token")
	case errors.Is(err, auth.ErrExpiredToken):
		return nil, apperror.Authentication("token has expired")
	case err != nil:
		return nil, apperror.Wrap(apperror.KindAuthentication, "invalid token", err)
	}

	user, err := s.store.Users.GetUserByID(ctx, claims.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Authentication("token user no longer exists")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !user.IsActive {
		return nil, apperror.Authentication("account is disabled")
	}
	return user, nil
}
