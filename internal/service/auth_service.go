package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"jsonblog/internal/models"
	"jsonblog/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type AuthService interface {
	Register(ctx context.Context, username, password string) (models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	Authenticate(tokenString string) (models.Claims, error)
	CurrentUser(ctx context.Context, claims models.Claims) (models.User, error)
}

type authService struct {
	userRepo    repository.UserRepository
	store       *SnapshotStore
	credentials CredentialService
	tokens      TokenService
	tokenTTL    time.Duration
	log         *zap.Logger
}

func NewAuthService(
	userRepo repository.UserRepository,
	store *SnapshotStore,
	credentials CredentialService,
	tokens TokenService,
	tokenTTL time.Duration,
	log *zap.Logger,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		store:       store,
		credentials: credentials,
		tokens:      tokens,
		tokenTTL:    tokenTTL,
		log:         log,
	}
}

func (s *authService) Register(ctx context.Context, username, password string) (models.User, error) {
	// hashing is slow, keep it outside the load/save window
	passwordHash, err := s.credentials.Hash(password)
	if err != nil {
		return models.User{}, err
	}

	var user models.User
	err = s.store.Mutate(ctx, func(store models.Store) (models.Store, error) {
		registered, next, err := s.userRepo.RegisterUser(store, username, passwordHash)
		user = registered
		return next, err
	})
	if err != nil {
		if !errors.Is(err, repository.ErrDuplicateUsername) {
			s.log.Error("register user failed", zap.String("username", username), zap.Error(err))
		}
		return models.User{}, err
	}

	s.log.Info("user registered", zap.String("username", username), zap.Int("userId", user.ID))
	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	store, err := s.store.Read(ctx)
	if err != nil {
		s.log.Error("login failed", zap.String("username", username), zap.Error(err))
		return "", err
	}

	user, ok := s.userRepo.FindUserByUsername(store, username)
	if !ok || !s.credentials.Verify(password, user.PasswordHash) {
		s.log.Debug("login rejected", zap.String("username", username))
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(models.Identity{UserID: user.ID, Username: user.Username}, s.tokenTTL)
	if err != nil {
		s.log.Error("issue token failed", zap.String("username", username), zap.Error(err))
		return "", fmt.Errorf("issue token: %w", err)
	}

	s.log.Info("user logged in", zap.String("username", username))
	return token, nil
}

func (s *authService) Authenticate(tokenString string) (models.Claims, error) {
	return s.tokens.Verify(tokenString)
}

// CurrentUser resolves the user the claims were issued for. Tokens are not
// revoked, so the user can be gone by now.
func (s *authService) CurrentUser(ctx context.Context, claims models.Claims) (models.User, error) {
	store, err := s.store.Read(ctx)
	if err != nil {
		return models.User{}, err
	}

	user, ok := s.userRepo.FindUserByID(store, claims.UserID)
	if !ok {
		return models.User{}, fmt.Errorf("user %d: %w", claims.UserID, repository.ErrNotFound)
	}

	return user, nil
}
