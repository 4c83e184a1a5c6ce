package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"jsonblog/internal/config"
	"jsonblog/internal/repository"
	"jsonblog/internal/storage"
)

type Service struct {
	Auth        AuthService
	Post        PostService
	Credentials CredentialService
}

// NewService wires the services over one gateway. now stamps tokens; nil means time.Now.
func NewService(
	repo *repository.Repository,
	gateway storage.Gateway,
	cfg *config.Config,
	now func() time.Time,
	log *zap.Logger,
) (*Service, error) {
	credentials, err := NewCredentialService(cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	tokens, err := NewTokenService(cfg.JWTSecretKey, now)
	if err != nil {
		return nil, err
	}

	ttl := cfg.AccessTokenDuration
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}

	store := NewSnapshotStore(gateway, cfg.SerializeWrites)

	return &Service{
		Auth:        NewAuthService(repo.User, store, credentials, tokens, ttl, log.Named("auth")),
		Post:        NewPostService(repo.Post, store, log.Named("post")),
		Credentials: credentials,
	}, nil
}
