package test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"jsonblog/internal/models"
	"jsonblog/internal/repository"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, password string) (models.User, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Authenticate(tokenString string) (models.Claims, error) {
	args := m.Called(tokenString)
	return args.Get(0).(models.Claims), args.Error(1)
}

func (m *MockAuthService) CurrentUser(ctx context.Context, claims models.Claims) (models.User, error) {
	args := m.Called(ctx, claims)
	return args.Get(0).(models.User), args.Error(1)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, req repository.CreatePostRequest) (models.Post, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.Post), args.Error(1)
}

func (m *MockPostService) ListPosts(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) GetPost(ctx context.Context, postID int) (models.Post, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(models.Post), args.Error(1)
}

func (m *MockPostService) UpdatePost(ctx context.Context, req repository.UpdatePostRequest) (models.Post, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.Post), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, postID int) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}
