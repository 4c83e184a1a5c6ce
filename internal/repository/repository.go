package repository

import (
	"errors"
	"time"

	"jsonblog/internal/models"
)

var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrNotFound          = errors.New("record not found")
)

// UserRepository works on a loaded snapshot. Mutating methods never touch the
// store they are given; they return the changed copy instead.
type UserRepository interface {
	RegisterUser(store models.Store, username, passwordHash string) (models.User, models.Store, error)
	FindUserByUsername(store models.Store, username string) (models.User, bool)
	FindUserByID(store models.Store, id int) (models.User, bool)
}

type PostRepository interface {
	CreatePost(store models.Store, req CreatePostRequest) (models.Post, models.Store)
	ListPosts(store models.Store) []models.Post
	FindPostByID(store models.Store, id int) (models.Post, bool)
	UpdatePost(store models.Store, req UpdatePostRequest) (models.Post, models.Store, error)
	DeletePost(store models.Store, id int) (models.Store, error)
}

type Repository struct {
	User UserRepository
	Post PostRepository
}

// NewRepository builds both repositories. now stamps createdAt/updatedAt; nil means time.Now.
func NewRepository(now func() time.Time) *Repository {
	if now == nil {
		now = time.Now
	}

	return &Repository{
		User: NewUserRepository(),
		Post: NewPostRepository(now),
	}
}
