package repository

import (
	"fmt"

	"jsonblog/internal/models"
)

type userRepository struct{}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

// RegisterUser appends a user with id = len(users)+1. Usernames are compared
// case-sensitively.
func (r *userRepository) RegisterUser(store models.Store, username, passwordHash string) (models.User, models.Store, error) {
	if _, ok := r.FindUserByUsername(store, username); ok {
		return models.User{}, store, fmt.Errorf("register %q: %w", username, ErrDuplicateUsername)
	}

	user := models.User{
		ID:           len(store.Users) + 1,
		Username:     username,
		PasswordHash: passwordHash,
	}

	next := store.Clone()
	next.Users = append(next.Users, user)

	return user, next, nil
}

func (r *userRepository) FindUserByUsername(store models.Store, username string) (models.User, bool) {
	for _, u := range store.Users {
		if u.Username == username {
			return u, true
		}
	}
	return models.User{}, false
}

func (r *userRepository) FindUserByID(store models.Store, id int) (models.User, bool) {
	for _, u := range store.Users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}
