package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID           int    `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"password" db:"password"`
}

type Post struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store is the whole persisted state. It is always loaded and saved as one snapshot.
type Store struct {
	Users []User `json:"users"`
	Posts []Post `json:"posts"`
}

// Clone returns a copy whose slices do not share backing arrays with s.
func (s Store) Clone() Store {
	users := make([]User, len(s.Users))
	copy(users, s.Users)

	posts := make([]Post, len(s.Posts))
	copy(posts, s.Posts)

	return Store{Users: users, Posts: posts}
}

// Identity is what a session token is issued for.
type Identity struct {
	UserID   int
	Username string
}

// Claims are the identity facts carried by a signed session token.
type Claims struct {
	UserID   int    `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func (c Claims) Identity() Identity {
	return Identity{UserID: c.UserID, Username: c.Username}
}

type UserResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}
