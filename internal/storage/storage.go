package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"jsonblog/internal/config"
	"jsonblog/internal/database"
	"jsonblog/internal/models"
)

var (
	ErrUnreadable  = errors.New("snapshot unreadable")
	ErrCorrupt     = errors.New("snapshot corrupt")
	ErrWriteFailed = errors.New("snapshot write failed")
	// ErrMissing is joined with ErrUnreadable when no snapshot has been written yet.
	ErrMissing = errors.New("snapshot does not exist")
)

// Gateway loads and replaces the whole Store as a single snapshot.
type Gateway interface {
	Load(ctx context.Context) (models.Store, error)
	Save(ctx context.Context, store models.Store) error
	Close() error
}

type snapshot struct {
	Users *[]models.User `json:"users"`
	Posts *[]models.Post `json:"posts"`
}

// Encode renders the snapshot document. Nil collections are written as empty arrays.
func Encode(store models.Store) ([]byte, error) {
	users := store.Users
	if users == nil {
		users = []models.User{}
	}

	posts := store.Posts
	if posts == nil {
		posts = []models.Post{}
	}

	data, err := json.MarshalIndent(snapshot{Users: &users, Posts: &posts}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %w", ErrWriteFailed, err)
	}

	return data, nil
}

// Decode parses a snapshot document. Both collections must be present and every
// record complete; nothing is filled in with zero values.
func Decode(data []byte) (models.Store, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return models.Store{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	if snap.Users == nil {
		return models.Store{}, fmt.Errorf("%w: missing users", ErrCorrupt)
	}
	if snap.Posts == nil {
		return models.Store{}, fmt.Errorf("%w: missing posts", ErrCorrupt)
	}

	for i, u := range *snap.Users {
		if err := checkUser(u); err != nil {
			return models.Store{}, fmt.Errorf("%w: users[%d]: %w", ErrCorrupt, i, err)
		}
	}
	for i, p := range *snap.Posts {
		if err := checkPost(p); err != nil {
			return models.Store{}, fmt.Errorf("%w: posts[%d]: %w", ErrCorrupt, i, err)
		}
	}

	return models.Store{Users: *snap.Users, Posts: *snap.Posts}, nil
}

func checkUser(u models.User) error {
	switch {
	case u.ID <= 0:
		return fmt.Errorf("invalid id %d", u.ID)
	case u.Username == "":
		return errors.New("empty username")
	case u.PasswordHash == "":
		return errors.New("empty password")
	}
	return nil
}

func checkPost(p models.Post) error {
	switch {
	case p.ID <= 0:
		return fmt.Errorf("invalid id %d", p.ID)
	case p.CreatedAt.IsZero():
		return errors.New("missing createdAt")
	case p.UpdatedAt.IsZero():
		return errors.New("missing updatedAt")
	}
	return nil
}

// Open picks a backend from cfg.StoreURI:
//
//	database.json, file:///var/lib/blog.json  local file
//	s3://bucket/path/database.json           MinIO / S3 object
//	postgres, postgres://user@host/db        single row in postgres
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (Gateway, error) {
	uri := cfg.StoreURI

	switch {
	case uri == "postgres" || strings.HasPrefix(uri, "postgres://") || strings.HasPrefix(uri, "postgresql://"):
		dsn := uri
		if uri == "postgres" {
			dsn = database.DSN(cfg.DB)
		}

		db, err := database.ConnectDB(ctx, dsn, log)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}

		return NewPostgresGateway(db, log), nil

	case strings.HasPrefix(uri, "s3://"):
		bucket, key, err := ParseObjectURI(uri)
		if err != nil {
			return nil, err
		}

		gw, err := NewMinIOGateway(ctx, cfg.MinIO, bucket, key, log)
		if err != nil {
			return nil, fmt.Errorf("connect minio: %w", err)
		}

		return gw, nil

	case strings.HasPrefix(uri, "file://"):
		u, err := url.Parse(uri)
		if err != nil {
			return nil, fmt.Errorf("parse store uri: %w", err)
		}

		return NewFileGateway(u.Path, log), nil

	default:
		return NewFileGateway(uri, log), nil
	}
}

// Bootstrap writes an empty snapshot when none exists yet. Any other load
// failure, corruption included, is returned untouched.
func Bootstrap(ctx context.Context, gw Gateway, log *zap.Logger) error {
	store, err := gw.Load(ctx)
	if err == nil {
		log.Info("snapshot loaded",
			zap.Int("users", len(store.Users)),
			zap.Int("posts", len(store.Posts)),
		)
		return nil
	}

	if !errors.Is(err, ErrMissing) {
		return err
	}

	log.Info("no snapshot found, writing empty store")

	if err := gw.Save(ctx, models.Store{}); err != nil {
		return fmt.Errorf("write empty snapshot: %w", err)
	}

	return nil
}
