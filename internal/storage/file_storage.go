package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"jsonblog/internal/models"
)

// FileGateway keeps the snapshot in one JSON file. Saves go to a temp file in the
// same directory which is then renamed over the old snapshot.
type FileGateway struct {
	path string
	log  *zap.Logger
}

var _ Gateway = (*FileGateway)(nil)

func NewFileGateway(path string, log *zap.Logger) *FileGateway {
	return &FileGateway{
		path: path,
		log:  log.With(zap.String("snapshot", path)),
	}
}

func (g *FileGateway) Path() string {
	return g.path
}

func (g *FileGateway) Load(ctx context.Context) (models.Store, error) {
	if err := ctx.Err(); err != nil {
		return models.Store{}, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	data, err := os.ReadFile(g.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.Store{}, fmt.Errorf("%w: %w: %w", ErrUnreadable, ErrMissing, err)
		}
		return models.Store{}, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	store, err := Decode(data)
	if err != nil {
		g.log.Error("snapshot does not parse", zap.Error(err))
		return models.Store{}, err
	}

	return store, nil
}

func (g *FileGateway) Save(ctx context.Context, store models.Store) error {
	data, err := Encode(store)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	if err := g.replace(data); err != nil {
		g.log.Error("snapshot write failed", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	g.log.Debug("snapshot saved",
		zap.Int("users", len(store.Users)),
		zap.Int("posts", len(store.Posts)),
		zap.Int("bytes", len(data)),
	)

	return nil
}

func (g *FileGateway) replace(data []byte) (err error) {
	dir := filepath.Dir(g.path)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir all: %w", err)
	}

	tmpName := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(g.path), uuid.NewString()))

	tmp, err := os.OpenFile(tmpName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err = os.Rename(tmpName, g.path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}

	return nil
}

func (g *FileGateway) Close() error {
	return nil
}
