package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"jsonblog/internal/database"
	"jsonblog/internal/models"
)

const (
	selectSnapshotQuery = `SELECT document FROM snapshots WHERE id = 1`
	upsertSnapshotQuery = `INSERT INTO snapshots (id, document, updated_at) VALUES (1, $1, now()) ON CONFLICT (id) DO UPDATE SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at`
)

// PostgresGateway keeps the snapshot document in row 1 of the snapshots table.
// Save is a single upsert statement.
type PostgresGateway struct {
	db  *database.DB
	log *zap.Logger
}

var _ Gateway = (*PostgresGateway)(nil)

func NewPostgresGateway(db *database.DB, log *zap.Logger) *PostgresGateway {
	return &PostgresGateway{db: db, log: log}
}

func (g *PostgresGateway) Load(ctx context.Context) (models.Store, error) {
	var document string

	err := g.db.GetContext(ctx, &document, selectSnapshotQuery)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Store{}, fmt.Errorf("%w: %w: %w", ErrUnreadable, ErrMissing, err)
		}
		return models.Store{}, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	store, err := Decode([]byte(document))
	if err != nil {
		g.log.Error("snapshot does not parse", zap.Error(err))
		return models.Store{}, err
	}

	return store, nil
}

func (g *PostgresGateway) Save(ctx context.Context, store models.Store) error {
	data, err := Encode(store)
	if err != nil {
		return err
	}

	if _, err := g.db.ExecContext(ctx, upsertSnapshotQuery, string(data)); err != nil {
		g.log.Error("snapshot upsert failed", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	return nil
}

func (g *PostgresGateway) Close() error {
	return g.db.CloseDB()
}
