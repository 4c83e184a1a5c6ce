package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"jsonblog/internal/config"
	"jsonblog/internal/models"
)

// MinIOGateway keeps the snapshot as a single object. PutObject replaces the
// object whole, so readers never see a partial snapshot.
type MinIOGateway struct {
	client *minio.Client
	bucket string
	key    string
	log    *zap.Logger
}

var _ Gateway = (*MinIOGateway)(nil)

// ParseObjectURI splits s3://bucket/some/key.json into bucket and key.
func ParseObjectURI(uri string) (bucket, key string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("parse store uri: %w", err)
	}

	if u.Scheme != "s3" {
		return "", "", fmt.Errorf("parse store uri: unsupported scheme %q", u.Scheme)
	}

	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("parse store uri: %q needs both bucket and key", uri)
	}

	return bucket, key, nil
}

func NewMinIOGateway(ctx context.Context, cfg config.MinIO, bucket, key string, log *zap.Logger) (*MinIOGateway, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("new minio client: %w", err)
	}

	gw := &MinIOGateway{
		client: client,
		bucket: bucket,
		key:    key,
		log:    log.With(zap.String("bucket", bucket), zap.String("object", key)),
	}

	if err := gw.ensureBucket(ctx, cfg.Region); err != nil {
		return nil, err
	}

	return gw, nil
}

func (g *MinIOGateway) ensureBucket(ctx context.Context, region string) error {
	exists, err := g.client.BucketExists(ctx, g.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}

	if exists {
		return nil
	}

	if err := g.client.MakeBucket(ctx, g.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("make bucket: %w", err)
	}

	g.log.Info("bucket created")
	return nil
}

func (g *MinIOGateway) Load(ctx context.Context) (models.Store, error) {
	obj, err := g.client.GetObject(ctx, g.bucket, g.key, minio.GetObjectOptions{})
	if err != nil {
		return models.Store{}, g.readError(err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return models.Store{}, g.readError(err)
	}

	store, err := Decode(data)
	if err != nil {
		g.log.Error("snapshot does not parse", zap.Error(err))
		return models.Store{}, err
	}

	return store, nil
}

func (g *MinIOGateway) readError(err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return fmt.Errorf("%w: %w: %w", ErrUnreadable, ErrMissing, err)
	}
	return fmt.Errorf("%w: %w", ErrUnreadable, err)
}

func (g *MinIOGateway) Save(ctx context.Context, store models.Store) error {
	data, err := Encode(store)
	if err != nil {
		return err
	}

	_, err = g.client.PutObject(ctx, g.bucket, g.key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{
			ContentType: "application/json",
		})
	if err != nil {
		g.log.Error("snapshot upload failed", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	return nil
}

func (g *MinIOGateway) Close() error {
	return nil
}
