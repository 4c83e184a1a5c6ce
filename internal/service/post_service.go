package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"jsonblog/internal/models"
	"jsonblog/internal/repository"
)

type PostService interface {
	CreatePost(ctx context.Context, req repository.CreatePostRequest) (models.Post, error)
	ListPosts(ctx context.Context) ([]models.Post, error)
	GetPost(ctx context.Context, postID int) (models.Post, error)
	UpdatePost(ctx context.Context, req repository.UpdatePostRequest) (models.Post, error)
	DeletePost(ctx context.Context, postID int) error
}

type postService struct {
	postRepo repository.PostRepository
	store    *SnapshotStore
	log      *zap.Logger
}

func NewPostService(postRepo repository.PostRepository, store *SnapshotStore, log *zap.Logger) PostService {
	return &postService{
		postRepo: postRepo,
		store:    store,
		log:      log,
	}
}

func (p *postService) CreatePost(ctx context.Context, req repository.CreatePostRequest) (models.Post, error) {
	var post models.Post

	err := p.store.Mutate(ctx, func(store models.Store) (models.Store, error) {
		var next models.Store
		post, next = p.postRepo.CreatePost(store, req)
		return next, nil
	})
	if err != nil {
		p.log.Error("create post failed", zap.String("author", req.Author), zap.Error(err))
		return models.Post{}, err
	}

	p.log.Info("post created", zap.Int("postId", post.ID), zap.String("author", post.Author))
	return post, nil
}

func (p *postService) ListPosts(ctx context.Context) ([]models.Post, error) {
	store, err := p.store.Read(ctx)
	if err != nil {
		return nil, err
	}

	return p.postRepo.ListPosts(store), nil
}

func (p *postService) GetPost(ctx context.Context, postID int) (models.Post, error) {
	store, err := p.store.Read(ctx)
	if err != nil {
		return models.Post{}, err
	}

	post, ok := p.postRepo.FindPostByID(store, postID)
	if !ok {
		return models.Post{}, fmt.Errorf("post %d: %w", postID, repository.ErrNotFound)
	}

	return post, nil
}

func (p *postService) UpdatePost(ctx context.Context, req repository.UpdatePostRequest) (models.Post, error) {
	var post models.Post

	err := p.store.Mutate(ctx, func(store models.Store) (models.Store, error) {
		var (
			next models.Store
			err  error
		)
		post, next, err = p.postRepo.UpdatePost(store, req)
		return next, err
	})
	if err != nil {
		return models.Post{}, err
	}

	p.log.Info("post updated", zap.Int("postId", post.ID))
	return post, nil
}

func (p *postService) DeletePost(ctx context.Context, postID int) error {
	err := p.store.Mutate(ctx, func(store models.Store) (models.Store, error) {
		return p.postRepo.DeletePost(store, postID)
	})
	if err != nil {
		return err
	}

	p.log.Info("post deleted", zap.Int("postId", postID))
	return nil
}
