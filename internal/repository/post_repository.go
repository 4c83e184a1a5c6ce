package repository

import (
	"fmt"
	"time"

	"jsonblog/internal/models"
)

type CreatePostRequest struct {
	Author  string
	Title   string
	Summary string
	Content string
}

type UpdatePostRequest struct {
	PostID  int
	Title   string
	Summary string
	Content string
}

type postRepository struct {
	now func() time.Time
}

func NewPostRepository(now func() time.Time) PostRepository {
	return &postRepository{now: now}
}

// CreatePost assigns id = len(posts)+1. After a delete this hands out an id
// that was used before, and can collide with a surviving post.
func (r *postRepository) CreatePost(store models.Store, req CreatePostRequest) (models.Post, models.Store) {
	now := r.now().UTC()

	post := models.Post{
		ID:        len(store.Posts) + 1,
		Title:     req.Title,
		Summary:   req.Summary,
		Content:   req.Content,
		Author:    req.Author,
		CreatedAt: now,
		UpdatedAt: now,
	}

	next := store.Clone()
	next.Posts = append(next.Posts, post)

	return post, next
}

func (r *postRepository) ListPosts(store models.Store) []models.Post {
	posts := make([]models.Post, len(store.Posts))
	copy(posts, store.Posts)
	return posts
}

func (r *postRepository) FindPostByID(store models.Store, id int) (models.Post, bool) {
	if i := indexOfPost(store, id); i >= 0 {
		return store.Posts[i], true
	}
	return models.Post{}, false
}

func (r *postRepository) UpdatePost(store models.Store, req UpdatePostRequest) (models.Post, models.Store, error) {
	i := indexOfPost(store, req.PostID)
	if i < 0 {
		return models.Post{}, store, fmt.Errorf("post %d: %w", req.PostID, ErrNotFound)
	}

	next := store.Clone()

	post := next.Posts[i]
	post.Title = req.Title
	post.Summary = req.Summary
	post.Content = req.Content
	post.UpdatedAt = r.now().UTC()
	next.Posts[i] = post

	return post, next, nil
}

// DeletePost removes the post. Remaining ids are left as they are.
func (r *postRepository) DeletePost(store models.Store, id int) (models.Store, error) {
	i := indexOfPost(store, id)
	if i < 0 {
		return store, fmt.Errorf("post %d: %w", id, ErrNotFound)
	}

	next := store.Clone()
	next.Posts = append(next.Posts[:i], next.Posts[i+1:]...)

	return next, nil
}

func indexOfPost(store models.Store, id int) int {
	for i, p := range store.Posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}
