package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"jsonblog/internal/models"
	"jsonblog/internal/repository"
	"jsonblog/internal/storage"
)

func TestPostService_CRUD(t *testing.T) {
	ctx := context.Background()
	gw := &memoryGateway{}
	svc, clock := newTestService(t, gw, false)

	created, err := svc.Post.CreatePost(ctx, repository.CreatePostRequest{
		Author:  "alice",
		Title:   "First Post",
		Summary: "summary 1",
		Content: "This is my first post!",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.True(t, created.CreatedAt.Equal(clock.Now()))

	got, err := svc.Post.GetPost(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	clock.Advance(time.Minute)
	updated, err := svc.Post.UpdatePost(ctx, repository.UpdatePostRequest{
		PostID:  1,
		Title:   "Edited",
		Summary: "s",
		Content: "c",
	})
	require.NoError(t, err)
	assert.Equal(t, "Edited", updated.Title)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.Equal(clock.Now()))

	posts, err := svc.Post.ListPosts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Post{updated}, posts)

	require.NoError(t, svc.Post.DeletePost(ctx, 1))

	posts, err = svc.Post.ListPosts(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)

	again, err := svc.Post.CreatePost(ctx, repository.CreatePostRequest{Author: "alice", Title: "again"})
	require.NoError(t, err)
	assert.Equal(t, 1, again.ID)
}

func TestPostService_NotFound(t *testing.T) {
	ctx := context.Background()
	gw := &memoryGateway{}
	svc, _ := newTestService(t, gw, false)

	_, err := svc.Post.GetPost(ctx, 5)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Post.UpdatePost(ctx, repository.UpdatePostRequest{PostID: 5, Title: "x"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, svc.Post.DeletePost(ctx, 5), repository.ErrNotFound)
	assert.Zero(t, gw.saves)
}

func TestPostService_PersistsThroughFileGateway(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "database.json")

	clock := newTestClock()
	newSvc := func() *Service {
		gw := storage.NewFileGateway(path, zap.NewNop())
		require.NoError(t, storage.Bootstrap(ctx, gw, zap.NewNop()))

		svc, err := NewService(repository.NewRepository(clock.Now), gw, testConfig(false), clock.Now, zap.NewNop())
		require.NoError(t, err)
		return svc
	}

	first := newSvc()
	_, err := first.Auth.Register(ctx, "alice", "pw")
	require.NoError(t, err)
	post, err := first.Post.CreatePost(ctx, repository.CreatePostRequest{Author: "alice", Title: "hello"})
	require.NoError(t, err)

	// a fresh process over the same file sees the same state
	second := newSvc()
	got, err := second.Post.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post, got)

	_, err = second.Auth.Login(ctx, "alice", "pw")
	assert.NoError(t, err)
}

// barrierGateway holds every Load until n loads have happened, so n concurrent
// mutations all start from the same snapshot.
type barrierGateway struct {
	*memoryGateway
	wg *sync.WaitGroup
}

func newBarrierGateway(n int) *barrierGateway {
	wg := &sync.WaitGroup{}
	wg.Add(n)
	return &barrierGateway{memoryGateway: &memoryGateway{}, wg: wg}
}

func (g *barrierGateway) Load(ctx context.Context) (models.Store, error) {
	store, err := g.memoryGateway.Load(ctx)
	g.wg.Done()
	g.wg.Wait()
	return store, err
}

func TestPostService_ConcurrentCreateLosesUpdate(t *testing.T) {
	ctx := context.Background()
	gw := newBarrierGateway(2)

	store := NewSnapshotStore(gw, false)
	posts := NewPostService(repository.NewPostRepository(time.Now), store, zap.NewNop())

	var wg sync.WaitGroup
	for _, title := range []string{"a", "b"} {
		wg.Add(1)
		go func(title string) {
			defer wg.Done()
			_, err := posts.CreatePost(ctx, repository.CreatePostRequest{Author: "alice", Title: title})
			assert.NoError(t, err)
		}(title)
	}
	wg.Wait()

	// both saves succeed, but the second overwrites the first
	assert.Equal(t, 2, gw.saves)
	assert.Len(t, gw.snapshot().Posts, 1)
}

func TestPostService_SerializedWritesKeepEveryCreate(t *testing.T) {
	ctx := context.Background()
	gw := &memoryGateway{}
	svc, _ := newTestService(t, gw, true)

	const n = 20

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Post.CreatePost(ctx, repository.CreatePostRequest{Author: "alice", Title: "t"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	posts := gw.snapshot().Posts
	require.Len(t, posts, n)

	seen := make(map[int]bool, n)
	for _, p := range posts {
		seen[p.ID] = true
	}
	assert.Len(t, seen, n, "ids are distinct when writes are serialized")
}
