package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/AlibekovAA/postboard/internal/observability/metrics"
	"github.com/AlibekovAA/postboard/internal/post/domain"
	userdomain "github.com/AlibekovAA/postboard/internal/user/domain"
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrNotPostAuthor = errors.New("requester is not the post author")
)

type Repository interface {
	Create(ctx context.Context, post domain.Post) error
	FindByID(ctx context.Context, id domain.ID) (domain.Post, error)
	List(ctx context.Context, page, limit int) (domain.Page, error)
	Delete(ctx context.Context, id domain.ID, requesterID userdomain.ID) error
}

// MemoryRepository keeps posts in the primary map plus an insertion order
// slice, so listing is stable in creation order without sorting on every
// call. All operations hold the lock for their full critical section;
// Delete's existence and ownership checks are atomic with the removal.
type MemoryRepository struct {
	mu    sync.RWMutex
	posts map[domain.ID]domain.Post
	order []domain.ID
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		posts: make(map[domain.ID]domain.Post),
	}
}

func (r *MemoryRepository) Create(_ context.Context, post domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.posts[post.ID] = post
	r.order = append(r.order, post.ID)

	metrics.StoredPosts.Set(float64(len(r.posts)))

	return nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id domain.ID) (domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.posts[id]
	if !ok {
		return domain.Post{}, ErrPostNotFound
	}

	return post, nil
}

// List returns the page slice [(page-1)*limit, page*limit) of posts in
// creation order together with the total count. page and limit are assumed
// normalized by the caller; values below 1 yield an empty page.
func (r *MemoryRepository) List(_ context.Context, page, limit int) (domain.Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := len(r.order)
	if page < 1 || limit < 1 {
		return domain.Page{Total: total}, nil
	}

	// (page-1)*limit can wrap for huge page values, so compare against the
	// last non-empty page before computing the offset.
	if page > 1 && page-1 > (total-1)/limit {
		return domain.Page{Total: total}, nil
	}

	start := (page - 1) * limit
	if start >= total {
		return domain.Page{Total: total}, nil
	}

	end := start + limit
	if end > total {
		end = total
	}

	posts := make([]domain.Post, 0, end-start)
	for _, id := range r.order[start:end] {
		posts = append(posts, r.posts[id])
	}

	return domain.Page{Posts: posts, Total: total}, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id domain.ID, requesterID userdomain.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[id]
	if !ok {
		return ErrPostNotFound
	}

	if post.AuthorID != requesterID {
		return ErrNotPostAuthor
	}

	delete(r.posts, id)
	for i, orderedID := range r.order {
		if orderedID == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	metrics.StoredPosts.Set(float64(len(r.posts)))

	return nil
}

// Len reports the number of stored posts.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.posts)
}
